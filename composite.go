package tknz

// NewCompositeReader returns a reader trying readers in order at the current
// position. The first token wins.
func NewCompositeReader(readers ...Reader) Reader {
	list := append([]Reader(nil), readers...)
	return func(ctx *Context) *Token {
		return readFirst(ctx, list)
	}
}

// Readers is an ordered, mutable list of alternatives. Its Read method can be
// handed to other readers before the list is complete, which is how mutually
// recursive grammars are wired. Finish the wiring before the first parse.
type Readers struct {
	list []Reader
}

// Append adds readers with the lowest priority.
func (r *Readers) Append(readers ...Reader) *Readers {
	for _, read := range readers {
		if read != nil {
			r.list = append(r.list, read)
		}
	}
	return r
}

// Prepend adds readers with the highest priority, keeping their order.
func (r *Readers) Prepend(readers ...Reader) *Readers {
	head := make([]Reader, 0, len(readers)+len(r.list))
	for _, read := range readers {
		if read != nil {
			head = append(head, read)
		}
	}
	r.list = append(head, r.list...)
	return r
}

// Len returns the number of alternatives.
func (r *Readers) Len() int {
	return len(r.list)
}

// Read tries every alternative in order.
func (r *Readers) Read(ctx *Context) *Token {
	return readFirst(ctx, r.list)
}

func readFirst(ctx *Context, list []Reader) *Token {
	for _, read := range list {
		if tok := read(ctx); tok != nil {
			return tok
		}
	}
	return nil
}

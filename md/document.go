package md

import "pkt.systems/tknz"

const TypeDocument = "MdDocument"

// NewDocumentReader returns a reader for a whole Markdown document: front
// matter, nested sections, fenced code blocks, line breaks and inline text
// made of words, spaces, punctuation and code spans.
func NewDocumentReader() tknz.Reader {
	var inline, body tknz.Readers
	inline.Append(
		NewInlineCodeReader(),
		tknz.ReadWord,
		tknz.ReadSpaces,
		tknz.ReadPunctuation,
	)
	header := NewHeaderReader(inline.Read)
	body.Append(
		NewSectionReader(header, body.Read),
		NewCodeBlockReader(),
		tknz.ReadEol,
		inline.Read,
	)
	return tknz.NewBlockReader(TypeDocument, tknz.NewCompositeReader(NewFrontMatterReader(), body.Read))
}

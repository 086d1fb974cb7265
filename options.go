package tknz

// Option configures a Context or a Tokenize call.
type Option func(*config)

type config struct {
	start    int
	validate bool
}

// WithStart positions the cursor at offset before the first read.
func WithStart(offset int) Option {
	return func(cfg *config) {
		cfg.start = offset
	}
}

// WithValidation enables ValidateInput before tokenizing.
func WithValidation(enabled bool) Option {
	return func(cfg *config) {
		cfg.validate = enabled
	}
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

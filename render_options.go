package tknz

// RenderOption configures Render.
type RenderOption func(*renderConfig)

type renderConfig struct {
	attrs    bool
	maxDepth int
	color    bool
}

func defaultRenderConfig() renderConfig {
	return renderConfig{attrs: true, maxDepth: -1}
}

// WithAttrs enables or disables attribute output. Enabled by default.
func WithAttrs(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.attrs = enabled
	}
}

// WithMaxDepth limits the rendered depth; the root has depth 0. A negative
// depth renders the whole tree.
func WithMaxDepth(depth int) RenderOption {
	return func(cfg *renderConfig) {
		cfg.maxDepth = depth
	}
}

// WithColor enables theme colors. Use DetectColorSupport to decide.
func WithColor(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.color = enabled
	}
}

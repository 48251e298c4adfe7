package providers

// Option customizes a provider at construction.
type Option func(*options)

type options struct {
	baseURL string
	backoff BackoffConfig
}

// WithBaseURL points the provider at a different API root, e.g. an httptest server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithBackoff overrides the retry schedule.
func WithBackoff(b BackoffConfig) Option {
	return func(o *options) { o.backoff = b }
}

func buildOptions(defaultBase string, opts []Option) options {
	o := options{baseURL: defaultBase, backoff: DefaultBackoff}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

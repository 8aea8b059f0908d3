package sim

import "github.com/go-logr/logr"

type Option func(*options)

type options struct {
	log logr.Logger
}

func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.log = l }
}

func applyOptions(opts []Option) options {
	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

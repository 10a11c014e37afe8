// Package services contains the server-side business logic: the identity
// service, the progress engine and the Tracker facade that ties them to
// incoming practice events.
package services

import (
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/logging"
)

type options struct {
	now func() time.Time
	log logging.Logger
}

type Option func(*options)

// WithClock replaces time.Now. The returned times decide streak days and
// session expiry, so their location matters.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, log: logging.Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

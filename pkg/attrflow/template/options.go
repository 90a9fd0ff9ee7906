package template

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

// DateFormatter renders t using a caller-supplied format pattern.
type DateFormatter func(t time.Time, layout string) string

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock sets the date source used by {Today} placeholders.
//
// Default: time.Now
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// WithDateFormatter sets the formatter used by {Today#fmt} placeholders.
//
// Default: FormatDate (PHP date letters)
//
// Example:
//
//	r := NewResolver(WithDateFormatter(func(t time.Time, layout string) string {
//	    return t.Format(layout) // Go reference layouts
//	}))
func WithDateFormatter(f DateFormatter) Option {
	return func(r *Resolver) {
		if f != nil {
			r.formatDate = f
		}
	}
}

// WithValueRanges sets the lookup used by #Entry# placeholders.
// Without one, value-range placeholders are left untouched.
func WithValueRanges(vr record.ValueRanges) Option {
	return func(r *Resolver) {
		r.ranges = vr
	}
}

// WithLogger sets a logger for debug output about unresolved placeholders.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

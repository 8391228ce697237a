package posts

import (
	"github.com/clawsandpaws/pawsd/internal/clock"
	"github.com/clawsandpaws/pawsd/pkg/logger"
	"github.com/google/uuid"
)

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithImageProvider sets the collaborator that resolves default images.
func WithImageProvider(p ImageProvider) Option {
	return func(l *Ledger) {
		l.images = p
	}
}

// WithMirror sets the remote post backend to reconcile with.
func WithMirror(m Mirror) Option {
	return func(l *Ledger) {
		l.mirror = m
	}
}

// WithClock sets the time source for CreatedAt stamps.
func WithClock(c clock.Clock) Option {
	return func(l *Ledger) {
		if c != nil {
			l.clk = c
		}
	}
}

// WithIDGenerator overrides post id generation. Tests use this for
// deterministic ids.
func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// defaultID keeps the historical "p_" prefix but draws the rest from a
// uuid so ids stay unique within the same millisecond.
func defaultID() string {
	return "p_" + uuid.NewString()
}

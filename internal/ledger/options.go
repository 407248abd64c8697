package ledger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/stockbook/internal/logging"
)

type options struct {
	now    func() time.Time
	newID  func() (string, error)
	logger *slog.Logger
}

// Option customizes a Session.
type Option func(*options)

// WithClock replaces time.Now for every timestamp the ledgers stamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the UUIDv7 product id generator.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(o *options) { o.newID = newID }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func defaultOptions() options {
	return options{
		now: time.Now,
		newID: func() (string, error) {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
		logger: logging.Discard(),
	}
}

package store

import (
	"errors"

	"profanity/internal/platform/logger"
)

// Option adjusts a Store before Open dials any backend
type Option func(*Store) error

// WithLogger routes backend logs (the pg tracer, boot retries) through log.
// Open falls back to the root logger without it
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) error {
		if log == nil {
			return errors.New("store: nil logger")
		}
		s.Log = *log
		return nil
	}
}

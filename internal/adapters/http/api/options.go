package api

import (
	"time"

	"github.com/okian/playcard/pkg/logger"
)

const (
	defaultMaxBodyBytes = 10 << 20
	apiName             = "Playcard API"
	apiVersion          = "1.0.0"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxBodyBytes limits request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithAllowedOrigins sets the CORS allow list. "*" allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// WithClock sets the time source for health timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for failures and recovered panics.
func WithLogger(lg logger.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

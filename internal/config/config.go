// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of New().
// - Errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// MaxBodyBytes caps request bodies accepted by the API.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// CORSAllowedOrigins lists origins allowed to call the API. "*" allows any.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// EventQueueSize bounds the in-memory ledger event queue.
	EventQueueSize int `koanf:"event_queue_size"`

	// EventWorkers sets the number of ledger event dispatchers. One keeps
	// events published in ledger order.
	EventWorkers int `koanf:"event_workers"`

	// NATSURL enables publishing ledger events to NATS when non-empty.
	NATSURL string `koanf:"nats_url"`

	// NATSSubject is the subject prefix for published ledger events.
	NATSSubject string `koanf:"nats_subject"`

	// NATSClientName identifies this process on the NATS server.
	NATSClientName string `koanf:"nats_client_name"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":5000",
		MaxBodyBytes:       10 << 20,
		CORSAllowedOrigins: []string{"*"},
		EventQueueSize:     1024,
		EventWorkers:       1,
		NATSURL:            "",
		NATSSubject:        "playcard.ledger",
		NATSClientName:     "playcard",
	}
}

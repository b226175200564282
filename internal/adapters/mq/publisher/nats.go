package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/pkg/logger"
)

// Connection defaults.
const (
	defaultConnectTimeout = 10 * time.Second
	defaultReconnectWait  = 2 * time.Second
	defaultMaxReconnects  = 5
	defaultClientName     = "playcard"
)

// ErrNoSubject is returned when a NATS publisher is built without a subject prefix.
var ErrNoSubject = errors.New("nats subject prefix is required")

// Conn is the subset of *nats.Conn used by NATSPublisher.
type Conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSOption configures NATSPublisher.
type NATSOption func(*NATSPublisher)

// WithClientName sets the connection name shown by the NATS server.
func WithClientName(name string) NATSOption {
	return func(p *NATSPublisher) {
		if name != "" {
			p.clientName = name
		}
	}
}

// WithConnectTimeout sets the dial timeout.
func WithConnectTimeout(d time.Duration) NATSOption {
	return func(p *NATSPublisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithReconnect sets the reconnect wait and the reconnect attempt limit.
func WithReconnect(wait time.Duration, maxReconnects int) NATSOption {
	return func(p *NATSPublisher) {
		if wait > 0 {
			p.reconnectWait = wait
		}
		p.maxReconnects = maxReconnects
	}
}

// WithNATSLogger sets the logger for connection state changes.
func WithNATSLogger(lg logger.Logger) NATSOption {
	return func(p *NATSPublisher) {
		if lg != nil {
			p.logger = lg
		}
	}
}

// WithConn uses an existing connection instead of dialing.
func WithConn(c Conn) NATSOption {
	return func(p *NATSPublisher) {
		p.conn = c
	}
}

// NATSPublisher publishes JSON encoded events on <prefix>.<kind>.
type NATSPublisher struct {
	conn   Conn
	prefix string

	clientName    string
	timeout       time.Duration
	reconnectWait time.Duration
	maxReconnects int
	logger        logger.Logger
}

// NewNATSPublisher connects to url unless WithConn supplies a connection.
func NewNATSPublisher(url, subjectPrefix string, opts ...NATSOption) (*NATSPublisher, error) {
	if subjectPrefix == "" {
		return nil, ErrNoSubject
	}
	p := &NATSPublisher{
		prefix:        subjectPrefix,
		clientName:    defaultClientName,
		timeout:       defaultConnectTimeout,
		reconnectWait: defaultReconnectWait,
		maxReconnects: defaultMaxReconnects,
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.conn != nil {
		return p, nil
	}

	nc, err := nats.Connect(url,
		nats.Name(p.clientName),
		nats.Timeout(p.timeout),
		nats.ReconnectWait(p.reconnectWait),
		nats.MaxReconnects(p.maxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			p.logger.Warn(context.Background(), "nats disconnected", logger.Error(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			p.logger.Info(context.Background(), "nats reconnected", logger.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}
	p.conn = nc
	return p, nil
}

// Subject returns the subject an event of the given kind is published on.
func (p *NATSPublisher) Subject(kind model.EventKind) string {
	return p.prefix + "." + string(kind)
}

// Publish implements Publisher.
func (p *NATSPublisher) Publish(_ context.Context, e model.Event) error { //nolint:gocritic // hugeParam: Event is passed by value for channel semantics
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", e.ID, err)
	}
	if err := p.conn.Publish(p.Subject(e.Kind), data); err != nil {
		return fmt.Errorf("publish event %s: %w", e.ID, err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		return fmt.Errorf("drain nats connection: %w", err)
	}
	return nil
}

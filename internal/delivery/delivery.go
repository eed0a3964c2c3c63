// Package delivery defines the outbound mail port. The engine and
// services hand a fully rendered message to a Deliverer and take no
// further responsibility for transport; real provider integrations plug
// in behind the same interface.
package delivery

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/nudgekit/nudge/internal/domain"
)

// Message is one outbound reminder, addressed and fully rendered.
type Message struct {
	To      string
	ToName  string
	Email   domain.EmailMessage
	Session string // session ID, for transport-side correlation
}

// Deliverer sends a message. Implementations report failure through the
// error; there is no partial success.
type Deliverer interface {
	Deliver(ctx context.Context, msg Message) error
}

// LogDeliverer writes messages to a structured log instead of sending
// them. Used for dry runs and local development.
type LogDeliverer struct {
	logger *slog.Logger
}

// NewLogDeliverer creates a LogDeliverer writing to w.
func NewLogDeliverer(w io.Writer) *LogDeliverer {
	return &LogDeliverer{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (d *LogDeliverer) Deliver(ctx context.Context, msg Message) error {
	d.logger.InfoContext(ctx, "email_delivery",
		"to", msg.To,
		"to_name", msg.ToName,
		"session", msg.Session,
		"subject", msg.Email.Subject,
		"text_bytes", len(msg.Email.TextBody),
		"html_bytes", len(msg.Email.HTMLBody),
	)
	return nil
}

// CaptureDeliverer records every message in memory. Test fake.
type CaptureDeliverer struct {
	mu       sync.Mutex
	messages []Message
	// Err, when set, is returned from every Deliver call.
	Err error
}

func (d *CaptureDeliverer) Deliver(_ context.Context, msg Message) error {
	if d.Err != nil {
		return d.Err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
	return nil
}

// Messages returns a copy of everything delivered so far.
func (d *CaptureDeliverer) Messages() []Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Message, len(d.messages))
	copy(out, d.messages)
	return out
}

package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Kind names a notification template.
type Kind string

const (
	KindWelcome         Kind = "welcome"
	KindProjectApproved Kind = "project_approved"
	KindProjectRejected Kind = "project_rejected"
	KindProjectLiked    Kind = "project_liked"
)

// Message is a notification addressed to one member.
type Message struct {
	Kind          Kind
	RecipientMail string
	RecipientName string
	ProjectTitle  string
	Reason        string
	ActorName     string
}

// Email is a rendered message ready for delivery.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers rendered emails.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// Notifier queues notifications without blocking the caller.
// Delivery failures are logged and never returned.
type Notifier interface {
	Notify(msg Message)
}

const DefaultTimeout = 10 * time.Second

// AsyncNotifier renders and sends each message on its own goroutine.
type AsyncNotifier struct {
	sender  Sender
	timeout time.Duration
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

// NewAsyncNotifier creates an AsyncNotifier. A zero timeout uses DefaultTimeout.
func NewAsyncNotifier(sender Sender, timeout time.Duration) *AsyncNotifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AsyncNotifier{
		sender:  sender,
		timeout: timeout,
		logger:  log.With().Str("component", "notify").Logger(),
	}
}

// Notify dispatches msg in the background.
func (n *AsyncNotifier) Notify(msg Message) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.logger.Error().Interface("panic", r).Str("kind", string(msg.Kind)).Msg("notification panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.deliver(ctx, msg); err != nil {
			n.logger.Warn().Err(err).
				Str("kind", string(msg.Kind)).
				Str("recipient", msg.RecipientMail).
				Msg("notification not delivered")
			return
		}
		n.logger.Debug().
			Str("kind", string(msg.Kind)).
			Str("recipient", msg.RecipientMail).
			Msg("notification delivered")
	}()
}

func (n *AsyncNotifier) deliver(ctx context.Context, msg Message) error {
	email, err := Render(msg)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, email)
}

// Wait blocks until every queued notification has finished.
func (n *AsyncNotifier) Wait() {
	n.wg.Wait()
}

// Discard is a Notifier that drops every message.
type Discard struct{}

func (Discard) Notify(Message) {}

// Package mailx delivers transactional email. Providers implement Sender;
// wrappers such as Throttled compose around any provider.
package mailx

import (
	"context"
	"errors"
)

var (
	ErrNoRecipients    = errors.New("mailx: message has no recipients")
	ErrTemplateMissing = errors.New("mailx: template not registered")
)

// Message is a single outbound email.
type Message struct {
	From     string
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// Validate reports messages no provider could deliver.
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	return nil
}

// Sender delivers a message or reports why it could not.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

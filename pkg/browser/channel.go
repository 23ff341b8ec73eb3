package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var ErrClosed = errors.New("channel closed")

// Channel carries validated messages from browse dialogs to their opener.
type Channel struct {
	ch     chan Message
	done   chan struct{}
	closer sync.Once
}

// NewChannel creates a [Channel] buffering up to size messages.
func NewChannel(size int) *Channel {
	return &Channel{
		ch:   make(chan Message, size),
		done: make(chan struct{}),
	}
}

// Post decodes raw and enqueues the result. Invalid payloads are dropped and
// reported as an error.
func (c *Channel) Post(ctx context.Context, raw []byte) error {
	msg, err := Decode(raw)
	if err != nil {
		slog.Warn("dropping browser message", slog.Any("err", err))

		return err
	}

	return c.send(ctx, msg)
}

// Send validates msg and enqueues it.
func (c *Channel) Send(ctx context.Context, msg Message) error {
	err := Validate(msg)
	if err != nil {
		return err
	}

	return c.send(ctx, msg)
}

// Receive blocks until a message arrives, ctx is done, or the channel is
// closed.
func (c *Channel) Receive(ctx context.Context) (Message, error) {
	select {
	case msg := <-c.ch:
		return msg, nil
	case <-c.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, fmt.Errorf("receive browser message: %w", ctx.Err())
	}
}

// Close stops the channel. Pending and future receives return [ErrClosed].
func (c *Channel) Close() {
	c.closer.Do(func() { close(c.done) })
}

func (c *Channel) send(ctx context.Context, msg Message) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.ch <- msg:
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return fmt.Errorf("send browser message: %w", ctx.Err())
	}
}

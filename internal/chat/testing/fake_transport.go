// Package testing provides test doubles for the chat package.
package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/summary"
)

// Message is a payload sitting in a fake channel.
type Message struct {
	ID      string
	Payload summary.Payload
}

// DirectMessage is a payload delivered to a user.
type DirectMessage struct {
	UserID  string
	Payload summary.Payload
}

// FakeTransport is an in-memory chat.Transport. Channels must be added with AddChannel
// before they resolve. Set the *Err fields to make the matching call fail.
type FakeTransport struct {
	mu       sync.Mutex
	channels map[string][]Message
	nextID   int

	ResolveErr  error
	DeleteErr   error
	PublishErr  error
	DirectErr   error
	PresenceErr error

	// Tracking for assertions
	Directs       []DirectMessage
	Presences     []string
	DeleteCalls   int
	PublishCalls  int
	ResolveCalls  int
	PresenceCalls int
}

// NewFakeTransport creates an empty fake transport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{channels: make(map[string][]Message)}
}

// AddChannel makes a channel resolvable, optionally pre-filled with messages.
func (f *FakeTransport) AddChannel(id string, existing ...summary.Payload) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()

	msgs := f.channels[id]
	for _, p := range existing {
		msgs = append(msgs, f.newMessage(p))
	}
	f.channels[id] = msgs
	return f
}

func (f *FakeTransport) newMessage(p summary.Payload) Message {
	f.nextID++
	return Message{ID: fmt.Sprintf("msg-%d", f.nextID), Payload: p}
}

func (f *FakeTransport) ResolveChannel(_ context.Context, channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ResolveCalls++
	if f.ResolveErr != nil {
		return f.ResolveErr
	}
	if _, ok := f.channels[channelID]; !ok {
		return errors.New(errors.ErrChannel, fmt.Sprintf("Channel %s not found", channelID), "")
	}
	return nil
}

func (f *FakeTransport) DeleteLatest(_ context.Context, channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	msgs := f.channels[channelID]
	if len(msgs) > 0 {
		f.channels[channelID] = msgs[:len(msgs)-1]
	}
	return nil
}

func (f *FakeTransport) Publish(_ context.Context, channelID string, p summary.Payload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.PublishCalls++
	if f.PublishErr != nil {
		return "", f.PublishErr
	}
	msg := f.newMessage(p)
	f.channels[channelID] = append(f.channels[channelID], msg)
	return msg.ID, nil
}

func (f *FakeTransport) SendDirect(_ context.Context, userID string, p summary.Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.DirectErr != nil {
		return f.DirectErr
	}
	f.Directs = append(f.Directs, DirectMessage{UserID: userID, Payload: p})
	return nil
}

func (f *FakeTransport) SetPresence(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.PresenceCalls++
	if f.PresenceErr != nil {
		return f.PresenceErr
	}
	f.Presences = append(f.Presences, text)
	return nil
}

// Messages returns a copy of a channel's messages, oldest first.
func (f *FakeTransport) Messages(channelID string) []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.channels[channelID]))
	copy(out, f.channels[channelID])
	return out
}

// DirectMessages returns a copy of delivered DMs.
func (f *FakeTransport) DirectMessages() []DirectMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]DirectMessage, len(f.Directs))
	copy(out, f.Directs)
	return out
}

// PresenceHistory returns a copy of every presence set so far.
func (f *FakeTransport) PresenceHistory() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Presences))
	copy(out, f.Presences)
	return out
}

// PresenceCallCount returns the number of SetPresence calls, failed ones included.
func (f *FakeTransport) PresenceCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.PresenceCalls
}

// FakeResponder records the calls made by a command handler.
type FakeResponder struct {
	mu sync.Mutex

	AckErr     error
	RespondErr error

	// Calls lists "ack" and "respond" in call order.
	Calls    []string
	Payloads []summary.Payload
}

func (r *FakeResponder) Ack(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, "ack")
	return r.AckErr
}

func (r *FakeResponder) Respond(_ context.Context, p summary.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, "respond")
	if r.RespondErr != nil {
		return r.RespondErr
	}
	r.Payloads = append(r.Payloads, p)
	return nil
}

package webgain

import (
	"encoding/json"

	"github.com/pkg/errors"
)

const DefaultQueueCapacity = 256

// EventKind distinguishes the events a Webview delivers
type EventKind int

const (
	// EventMessage carries a JSON payload posted by the UI
	EventMessage EventKind = iota

	// EventFileDropped carries the path of a file dropped onto the window
	EventFileDropped
)

func (k EventKind) String() string {
	switch k {
	case EventMessage:
		return "message"
	case EventFileDropped:
		return "file_dropped"
	default:
		return "unknown"
	}
}

// Event is one inbound webview event
type Event struct {
	Kind    EventKind
	Payload []byte
	Path    string
}

// Webview is the embedded UI host: the source of inbound events, the sink for outbound
// messages, and the window that accepts resize requests.
type Webview interface {
	// NextEvent returns the next pending inbound event without blocking
	NextEvent() (Event, bool)

	// SendJSON posts a message to the UI
	SendJSON(v any) error

	// Resize asks the window to resize, reporting whether it accepted
	Resize(width, height uint32) bool
}

// MessageChannel is an in-memory Webview: a bounded inbound queue fed by Post, an outbound
// sink function, and a resize callback.
type MessageChannel struct {
	inbound chan Event
	sink    func([]byte) error
	resize  func(width, height uint32) bool
}

// NewMessageChannel creates a channel holding at most capacity undrained inbound messages.
// A nil resize func accepts every request.
func NewMessageChannel(capacity int, sink func([]byte) error, resize func(width, height uint32) bool) *MessageChannel {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	if resize == nil {
		resize = func(uint32, uint32) bool { return true }
	}
	return &MessageChannel{
		inbound: make(chan Event, capacity),
		sink:    sink,
		resize:  resize,
	}
}

// Post queues an inbound payload, returning false when the queue is full
func (c *MessageChannel) Post(payload []byte) bool {
	return c.post(Event{Kind: EventMessage, Payload: payload})
}

// PostDropped queues a file drop, returning false when the queue is full
func (c *MessageChannel) PostDropped(path string) bool {
	return c.post(Event{Kind: EventFileDropped, Path: path})
}

func (c *MessageChannel) post(ev Event) bool {
	select {
	case c.inbound <- ev:
		return true
	default:
		// queue full, drop
		return false
	}
}

func (c *MessageChannel) NextEvent() (Event, bool) {
	select {
	case ev := <-c.inbound:
		return ev, true
	default:
		return Event{}, false
	}
}

func (c *MessageChannel) SendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "error encoding outbound message")
	}
	if c.sink == nil {
		return nil
	}
	return c.sink(data)
}

func (c *MessageChannel) Resize(width, height uint32) bool {
	return c.resize(width, height)
}

// Pending returns the number of undrained inbound messages
func (c *MessageChannel) Pending() int {
	return len(c.inbound)
}

// Drop discards every undrained inbound message
func (c *MessageChannel) Drop() int {
	dropped := 0
	for {
		select {
		case <-c.inbound:
			dropped++
		default:
			return dropped
		}
	}
}

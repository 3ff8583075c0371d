package webgain

import "testing"

func TestMessageChannelDropsWhenFull(t *testing.T) {
	c := NewMessageChannel(2, nil, nil)

	if !c.Post([]byte("a")) || !c.Post([]byte("b")) {
		t.Fatal("expected room for two messages")
	}
	if c.Post([]byte("c")) {
		t.Error("Post succeeded on a full queue")
	}
	if c.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", c.Pending())
	}

	ev, ok := c.NextEvent()
	if !ok || ev.Kind != EventMessage || string(ev.Payload) != "a" {
		t.Errorf("NextEvent() = %v %q, %v; want message a", ev.Kind, ev.Payload, ok)
	}
	if n := c.Drop(); n != 1 {
		t.Errorf("Drop() = %d, want 1", n)
	}
	if _, ok := c.NextEvent(); ok {
		t.Error("NextEvent() returned a message after Drop")
	}
}

func TestMessageChannelDefaults(t *testing.T) {
	c := NewMessageChannel(0, nil, nil)
	if !c.Resize(1, 1) {
		t.Error("default resize should accept")
	}
	if err := c.SendJSON(SetSizeNotice{Width: 1, Height: 1}); err != nil {
		t.Errorf("SendJSON with nil sink: %v", err)
	}
	if cap(c.inbound) != DefaultQueueCapacity {
		t.Errorf("capacity %d, want %d", cap(c.inbound), DefaultQueueCapacity)
	}
}

func TestMessageChannelFileDropped(t *testing.T) {
	c := NewMessageChannel(1, nil, nil)
	if !c.PostDropped("/tmp/take1.wav") {
		t.Fatal("expected room for the drop")
	}
	if c.PostDropped("/tmp/take2.wav") {
		t.Error("PostDropped succeeded on a full queue")
	}
	ev, ok := c.NextEvent()
	if !ok || ev.Kind != EventFileDropped || ev.Path != "/tmp/take1.wav" {
		t.Errorf("NextEvent() = %+v, %v; want the dropped file", ev, ok)
	}
}

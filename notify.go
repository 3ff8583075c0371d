package webgain

import "sync/atomic"

// ChangeFlag is a single-slot "something changed" signal. Any writer may mark it from any
// goroutine; the UI consumer clears it once per tick and re-reads the parameter itself.
type ChangeFlag struct {
	dirty atomic.Bool
}

// MarkDirty sets the flag; safe from the audio context
func (f *ChangeFlag) MarkDirty() {
	f.dirty.Store(true)
}

// ConsumeIfDirty clears the flag and reports whether it was set
func (f *ChangeFlag) ConsumeIfDirty() bool {
	return f.dirty.Swap(false)
}

// IsDirty peeks at the flag without clearing it
func (f *ChangeFlag) IsDirty() bool {
	return f.dirty.Load()
}

// Listener adapts the flag to a parameter listener that marks it on every write
func (f *ChangeFlag) Listener() Listener {
	return func(_ *GainParam, _ Origin) {
		f.MarkDirty()
	}
}

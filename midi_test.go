package webgain

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestMidiMonitorHandleMessage(t *testing.T) {
	gainMin := NewGainParam(DefaultSmoothingMs).Min()
	tests := []struct {
		name    string
		msg     midi.Message
		want    float32
		changed bool
	}{
		{"full scale", midi.ControlChange(2, 7, 127), 1.0, true},
		{"zero", midi.ControlChange(2, 7, 0), gainMin, true},
		{"other channel", midi.ControlChange(3, 7, 0), 1.0, false},
		{"other controller", midi.ControlChange(2, 1, 0), 1.0, false},
		{"note on", midi.NoteOn(2, 60, 100), 1.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gain := NewGainParam(DefaultSmoothingMs)
			writes := 0
			var origin Origin
			gain.OnChange(func(_ *GainParam, o Origin) {
				writes++
				origin = o
			})

			mm := NewMidiMonitor(nil, gain, MidiConfig{Channel: 2, Controller: 7})
			mm.handleMessage(tt.msg, 0)

			if gain.Value() != tt.want {
				t.Errorf("gain = %v, want %v", gain.Value(), tt.want)
			}
			if !tt.changed {
				if writes != 0 {
					t.Errorf("ignored message wrote the gain %d times", writes)
				}
				return
			}
			if writes != 1 || origin != OriginAutomation {
				t.Errorf("writes = %d origin = %v, want one automation write", writes, origin)
			}
		})
	}
}

func TestMidiMonitorStartWithoutInput(t *testing.T) {
	mm := NewMidiMonitor(nil, NewGainParam(DefaultSmoothingMs), MidiConfig{})
	if err := mm.Start(); err == nil {
		t.Error("expected error starting without an input")
	}
	mm.Stop()
}

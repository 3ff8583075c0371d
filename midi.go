package webgain

import (
	"github.com/michaelquigley/df/dl"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// MidiMonitor turns control change messages from a MIDI input into automation writes on
// the gain parameter
type MidiMonitor struct {
	in         drivers.In
	param      *GainParam
	channel    uint8
	controller uint8
	stop       func()
}

// NewMidiMonitor creates a monitor for the configured channel and controller on in
func NewMidiMonitor(in drivers.In, param *GainParam, cfg MidiConfig) *MidiMonitor {
	return &MidiMonitor{
		in:         in,
		param:      param,
		channel:    cfg.Channel,
		controller: cfg.Controller,
	}
}

// Start opens the input and begins listening in the driver's goroutine
func (mm *MidiMonitor) Start() error {
	if mm.in == nil {
		return errors.New("no midi input")
	}
	if !mm.in.IsOpen() {
		if err := mm.in.Open(); err != nil {
			return errors.Wrapf(err, "error opening midi input '%s'", mm.in.String())
		}
	}
	stop, err := midi.ListenTo(mm.in, mm.handleMessage)
	if err != nil {
		mm.in.Close()
		return errors.Wrapf(err, "error listening to midi input '%s'", mm.in.String())
	}
	mm.stop = stop
	dl.Infof("listening for cc %d on channel %d of '%s'", mm.controller, mm.channel, mm.in.String())
	return nil
}

// Stop stops listening and closes the input
func (mm *MidiMonitor) Stop() {
	if mm.stop != nil {
		mm.stop()
		mm.stop = nil
	}
	if mm.in != nil && mm.in.IsOpen() {
		mm.in.Close()
	}
}

// handleMessage is called from the driver's goroutine; anything other than the configured
// control change is ignored
func (mm *MidiMonitor) handleMessage(msg midi.Message, _ int32) {
	var channel, controller, value uint8
	if !msg.GetControlChange(&channel, &controller, &value) {
		return
	}
	if channel != mm.channel || controller != mm.controller {
		return
	}
	mm.param.WriteNormalized(float32(value)/127.0, OriginAutomation)
}

//go:build !cgo

package main

import (
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/drivers"
)

func openMidiInput(string) (drivers.In, error) {
	return nil, errors.New("midi input requires cgo")
}

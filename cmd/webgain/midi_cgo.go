//go:build cgo

package main

import (
	"strings"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// openMidiInput returns the first input whose name starts with namePrefix, or the first
// input when namePrefix is empty
func openMidiInput(namePrefix string) (drivers.In, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, errors.Wrap(err, "error creating rtmidi driver")
	}
	ins, err := driver.Ins()
	if err != nil {
		return nil, errors.Wrap(err, "error listing midi inputs")
	}
	for _, in := range ins {
		if namePrefix == "" || strings.HasPrefix(in.String(), namePrefix) {
			return in, nil
		}
	}
	return nil, errors.Errorf("no midi input matching '%s'", namePrefix)
}

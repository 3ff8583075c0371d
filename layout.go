package webgain

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnsupportedChannelLayout is returned when the host offers a layout the plugin cannot
// service
var ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")

// AudioIOLayout is a main input/output channel configuration
type AudioIOLayout struct {
	MainInputChannels  int
	MainOutputChannels int
}

var (
	StereoLayout = AudioIOLayout{MainInputChannels: 2, MainOutputChannels: 2}
	MonoLayout   = AudioIOLayout{MainInputChannels: 1, MainOutputChannels: 1}
)

// Layouts returns the supported layouts in order of preference
func Layouts() []AudioIOLayout {
	return []AudioIOLayout{StereoLayout, MonoLayout}
}

func (l AudioIOLayout) String() string {
	return fmt.Sprintf("%d->%d", l.MainInputChannels, l.MainOutputChannels)
}

// Supported reports whether the layout is one of Layouts
func (l AudioIOLayout) Supported() bool {
	for _, s := range Layouts() {
		if s == l {
			return true
		}
	}
	return false
}

// NegotiateLayout picks the first supported layout among those the host offers
func NegotiateLayout(offered ...AudioIOLayout) (AudioIOLayout, error) {
	for _, want := range Layouts() {
		for _, o := range offered {
			if o == want {
				return o, nil
			}
		}
	}
	return AudioIOLayout{}, errors.Wrapf(ErrUnsupportedChannelLayout, "none of %v", offered)
}

package main

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"
	"github.com/michaelquigley/webgain"
	"github.com/pkg/errors"
)

const bytesPerFrame = 2 * 4 // stereo float32

// toneSource is the standalone host's audio context: oto pulls interleaved float32 frames
// from Read, which loops a test tone through the plugin one block at a time
type toneSource struct {
	plugin *webgain.Plugin
	table  []float32
	pos    int
	left   []float32
	right  []float32
	block  [][]float32
}

func newToneSource(plugin *webgain.Plugin, cfg *webgain.Config) (*toneSource, error) {
	gen := signal.NewGenerator(core.WithSampleRate(float64(cfg.SampleRate)))
	// one second of tone loops without a seam for whole-hertz frequencies
	samples, err := gen.Sine(cfg.Tone.Frequency, cfg.Tone.Amplitude, int(cfg.SampleRate))
	if err != nil {
		return nil, errors.Wrap(err, "error generating test tone")
	}
	table := make([]float32, len(samples))
	for i, v := range samples {
		table[i] = float32(v)
	}
	return &toneSource{
		plugin: plugin,
		table:  table,
		left:   make([]float32, cfg.BlockSize),
		right:  make([]float32, cfg.BlockSize),
		block:  make([][]float32, 2),
	}, nil
}

func (ts *toneSource) Read(buf []byte) (int, error) {
	frames := len(buf) / bytesPerFrame
	if frames > len(ts.left) {
		frames = len(ts.left)
	}
	left, right := ts.left[:frames], ts.right[:frames]
	for i := range left {
		v := ts.table[ts.pos]
		left[i], right[i] = v, v
		ts.pos++
		if ts.pos == len(ts.table) {
			ts.pos = 0
		}
	}

	ts.block[0], ts.block[1] = left, right
	ts.plugin.Process(ts.block)

	for i := range left {
		binary.LittleEndian.PutUint32(buf[i*bytesPerFrame:], math.Float32bits(left[i]))
		binary.LittleEndian.PutUint32(buf[i*bytesPerFrame+4:], math.Float32bits(right[i]))
	}
	return frames * bytesPerFrame, nil
}

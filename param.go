package webgain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/pkg/errors"
)

const (
	GainParamID   = "gain"
	GainParamName = "Gain"
	GainParamUnit = " dB"

	// the automation and display scale, linear in decibels
	GainMinDb = -60.0
	GainMaxDb = 0.0

	DefaultSmoothingMs = 40.0
)

// Origin identifies who wrote a parameter value
type Origin int

const (
	OriginUI Origin = iota
	OriginAutomation
	OriginInternal
)

func (o Origin) String() string {
	switch o {
	case OriginUI:
		return "ui"
	case OriginAutomation:
		return "automation"
	case OriginInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Listener is invoked synchronously on every write to a parameter. Listeners may run on
// the audio context, so they must not block or allocate.
type Listener func(p *GainParam, origin Origin)

// GainParam is the plugin's gain, stored as a linear amplitude in [dB(-60), dB(0)].
//
// Value and Write are safe from any goroutine. Next and Activate belong to the audio
// context, which owns the smoother.
type GainParam struct {
	id    string
	name  string
	unit  string
	minDb float64
	maxDb float64
	min   float32
	max   float32
	def   float32

	// authoritative value as float32 bits
	value atomic.Uint32
	// bumped after every write so the audio context can spot a new target
	seq       atomic.Uint64
	listeners atomic.Pointer[[]Listener]

	smoother *Smoother
	seenSeq  uint64
}

// NewGainParam creates the gain parameter at unity with a linear ramp of smoothingMs
func NewGainParam(smoothingMs float32) *GainParam {
	p := &GainParam{
		id:       GainParamID,
		name:     GainParamName,
		unit:     GainParamUnit,
		minDb:    GainMinDb,
		maxDb:    GainMaxDb,
		min:      float32(core.DBToLinear(GainMinDb)),
		max:      float32(core.DBToLinear(GainMaxDb)),
		def:      float32(core.DBToLinear(0)),
		smoother: NewSmoother(SmoothingLinear, smoothingMs),
	}
	p.value.Store(math.Float32bits(p.def))
	p.smoother.Reset(p.def)
	return p
}

func (p *GainParam) ID() string       { return p.id }
func (p *GainParam) Name() string     { return p.name }
func (p *GainParam) Unit() string     { return p.unit }
func (p *GainParam) Min() float32     { return p.min }
func (p *GainParam) Max() float32     { return p.max }
func (p *GainParam) Default() float32 { return p.def }

// OnChange registers a listener. Registration is expected at setup time, but is safe
// against concurrent writers.
func (p *GainParam) OnChange(l Listener) {
	for {
		old := p.listeners.Load()
		var next []Listener
		if old != nil {
			next = append(next, *old...)
		}
		next = append(next, l)
		if p.listeners.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Value returns the current (unsmoothed) value
func (p *GainParam) Value() float32 {
	return math.Float32frombits(p.value.Load())
}

// Write clamps v into range, makes it the new ramp target and notifies every listener,
// whatever the origin. Out of range input is never an error.
func (p *GainParam) Write(v float32, origin Origin) {
	p.value.Store(math.Float32bits(p.clamp(v)))
	p.seq.Add(1)
	if ls := p.listeners.Load(); ls != nil {
		for _, l := range *ls {
			l(p, origin)
		}
	}
}

// WriteNormalized writes a [0,1] automation value
func (p *GainParam) WriteNormalized(n float32, origin Origin) {
	p.Write(p.Denormalize(n), origin)
}

// Activate sizes the ramp for sampleRate and snaps the smoother to the current value
func (p *GainParam) Activate(sampleRate float32) {
	p.seenSeq = p.seq.Load()
	p.smoother.Activate(sampleRate)
	p.smoother.Reset(p.Value())
}

// Next advances the smoother by one sample. A write since the previous call restarts the
// ramp from the current interpolated value.
func (p *GainParam) Next() float32 {
	if seq := p.seq.Load(); seq != p.seenSeq {
		p.seenSeq = seq
		p.smoother.SetTarget(p.Value())
	}
	return p.clamp(p.smoother.Next())
}

// Smoothed returns the last value produced by Next
func (p *GainParam) Smoothed() float32 {
	return p.smoother.Current()
}

// Smoother exposes the ramp state for inspection
func (p *GainParam) Smoother() *Smoother {
	return p.smoother
}

// Normalize maps an amplitude onto the [0,1] automation scale, which is linear in dB
func (p *GainParam) Normalize(v float32) float32 {
	db := core.LinearToDB(float64(p.clamp(v)))
	n := (db - p.minDb) / (p.maxDb - p.minDb)
	return float32(core.Clamp(n, 0, 1))
}

// Denormalize maps a [0,1] automation value back to an amplitude
func (p *GainParam) Denormalize(n float32) float32 {
	nn := float64(n)
	if math.IsNaN(nn) {
		nn = 0
	}
	nn = core.Clamp(nn, 0, 1)
	return p.clamp(float32(core.DBToLinear(p.minDb + nn*(p.maxDb-p.minDb))))
}

// FormatValue renders an amplitude in decibels, e.g. "-6.02 dB"
func (p *GainParam) FormatValue(v float32) string {
	return fmt.Sprintf("%.2f%s", core.LinearToDB(float64(p.clamp(v))), p.unit)
}

// Text renders the current value
func (p *GainParam) Text() string {
	return p.FormatValue(p.Value())
}

// ParseText parses a decibel string such as "-6", "-6dB" or "-6 dB" into a clamped
// amplitude
func (p *GainParam) ParseText(s string) (float32, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) >= 2 && strings.EqualFold(trimmed[len(trimmed)-2:], "db") {
		trimmed = strings.TrimSpace(trimmed[:len(trimmed)-2])
	}
	db, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "error parsing '%s' as decibels", s)
	}
	return p.FromDb(db), nil
}

// FromDb converts decibels to a clamped amplitude
func (p *GainParam) FromDb(db float64) float32 {
	return p.clamp(float32(core.DBToLinear(db)))
}

func (p *GainParam) clamp(v float32) float32 {
	if v != v {
		return p.min
	}
	if v < p.min {
		return p.min
	}
	if v > p.max {
		return p.max
	}
	return v
}

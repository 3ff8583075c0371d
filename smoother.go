package webgain

import "math"

// SmoothingStyle selects how a Smoother moves toward its target
type SmoothingStyle int

const (
	// SmoothingNone jumps to the target on the next sample
	SmoothingNone SmoothingStyle = iota

	// SmoothingLinear ramps linearly in the stored value domain over a fixed duration
	SmoothingLinear
)

func (s SmoothingStyle) String() string {
	switch s {
	case SmoothingNone:
		return "none"
	case SmoothingLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Smoother interpolates a value toward a target over a fixed number of samples.
// It is owned by the audio context: none of its methods are safe for concurrent use.
type Smoother struct {
	style      SmoothingStyle
	durationMs float32

	// ramp length in samples, computed by Activate
	steps int

	start     float32
	current   float32
	target    float32
	step      float32
	stepsLeft int
}

// NewSmoother creates a smoother with the given style and ramp duration in milliseconds
func NewSmoother(style SmoothingStyle, durationMs float32) *Smoother {
	if durationMs < 0 {
		durationMs = 0
	}
	return &Smoother{
		style:      style,
		durationMs: durationMs,
	}
}

// Activate converts the ramp duration into samples for the given sample rate. Any ramp in
// progress is finished immediately.
func (s *Smoother) Activate(sampleRate float32) {
	s.steps = 0
	if s.style == SmoothingLinear && sampleRate > 0 {
		s.steps = int(math.Round(float64(s.durationMs) / 1000.0 * float64(sampleRate)))
	}
	s.Reset(s.target)
}

// Reset jumps to value with no ramp
func (s *Smoother) Reset(value float32) {
	s.start = value
	s.current = value
	s.target = value
	s.step = 0
	s.stepsLeft = 0
}

// SetTarget starts a new ramp from the current interpolated value toward target. The ramp
// always takes the full configured number of samples, regardless of distance.
func (s *Smoother) SetTarget(target float32) {
	s.target = target
	if s.steps <= 0 {
		s.current = target
		s.stepsLeft = 0
		s.step = 0
		return
	}
	s.start = s.current
	s.stepsLeft = s.steps
	s.step = (target - s.current) / float32(s.steps)
}

// Next advances the ramp by one sample and returns the new value. Intermediate values are
// computed from the ramp start, never pass the target, and once the ramp has elapsed Next
// returns the target exactly.
func (s *Smoother) Next() float32 {
	if s.stepsLeft > 0 {
		s.stepsLeft--
		if s.stepsLeft == 0 {
			s.current = s.target
		} else {
			v := s.start + s.step*float32(s.steps-s.stepsLeft)
			if (s.step > 0 && v > s.target) || (s.step < 0 && v < s.target) {
				v = s.target
			}
			s.current = v
		}
	}
	return s.current
}

// Current returns the last value produced by Next, without advancing
func (s *Smoother) Current() float32 {
	return s.current
}

// Target returns the value the ramp is heading toward
func (s *Smoother) Target() float32 {
	return s.target
}

// IsSmoothing reports whether a ramp is still in progress
func (s *Smoother) IsSmoothing() bool {
	return s.stepsLeft > 0
}

// Steps returns the ramp length in samples
func (s *Smoother) Steps() int {
	return s.steps
}

// Style returns the smoothing style
func (s *Smoother) Style() SmoothingStyle {
	return s.style
}

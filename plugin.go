package webgain

import (
	"github.com/michaelquigley/df/dl"
	"github.com/pkg/errors"
	"github.com/viterin/vek/vek32"
)

// Params is the plugin's parameter registration surface
type Params struct {
	Gain *GainParam
}

// All returns every parameter in registration order
func (ps *Params) All() []*GainParam {
	return []*GainParam{ps.Gain}
}

// ByID returns the parameter with the given id, or nil
func (ps *Params) ByID(id string) *GainParam {
	for _, p := range ps.All() {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

// Plugin is the gain effect as the host sees it: parameter registration, block processing
// and the editor. It is created once per instance and lives as long as the instance.
type Plugin struct {
	params      *Params
	flag        *ChangeFlag
	editorState *EditorState

	layout       AudioIOLayout
	sampleRate   float32
	maxBlockSize int
	active       bool

	// per-frame gains for one block, preallocated by Activate
	gains []float32
}

// NewPlugin creates a plugin instance from cfg; a nil cfg uses DefaultConfig
func NewPlugin(cfg *Config) *Plugin {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	p := &Plugin{
		params:      &Params{Gain: NewGainParam(cfg.SmoothingMs)},
		flag:        &ChangeFlag{},
		editorState: NewEditorState(cfg.Editor.Width, cfg.Editor.Height),
	}
	p.params.Gain.OnChange(p.flag.Listener())
	return p
}

// Params returns the registration accessor
func (p *Plugin) Params() *Params {
	return p.params
}

// Flag returns the change flag shared by every writer and the editor
func (p *Plugin) Flag() *ChangeFlag {
	return p.flag
}

// Layouts returns the layouts the plugin can service
func (p *Plugin) Layouts() []AudioIOLayout {
	return Layouts()
}

// Activate prepares the plugin for processing. An unsupported layout fails activation of
// this instance only.
func (p *Plugin) Activate(layout AudioIOLayout, sampleRate float32, maxBlockSize int) error {
	if !layout.Supported() {
		return errors.Wrapf(ErrUnsupportedChannelLayout, "layout %v", layout)
	}
	if sampleRate <= 0 {
		return errors.Errorf("invalid sample rate '%v'", sampleRate)
	}
	if maxBlockSize <= 0 {
		return errors.Errorf("invalid maximum block size '%d'", maxBlockSize)
	}

	p.layout = layout
	p.sampleRate = sampleRate
	p.maxBlockSize = maxBlockSize
	if cap(p.gains) < maxBlockSize {
		p.gains = make([]float32, maxBlockSize)
	}
	p.gains = p.gains[:maxBlockSize]
	p.params.Gain.Activate(sampleRate)
	p.active = true

	dl.Infof("activated %v at %v Hz, max block %d, ramp %d samples", layout, sampleRate, maxBlockSize, p.params.Gain.Smoother().Steps())
	return nil
}

// Reconfigure re-activates with a new sample rate and block size, keeping the layout, so the
// ramp length follows the host. A plugin that was never activated stays inactive.
func (p *Plugin) Reconfigure(sampleRate float32, maxBlockSize int) error {
	if !p.active {
		p.sampleRate = sampleRate
		p.maxBlockSize = maxBlockSize
		return nil
	}
	return p.Activate(p.layout, sampleRate, maxBlockSize)
}

// Deactivate stops processing; Process passes audio through until the next Activate
func (p *Plugin) Deactivate() {
	p.active = false
}

// Active reports whether the plugin has been activated
func (p *Plugin) Active() bool {
	return p.active
}

// Layout returns the active layout
func (p *Plugin) Layout() AudioIOLayout {
	return p.layout
}

// SampleRate returns the active sample rate
func (p *Plugin) SampleRate() float32 {
	return p.sampleRate
}

// MaxBlockSize returns the active maximum block size
func (p *Plugin) MaxBlockSize() int {
	return p.maxBlockSize
}

// Process applies the smoothed gain in place. The gain advances once per frame and the
// same gain is applied to every channel of that frame. It does not block, lock or allocate.
func (p *Plugin) Process(channels [][]float32) {
	if !p.active || len(channels) == 0 {
		return
	}
	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) < frames {
			frames = len(ch)
		}
	}

	for offset := 0; offset < frames; offset += len(p.gains) {
		n := frames - offset
		if n > len(p.gains) {
			n = len(p.gains)
		}
		gains := p.gains[:n]
		for i := range gains {
			gains[i] = p.params.Gain.Next()
		}
		for _, ch := range channels {
			vek32.Mul_Inplace(ch[offset:offset+n], gains)
		}
	}
}

// Editor returns an editor bound to this instance's parameter, flag and editor state
func (p *Plugin) Editor(host HostEditor) *Editor {
	return NewEditor(p.params.Gain, p.flag, p.editorState, host)
}

// EditorState returns the persisted editor state
func (p *Plugin) EditorState() *EditorState {
	return p.editorState
}

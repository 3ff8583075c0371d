package webgain

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const stateVersion = 1

type pluginState struct {
	Version int                `yaml:"version"`
	Params  map[string]float32 `yaml:"params"`
	Editor  editorSize         `yaml:"editor"`
}

type editorSize struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// SaveState serializes the parameter values and editor size
func (p *Plugin) SaveState() ([]byte, error) {
	st := pluginState{
		Version: stateVersion,
		Params:  make(map[string]float32),
	}
	for _, param := range p.params.All() {
		st.Params[param.ID()] = param.Value()
	}
	st.Editor.Width, st.Editor.Height = p.editorState.Size()

	out, err := yaml.Marshal(&st)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding plugin state")
	}
	return out, nil
}

// LoadState restores state written by SaveState. Parameters are written with
// OriginInternal so an open editor is told about the change. Nothing is applied when the
// state cannot be decoded.
func (p *Plugin) LoadState(data []byte) error {
	var st pluginState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return errors.Wrap(err, "error decoding plugin state")
	}
	if st.Version > stateVersion {
		return errors.Errorf("unsupported plugin state version '%d'", st.Version)
	}

	for id, v := range st.Params {
		if param := p.params.ByID(id); param != nil {
			param.Write(v, OriginInternal)
		}
	}
	if st.Editor.Width > 0 && st.Editor.Height > 0 {
		p.editorState.SetSize(st.Editor.Width, st.Editor.Height)
	}
	return nil
}

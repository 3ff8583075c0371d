package webgain

import "testing"

func TestStateRoundTrip(t *testing.T) {
	src := NewPlugin(nil)
	src.Params().Gain.Write(0.5, OriginUI)
	src.EditorState().SetSize(1200, 800)

	data, err := src.SaveState()
	if err != nil {
		t.Fatal(err)
	}

	dst := NewPlugin(nil)
	if err := dst.LoadState(data); err != nil {
		t.Fatal(err)
	}
	if v := dst.Params().Gain.Value(); v != 0.5 {
		t.Errorf("gain = %v, want 0.5", v)
	}
	if w, h := dst.EditorState().Size(); w != 1200 || h != 800 {
		t.Errorf("editor size = %dx%d, want 1200x800", w, h)
	}
	if !dst.Flag().ConsumeIfDirty() {
		t.Error("loading state did not mark the parameter changed")
	}
}

func TestLoadStateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"params not a map", "params: 3\n"},
		{"not yaml", "{{{"},
		{"future version", "version: 99\nparams:\n  gain: 0.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plugin := NewPlugin(nil)
			if err := plugin.LoadState([]byte(tt.data)); err == nil {
				t.Fatal("expected error")
			}
			if v := plugin.Params().Gain.Value(); v != 1.0 {
				t.Errorf("gain changed to %v", v)
			}
			if plugin.Flag().IsDirty() {
				t.Error("failed load marked the parameter changed")
			}
		})
	}
}

func TestLoadStateIgnoresUnknownParams(t *testing.T) {
	plugin := NewPlugin(nil)
	if err := plugin.LoadState([]byte("version: 1\nparams:\n  pan: 0.3\n  gain: 2.0\n")); err != nil {
		t.Fatal(err)
	}
	if v := plugin.Params().Gain.Value(); v != 1.0 {
		t.Errorf("gain = %v, want clamped 1.0", v)
	}
	if w, h := plugin.EditorState().Size(); w != DefaultEditorWidth || h != DefaultEditorHeight {
		t.Errorf("editor size = %dx%d, want default", w, h)
	}
}

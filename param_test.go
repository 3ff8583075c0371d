package webgain

import (
	"math"
	"testing"
)

func TestGainParamRange(t *testing.T) {
	p := NewGainParam(DefaultSmoothingMs)

	if math.Abs(float64(p.Min())-0.001) > 1e-9 {
		t.Errorf("Min() = %v, want 0.001", p.Min())
	}
	if p.Max() != 1.0 {
		t.Errorf("Max() = %v, want 1.0", p.Max())
	}
	if p.Default() != 1.0 || p.Value() != 1.0 {
		t.Errorf("default = %v, value = %v, want unity", p.Default(), p.Value())
	}
	if p.ID() != "gain" || p.Name() != "Gain" || p.Unit() != " dB" {
		t.Errorf("unexpected identity %q %q %q", p.ID(), p.Name(), p.Unit())
	}
}

func TestGainParamWriteClamps(t *testing.T) {
	p := NewGainParam(DefaultSmoothingMs)

	tests := []struct {
		name  string
		write float32
		want  float32
	}{
		{"above max", 10.0, p.Max()},
		{"below min", 0.0, p.Min()},
		{"negative", -1.0, p.Min()},
		{"nan", float32(math.NaN()), p.Min()},
		{"inf", float32(math.Inf(1)), p.Max()},
		{"in range", 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.Write(0.25, OriginInternal)
			p.Write(tt.write, OriginUI)
			if got := p.Value(); got != tt.want {
				t.Errorf("Write(%v) stored %v, want %v", tt.write, got, tt.want)
			}
		})
	}
}

func TestGainParamListenersFireForEveryOrigin(t *testing.T) {
	p := NewGainParam(DefaultSmoothingMs)

	var got []Origin
	p.OnChange(func(_ *GainParam, origin Origin) {
		got = append(got, origin)
	})

	p.Write(0.5, OriginUI)
	p.Write(0.5, OriginAutomation)
	p.Write(10, OriginInternal)

	want := []Origin{OriginUI, OriginAutomation, OriginInternal}
	if len(got) != len(want) {
		t.Fatalf("listener fired %d times, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d origin = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGainParamNextRampsToWrittenValue(t *testing.T) {
	p := NewGainParam(40)
	p.Activate(1000)

	p.Write(0.5, OriginAutomation)
	var v float32
	for i := 1; i <= 40; i++ {
		v = p.Next()
		if v < p.Min() || v > p.Max() {
			t.Fatalf("step %d value %v out of range", i, v)
		}
		if i < 40 && v == 0.5 {
			t.Fatalf("reached target early at step %d", i)
		}
	}
	if v != 0.5 {
		t.Errorf("after 40 samples Next() = %v, want 0.5", v)
	}
	if p.Smoothed() != 0.5 {
		t.Errorf("Smoothed() = %v, want 0.5", p.Smoothed())
	}
}

func TestGainParamActivateSnapsToValue(t *testing.T) {
	p := NewGainParam(40)
	p.Write(0.25, OriginInternal)
	p.Activate(48000)

	if v := p.Next(); v != 0.25 {
		t.Errorf("first Next() after Activate = %v, want 0.25 with no ramp", v)
	}
}

func TestGainParamNormalize(t *testing.T) {
	p := NewGainParam(DefaultSmoothingMs)

	tests := []struct {
		name       string
		amplitude  float32
		normalized float32
	}{
		{"max", 1.0, 1.0},
		{"min", p.Min(), 0.0},
		{"-30 dB", p.FromDb(-30), 0.5},
		{"-6 dB", p.FromDb(-6), 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := p.Normalize(tt.amplitude)
			if math.Abs(float64(n-tt.normalized)) > 1e-5 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.amplitude, n, tt.normalized)
			}
			back := p.Denormalize(tt.normalized)
			if math.Abs(float64(back-tt.amplitude)) > 1e-5 {
				t.Errorf("Denormalize(%v) = %v, want %v", tt.normalized, back, tt.amplitude)
			}
		})
	}

	if v := p.Denormalize(float32(math.NaN())); v != p.Min() {
		t.Errorf("Denormalize(NaN) = %v, want min", v)
	}
	if v := p.Denormalize(2); v != p.Max() {
		t.Errorf("Denormalize(2) = %v, want max", v)
	}
}

func TestGainParamText(t *testing.T) {
	p := NewGainParam(DefaultSmoothingMs)

	if got := p.Text(); got != "0.00 dB" {
		t.Errorf("Text() = %q, want %q", got, "0.00 dB")
	}
	p.Write(0.5, OriginUI)
	if got := p.Text(); got != "-6.02 dB" {
		t.Errorf("Text() = %q, want %q", got, "-6.02 dB")
	}
	if got := p.FormatValue(0); got != "-60.00 dB" {
		t.Errorf("FormatValue(0) = %q, want %q", got, "-60.00 dB")
	}
}

func TestGainParamParseText(t *testing.T) {
	p := NewGainParam(DefaultSmoothingMs)

	tests := []struct {
		in      string
		wantDb  float64
		wantErr bool
	}{
		{"-6", -6, false},
		{"-6dB", -6, false},
		{"-6 dB", -6, false},
		{" -12.5 db ", -12.5, false},
		{"12", 0, false},
		{"-100", -60, false},
		{"loud", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := p.ParseText(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseText(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			want := p.FromDb(tt.wantDb)
			if math.Abs(float64(v-want)) > 1e-6 {
				t.Errorf("ParseText(%q) = %v, want %v", tt.in, v, want)
			}
		})
	}
}

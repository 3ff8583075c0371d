package main

import (
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
	"github.com/michaelquigley/df/dl"
	"github.com/michaelquigley/webgain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRenderCommand().cmd)
}

type renderCommand struct {
	cmd        *cobra.Command
	automation string
	gainDb     float64
}

func newRenderCommand() *renderCommand {
	cmd := &cobra.Command{
		Use:   "render <input.wav> <output.wav>",
		Short: "Render a wav file through the gain offline, with optional automation",
		Args:  cobra.ExactArgs(2),
	}
	out := &renderCommand{cmd: cmd}
	cmd.Flags().StringVarP(&out.automation, "automation", "a", "", "automation points as '<time>:<dB>,...', e.g. '0s:-6,1.5s:-20'")
	cmd.Flags().Float64VarP(&out.gainDb, "gain", "g", 0, "initial gain in dB")
	cmd.RunE = out.run
	return out
}

func (cmd *renderCommand) run(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	channels, sampleRate, err := readWAV(args[0])
	if err != nil {
		return errors.Wrapf(err, "error reading '%s'", args[0])
	}
	layout, err := webgain.NegotiateLayout(webgain.AudioIOLayout{MainInputChannels: len(channels), MainOutputChannels: len(channels)})
	if err != nil {
		return err
	}

	plugin := webgain.NewPlugin(cfg)
	gain := plugin.Params().Gain
	gain.Write(gain.FromDb(cmd.gainDb), webgain.OriginInternal)
	if err := plugin.Activate(layout, float32(sampleRate), cfg.BlockSize); err != nil {
		return errors.Wrap(err, "error activating plugin")
	}
	points, err := webgain.ParseAutomation(cmd.automation, float32(sampleRate))
	if err != nil {
		return err
	}
	if err := webgain.Render(plugin, channels, cfg.BlockSize, points); err != nil {
		return err
	}

	if err := writeWAV(args[1], channels, sampleRate); err != nil {
		return errors.Wrapf(err, "error writing '%s'", args[1])
	}
	dl.Infof("rendered %d frames (%d automation points) to '%s'", len(channels[0]), len(points), args[1])
	return nil
}

func readWAV(path string) ([][]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, errors.Errorf("invalid wav file '%s'", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, errors.Errorf("invalid wav buffer '%s'", path)
	}

	numCh := buf.Format.NumChannels
	frames := len(buf.Data) / numCh
	channels := make([][]float32, numCh)
	for c := range channels {
		channels[c] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < numCh; c++ {
			channels[c][i] = buf.Data[i*numCh+c]
		}
	}
	return channels, buf.Format.SampleRate, nil
}

func writeWAV(path string, channels [][]float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	numCh := len(channels)
	frames := len(channels[0])
	data := make([]float32, frames*numCh)
	for i := 0; i < frames; i++ {
		for c := 0; c < numCh; c++ {
			data[i*numCh+c] = channels[c][i]
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, numCh, 1)
	defer enc.Close()
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: numCh,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

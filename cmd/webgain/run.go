package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/michaelquigley/df/dl"
	"github.com/michaelquigley/webgain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRunCommand().cmd)
}

type runCommand struct {
	cmd *cobra.Command
}

func newRunCommand() *runCommand {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play a test tone through the gain, with a JSON UI channel on stdin/stdout",
		Args:  cobra.NoArgs,
	}
	out := &runCommand{cmd: cmd}
	cmd.RunE = out.run
	return out
}

func (cmd *runCommand) run(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	plugin := webgain.NewPlugin(cfg)
	if err := plugin.Activate(webgain.StereoLayout, cfg.SampleRate, cfg.BlockSize); err != nil {
		return errors.Wrap(err, "error activating plugin")
	}
	defer plugin.Deactivate()

	src, err := newToneSource(plugin, cfg)
	if err != nil {
		return err
	}
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return errors.Wrap(err, "error creating audio context")
	}
	<-ready
	player := otoCtx.NewPlayer(src)
	player.Play()
	defer player.Close()

	if cfg.Midi != nil {
		in, err := openMidiInput(cfg.Midi.Input)
		if err != nil {
			dl.Warnf("midi disabled: %v", err)
		} else {
			monitor := webgain.NewMidiMonitor(in, plugin.Params().Gain, *cfg.Midi)
			if err := monitor.Start(); err != nil {
				return errors.Wrap(err, "error starting midi monitor")
			}
			defer monitor.Stop()
		}
	}

	ctx, cancel := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	view := webgain.NewMessageChannel(cfg.QueueCapacity, func(msg []byte) error {
		_, err := fmt.Fprintln(os.Stdout, string(msg))
		return err
	}, nil)
	loop := plugin.Editor(nil).Open(view)
	defer loop.Close()
	go readMessages(ctx, os.Stdin, view)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickHz))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			dl.Infof("stopping")
			return nil
		case <-ticker.C:
			loop.Tick()
		}
	}
}

// readMessages feeds one JSON message per line into the UI channel until EOF or cancellation
func readMessages(ctx context.Context, r io.Reader, view *webgain.MessageChannel) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !view.Post(append([]byte(nil), line...)) {
			dl.Warnf("inbound queue full, dropping message")
		}
	}
	if err := scanner.Err(); err != nil {
		dl.Errorf("error reading ui messages: %v", err)
	}
}

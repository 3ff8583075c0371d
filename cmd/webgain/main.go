package main

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/fang"
	"github.com/michaelquigley/df/dl"
	"github.com/michaelquigley/webgain"
	"github.com/spf13/cobra"
)

func init() {
	dl.Init(dl.DefaultOptions().SetLevel(slog.LevelInfo).SetTrimPrefix("github.com/michaelquigley/"))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/webgain/webgain.yaml)")
}

var rootCmd = &cobra.Command{
	Use:   "webgain",
	Short: "Smoothed gain effect with a message-driven UI bridge",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			dl.Init(dl.DefaultOptions().SetLevel(slog.LevelDebug).SetTrimPrefix("github.com/michaelquigley/"))
		}
	},
}
var verbose bool
var configPath string

func loadConfig() (*webgain.Config, error) {
	if configPath != "" {
		return webgain.LoadConfig(configPath)
	}
	return webgain.LoadMainConfig()
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithoutManpage(), fang.WithoutCompletions(), fang.WithoutVersion()); err != nil {
		dl.Fatal(err)
	}
}

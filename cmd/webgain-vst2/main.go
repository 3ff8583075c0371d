//go:build plugin

package main

import (
	"github.com/michaelquigley/df/dl"
	"github.com/michaelquigley/webgain"
	"pipelined.dev/audio/vst2"
	"pipelined.dev/signal"
)

const defaultMaxBlockSize = 4096

func init() {
	vst2.PluginAllocator = func(h vst2.Host) (vst2.Plugin, vst2.Dispatcher) {
		plugin := webgain.NewPlugin(webgain.DefaultConfig())
		gain := plugin.Params().Gain

		sampleRate := float32(h.GetSampleRate())
		if sampleRate <= 0 {
			sampleRate = webgain.DefaultConfig().SampleRate
		}
		if err := plugin.Activate(webgain.StereoLayout, sampleRate, defaultMaxBlockSize); err != nil {
			dl.Errorf("error activating: %v", err)
		}
		// hosts change rate and block size only while processing is suspended
		reconfigure := func(sampleRate float32, maxBlockSize int) {
			if err := plugin.Reconfigure(sampleRate, maxBlockSize); err != nil {
				dl.Errorf("error reconfiguring: %v", err)
			}
		}

		hostParam := &vst2.Parameter{
			Name:  gain.Name(),
			Unit:  "dB",
			Value: gain.Normalize(gain.Value()),
			GetValueFunc: func(normalized float32) float32 {
				return float32(webgain.GainMinDb + float64(normalized)*(webgain.GainMaxDb-webgain.GainMinDb))
			},
		}
		lastHostValue := hostParam.Value

		channels := make([][]float32, 2)
		return vst2.Plugin{
				UniqueID:       [4]byte{'W', 'G', 'a', 'n'},
				Version:        1,
				InputChannels:  2,
				OutputChannels: 2,
				Name:           "WebGain",
				Vendor:         "michaelquigley",
				Category:       vst2.PluginCategoryEffect,
				Parameters:     []*vst2.Parameter{hostParam},
				ProcessFloatFunc: func(in, out vst2.FloatBuffer) {
					// host automation lands in the parameter value between blocks
					if v := hostParam.Value; v != lastHostValue {
						lastHostValue = v
						gain.WriteNormalized(v, webgain.OriginAutomation)
					}
					for c := range channels {
						channels[c] = out.Channel(c)
						copy(channels[c], in.Channel(c))
					}
					plugin.Process(channels)
				},
			}, vst2.Dispatcher{
				SetSampleRateFunc: func(rate signal.Frequency) {
					reconfigure(float32(rate), plugin.MaxBlockSize())
				},
				SetBufferSizeFunc: func(size int) {
					reconfigure(plugin.SampleRate(), size)
				},
				CloseFunc: func() {
					plugin.Deactivate()
				},
				GetChunkFunc: func(isPreset bool) []byte {
					data, err := plugin.SaveState()
					if err != nil {
						dl.Errorf("error saving state: %v", err)
						return nil
					}
					return data
				},
				SetChunkFunc: func(data []byte, isPreset bool) {
					if err := plugin.LoadState(data); err != nil {
						dl.Errorf("error loading state: %v", err)
						return
					}
					hostParam.Value = gain.Normalize(gain.Value())
				},
			}
	}
}

func main() {}

package webgain

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// AutomationPoint is a host automation write of Db decibels at Frame
type AutomationPoint struct {
	Frame int
	Db    float64
}

// ParseAutomation parses a comma separated list of "<duration>:<dB>" points, e.g.
// "0s:-6,1.5s:-20", into points sorted by frame
func ParseAutomation(s string, sampleRate float32) ([]AutomationPoint, error) {
	var points []AutomationPoint
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		at, level, ok := strings.Cut(field, ":")
		if !ok {
			return nil, errors.Errorf("automation point '%s' is not '<time>:<dB>'", field)
		}
		d, err := time.ParseDuration(strings.TrimSpace(at))
		if err != nil {
			return nil, errors.Wrapf(err, "automation point '%s'", field)
		}
		if d < 0 {
			return nil, errors.Errorf("automation point '%s' has negative time", field)
		}
		db, err := strconv.ParseFloat(strings.TrimSpace(level), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "automation point '%s'", field)
		}
		points = append(points, AutomationPoint{
			Frame: int(math.Round(d.Seconds() * float64(sampleRate))),
			Db:    db,
		})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Frame < points[j].Frame })
	return points, nil
}

// Render runs whole planar channels through an active plugin the way a host would: in
// blocks of at most blockSize frames, split so that each automation point is written
// exactly at its frame.
func Render(p *Plugin, channels [][]float32, blockSize int, points []AutomationPoint) error {
	if !p.Active() {
		return errors.New("plugin is not active")
	}
	if blockSize <= 0 {
		return errors.Errorf("invalid block size '%d'", blockSize)
	}
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != frames {
			return errors.New("channel length mismatch")
		}
	}

	gain := p.Params().Gain
	block := make([][]float32, len(channels))
	next := 0
	for offset := 0; offset < frames; {
		for next < len(points) && points[next].Frame <= offset {
			gain.Write(gain.FromDb(points[next].Db), OriginAutomation)
			next++
		}
		end := offset + blockSize
		if end > frames {
			end = frames
		}
		if next < len(points) && points[next].Frame < end {
			end = points[next].Frame
		}
		for i, ch := range channels {
			block[i] = ch[offset:end]
		}
		p.Process(block)
		offset = end
	}
	return nil
}

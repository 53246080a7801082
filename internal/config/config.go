// Package config loads a tracker instance's startup configuration — the
// AOI table, inbound FIFO path, aggregator URL, role tag, and optional
// telemetry settings — from an INI file, grounded on nmichlo-norfair-go's
// use of gopkg.in/ini.v1 for tracker parameters.
package config

import (
	"github.com/avtrejo/corridor-counter/internal/geometry"
	"github.com/avtrejo/corridor-counter/internal/tracker"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// Config is the complete startup configuration for one cmd/tracker
// instance (spec §6 "Configuration").
type Config struct {
	AOIs          tracker.AOITable
	StreamPath    string
	AggregatorURL string
	Role          string

	TelemetryBroker string
	TelemetryTopic  string
}

// Load reads path as an INI file with sections [aois], [stream],
// [aggregator], and the optional [telemetry]. A missing AOI table or
// stream path is a fatal configuration error per spec §7.
func Load(path string) (Config, error) {
	var cfg Config

	f, err := ini.Load(path)
	if err != nil {
		return cfg, errors.Wrap(err, "config: reading ini file")
	}

	aois, err := loadAOIs(f)
	if err != nil {
		return cfg, err
	}
	cfg.AOIs = aois

	stream := f.Section("stream")
	cfg.StreamPath = stream.Key("fifo_path").String()
	if cfg.StreamPath == "" {
		return cfg, errors.New("config: [stream] fifo_path is required")
	}

	agg := f.Section("aggregator")
	cfg.AggregatorURL = agg.Key("url").String()
	cfg.Role = agg.Key("role").String()
	if cfg.AggregatorURL == "" {
		return cfg, errors.New("config: [aggregator] url is required")
	}
	if cfg.Role != "entry" && cfg.Role != "exit" {
		return cfg, errors.Errorf("config: [aggregator] role must be \"entry\" or \"exit\", got %q", cfg.Role)
	}

	if f.HasSection("telemetry") {
		tel := f.Section("telemetry")
		cfg.TelemetryBroker = tel.Key("broker_url").String()
		cfg.TelemetryTopic = tel.Key("topic").String()
	}

	return cfg, nil
}

func loadAOIs(f *ini.File) (tracker.AOITable, error) {
	var table tracker.AOITable

	left, err := loadBox(f, "aois", "left")
	if err != nil {
		return table, err
	}
	middle, err := loadBox(f, "aois", "middle")
	if err != nil {
		return table, err
	}
	right, err := loadBox(f, "aois", "right")
	if err != nil {
		return table, err
	}

	table.Left, table.Middle, table.Right = left, middle, right
	return table, nil
}

func loadBox(f *ini.File, section, prefix string) (geometry.Box, error) {
	sec := f.Section(section)
	x, errX := sec.Key(prefix + "_x").Float64()
	y, errY := sec.Key(prefix + "_y").Float64()
	w, errW := sec.Key(prefix + "_w").Float64()
	h, errH := sec.Key(prefix + "_h").Float64()
	if errX != nil || errY != nil || errW != nil || errH != nil {
		return geometry.Box{}, errors.Errorf("config: [%s] %s box is missing or malformed", section, prefix)
	}
	return geometry.Box{X: x, Y: y, W: w, H: h}, nil
}

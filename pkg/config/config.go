package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lintang-b-s/navtraffic/pkg/congestion"
	"github.com/lintang-b-s/navtraffic/pkg/slowtraffic"
	"gopkg.in/yaml.v3"
)

const (
	BackendBadger = "badger"
	BackendPebble = "pebble"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Congestion  CongestionConfig  `yaml:"congestion"`
	Storage     StorageConfig     `yaml:"storage"`
	SlowTraffic SlowTrafficConfig `yaml:"slow_traffic"`
	Snap        SnapConfig        `yaml:"snap"`
}

type CongestionConfig struct {
	Low      congestion.CongestionRange `yaml:"low"`
	Moderate congestion.CongestionRange `yaml:"moderate"`
	Heavy    congestion.CongestionRange `yaml:"heavy"`
	Severe   congestion.CongestionRange `yaml:"severe"`
	// LookaheadTime is parsed with time.ParseDuration, e.g. "2m".
	LookaheadTime        time.Duration `yaml:"lookahead_time"`
	IncreaseScanSegments int           `yaml:"increase_scan_segments"`
}

type StorageConfig struct {
	Backend  string `yaml:"backend"`
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

type SlowTrafficConfig struct {
	LegsLimit     int `yaml:"legs_limit"`
	SegmentsLimit int `yaml:"segments_limit"`
}

type SnapConfig struct {
	// MaxDistanceMeters between a location and the leg geometry, 0 disables the check.
	MaxDistanceMeters float64 `yaml:"max_distance_meters"`
}

func Default() Config {
	ranges := congestion.DefaultCongestionRangeGroup()
	return Config{
		Congestion: CongestionConfig{
			Low:                  ranges.Low(),
			Moderate:             ranges.Moderate(),
			Heavy:                ranges.Heavy(),
			Severe:               ranges.Severe(),
			LookaheadTime:        congestion.DefaultLookaheadTime,
			IncreaseScanSegments: congestion.DefaultIncreaseScanSegments,
		},
		Storage: StorageConfig{
			Backend: BackendBadger,
			Path:    "./navtraffic_db",
		},
		SlowTraffic: SlowTrafficConfig{
			LegsLimit:     slowtraffic.DefaultLegsLimit,
			SegmentsLimit: slowtraffic.DefaultSegmentsLimit,
		},
		Snap: SnapConfig{
			MaxDistanceMeters: 50,
		},
	}
}

// Load reads the yaml file at path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	bb, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(bb)
}

// Parse decodes yaml over Default.
func Parse(bb []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(bb, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.Congestion.RangeGroup(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Congestion.LookaheadTime <= 0 {
		return fmt.Errorf("%w: lookahead_time must be positive", ErrInvalidConfig)
	}
	if c.Congestion.IncreaseScanSegments <= 0 {
		return fmt.Errorf("%w: increase_scan_segments must be positive", ErrInvalidConfig)
	}
	switch c.Storage.Backend {
	case BackendBadger, BackendPebble:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	if c.Storage.Path == "" && !c.Storage.InMemory {
		return fmt.Errorf("%w: storage path is required", ErrInvalidConfig)
	}
	if c.SlowTraffic.LegsLimit <= 0 || c.SlowTraffic.SegmentsLimit <= 0 {
		return fmt.Errorf("%w: slow traffic limits must be positive", ErrInvalidConfig)
	}
	if c.Snap.MaxDistanceMeters < 0 {
		return fmt.Errorf("%w: max_distance_meters must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c CongestionConfig) RangeGroup() (congestion.CongestionRangeGroup, error) {
	return congestion.NewCongestionRangeGroup(c.Low, c.Moderate, c.Heavy, c.Severe)
}

func (c CongestionConfig) HandlerOptions() congestion.HandlerOptions {
	return congestion.HandlerOptions{
		LookaheadTime:        c.LookaheadTime,
		IncreaseScanSegments: c.IncreaseScanSegments,
	}
}

func (c SlowTrafficConfig) Options() []slowtraffic.Option {
	return []slowtraffic.Option{
		slowtraffic.WithLegsLimit(c.LegsLimit),
		slowtraffic.WithSegmentsLimit(c.SegmentsLimit),
	}
}

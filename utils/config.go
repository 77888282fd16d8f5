package utils

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds training configuration
type Config struct {
	GridWidth      int     `yaml:"grid_width"`
	GridHeight     int     `yaml:"grid_height"`
	MaxTicks       int     `yaml:"max_ticks"`
	HiddenLayers   string  `yaml:"hidden_layers"`
	Episodes       int     `yaml:"episodes"`
	LearningRate   float64 `yaml:"learning_rate"`
	DiscountFactor float64 `yaml:"discount_factor"`
	Seed           uint64  `yaml:"seed"`
	LogEvery       int     `yaml:"log_every"`
	PrintScores    bool    `yaml:"print_scores"`
	HistoryPath    string  `yaml:"history_path"`
}

// Overrides captures CLI supplied values. Zero values leave the config
// untouched.
type Overrides struct {
	GridWidth      int
	GridHeight     int
	MaxTicks       int
	HiddenLayers   string
	Episodes       int
	LearningRate   float64
	DiscountFactor float64
	Seed           uint64
	LogEvery       int
	PrintScores    bool
	HistoryPath    string
}

// HiddenLayer is one hidden layer insertion: Neurons units placed after
// layer After of the network as it stands at that point.
type HiddenLayer struct {
	Neurons int
	After   int
}

const noHiddenLayers = "none"

// DefaultConfig returns the settings of a standard 10x10 run.
func DefaultConfig() *Config {
	return &Config{
		GridWidth:      10,
		GridHeight:     10,
		MaxTicks:       1000,
		HiddenLayers:   "10@0",
		Episodes:       200000,
		LearningRate:   0.001,
		DiscountFactor: 0.9,
		Seed:           42,
		LogEvery:       1000,
	}
}

// Load reads a YAML config from path on top of DefaultConfig. Unknown keys
// are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func parseConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.GridWidth > 0 {
		c.GridWidth = o.GridWidth
	}
	if o.GridHeight > 0 {
		c.GridHeight = o.GridHeight
	}
	if o.MaxTicks > 0 {
		c.MaxTicks = o.MaxTicks
	}
	if o.HiddenLayers != "" {
		c.HiddenLayers = o.HiddenLayers
	}
	if o.Episodes > 0 {
		c.Episodes = o.Episodes
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.DiscountFactor > 0 {
		c.DiscountFactor = o.DiscountFactor
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.PrintScores {
		c.PrintScores = true
	}
	if o.HistoryPath != "" {
		c.HistoryPath = o.HistoryPath
	}
}

// ParseHiddenLayers parses a list such as "10@0 8@1" into hidden layer
// insertions, applied left to right. "none" or an empty string yields no
// hidden layers.
func ParseHiddenLayers(spec string) ([]HiddenLayer, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == noHiddenLayers {
		return nil, nil
	}
	fields := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	layers := make([]HiddenLayer, len(fields))
	for i, field := range fields {
		neurons, after, ok := strings.Cut(field, "@")
		if !ok {
			return nil, errInvalidHiddenLayer{field: field, reason: "expected <neurons>@<after>"}
		}
		n, err := strconv.Atoi(neurons)
		if err != nil {
			return nil, errInvalidHiddenLayer{field: field, reason: err.Error()}
		}
		a, err := strconv.Atoi(after)
		if err != nil {
			return nil, errInvalidHiddenLayer{field: field, reason: err.Error()}
		}
		layers[i] = HiddenLayer{Neurons: n, After: a}
	}
	return layers, nil
}

type errInvalidHiddenLayer struct {
	field  string
	reason string
}

func (e errInvalidHiddenLayer) Error() string {
	return fmt.Sprintf("hidden layer %q: %s", e.field, e.reason)
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return errors.New("config is nil")
	}
	if config.GridWidth < 3 || config.GridHeight < 3 {
		return fmt.Errorf("grid must be at least 3x3 (got %dx%d)", config.GridWidth, config.GridHeight)
	}
	if config.MaxTicks < 0 {
		return fmt.Errorf("max_ticks must be >= 0 (got %d)", config.MaxTicks)
	}
	if config.Episodes <= 0 {
		return fmt.Errorf("episodes must be > 0 (got %d)", config.Episodes)
	}
	if !(config.LearningRate > 0) || math.IsInf(config.LearningRate, 0) {
		return fmt.Errorf("learning_rate must be a positive number (got %g)", config.LearningRate)
	}
	if config.DiscountFactor < 0 || math.IsNaN(config.DiscountFactor) || math.IsInf(config.DiscountFactor, 0) {
		return fmt.Errorf("discount_factor must be a finite number >= 0 (got %g)", config.DiscountFactor)
	}

	layers, err := ParseHiddenLayers(config.HiddenLayers)
	if err != nil {
		return err
	}
	// the network starts with one layer and gains one per insertion
	for i, layer := range layers {
		if layer.Neurons <= 0 {
			return errInvalidHiddenLayer{field: fmt.Sprintf("%d@%d", layer.Neurons, layer.After), reason: "neurons must be positive"}
		}
		if layer.After < 0 || layer.After > i {
			return errInvalidHiddenLayer{
				field:  fmt.Sprintf("%d@%d", layer.Neurons, layer.After),
				reason: fmt.Sprintf("network has %d layers at this point", i+1),
			}
		}
	}

	if config.LogEvery <= 0 {
		config.LogEvery = 1000
	}
	return nil
}

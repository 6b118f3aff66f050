package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/behavior"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a Config cannot describe a flock.
var ErrInvalidConfig = errors.New("invalid flock config")

//go:embed config.schema.json
var configSchema string

// Config is the immutable description of one flock.
type Config struct {
	// Volume dimensions; the walls sit at ±X/2 and ±Y/2.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"` // depth, kept for the host volume but unused in the plane

	NumBoids int    `json:"numBoids"`
	Seed     uint64 `json:"seed"`    // 0 picks a time based seed
	Workers  int    `json:"workers"` // rule evaluation goroutines, 0 = GOMAXPROCS

	behavior.Settings
}

func DefaultConfig() *Config {
	return &Config{
		X:        100,
		Y:        60,
		Z:        1,
		NumBoids: 60,
		Settings: behavior.DefaultSettings(),
	}
}

// Validate checks the invariants NewFlock relies on.
func (c *Config) Validate() error {
	if c.X <= 0 || c.Y <= 0 {
		return fmt.Errorf("%w: volume must be positive, got x=%v y=%v", ErrInvalidConfig, c.X, c.Y)
	}
	if c.NumBoids < 1 {
		return fmt.Errorf("%w: numBoids must be at least 1, got %d", ErrInvalidConfig, c.NumBoids)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}

	s := c.Settings
	for name, v := range map[string]float64{
		"flockingDistance":      s.FlockingDistance,
		"avoidingDistance":      s.AvoidingDistance,
		"velocityMatchDistance": s.VelocityMatchDistance,
		"maxVelocity":           s.MaxVelocity,
		"maxSteeringVector":     s.MaxSteeringVector,
		"randomness":            s.Randomness,
		"collisionViewDst":      s.CollisionViewDst,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, name, v)
		}
	}
	return nil
}

// HalfExtent returns the distance from the volume center to its walls.
func (c *Config) HalfExtent() (float64, float64) {
	return c.X / 2, c.Y / 2
}

// LoadConfig loads configuration from a JSON or YAML file, validates it
// against the embedded schema and fills missing keys from DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// YAML is turned into JSON so both formats go through one validator.
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// 4. Unmarshal into Struct
	cfg := DefaultConfig()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return json.Marshal(doc)
}

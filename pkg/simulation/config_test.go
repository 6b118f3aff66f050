package simulation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "flock.json", `{
		"x": 40, "y": 20, "numBoids": 12, "seed": 7,
		"flockingStrength": 0.5, "flockingDistance": 4,
		"collisionViewDst": 3
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 40.0, cfg.X)
	assert.Equal(t, 20.0, cfg.Y)
	assert.Equal(t, 12, cfg.NumBoids)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 0.5, cfg.FlockingStrength)
	assert.Equal(t, 4.0, cfg.FlockingDistance)
	assert.Equal(t, 3.0, cfg.CollisionViewDst)
	// keys absent from the file keep their defaults
	assert.Equal(t, DefaultConfig().MaxVelocity, cfg.MaxVelocity)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, "flock.yaml", `
x: 80
y: 50
numBoids: 25
workers: 2
maxVelocity: 0.75
randomness: 0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 80.0, cfg.X)
	assert.Equal(t, 50.0, cfg.Y)
	assert.Equal(t, 25, cfg.NumBoids)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 0.75, cfg.MaxVelocity)
	assert.Zero(t, cfg.Randomness)
}

func TestLoadConfig_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"zero width", "a.json", `{"x": 0, "y": 10}`},
		{"negative height", "b.yaml", "y: -3\n"},
		{"no boids", "c.json", `{"numBoids": 0}`},
		{"unknown key", "d.json", `{"speed": 3}`},
		{"wrong type", "e.yml", "x: wide\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfig_BrokenFiles(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.json", `{"x": `))
	assert.Error(t, err)
}

func TestLoadConfig_SampleFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "flock.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.NumBoids)
	assert.Equal(t, uint64(42), cfg.Seed)
}

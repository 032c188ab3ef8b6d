// Package config validates and holds the runtime options the streaming
// controller is built from. Unlike the teacher's package-level mutable
// singletons, this is an explicit struct: a world library needs to support
// more than one instance (the streaming tests spin up several), which a
// shared global would not.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"voxelengine/internal/voxel"
)

// Config holds the options listed in the spec's runtime configuration
// table.
type Config struct {
	ChunkSizeXZ int `yaml:"chunk_size_xz"`
	ChunkSizeY  int `yaml:"chunk_size_y"`

	RenderDistanceXZ int `yaml:"render_distance_xz"`
	RenderDistanceY  int `yaml:"render_distance_y"`

	MaxChunksPerFrame int `yaml:"max_chunks_per_frame"`

	GenerateCollision bool `yaml:"generate_collision"`
	AutoSaveChunks    bool `yaml:"auto_save_chunks"`
	SaveDirectory     string `yaml:"save_directory"`
	CompressChunks    bool `yaml:"compress_chunks"`
}

// Default returns the conventional defaults: 16x128x16 chunks, an 8-chunk
// horizontal and 4-chunk vertical render distance, unbounded per-frame
// generation, collision and auto-save on, uncompressed saves under
// "./saves".
func Default() Config {
	return Config{
		ChunkSizeXZ:       16,
		ChunkSizeY:        128,
		RenderDistanceXZ:  8,
		RenderDistanceY:   4,
		MaxChunksPerFrame: 0,
		GenerateCollision: true,
		AutoSaveChunks:    true,
		SaveDirectory:     "saves",
		CompressChunks:    false,
	}
}

// Load reads a YAML config file and overlays it onto Default().
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every field against the ranges in the spec's
// configuration table.
func (c Config) Validate() error {
	if c.ChunkSizeXZ < 8 || c.ChunkSizeXZ > 64 || c.ChunkSizeXZ%8 != 0 {
		return fmt.Errorf("config: chunk_size_xz must be a multiple of 8 in [8,64], got %d", c.ChunkSizeXZ)
	}
	if c.ChunkSizeY < 8 || c.ChunkSizeY > 256 || c.ChunkSizeY%8 != 0 {
		return fmt.Errorf("config: chunk_size_y must be a multiple of 8 in [8,256], got %d", c.ChunkSizeY)
	}
	if c.RenderDistanceXZ < 2 || c.RenderDistanceXZ > 32 {
		return fmt.Errorf("config: render_distance_xz out of [2,32], got %d", c.RenderDistanceXZ)
	}
	if c.RenderDistanceY < 1 || c.RenderDistanceY > 16 {
		return fmt.Errorf("config: render_distance_y out of [1,16], got %d", c.RenderDistanceY)
	}
	if c.MaxChunksPerFrame < 0 || c.MaxChunksPerFrame > 10 {
		return fmt.Errorf("config: max_chunks_per_frame out of [0,10], got %d", c.MaxChunksPerFrame)
	}
	return nil
}

// ChunkSize returns the configured chunk dimensions as a voxel.Size.
func (c Config) ChunkSize() voxel.Size {
	return voxel.Size{X: c.ChunkSizeXZ, Y: c.ChunkSizeY, Z: c.ChunkSizeXZ}
}

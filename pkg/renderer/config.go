package renderer

import "github.com/df07/go-sdf-raytracer/pkg/core"

// Config contains rendering configuration
type Config struct {
	NumWorkers     int        // Worker goroutines, 0 = runtime.NumCPU()
	BandHeight     int        // Rows per work unit
	ClampIntensity bool       // Clamp summed light intensity to [0, 1] before shading
	Background     core.Color // Color of pixels whose ray hits nothing
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumWorkers:     0,
		BandHeight:     16,
		ClampIntensity: false,
		Background:     core.White,
	}
}

// MergeConfig returns base with the non-zero fields of override applied.
// A black override background is indistinguishable from unset and keeps base's background.
func MergeConfig(base, override Config) Config {
	merged := base
	if override.NumWorkers > 0 {
		merged.NumWorkers = override.NumWorkers
	}
	if override.BandHeight > 0 {
		merged.BandHeight = override.BandHeight
	}
	if override.ClampIntensity {
		merged.ClampIntensity = true
	}
	if override.Background != (core.Color{}) {
		merged.Background = override.Background
	}
	return merged
}

package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	Hits        int           // Pixels whose ray hit the scene
	Misses      int           // Pixels painted with the background
	Bands       int           // Work units the frame was split into
	Workers     int           // Worker goroutines used
	Duration    time.Duration // Wall time of the frame
}

// HitRatio returns the fraction of pixels that hit geometry
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalPixels)
}

// Add accumulates another frame's counters, used for animations
func (s RenderStats) Add(other RenderStats) RenderStats {
	return RenderStats{
		TotalPixels: s.TotalPixels + other.TotalPixels,
		Hits:        s.Hits + other.Hits,
		Misses:      s.Misses + other.Misses,
		Bands:       s.Bands + other.Bands,
		Workers:     max(s.Workers, other.Workers),
		Duration:    s.Duration + other.Duration,
	}
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels (%d hits, %d misses) in %d bands on %d workers, %v",
		s.TotalPixels, s.Hits, s.Misses, s.Bands, s.Workers, s.Duration)
}

// Band is a horizontal strip of canvas rows [YStart, YEnd)
type Band struct {
	YStart int
	YEnd   int
}

// SplitBands divides height rows into bands of at most bandHeight rows, bottom to top
func SplitBands(height, bandHeight int) []Band {
	if bandHeight <= 0 {
		bandHeight = height
	}
	var bands []Band
	for y := 0; y < height; y += bandHeight {
		bands = append(bands, Band{YStart: y, YEnd: min(y+bandHeight, height)})
	}
	return bands
}

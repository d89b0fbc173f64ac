package renderer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// Render draws scene into canvas, one primary ray per pixel in row-major order.
// Pixels whose ray hits nothing are painted white.
func Render(s *scene.Scene, canvas core.Canvas) {
	config := DefaultConfig()
	width, height := canvas.Width(), canvas.Height()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			color, _ := ShadePixel(s, x, y, width, height, config)
			canvas.SetPixel(x, y, color)
		}
	}
}

// TraceRay returns the color seen along ray and whether it hit anything
func TraceRay(s *scene.Scene, ray core.Ray, config Config) (core.Color, bool) {
	hit, isHit := s.Root.Hit(ray)
	if !isHit {
		return config.Background, false
	}

	intensity := lights.TotalIntensity(s.Lights, hit, ray.Direction.Negate())
	if config.ClampIntensity {
		intensity = clamp01(intensity)
	}
	return hit.Material.Color.Multiply(intensity), true
}

// ShadePixel returns the color of pixel (x, y) of a width×height canvas
func ShadePixel(s *scene.Scene, x, y, width, height int, config Config) (core.Color, bool) {
	return TraceRay(s, s.Camera.GetRay(x, y, width, height), config)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Raytracer renders a scene in parallel horizontal bands
type Raytracer struct {
	scene  *scene.Scene
	config Config
	logger core.Logger
}

// NewRaytracer creates a new raytracer. Zero fields of config take their default values.
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:  s,
		config: MergeConfig(DefaultConfig(), config),
		logger: logger,
	}
}

// SetConfig updates the rendering configuration
func (rt *Raytracer) SetConfig(config Config) {
	rt.config = MergeConfig(DefaultConfig(), config)
}

// Config returns the active configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// SetScene swaps the scene rendered by subsequent frames
func (rt *Raytracer) SetScene(s *scene.Scene) {
	rt.scene = s
}

// RenderBand shades every pixel of rows [band.YStart, band.YEnd) into canvas
func (rt *Raytracer) RenderBand(band Band, canvas core.Canvas) (hits, misses int) {
	width, height := canvas.Width(), canvas.Height()
	for y := band.YStart; y < band.YEnd; y++ {
		for x := 0; x < width; x++ {
			color, isHit := ShadePixel(rt.scene, x, y, width, height, rt.config)
			canvas.SetPixel(x, y, color)
			if isHit {
				hits++
			} else {
				misses++
			}
		}
	}
	return hits, misses
}

// Render fills canvas using a pool of workers. The context is checked between bands;
// when it is cancelled Render returns its error and the canvas content is undefined.
func (rt *Raytracer) Render(ctx context.Context, canvas core.Canvas) (RenderStats, error) {
	if rt.scene == nil {
		return RenderStats{}, fmt.Errorf("invalid scene: %w", scene.ErrNoRoot)
	}
	if err := rt.scene.Validate(); err != nil {
		return RenderStats{}, fmt.Errorf("invalid scene: %w", err)
	}

	start := time.Now()
	bands := SplitBands(canvas.Height(), rt.config.BandHeight)

	numWorkers := rt.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(bands) && len(bands) > 0 {
		numWorkers = len(bands)
	}

	stats := RenderStats{
		TotalPixels: canvas.Width() * canvas.Height(),
		Bands:       len(bands),
		Workers:     numWorkers,
	}
	if len(bands) == 0 {
		return stats, nil
	}

	pool := NewWorkerPool(ctx, rt, numWorkers, len(bands))
	pool.Start()

	rt.logger.Debugf("Dispatching %d bands of %d rows to %d workers", len(bands), rt.config.BandHeight, numWorkers)
	for i, band := range bands {
		pool.SubmitTask(BandTask{Band: band, TaskID: i, Canvas: canvas})
	}

	var renderErr error
	for range bands {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.Hits += result.Hits
		stats.Misses += result.Misses
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	if renderErr != nil {
		rt.logger.Warnf("Render aborted after %v: %v", stats.Duration, renderErr)
		return stats, renderErr
	}

	rt.logger.Infof("Rendered %dx%d in %v (%d hits, %d misses)",
		canvas.Width(), canvas.Height(), stats.Duration, stats.Hits, stats.Misses)
	return stats, nil
}

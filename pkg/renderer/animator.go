package renderer

import (
	"context"
	"fmt"

	"github.com/df07/go-sdf-raytracer/pkg/canvas"
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// SceneFunc returns the scene to draw for a frame number
type SceneFunc func(frame int) *scene.Scene

// PresentFunc receives each finished frame. The canvas is reused by the next
// frame, so it must be consumed (encoded, copied) before returning.
type PresentFunc func(frame int, c core.Canvas) error

// Animator renders a sequence of frames into a single reused canvas
type Animator struct {
	width     int
	height    int
	frames    int
	raytracer *Raytracer
	logger    core.Logger
}

// NewAnimator creates an animator producing frames of width×height
func NewAnimator(width, height, frames int, config Config, logger core.Logger) *Animator {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Animator{
		width:     width,
		height:    height,
		frames:    frames,
		raytracer: NewRaytracer(nil, config, logger),
		logger:    logger,
	}
}

// Run renders every frame and hands it to present. It stops at the first error;
// a frame interrupted by cancellation is never presented.
func (a *Animator) Run(ctx context.Context, sceneFor SceneFunc, present PresentFunc) (RenderStats, error) {
	if a.frames <= 0 {
		return RenderStats{}, fmt.Errorf("frame count must be positive, got %d", a.frames)
	}

	fb := canvas.New(a.width, a.height)
	var total RenderStats

	for frame := 0; frame < a.frames; frame++ {
		a.raytracer.SetScene(sceneFor(frame))

		stats, err := a.raytracer.Render(ctx, fb)
		if err != nil {
			return total, fmt.Errorf("frame %d: %w", frame, err)
		}
		total = total.Add(stats)

		if err := present(frame, fb); err != nil {
			return total, fmt.Errorf("presenting frame %d: %w", frame, err)
		}
		a.logger.Debugf("Frame %d/%d: %v", frame+1, a.frames, stats)
	}

	a.logger.Infof("Animation finished: %d frames, %v", a.frames, total)
	return total, nil
}

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/df07/go-sdf-raytracer/pkg/canvas"
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/loaders"
	"github.com/df07/go-sdf-raytracer/pkg/output"
	"github.com/df07/go-sdf-raytracer/pkg/renderer"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// Options holds the parsed command line
type Options struct {
	Scene       string
	ScenesDir   string
	Width       int
	Height      int
	Output      string
	Format      string
	Workers     int
	Supersample int
	Clamp       bool
	Turntable   bool
	Frames      int
	Pivot       string
	ExportLisp  string
	ExportYAML  string
	Upload      bool
	EnvFile     string
	Debug       bool
	Help        bool
}

var errHelp = errors.New("help requested")

func parseFlags(args []string, stderr io.Writer) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.Scene, "scene", "default", "Builtin scene name, scene id (yaml:<name>) or path to a .yaml scene")
	fs.StringVar(&opts.ScenesDir, "scenes-dir", "scenes", "Directory searched for yaml:<name> scenes")
	fs.IntVar(&opts.Width, "width", 640, "Image width in pixels")
	fs.IntVar(&opts.Height, "height", 480, "Image height in pixels")
	fs.StringVar(&opts.Output, "output", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&opts.Format, "format", "png", "Image format: png, jpeg, gif, bmp or tiff")
	fs.IntVar(&opts.Workers, "workers", 0, "Render workers (0 = one per CPU)")
	fs.IntVar(&opts.Supersample, "supersample", 1, "Render at N times the size and downsample")
	fs.BoolVar(&opts.Clamp, "clamp", false, "Clamp summed light intensity to 1")
	fs.BoolVar(&opts.Turntable, "turntable", false, "Render an animated GIF rotating the scene about the Y axis")
	fs.IntVar(&opts.Frames, "frames", 24, "Frames in a turntable animation")
	fs.StringVar(&opts.Pivot, "pivot", "0,0,4", "Turntable pivot as x,y,z")
	fs.StringVar(&opts.ExportLisp, "export-lisp", "", "Write the scene as an s-expression to this file and exit")
	fs.StringVar(&opts.ExportYAML, "export-yaml", "", "Write the scene as YAML to this file and exit")
	fs.BoolVar(&opts.Upload, "upload", false, "Upload the render to S3 (configured by S3_* variables)")
	fs.StringVar(&opts.EnvFile, "env", ".env", "Environment file read before S3 configuration")
	fs.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.Help {
		fmt.Fprintln(stderr, "SDF Raytracer")
		fmt.Fprintln(stderr, "Usage: raytracer [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Available scenes:")
		for _, name := range scene.BuiltinNames() {
			fmt.Fprintf(stderr, "  %s\n", name)
		}
		if files, err := scene.ListYAMLScenes(opts.ScenesDir); err == nil {
			for _, info := range files {
				fmt.Fprintf(stderr, "  %s - %s\n", info.ID, info.Name)
			}
		}
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Output will be saved to output/<scene>/render_<timestamp>.<format>")
		return opts, errHelp
	}

	if opts.Width <= 0 || opts.Height <= 0 {
		return opts, fmt.Errorf("image size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Supersample < 1 {
		return opts, fmt.Errorf("supersample must be at least 1, got %d", opts.Supersample)
	}
	if opts.Turntable && opts.Frames < 1 {
		return opts, fmt.Errorf("frames must be at least 1, got %d", opts.Frames)
	}
	return opts, nil
}

func parseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float32
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid coordinate %q: %w", part, err)
		}
		v[i] = float32(f)
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

// createScene resolves a scene by builtin name, discovery id or file path
func createScene(name, scenesDir string) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}
	s, err := loaders.Resolve(name, scenesDir)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return s, nil
}

func exportScene(s *scene.Scene, path string, save func(io.Writer, *scene.Scene) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := save(file, s); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// renderStill renders a single frame and returns it encoded
func renderStill(ctx context.Context, opts Options, s *scene.Scene, format output.Format, logger core.Logger) ([]byte, renderer.RenderStats, error) {
	config := renderer.Config{NumWorkers: opts.Workers, ClampIntensity: opts.Clamp}
	raytracer := renderer.NewRaytracer(s, config, logger)

	fb := canvas.New(opts.Width*opts.Supersample, opts.Height*opts.Supersample)
	stats, err := raytracer.Render(ctx, fb)
	if err != nil {
		return nil, stats, err
	}

	img := output.Downsample(canvas.ToImage(fb), opts.Supersample)

	var buf bytes.Buffer
	if err := output.Encode(&buf, img, format); err != nil {
		return nil, stats, err
	}
	return buf.Bytes(), stats, nil
}

// renderTurntable renders a full rotation of the scene as an animated GIF
func renderTurntable(ctx context.Context, opts Options, s *scene.Scene, logger core.Logger) ([]byte, renderer.RenderStats, error) {
	pivot, err := parseVec3(opts.Pivot)
	if err != nil {
		return nil, renderer.RenderStats{}, fmt.Errorf("pivot: %w", err)
	}

	config := renderer.Config{NumWorkers: opts.Workers, ClampIntensity: opts.Clamp}
	animator := renderer.NewAnimator(opts.Width*opts.Supersample, opts.Height*opts.Supersample, opts.Frames, config, logger)
	animation := output.NewAnimation(4)

	step := 2 * math32.Pi / float32(opts.Frames)
	stats, err := animator.Run(ctx,
		func(frame int) *scene.Scene {
			return scene.Turntable(s, pivot, step*float32(frame))
		},
		func(frame int, c core.Canvas) error {
			animation.AddFrame(output.Downsample(canvas.ToImage(c), opts.Supersample))
			return nil
		},
	)
	if err != nil {
		return nil, stats, err
	}

	var buf bytes.Buffer
	if err := animation.Encode(&buf); err != nil {
		return nil, stats, err
	}
	return buf.Bytes(), stats, nil
}

func outputFormat(opts Options) (output.Format, error) {
	if opts.Turntable {
		if opts.Output != "" {
			if format, err := output.FormatFromPath(opts.Output); err != nil || format != output.FormatGIF {
				return "", fmt.Errorf("turntable output must be a .gif file, got %s", opts.Output)
			}
		}
		return output.FormatGIF, nil
	}
	if opts.Output != "" {
		return output.FormatFromPath(opts.Output)
	}
	return output.ParseFormat(opts.Format)
}

func run(ctx context.Context, opts Options, logger core.Logger) error {
	logger.Infof("Starting SDF Raytracer...")

	s, err := createScene(opts.Scene, opts.ScenesDir)
	if err != nil {
		return err
	}
	sceneName := output.SceneKey(s.Name)
	logger.Infof("Using scene %s (%d primitives, %d lights)", sceneName, s.GetPrimitiveCount(), len(s.Lights))

	if opts.ExportLisp != "" || opts.ExportYAML != "" {
		if opts.ExportLisp != "" {
			if err := exportScene(s, opts.ExportLisp, loaders.SaveLisp); err != nil {
				return err
			}
			logger.Infof("Scene exported as %s", opts.ExportLisp)
		}
		if opts.ExportYAML != "" {
			if err := exportScene(s, opts.ExportYAML, loaders.SaveYAML); err != nil {
				return err
			}
			logger.Infof("Scene exported as %s", opts.ExportYAML)
		}
		return nil
	}

	format, err := outputFormat(opts)
	if err != nil {
		return err
	}

	var data []byte
	var stats renderer.RenderStats
	if opts.Turntable {
		data, stats, err = renderTurntable(ctx, opts, s, logger)
	} else {
		data, stats, err = renderStill(ctx, opts, s, format, logger)
	}
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Infof("Render completed: %v", stats)

	if opts.Output != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Output), 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
		if err := os.WriteFile(opts.Output, data, 0644); err != nil {
			return fmt.Errorf("error writing %s: %w", opts.Output, err)
		}
		logger.Infof("Render saved as %s", opts.Output)
	} else {
		path, err := output.NewFileSink("output").Save(ctx, sceneName, data, format)
		if err != nil {
			return err
		}
		logger.Infof("Render saved as %s", path)
	}

	if opts.Upload {
		cfg, err := output.S3ConfigFromEnv(opts.EnvFile)
		if err != nil {
			return fmt.Errorf("upload: %w", err)
		}
		sink, err := output.NewS3Sink(cfg, logger)
		if err != nil {
			return fmt.Errorf("upload: %w", err)
		}
		url, err := sink.Save(ctx, sceneName, data, format)
		if err != nil {
			return fmt.Errorf("upload: %w", err)
		}
		logger.Infof("Render uploaded to %s", url)
	}

	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, errHelp) || errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := core.NewDefaultLogger("raytracer", opts.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}

package main

import (
	"bytes"
	"context"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/loaders"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"single sphere scene", "single-sphere", false},

		// YAML scenes (by id)
		{"three-spheres YAML", "yaml:three-spheres", false},
		{"nested-unions YAML", "yaml:nested-unions", false},

		// YAML scenes (by path)
		{"direct YAML path", "scenes/three-spheres.yaml", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid YAML path", "scenes/nonexistent.yaml", true},
		{"traversal id", "yaml:../go", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, "scenes")

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, scene)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
				}
				if scene == nil {
					t.Fatalf("Expected scene for valid scene type '%s', got nil", tt.sceneType)
				}
				if scene.GetPrimitiveCount() == 0 {
					t.Errorf("Scene '%s' has no primitives", tt.sceneType)
				}
				if len(scene.Lights) == 0 {
					t.Errorf("Scene '%s' has no lights", tt.sceneType)
				}
			}
		})
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "default", opts.Scene)
	assert.Equal(t, 640, opts.Width)
	assert.Equal(t, 480, opts.Height)
	assert.Equal(t, "png", opts.Format)
	assert.Equal(t, 1, opts.Supersample)
	assert.False(t, opts.Clamp)
	assert.False(t, opts.Turntable)
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := [][]string{
		{"-width", "0"},
		{"-height", "-3"},
		{"-supersample", "0"},
		{"-turntable", "-frames", "0"},
		{"-no-such-flag"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := parseFlags(args, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-help"}, &stderr)
	assert.ErrorIs(t, err, errHelp)
	assert.Contains(t, stderr.String(), "single-sphere")
	assert.Contains(t, stderr.String(), "-supersample")
}

func TestParseVec3(t *testing.T) {
	v, err := parseVec3("1, -2.5,4")
	require.NoError(t, err)
	assert.Equal(t, core.NewVec3(1, -2.5, 4), v)

	_, err = parseVec3("1,2")
	assert.Error(t, err)
	_, err = parseVec3("1,x,2")
	assert.Error(t, err)
}

func testOptions(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := parseFlags(append([]string{"-width", "16", "-height", "12"}, args...), &bytes.Buffer{})
	require.NoError(t, err)
	return opts
}

func TestRun_Still(t *testing.T) {
	out := filepath.Join(t.TempDir(), "still.png")
	opts := testOptions(t, "-scene", "single-sphere", "-output", out, "-supersample", "2")

	require.NoError(t, run(context.Background(), opts, core.NopLogger{}))

	file, err := os.Open(out)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())
}

func TestRun_Turntable(t *testing.T) {
	out := filepath.Join(t.TempDir(), "spin.gif")
	opts := testOptions(t, "-turntable", "-frames", "3", "-output", out)

	require.NoError(t, run(context.Background(), opts, core.NopLogger{}))

	file, err := os.Open(out)
	require.NoError(t, err)
	defer file.Close()

	anim, err := gif.DecodeAll(file)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 3)
}

func TestRun_Export(t *testing.T) {
	dir := t.TempDir()
	lispPath := filepath.Join(dir, "scene.lisp")
	yamlPath := filepath.Join(dir, "scene.yaml")
	opts := testOptions(t, "-scene", "default", "-export-lisp", lispPath, "-export-yaml", yamlPath)

	require.NoError(t, run(context.Background(), opts, core.NopLogger{}))

	lisp, err := os.ReadFile(lispPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(lisp), "(scene "))

	s, err := loaders.LoadYAMLFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 4, s.GetPrimitiveCount())
}

func TestRun_UnknownOutputFormat(t *testing.T) {
	opts := testOptions(t, "-output", filepath.Join(t.TempDir(), "render.webp"))
	assert.Error(t, run(context.Background(), opts, core.NopLogger{}))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := testOptions(t, "-output", filepath.Join(t.TempDir(), "render.png"))
	assert.ErrorIs(t, run(ctx, opts, core.NopLogger{}), context.Canceled)
}

func TestRun_TurntableRejectsNonGIFOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "spin.png")
	opts := testOptions(t, "-turntable", "-frames", "2", "-output", out)

	err := run(context.Background(), opts, core.NopLogger{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".gif")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_SceneNameCannotEscapeOutputDir(t *testing.T) {
	source, err := os.ReadFile(filepath.Join("scenes", "three-spheres.yaml"))
	require.NoError(t, err)
	hostile := strings.Replace(string(source), "name: Three Spheres", `name: "../../escaped"`, 1)
	require.NotEqual(t, string(source), hostile)

	root := t.TempDir()
	work := filepath.Join(root, "work")
	require.NoError(t, os.MkdirAll(work, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(work, "hostile.yaml"), []byte(hostile), 0644))
	prevDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(work))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })

	opts := testOptions(t, "-scene", "hostile.yaml")
	require.NoError(t, run(context.Background(), opts, core.NopLogger{}))

	renders, err := filepath.Glob(filepath.Join(work, "output", "escaped", "render_*.png"))
	require.NoError(t, err)
	assert.Len(t, renders, 1)

	_, err = os.Stat(filepath.Join(root, "escaped"))
	assert.True(t, os.IsNotExist(err))
}

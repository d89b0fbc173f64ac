package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
)

// ErrNoRoot is returned when a scene has no geometry
var ErrNoRoot = errors.New("scene has no root node")

// Scene contains all the elements needed for rendering.
// It is built once and treated as read-only while a frame is rendered.
type Scene struct {
	Name        string
	Description string
	Group       string // Discovery group, empty for the default group
	Camera      geometry.Camera
	Root        core.Node
	Lights      []core.Light
}

// New creates a scene from its parts
func New(camera geometry.Camera, root core.Node, lights ...core.Light) *Scene {
	return &Scene{
		Camera: camera,
		Root:   root,
		Lights: lights,
	}
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Root == nil {
		return ErrNoRoot
	}
	if err := s.Camera.ViewPort.Validate(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	return nil
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light core.Light) {
	s.Lights = append(s.Lights, light)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.Root == nil {
		return 0
	}
	return geometry.CountPrimitives(s.Root)
}

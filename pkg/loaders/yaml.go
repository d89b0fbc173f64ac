package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// Sentinel errors wrapped by LoadYAML. The wrapping error names the offending YAML path.
var (
	ErrMissingField     = errors.New("missing field")
	ErrInvalidValue     = errors.New("invalid value")
	ErrUnknownNodeType  = errors.New("unknown node type")
	ErrUnknownLightType = errors.New("unknown light type")
)

// Node type names as they appear in scene files
const (
	NodeTypeUnion  = "union"
	NodeTypeSphere = "sphere"
)

// yamlScene mirrors the scene file layout. Pointer fields distinguish
// a missing key from an explicit zero.
type yamlScene struct {
	Name        string      `yaml:"name,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Group       string      `yaml:"group,omitempty"`
	Camera      *yamlCamera `yaml:"camera"`
	Root        *yamlNode   `yaml:"root"`
	Lights      []yamlLight `yaml:"lights"`
	Ligths      []yamlLight `yaml:"ligths,omitempty"`
}

type yamlVector struct {
	X *float32 `yaml:"x"`
	Y *float32 `yaml:"y"`
	Z *float32 `yaml:"z"`
}

// yamlViewPort accepts width/height/distance, or x/y/z as older scene files wrote it
type yamlViewPort struct {
	Width    *float32 `yaml:"width,omitempty"`
	Height   *float32 `yaml:"height,omitempty"`
	Distance *float32 `yaml:"distance,omitempty"`
	X        *float32 `yaml:"x,omitempty"`
	Y        *float32 `yaml:"y,omitempty"`
	Z        *float32 `yaml:"z,omitempty"`
}

type yamlCamera struct {
	Position *yamlVector   `yaml:"position"`
	ViewPort *yamlViewPort `yaml:"view_port"`
}

type yamlColor struct {
	R *float32 `yaml:"r"`
	G *float32 `yaml:"g"`
	B *float32 `yaml:"b"`
}

type yamlMaterial struct {
	Color    *yamlColor `yaml:"color"`
	Specular *float32   `yaml:"specular"`
}

type yamlNode struct {
	Type     string        `yaml:"type"`
	Nodes    []yamlNode    `yaml:"nodes,omitempty"`
	Position *yamlVector   `yaml:"position,omitempty"`
	Radius   *float32      `yaml:"radius,omitempty"`
	Material *yamlMaterial `yaml:"material,omitempty"`
}

type yamlLight struct {
	Type      string      `yaml:"type"`
	Intensity *float32    `yaml:"intensity"`
	Position  *yamlVector `yaml:"position,omitempty"`
	Direction *yamlVector `yaml:"direction,omitempty"`
}

// LoadYAML parses a scene document. A scene is only returned when every
// required field is present and valid.
func LoadYAML(reader io.Reader) (*scene.Scene, error) {
	var doc yamlScene
	decoder := yaml.NewDecoder(reader)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scene document: %w", ErrMissingField)
		}
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}

	if doc.Camera == nil {
		return nil, missing("camera")
	}
	camera, err := parseCamera(doc.Camera, "camera")
	if err != nil {
		return nil, err
	}

	if doc.Root == nil {
		return nil, missing("root")
	}
	root, err := parseNode(doc.Root, "root")
	if err != nil {
		return nil, err
	}

	lightKey, lightDocs := "lights", doc.Lights
	if lightDocs == nil && doc.Ligths != nil {
		lightKey, lightDocs = "ligths", doc.Ligths
	}

	s := scene.New(camera, root)
	s.Name = doc.Name
	s.Description = doc.Description
	s.Group = doc.Group
	for i := range lightDocs {
		light, err := parseLight(&lightDocs[i], fmt.Sprintf("%s[%d]", lightKey, i))
		if err != nil {
			return nil, err
		}
		s.AddLight(light)
	}

	return s, nil
}

// LoadYAMLFile loads a scene from a YAML file. The scene name defaults to the file name.
func LoadYAMLFile(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := LoadYAML(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if s.Name == "" {
		s.Name = sceneNameFromPath(filename)
	}
	return s, nil
}

func missing(path string) error {
	return fmt.Errorf("%s: %w", path, ErrMissingField)
}

func parseVector(v *yamlVector, path string) (core.Vec3, error) {
	if v == nil {
		return core.Vec3{}, missing(path)
	}
	if v.X == nil {
		return core.Vec3{}, missing(path + ".x")
	}
	if v.Y == nil {
		return core.Vec3{}, missing(path + ".y")
	}
	if v.Z == nil {
		return core.Vec3{}, missing(path + ".z")
	}
	return core.NewVec3(*v.X, *v.Y, *v.Z), nil
}

func parseViewPort(v *yamlViewPort, path string) (geometry.ViewPort, error) {
	if v == nil {
		return geometry.ViewPort{}, missing(path)
	}

	pick := func(primary, legacy *float32, key string) (float32, error) {
		switch {
		case primary != nil:
			return *primary, nil
		case legacy != nil:
			return *legacy, nil
		default:
			return 0, missing(path + "." + key)
		}
	}

	width, err := pick(v.Width, v.X, "width")
	if err != nil {
		return geometry.ViewPort{}, err
	}
	height, err := pick(v.Height, v.Y, "height")
	if err != nil {
		return geometry.ViewPort{}, err
	}
	distance, err := pick(v.Distance, v.Z, "distance")
	if err != nil {
		return geometry.ViewPort{}, err
	}

	viewPort := geometry.ViewPort{Width: width, Height: height, Distance: distance}
	if err := viewPort.Validate(); err != nil {
		return geometry.ViewPort{}, fmt.Errorf("%s: %w: %v", path, ErrInvalidValue, err)
	}
	return viewPort, nil
}

func parseCamera(c *yamlCamera, path string) (geometry.Camera, error) {
	position, err := parseVector(c.Position, path+".position")
	if err != nil {
		return geometry.Camera{}, err
	}
	viewPort, err := parseViewPort(c.ViewPort, path+".view_port")
	if err != nil {
		return geometry.Camera{}, err
	}
	return geometry.NewCamera(position, viewPort), nil
}

func parseColor(c *yamlColor, path string) (core.Color, error) {
	if c == nil {
		return core.Color{}, missing(path)
	}
	if c.R == nil {
		return core.Color{}, missing(path + ".r")
	}
	if c.G == nil {
		return core.Color{}, missing(path + ".g")
	}
	if c.B == nil {
		return core.Color{}, missing(path + ".b")
	}
	return core.NewColor(*c.R, *c.G, *c.B), nil
}

func parseMaterial(m *yamlMaterial, path string) (core.Material, error) {
	if m == nil {
		return core.Material{}, missing(path)
	}
	color, err := parseColor(m.Color, path+".color")
	if err != nil {
		return core.Material{}, err
	}
	if m.Specular == nil {
		return core.Material{}, missing(path + ".specular")
	}
	return core.Material{Color: color, Specular: *m.Specular}, nil
}

func parseNode(n *yamlNode, path string) (core.Node, error) {
	switch n.Type {
	case NodeTypeUnion:
		union := geometry.NewUnion()
		for i := range n.Nodes {
			child, err := parseNode(&n.Nodes[i], fmt.Sprintf("%s.nodes[%d]", path, i))
			if err != nil {
				return nil, err
			}
			union.Add(child)
		}
		return union, nil

	case NodeTypeSphere:
		position, err := parseVector(n.Position, path+".position")
		if err != nil {
			return nil, err
		}
		if n.Radius == nil {
			return nil, missing(path + ".radius")
		}
		if *n.Radius <= 0 {
			return nil, fmt.Errorf("%s.radius: %w: must be positive, got %g", path, ErrInvalidValue, *n.Radius)
		}
		material, err := parseMaterial(n.Material, path+".material")
		if err != nil {
			return nil, err
		}
		return geometry.NewSphere(position, *n.Radius, material), nil

	case "":
		return nil, missing(path + ".type")

	default:
		return nil, fmt.Errorf("%s.type: %w %q", path, ErrUnknownNodeType, n.Type)
	}
}

func parseLight(l *yamlLight, path string) (core.Light, error) {
	if l.Type == "" {
		return nil, missing(path + ".type")
	}
	if l.Intensity == nil {
		return nil, missing(path + ".intensity")
	}

	switch lights.LightType(l.Type) {
	case lights.LightTypeAmbient, "ambient":
		return lights.NewAmbientLight(*l.Intensity), nil

	case lights.LightTypeOmniDirectional:
		position, err := parseVector(l.Position, path+".position")
		if err != nil {
			return nil, err
		}
		return lights.NewOmniDirectionalLight(position, *l.Intensity), nil

	case lights.LightTypeDirectional:
		direction, err := parseVector(l.Direction, path+".direction")
		if err != nil {
			return nil, err
		}
		return lights.NewDirectionalLight(direction, *l.Intensity), nil

	default:
		return nil, fmt.Errorf("%s.type: %w %q", path, ErrUnknownLightType, l.Type)
	}
}

// SaveYAML writes the scene in the format read by LoadYAML
func SaveYAML(w io.Writer, s *scene.Scene) error {
	doc := yamlScene{
		Name:        s.Name,
		Description: s.Description,
		Group:       s.Group,
		Camera: &yamlCamera{
			Position: toYAMLVector(s.Camera.Position),
			ViewPort: &yamlViewPort{
				Width:    f32(s.Camera.ViewPort.Width),
				Height:   f32(s.Camera.ViewPort.Height),
				Distance: f32(s.Camera.ViewPort.Distance),
			},
		},
		Lights: make([]yamlLight, 0, len(s.Lights)),
	}

	root, err := toYAMLNode(s.Root)
	if err != nil {
		return err
	}
	doc.Root = root

	for i, light := range s.Lights {
		l, err := toYAMLLight(light)
		if err != nil {
			return fmt.Errorf("lights[%d]: %w", i, err)
		}
		doc.Lights = append(doc.Lights, l)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("error encoding YAML: %w", err)
	}
	return encoder.Close()
}

func f32(f float32) *float32 {
	return &f
}

func toYAMLVector(v core.Vec3) *yamlVector {
	return &yamlVector{X: f32(v.X), Y: f32(v.Y), Z: f32(v.Z)}
}

func toYAMLNode(node core.Node) (*yamlNode, error) {
	switch n := node.(type) {
	case *geometry.UnionNode:
		out := &yamlNode{Type: NodeTypeUnion, Nodes: make([]yamlNode, 0, len(n.Nodes))}
		for _, child := range n.Nodes {
			c, err := toYAMLNode(child)
			if err != nil {
				return nil, err
			}
			out.Nodes = append(out.Nodes, *c)
		}
		return out, nil
	case *geometry.SphereNode:
		return &yamlNode{
			Type:     NodeTypeSphere,
			Position: toYAMLVector(n.Position),
			Radius:   f32(n.Radius),
			Material: &yamlMaterial{
				Color: &yamlColor{
					R: f32(n.Material.Color.R),
					G: f32(n.Material.Color.G),
					B: f32(n.Material.Color.B),
				},
				Specular: f32(n.Material.Specular),
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w %T", ErrUnknownNodeType, node)
	}
}

func toYAMLLight(light core.Light) (yamlLight, error) {
	switch l := light.(type) {
	case *lights.AmbientLight:
		return yamlLight{Type: string(lights.LightTypeAmbient), Intensity: f32(l.Intensity)}, nil
	case *lights.OmniDirectionalLight:
		return yamlLight{
			Type:      string(lights.LightTypeOmniDirectional),
			Intensity: f32(l.Intensity),
			Position:  toYAMLVector(l.Position),
		}, nil
	case *lights.DirectionalLight:
		return yamlLight{
			Type:      string(lights.LightTypeDirectional),
			Intensity: f32(l.Intensity),
			Direction: toYAMLVector(l.Direction),
		}, nil
	default:
		return yamlLight{}, fmt.Errorf("%w %T", ErrUnknownLightType, light)
	}
}

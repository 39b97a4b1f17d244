package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrInvalidScene = errors.New("prefabs: invalid scene")

// SceneSpec is a YAML scene: a bounded area and the objects placed in it.
type SceneSpec struct {
	Name    string       `yaml:"name"`
	Bounds  SizeSpec     `yaml:"bounds"`
	Gravity float64      `yaml:"gravity"`
	Mode    string       `yaml:"mode"`
	Objects []ObjectSpec `yaml:"objects"`
}

type ObjectSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Shape     ShapeSpec     `yaml:"shape"`
	// Collider is "box", "circle" or empty for none.
	Collider string `yaml:"collider"`
	// Mode overrides the scene's test mode for this object.
	Mode         string     `yaml:"mode"`
	Layer        *LayerSpec `yaml:"layer"`
	Body         *BodySpec  `yaml:"body"`
	GravityScale *float64   `yaml:"gravity_scale"`
	Script       string     `yaml:"script"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

// ShapeSpec is the object's geometry. Kind is "box", "circle" or "none".
type ShapeSpec struct {
	Kind       string  `yaml:"kind"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
	Radius     float64 `yaml:"radius"`
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type LayerSpec struct {
	Category uint32 `yaml:"category"`
	Mask     uint32 `yaml:"mask"`
}

type BodySpec struct {
	Mass       float64 `yaml:"mass"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
	VelocityX  float64 `yaml:"velocity_x"`
	VelocityY  float64 `yaml:"velocity_y"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadScene reads and validates a scene by name, e.g. "demo" or "scenes/demo.yaml".
func LoadScene(name string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](scenePath(name))
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// ParseScene decodes and validates scene YAML.
func ParseScene(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *SceneSpec) Validate() error {
	if s.Bounds.Width <= 0 || s.Bounds.Height <= 0 {
		return fmt.Errorf("%w: bounds %vx%v", ErrInvalidScene, s.Bounds.Width, s.Bounds.Height)
	}
	if !validMode(s.Mode) {
		return fmt.Errorf("%w: mode %q", ErrInvalidScene, s.Mode)
	}
	for i := range s.Objects {
		if err := s.Objects[i].validate(); err != nil {
			return fmt.Errorf("%w: object %d (%s): %v", ErrInvalidScene, i, s.Objects[i].Name, err)
		}
	}
	return nil
}

func (o *ObjectSpec) validate() error {
	switch o.Shape.Kind {
	case "", "none":
	case "box":
		if o.Shape.HalfWidth <= 0 || o.Shape.HalfHeight <= 0 {
			return fmt.Errorf("box needs positive half extents")
		}
	case "circle":
		if o.Shape.Radius <= 0 {
			return fmt.Errorf("circle needs a positive radius")
		}
	default:
		return fmt.Errorf("unknown shape %q", o.Shape.Kind)
	}
	switch o.Collider {
	case "", "box", "circle":
	default:
		return fmt.Errorf("unknown collider %q", o.Collider)
	}
	if !validMode(o.Mode) {
		return fmt.Errorf("unknown mode %q", o.Mode)
	}
	if o.Body != nil && !o.Body.Static && o.Body.Mass <= 0 {
		return fmt.Errorf("dynamic body needs a positive mass")
	}
	return nil
}

func validMode(m string) bool {
	return m == "" || m == "simple" || m == "detailed"
}

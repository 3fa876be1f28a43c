package splinehost

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/npillmayer/crspline"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfig is returned for settings the host cannot work with.
	ErrInvalidConfig = errors.New("invalid spline configuration")
	// ErrInvalidScene is returned for malformed anchors in a scene file.
	ErrInvalidScene = errors.New("invalid scene")
)

// Config holds the settings of a host.
type Config struct {
	ClosedLoop          bool          `yaml:"closed_loop"`
	Resolution          int           `yaml:"resolution"`
	FrameBudget         time.Duration `yaml:"frame_budget"`
	RegenerateEveryTick bool          `yaml:"regenerate_every_tick"`
	Debug               bool          `yaml:"debug"`
}

// Default returns the default configuration: a closed loop with 100 samples
// per segment and a frame budget of 16ms.
func Default() Config {
	return Config{
		ClosedLoop:  true,
		Resolution:  100,
		FrameBudget: 16 * time.Millisecond,
	}
}

// Validate checks a configuration. A frame budget of 0 is valid and makes
// asynchronous generation yield before every sample.
func (c Config) Validate() error {
	if c.Resolution <= 0 {
		return fmt.Errorf("%w: resolution must be > 0, is %d", ErrInvalidConfig, c.Resolution)
	}
	if c.FrameBudget < 0 {
		return fmt.Errorf("%w: negative frame budget %s", ErrInvalidConfig, c.FrameBudget)
	}
	return nil
}

// Transform places an anchor in world space. It is applied in the order
// scale, rotate around Up, translate. The zero value is the identity.
type Transform struct {
	Translate crspline.Vec3
	RotateY   float64 // degrees
	Scale     float64 // 0 is taken as 1
}

// Matrix returns the affine transform for t.
func (t Transform) Matrix() crspline.AT {
	s := t.Scale
	if crspline.Is0(s) {
		s = 1
	}
	return crspline.Scaling(s).
		Combine(crspline.RotationY(t.RotateY * crspline.Deg2Rad)).
		Combine(crspline.Translation(t.Translate))
}

// Anchor is a control point given by a local position and a transform.
type Anchor struct {
	Position  crspline.Vec3
	Transform Transform
}

// World returns the position of an anchor in world space.
func (a Anchor) World() crspline.Vec3 {
	return a.Transform.Matrix().Transform(a.Position)
}

// Scene is a host configuration together with its anchors.
type Scene struct {
	Config  Config
	Anchors []Anchor
}

type sceneDoc struct {
	Spline  Config      `yaml:"spline"`
	Anchors []anchorDoc `yaml:"anchors"`
}

type anchorDoc struct {
	Position  []any `yaml:"position"`
	Transform struct {
		Translate []any `yaml:"translate"`
		RotateY   any   `yaml:"rotate_y"`
		Scale     any   `yaml:"scale"`
	} `yaml:"transform"`
}

// LoadScene reads a scene from YAML:
//
//	spline:
//	  closed_loop: true
//	  resolution: 20
//	  frame_budget: 2ms
//	anchors:
//	  - position: [0, 0, 0]
//	  - position: [1, 0, "0.5"]
//	    transform: { translate: [0, 1, 0], rotate_y: 90, scale: 2 }
//
// Settings missing from the document keep their defaults. Coordinates may
// be given as numbers or numeric strings.
func LoadScene(r io.Reader) (*Scene, error) {
	doc := sceneDoc{Spline: Default()}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if err := doc.Spline.Validate(); err != nil {
		return nil, err
	}
	scene := &Scene{Config: doc.Spline, Anchors: make([]Anchor, 0, len(doc.Anchors))}
	for i, ad := range doc.Anchors {
		a, err := ad.anchor()
		if err != nil {
			return nil, fmt.Errorf("%w: anchor #%d: %w", ErrInvalidScene, i, err)
		}
		scene.Anchors = append(scene.Anchors, a)
	}
	tracer().Debugf("loaded scene with %d anchors", len(scene.Anchors))
	return scene, nil
}

func (ad anchorDoc) anchor() (a Anchor, err error) {
	if a.Position, err = vec(ad.Position); err != nil {
		return a, fmt.Errorf("position: %w", err)
	}
	tr := ad.Transform
	if tr.Translate != nil {
		if a.Transform.Translate, err = vec(tr.Translate); err != nil {
			return a, fmt.Errorf("translate: %w", err)
		}
	}
	if tr.RotateY != nil {
		if a.Transform.RotateY, err = cast.ToFloat64E(tr.RotateY); err != nil {
			return a, fmt.Errorf("rotate_y: %w", err)
		}
	}
	if tr.Scale != nil {
		if a.Transform.Scale, err = cast.ToFloat64E(tr.Scale); err != nil {
			return a, fmt.Errorf("scale: %w", err)
		}
	}
	return a, nil
}

func vec(coords []any) (crspline.Vec3, error) {
	if len(coords) != 3 {
		return crspline.Origin, fmt.Errorf("need 3 coordinates, have %d", len(coords))
	}
	var xyz [3]float64
	for i, c := range coords {
		f, err := cast.ToFloat64E(c)
		if err != nil {
			return crspline.Origin, err
		}
		xyz[i] = f
	}
	return crspline.V(xyz[0], xyz[1], xyz[2]), nil
}

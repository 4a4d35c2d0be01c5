package script

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/cine-go/common"
	"github.com/Carmen-Shannon/cine-go/engine/rig"
	"gopkg.in/yaml.v3"
)

// Cue kinds accepted in a cue sheet. Each maps to one camera enqueue
// operation.
const (
	KindLookAt      = "look_at"
	KindTranslate   = "translate"
	KindRotatePoint = "rotate_point"
	KindRotateAxis  = "rotate_axis"
	KindBSpline     = "bspline"
	KindBezier      = "bezier"
)

// Cue is one queued camera command in a cue sheet. Which fields are required
// depends on the kind: target for look_at/translate, pivot+angle for
// rotate_point, axis+angle for rotate_axis, points for bspline/bezier.
type Cue struct {
	Camera   int         `yaml:"camera"`
	Kind     string      `yaml:"kind"`
	Target   []float32   `yaml:"target,omitempty"`
	Pivot    []float32   `yaml:"pivot,omitempty"`
	Axis     []float32   `yaml:"axis,omitempty"`
	Angle    float32     `yaml:"angle,omitempty"`
	Points   [][]float32 `yaml:"points,omitempty"`
	Duration float64     `yaml:"duration"`
}

// CueSheet is a named list of camera cues loaded from YAML. Cues enqueue in
// file order, so same-kind cues on the same camera play back sequentially.
type CueSheet struct {
	Name string `yaml:"name,omitempty"`
	Cues []Cue  `yaml:"cues"`
}

// Load reads and parses a YAML cue sheet from disk.
//
// Parameters:
//   - path: path to the YAML file
//
// Returns:
//   - *CueSheet: the parsed and validated cue sheet
//   - error: if the file cannot be read, parsed, or validated
func Load(path string) (*CueSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	sheet, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", path, err)
	}
	return sheet, nil
}

// Parse parses and validates a YAML cue sheet.
//
// Parameters:
//   - data: raw YAML bytes
//
// Returns:
//   - *CueSheet: the parsed cue sheet
//   - error: if the YAML is malformed or a cue is invalid
func Parse(data []byte) (*CueSheet, error) {
	var sheet CueSheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("parse cue sheet: %w", err)
	}
	if err := sheet.Validate(); err != nil {
		return nil, err
	}
	return &sheet, nil
}

// Validate checks every cue for a known kind, the vector fields that kind
// requires, and a non-negative duration.
//
// Returns:
//   - error: describing the first invalid cue, or nil
func (s *CueSheet) Validate() error {
	for i, cue := range s.Cues {
		if err := cue.validate(); err != nil {
			return fmt.Errorf("cue %d: %w", i, err)
		}
	}
	return nil
}

func (c *Cue) validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("duration %v is negative", c.Duration)
	}
	if c.Camera < 0 {
		return fmt.Errorf("camera index %d is negative", c.Camera)
	}
	switch c.Kind {
	case KindLookAt, KindTranslate:
		if _, err := toVec3(c.Target); err != nil {
			return fmt.Errorf("%s target: %w", c.Kind, err)
		}
	case KindRotatePoint:
		if _, err := toVec3(c.Pivot); err != nil {
			return fmt.Errorf("rotate_point pivot: %w", err)
		}
	case KindRotateAxis:
		if _, err := toVec3(c.Axis); err != nil {
			return fmt.Errorf("rotate_axis axis: %w", err)
		}
	case KindBSpline, KindBezier:
		if len(c.Points) != 4 {
			return fmt.Errorf("%s needs 4 control points, got %d", c.Kind, len(c.Points))
		}
		for j, p := range c.Points {
			if _, err := toVec3(p); err != nil {
				return fmt.Errorf("%s point %d: %w", c.Kind, j, err)
			}
		}
	case "":
		return fmt.Errorf("missing kind")
	default:
		return fmt.Errorf("unknown kind %q", c.Kind)
	}
	return nil
}

// Apply enqueues every cue onto its target camera in the rig. Cues for
// camera indexes the rig does not have are an error; nothing is partially
// rolled back, so validate sheets against the rig size before applying when
// that matters.
//
// Parameters:
//   - r: the rig whose cameras receive the cues
//
// Returns:
//   - error: describing the first cue that failed to enqueue, or nil
func (s *CueSheet) Apply(r rig.Rig) error {
	for i, cue := range s.Cues {
		if err := cue.validate(); err != nil {
			return fmt.Errorf("script: cue %d: %w", i, err)
		}
		cam, err := r.Camera(cue.Camera)
		if err != nil {
			return fmt.Errorf("script: cue %d: %w", i, err)
		}
		switch cue.Kind {
		case KindLookAt:
			err = cam.LookAt(mustVec3(cue.Target), cue.Duration)
		case KindTranslate:
			err = cam.Translate(mustVec3(cue.Target), cue.Duration)
		case KindRotatePoint:
			err = cam.RotateAroundPoint(mustVec3(cue.Pivot), cue.Angle, cue.Duration)
		case KindRotateAxis:
			err = cam.RotateAroundAxis(mustVec3(cue.Axis), cue.Angle, cue.Duration)
		case KindBSpline:
			err = cam.BSplinePath(
				mustVec3(cue.Points[0]), mustVec3(cue.Points[1]),
				mustVec3(cue.Points[2]), mustVec3(cue.Points[3]),
				cue.Duration)
		case KindBezier:
			err = cam.BezierPath(
				mustVec3(cue.Points[0]), mustVec3(cue.Points[1]),
				mustVec3(cue.Points[2]), mustVec3(cue.Points[3]),
				cue.Duration)
		default:
			err = fmt.Errorf("unknown kind %q", cue.Kind)
		}
		if err != nil {
			return fmt.Errorf("script: cue %d: %w", i, err)
		}
	}
	return nil
}

func toVec3(v []float32) (common.Vec3, error) {
	if len(v) != 3 {
		return common.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
	return common.V3(v[0], v[1], v[2]), nil
}

// mustVec3 converts a component slice already checked by validate.
func mustVec3(v []float32) common.Vec3 {
	return common.V3(v[0], v[1], v[2])
}

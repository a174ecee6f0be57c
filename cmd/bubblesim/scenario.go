package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/bubblecluster/bubble"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Scenario describes a simulation run: the cluster options and the
// commands to apply.
type Scenario struct {
	DS           float64 `yaml:"ds" validate:"gt=0"`
	DT           float64 `yaml:"dt" validate:"gt=0"`
	Seed         uint64  `yaml:"seed"`
	FixTopology  bool    `yaml:"fix_topology"`
	PressureGain float64 `yaml:"pressure_gain" validate:"gt=0"`
	LogLevel     string  `yaml:"log_level" validate:"oneof=debug info warn error"`
	// Strict aborts the run on the first rejected command instead of
	// logging and skipping it.
	Strict bool `yaml:"strict"`
	// Expect names a JSON snapshot, relative to the scenario file, that the
	// final state must match.
	Expect string `yaml:"expect"`

	Image    ImageConfig `yaml:"image"`
	Commands []Step      `yaml:"commands" validate:"dive"`
}

type ImageConfig struct {
	Size    int `yaml:"size" validate:"gte=16"`
	Padding int `yaml:"padding" validate:"gte=0"`
}

// BubbleSpec seeds a circular region.
type BubbleSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Radius   float64 `yaml:"radius" validate:"gt=0"`
	Segments int     `yaml:"segments" validate:"gte=0"`
}

// TransformSpec moves the whole cluster: a counterclockwise rotation in
// degrees about the origin, then a uniform scaling, then a translation.
type TransformSpec struct {
	Rotate float64 `yaml:"rotate"`
	Scale  float64 `yaml:"scale" validate:"gt=0"`
	DX     float64 `yaml:"dx"`
	DY     float64 `yaml:"dy"`
}

// Affine returns the map described by t.
func (t TransformSpec) Affine() bubble.Affine {
	aff := bubble.Identity
	if t.Rotate != 0 {
		aff = bubble.Rotate(t.Rotate * math.Pi / 180)
	}
	return aff.ThenScale(t.Scale, t.Scale).ThenTranslate(bubble.Vec(t.DX, t.DY))
}

// Step is one entry of a scenario's command list. A draw step expands to
// one command per point followed by the command finishing the polyline.
type Step struct {
	Name      string `validate:"required"`
	Commands  []bubble.Command
	Bubble    *BubbleSpec    `validate:"omitnil"`
	Transform *TransformSpec `validate:"omitnil"`
}

// DefaultScenario returns the scenario settings used for keys missing from
// a scenario file.
func DefaultScenario() *Scenario {
	opts := bubble.DefaultOptions()
	return &Scenario{
		DS:           opts.DS,
		DT:           opts.DT,
		Seed:         opts.Seed,
		FixTopology:  opts.FixTopology,
		PressureGain: opts.PressureGain,
		LogLevel:     "info",
		Image: ImageConfig{
			Size:    800,
			Padding: 20,
		},
	}
}

// LoadScenario reads and validates the scenario file at path.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes a YAML scenario over the defaults and validates it.
func ParseScenario(data []byte) (*Scenario, error) {
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	if err := validate.Struct(sc); err != nil {
		return nil, formatValidationError(err)
	}
	return sc, nil
}

// Options returns the cluster options of the scenario.
func (sc *Scenario) Options() bubble.Options {
	return bubble.Options{
		DS:           sc.DS,
		DT:           sc.DT,
		Seed:         sc.Seed,
		FixTopology:  sc.FixTopology,
		PressureGain: sc.PressureGain,
	}
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "Scenario.")
		switch e.Tag() {
		case "gt", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be %s %s", field, map[string]string{"gt": ">", "gte": ">="}[e.Tag()], e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return fmt.Errorf("invalid scenario: %s", strings.Join(msgs, "; "))
}

type removeArgs struct {
	Chain  int `yaml:"chain"`
	Region int `yaml:"region"`
}

// UnmarshalYAML decodes a step written either as a bare name ("reset") or
// as a single-key mapping from the step name to its arguments:
//
//	- draw: [[0, 0], [1, 0.5], [2, 0]]
//	- flip: 3
//	- collapse: 3
//	- split: 7
//	- remove: {chain: 3, region: 2}
//	- step: 100
//	- bubble: {x: 0, y: 0, radius: 1}
//	- transform: {rotate: 30, scale: 2, dx: 1, dy: 0}
func (st *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Value != "reset" {
			return fmt.Errorf("line %d: unknown step %q", node.Line, node.Value)
		}
		*st = Step{Name: "reset", Commands: []bubble.Command{bubble.ResetCommand{}}}
		return nil
	}
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: a step must be a name or a mapping with a single key", node.Line)
	}
	name, args := node.Content[0].Value, node.Content[1]
	out := Step{Name: name}
	switch name {
	case "draw":
		var pts [][2]float64
		if err := args.Decode(&pts); err != nil {
			return fmt.Errorf("line %d: draw: %w", args.Line, err)
		}
		for _, p := range pts {
			pt := bubble.Pt(p[0], p[1])
			out.Commands = append(out.Commands, bubble.DrawCommand{Point: &pt})
		}
		out.Commands = append(out.Commands, bubble.DrawCommand{})
	case "flip", "collapse", "split", "step":
		var n int
		if err := args.Decode(&n); err != nil {
			return fmt.Errorf("line %d: %s: %w", args.Line, name, err)
		}
		switch name {
		case "flip":
			out.Commands = []bubble.Command{bubble.FlipCommand{Chain: n}}
		case "collapse":
			out.Commands = []bubble.Command{bubble.CollapseCommand{Chain: n}}
		case "split":
			out.Commands = []bubble.Command{bubble.SplitCommand{Node: n}}
		case "step":
			if n < 0 {
				return fmt.Errorf("line %d: step count %d is negative", args.Line, n)
			}
			out.Commands = []bubble.Command{bubble.StepCommand{N: n}}
		}
	case "remove":
		var ra removeArgs
		if args.Kind == yaml.ScalarNode {
			if err := args.Decode(&ra.Chain); err != nil {
				return fmt.Errorf("line %d: remove: %w", args.Line, err)
			}
		} else if err := args.Decode(&ra); err != nil {
			return fmt.Errorf("line %d: remove: %w", args.Line, err)
		}
		out.Commands = []bubble.Command{bubble.RemoveCommand{Chain: ra.Chain, Region: ra.Region}}
	case "reset":
		out.Commands = []bubble.Command{bubble.ResetCommand{}}
	case "bubble":
		var b BubbleSpec
		if err := args.Decode(&b); err != nil {
			return fmt.Errorf("line %d: bubble: %w", args.Line, err)
		}
		out.Bubble = &b
	case "transform":
		tr := TransformSpec{Scale: 1}
		if err := args.Decode(&tr); err != nil {
			return fmt.Errorf("line %d: transform: %w", args.Line, err)
		}
		out.Transform = &tr
	default:
		return fmt.Errorf("line %d: unknown step %q", node.Line, name)
	}
	*st = out
	return nil
}

package dotproduct

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/syllabus"
)

// ID is the catalog identifier of this module.
const ID = "vectors.dot-cross-product"

// Topic is the syllabus topic the module belongs to.
const Topic = "products"

// Mode selects which product is shown.
type Mode string

const (
	Dot   Mode = "dot"
	Cross Mode = "cross"
)

// Vec is a vector in three dimensions.
type Vec [3]float64

// Dot returns the scalar product of v and w.
func (v Vec) Dot(w Vec) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Cross returns the vector product of v and w.
func (v Vec) Cross(w Vec) Vec {
	return Vec{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', 4, 64)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Module implements the catalog.Module interface for this package.
type Module struct{}

// State is the pair of vectors being compared.
type State struct {
	Topic string
	A, B  Vec
	Mode  Mode
}

// TopicID implements descriptor.State.
func (s *State) TopicID() string { return s.Topic }

// AngleDegrees returns the angle between A and B. ok is false when either
// vector is zero.
func (s *State) AngleDegrees() (deg float64, ok bool) {
	na, nb := s.A.Norm(), s.B.Norm()
	if na == 0 || nb == 0 {
		return 0, false
	}
	cos := math.Max(-1, math.Min(1, s.A.Dot(s.B)/(na*nb)))
	return math.Acos(cos) * 180 / math.Pi, true
}

// NewState returns the two unit vectors along x and y.
func NewState() descriptor.State {
	return &State{Topic: Topic, A: Vec{1, 0, 0}, B: Vec{0, 1, 0}, Mode: Dot}
}

// Validate checks the mode and that every component is finite.
func Validate(st descriptor.State) []string {
	s, ok := st.(*State)
	if !ok || s == nil {
		return []string{fmt.Sprintf("unexpected state type %T", st)}
	}

	var problems []string
	if s.Mode != Dot && s.Mode != Cross {
		problems = append(problems, fmt.Sprintf("mode must be %q or %q, got %q", Dot, Cross, s.Mode))
	}
	for name, v := range map[string]Vec{"a": s.A, "b": s.B} {
		for i, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				problems = append(problems, fmt.Sprintf("%s[%d] must be a finite number", name, i))
			}
		}
	}
	return problems
}

// Render prints the selected product and the angle between the vectors.
func Render(st descriptor.State, _ func(descriptor.State)) (any, error) {
	s, ok := st.(*State)
	if !ok || s == nil {
		return nil, fmt.Errorf("unexpected state type %T", st)
	}
	if problems := Validate(s); len(problems) > 0 {
		return nil, fmt.Errorf("cannot render invalid state: %s", strings.Join(problems, "; "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "a = %s\nb = %s\n", s.A, s.B)
	switch s.Mode {
	case Cross:
		c := s.A.Cross(s.B)
		fmt.Fprintf(&b, "a x b = %s, |a x b| = %s\n", c, strconv.FormatFloat(c.Norm(), 'g', 4, 64))
	default:
		fmt.Fprintf(&b, "a . b = %s\n", strconv.FormatFloat(s.A.Dot(s.B), 'g', 4, 64))
	}
	if deg, ok := s.AngleDegrees(); ok {
		fmt.Fprintf(&b, "angle = %.1f deg", deg)
	} else {
		b.WriteString("angle = undefined")
	}
	return b.String(), nil
}

// New returns the module descriptor.
func New() *descriptor.Descriptor {
	return &descriptor.Descriptor{
		ID:          ID,
		Name:        "Dot and cross products",
		Description: "Compare the scalar and vector products of two 3D vectors.",
		Syllabus: &descriptor.SyllabusRef{
			Strand: syllabus.Vectors,
			Topic:  Topic,
		},
		Engine:        descriptor.EngineText,
		Render:        descriptor.RenderFunc(Render),
		InitialState:  NewState,
		ValidateState: Validate,
		Metadata: &descriptor.Metadata{
			Version:       "1.0.0",
			Tags:          []string{"vectors", "dot-product", "cross-product", "3d"},
			Difficulty:    descriptor.Intermediate,
			Prerequisites: []string{"vectors.components"},
		},
	}
}

// Register registers the module with the catalog.
func (m *Module) Register(ctx context.Context, c *catalog.Catalog) *catalog.RegistrationResult {
	return c.Register(ctx, New())
}

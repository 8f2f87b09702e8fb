package riemann

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/syllabus"
)

// ID is the catalog identifier of this module.
const ID = "calculus.riemann-sums"

// Topic is the syllabus topic the module belongs to.
const Topic = "integration"

// MaxPartitions bounds the number of rectangles.
const MaxPartitions = 1000

// Rule is the sampling rule used for each subinterval.
type Rule string

const (
	Left      Rule = "left"
	Right     Rule = "right"
	Midpoint  Rule = "midpoint"
	Trapezoid Rule = "trapezoid"
)

// function pairs an integrand with its antiderivative.
type function struct {
	f, F func(float64) float64
}

var functions = map[string]function{
	"x^2": {
		f: func(x float64) float64 { return x * x },
		F: func(x float64) float64 { return x * x * x / 3 },
	},
	"sin": {f: math.Sin, F: func(x float64) float64 { return -math.Cos(x) }},
	"exp": {f: math.Exp, F: math.Exp},
}

// Functions returns the names of the available integrands.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Module implements the catalog.Module interface for this package.
type Module struct{}

// State is the integral being approximated.
type State struct {
	Topic    string
	Function string
	A, B     float64
	N        int
	Rule     Rule
}

// TopicID implements descriptor.State.
func (s *State) TopicID() string { return s.Topic }

// Sum returns the Riemann sum for the state. The state must be valid.
func (s *State) Sum() float64 {
	fn := functions[s.Function].f
	h := (s.B - s.A) / float64(s.N)
	var total float64
	for i := 0; i < s.N; i++ {
		x0 := s.A + float64(i)*h
		x1 := x0 + h
		switch s.Rule {
		case Left:
			total += fn(x0)
		case Right:
			total += fn(x1)
		case Midpoint:
			total += fn((x0 + x1) / 2)
		case Trapezoid:
			total += (fn(x0) + fn(x1)) / 2
		}
	}
	return total * h
}

// Exact returns the value of the definite integral.
func (s *State) Exact() float64 {
	F := functions[s.Function].F
	return F(s.B) - F(s.A)
}

// NewState returns a left sum of x^2 over [0, 1] with four rectangles.
func NewState() descriptor.State {
	return &State{Topic: Topic, Function: "x^2", A: 0, B: 1, N: 4, Rule: Left}
}

// Validate checks the integrand, interval, partition count and rule.
func Validate(st descriptor.State) []string {
	s, ok := st.(*State)
	if !ok || s == nil {
		return []string{fmt.Sprintf("unexpected state type %T", st)}
	}

	var problems []string
	if _, ok := functions[s.Function]; !ok {
		problems = append(problems, fmt.Sprintf("function %q is not one of %s", s.Function, strings.Join(Functions(), ", ")))
	}
	if math.IsNaN(s.A) || math.IsNaN(s.B) || math.IsInf(s.A, 0) || math.IsInf(s.B, 0) {
		problems = append(problems, "interval bounds must be finite")
	} else if s.A >= s.B {
		problems = append(problems, fmt.Sprintf("interval start %g must be less than end %g", s.A, s.B))
	}
	if s.N < 1 || s.N > MaxPartitions {
		problems = append(problems, fmt.Sprintf("n must be between 1 and %d, got %d", MaxPartitions, s.N))
	}
	switch s.Rule {
	case Left, Right, Midpoint, Trapezoid:
	default:
		problems = append(problems, fmt.Sprintf("rule %q is not recognised", s.Rule))
	}
	return problems
}

// Render prints the approximation next to the exact value.
func Render(st descriptor.State, _ func(descriptor.State)) (any, error) {
	s, ok := st.(*State)
	if !ok || s == nil {
		return nil, fmt.Errorf("unexpected state type %T", st)
	}
	if problems := Validate(s); len(problems) > 0 {
		return nil, fmt.Errorf("cannot render invalid state: %s", strings.Join(problems, "; "))
	}

	sum, exact := s.Sum(), s.Exact()
	return fmt.Sprintf("%s sum of %s on [%g, %g], n=%d: %.6f (exact %.6f, error %.6f)",
		s.Rule, s.Function, s.A, s.B, s.N, sum, exact, sum-exact), nil
}

// New returns the module descriptor.
func New() *descriptor.Descriptor {
	return &descriptor.Descriptor{
		ID:          ID,
		Name:        "Riemann sums",
		Description: "Approximate a definite integral with rectangles and watch the error shrink.",
		Syllabus: &descriptor.SyllabusRef{
			Strand:   syllabus.Calculus,
			Topic:    Topic,
			Subtopic: "definite-integrals",
		},
		Engine:        descriptor.EngineText,
		Render:        descriptor.RenderFunc(Render),
		InitialState:  NewState,
		ValidateState: Validate,
		Metadata: &descriptor.Metadata{
			Version:       "1.0.0",
			Tags:          []string{"integration", "approximation"},
			Difficulty:    descriptor.Advanced,
			Prerequisites: []string{"functions-graphs.polynomials"},
		},
	}
}

// Register registers the module with the catalog.
func (m *Module) Register(ctx context.Context, c *catalog.Catalog) *catalog.RegistrationResult {
	return c.Register(ctx, New())
}

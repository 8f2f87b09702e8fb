package permutation

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/syllabus"
)

// ID is the catalog identifier of this module.
const ID = "probability-statistics.permutation-slot-method"

// Topic is the syllabus topic the module belongs to.
const Topic = "counting"

// MaxItems bounds n so the slot diagram stays readable.
const MaxItems = 20

// Module implements the catalog.Module interface for this package.
type Module struct{}

// State is the working data of the slot-method visualization: choosing and
// ordering R items out of N fills R slots with N, N-1, ... choices.
type State struct {
	Topic      string
	N          int
	R          int
	Repetition bool
}

// TopicID implements descriptor.State.
func (s *State) TopicID() string { return s.Topic }

// Slots returns the number of choices for each slot.
func (s *State) Slots() []int {
	slots := make([]int, s.R)
	for i := range slots {
		if s.Repetition {
			slots[i] = s.N
		} else {
			slots[i] = s.N - i
		}
	}
	return slots
}

// Count returns the number of arrangements, n^r with repetition and nPr
// without.
func (s *State) Count() *big.Int {
	total := big.NewInt(1)
	for _, k := range s.Slots() {
		total.Mul(total, big.NewInt(int64(k)))
	}
	return total
}

// NewState returns the starting arrangement: 3 of 5 items, no repetition.
func NewState() descriptor.State {
	return &State{Topic: Topic, N: 5, R: 3}
}

// Validate checks the bounds of the arrangement.
func Validate(st descriptor.State) []string {
	s, ok := st.(*State)
	if !ok || s == nil {
		return []string{fmt.Sprintf("unexpected state type %T", st)}
	}

	var problems []string
	if s.N < 1 || s.N > MaxItems {
		problems = append(problems, fmt.Sprintf("n must be between 1 and %d, got %d", MaxItems, s.N))
	}
	if s.R < 0 {
		problems = append(problems, fmt.Sprintf("r must not be negative, got %d", s.R))
	}
	if !s.Repetition && s.R > s.N {
		problems = append(problems, fmt.Sprintf("r (%d) must not exceed n (%d) without repetition", s.R, s.N))
	}
	return problems
}

// Render draws the slots as text, e.g. "[5] x [4] x [3] = 60".
func Render(st descriptor.State, _ func(descriptor.State)) (any, error) {
	s, ok := st.(*State)
	if !ok || s == nil {
		return nil, fmt.Errorf("unexpected state type %T", st)
	}
	if problems := Validate(s); len(problems) > 0 {
		return nil, fmt.Errorf("cannot render invalid state: %s", strings.Join(problems, "; "))
	}
	if s.R == 0 {
		return "(no slots) = 1", nil
	}

	parts := make([]string, 0, s.R)
	for _, k := range s.Slots() {
		parts = append(parts, fmt.Sprintf("[%d]", k))
	}
	return fmt.Sprintf("%s = %s", strings.Join(parts, " x "), s.Count()), nil
}

// New returns the module descriptor.
func New() *descriptor.Descriptor {
	return &descriptor.Descriptor{
		ID:          ID,
		Name:        "Permutations: the slot method",
		Description: "Count ordered arrangements by filling slots one choice at a time.",
		Syllabus: &descriptor.SyllabusRef{
			Strand:   syllabus.ProbabilityStatistics,
			Topic:    Topic,
			Subtopic: "permutations",
		},
		Engine:        descriptor.EngineText,
		Render:        descriptor.RenderFunc(Render),
		InitialState:  NewState,
		ValidateState: Validate,
		Metadata: &descriptor.Metadata{
			Version:    "1.0.0",
			Tags:       []string{"counting", "permutations", "factorial"},
			Difficulty: descriptor.Beginner,
			LearningObjectives: []string{
				"Apply the multiplication principle to ordered selections",
				"Relate nPr to factorials",
			},
		},
	}
}

// Register registers the module with the catalog.
func (m *Module) Register(ctx context.Context, c *catalog.Catalog) *catalog.RegistrationResult {
	return c.Register(ctx, New())
}

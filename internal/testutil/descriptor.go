package testutil

import (
	"fmt"

	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/syllabus"
)

// FakeState is a minimal module state used across package tests.
type FakeState struct {
	Topic string
	Value int
}

// TopicID implements descriptor.State.
func (s *FakeState) TopicID() string { return s.Topic }

// NewDescriptor builds a descriptor that passes validation. Its state is a
// *FakeState whose Value must be non-negative.
func NewDescriptor(id string, strand syllabus.Strand, topic string, tags ...string) *descriptor.Descriptor {
	if tags == nil {
		tags = []string{}
	}
	return &descriptor.Descriptor{
		ID:          id,
		Name:        "Module " + id,
		Description: "Test module " + id,
		Syllabus:    &descriptor.SyllabusRef{Strand: strand, Topic: topic},
		Engine:      descriptor.EngineText,
		Render: descriptor.RenderFunc(func(state descriptor.State, onChange func(descriptor.State)) (any, error) {
			return fmt.Sprintf("%s:%d", state.TopicID(), state.(*FakeState).Value), nil
		}),
		InitialState: func() descriptor.State {
			return &FakeState{Topic: id}
		},
		ValidateState: func(state descriptor.State) []string {
			fs, ok := state.(*FakeState)
			if !ok {
				return []string{"unexpected state type"}
			}
			if fs.Value < 0 {
				return []string{"value must be non-negative"}
			}
			return nil
		},
		Metadata: &descriptor.Metadata{
			Version: "1.0.0",
			Tags:    tags,
		},
	}
}

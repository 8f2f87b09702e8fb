package descriptor

import (
	"slices"
	"time"

	"github.com/vk/mathviz/internal/syllabus"
)

// Engine names the rendering technology a module's entry point expects. It
// is informational only; nothing in the catalog branches on it.
type Engine string

const (
	EngineSVG    Engine = "svg"
	EngineCanvas Engine = "canvas"
	EngineThree  Engine = "three"
	EnginePlotly Engine = "plotly"
	EngineText   Engine = "text"
	EngineLua    Engine = "lua"
)

// Difficulty is the optional difficulty rating of a module.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// SyllabusRef places a module in the strand/topic hierarchy.
type SyllabusRef struct {
	Strand   syllabus.Strand
	Topic    string
	Subtopic string
}

// Metadata holds versioning and discovery information.
type Metadata struct {
	Version            string
	Tags               []string
	Difficulty         Difficulty
	Prerequisites      []string
	EstimatedTime      time.Duration
	LearningObjectives []string
}

// Descriptor describes one pluggable visualization module.
type Descriptor struct {
	ID          string
	Name        string
	Description string
	Syllabus    *SyllabusRef
	Engine      Engine

	Render        Renderer
	InitialState  InitialStateFunc
	ValidateState ValidateFunc

	Metadata *Metadata
}

// Tags returns the declared tags, or nil when metadata is absent.
func (d *Descriptor) Tags() []string {
	if d == nil || d.Metadata == nil {
		return nil
	}
	return d.Metadata.Tags
}

// Strand returns the syllabus strand, or "" when the reference is absent.
func (d *Descriptor) Strand() syllabus.Strand {
	if d == nil || d.Syllabus == nil {
		return ""
	}
	return d.Syllabus.Strand
}

// Topic returns the syllabus topic, or "" when the reference is absent.
func (d *Descriptor) Topic() string {
	if d == nil || d.Syllabus == nil {
		return ""
	}
	return d.Syllabus.Topic
}

// Clone returns a copy that shares no slices or pointers with d. Function
// values are shared.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	out := *d
	if d.Syllabus != nil {
		ref := *d.Syllabus
		out.Syllabus = &ref
	}
	if d.Metadata != nil {
		md := *d.Metadata
		md.Tags = slices.Clone(d.Metadata.Tags)
		md.Prerequisites = slices.Clone(d.Metadata.Prerequisites)
		md.LearningObjectives = slices.Clone(d.Metadata.LearningObjectives)
		out.Metadata = &md
	}
	return &out
}

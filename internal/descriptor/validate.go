package descriptor

import (
	"fmt"
	"reflect"

	"github.com/vk/mathviz/internal/moduleid"
)

// Field names used in validation messages.
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldSyllabus      = "syllabusRef"
	FieldEngine        = "engine"
	FieldRender        = "render"
	FieldInitialState  = "initialState"
	FieldValidateState = "validateState"
	FieldMetadata      = "metadata"
)

// Validate checks d against the registration contract and returns every
// problem found instead of stopping at the first. Warnings never make a
// descriptor invalid.
//
// Validate invokes d.InitialState once as a smoke test. A panic inside the
// factory is recovered and reported as an error.
func Validate(d *Descriptor) (errs []string, warnings []string) {
	if d == nil {
		return []string{"descriptor is nil"}, nil
	}

	missing := func(field string) {
		errs = append(errs, fmt.Sprintf("missing required field: %s", field))
	}

	if d.ID == "" {
		missing(FieldID)
	} else if _, err := moduleid.Parse(d.ID); err != nil {
		errs = append(errs, fmt.Sprintf("invalid id %q: %v", d.ID, err))
	}
	if d.Name == "" {
		missing(FieldName)
	}
	if d.Description == "" {
		missing(FieldDescription)
	}
	if d.Engine == "" {
		missing(FieldEngine)
	}

	if d.Render == nil {
		missing(FieldRender)
	} else if !invocable(d.Render) {
		errs = append(errs, fmt.Sprintf("%s entry point is not invocable", FieldRender))
	}
	if d.InitialState == nil {
		missing(FieldInitialState)
	}
	if d.ValidateState == nil {
		missing(FieldValidateState)
	}

	if d.Syllabus == nil {
		missing(FieldSyllabus)
	} else {
		if d.Syllabus.Strand == "" {
			missing(FieldSyllabus + ".strand")
		} else if !d.Syllabus.Strand.IsValid() {
			errs = append(errs, fmt.Sprintf("%s.strand %q is not a known strand", FieldSyllabus, d.Syllabus.Strand))
		}
		if d.Syllabus.Topic == "" {
			missing(FieldSyllabus + ".topic")
		}
	}

	if d.Metadata == nil {
		missing(FieldMetadata)
	} else {
		if d.Metadata.Version == "" {
			missing(FieldMetadata + ".version")
		}
		if d.Metadata.Tags == nil {
			errs = append(errs, fmt.Sprintf("%s.tags must be a list", FieldMetadata))
		}
		for _, tag := range d.Metadata.Tags {
			if tag == "" {
				warnings = append(warnings, fmt.Sprintf("%s.tags contains an empty tag", FieldMetadata))
				break
			}
		}
		switch d.Metadata.Difficulty {
		case "", Beginner, Intermediate, Advanced:
		default:
			warnings = append(warnings, fmt.Sprintf("%s.difficulty %q is not a recognised level", FieldMetadata, d.Metadata.Difficulty))
		}
	}

	if d.InitialState != nil {
		topicID, err := smokeTest(d.InitialState)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("%s smoke test failed: %v", FieldInitialState, err))
		case topicID == "":
			errs = append(errs, fmt.Sprintf("%s result has no topicId", FieldInitialState))
		case topicID != d.ID && topicID != d.Topic():
			warnings = append(warnings, fmt.Sprintf("%s topicId %q matches neither the id nor the syllabus topic", FieldInitialState, topicID))
		}
	}

	return errs, warnings
}

// smokeTest calls the factory once and returns the topic id of the result.
func smokeTest(factory InitialStateFunc) (topicID string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	state := factory()
	if isNil(state) {
		return "", fmt.Errorf("returned nil state")
	}
	return state.TopicID(), nil
}

// invocable reports whether r can actually be called. An interface holding
// a nil function or pointer is not.
func invocable(r Renderer) bool {
	return !isNil(r)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

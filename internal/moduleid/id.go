package moduleid

import (
	"slices"
	"strings"
)

// ID is the structured form of a module identifier.
type ID struct {
	Segments []string
}

// String serializes the ID into its canonical dotted form.
func (id *ID) String() string {
	if id == nil {
		return ""
	}
	return strings.Join(id.Segments, ".")
}

// Equal checks for equality between two ID pointers.
func (id *ID) Equal(other *ID) bool {
	if id == nil || other == nil {
		return id == other
	}
	return slices.Equal(id.Segments, other.Segments)
}

// Root returns the first segment, which by convention names the strand
// the module was authored under.
func (id *ID) Root() string {
	if id == nil || len(id.Segments) == 0 {
		return ""
	}
	return id.Segments[0]
}

// Leaf returns the last segment.
func (id *ID) Leaf() string {
	if id == nil || len(id.Segments) == 0 {
		return ""
	}
	return id.Segments[len(id.Segments)-1]
}

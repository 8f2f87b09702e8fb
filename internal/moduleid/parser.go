package moduleid

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single kebab-case segment, e.g. `dot-cross-product`.
var segmentRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Parse creates a new ID by parsing its canonical string representation.
func Parse(raw string) (*ID, error) {
	if raw == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}

	parts := strings.Split(raw, ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("identifier %q must have at least two dot-separated segments", raw)
	}

	id := &ID{Segments: make([]string, 0, len(parts))}
	for _, segment := range parts {
		if segment == "" {
			return nil, fmt.Errorf("identifier %q contains empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return nil, fmt.Errorf("invalid segment %q: must be lowercase kebab-case", segment)
		}
		id.Segments = append(id.Segments, segment)
	}

	return id, nil
}

// IsValid reports whether raw is a well-formed module identifier.
func IsValid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// IsValidSegment reports whether s is a single well-formed segment. Strand
// and topic keys use the same alphabet as id segments.
func IsValidSegment(s string) bool {
	return segmentRegex.MatchString(s)
}

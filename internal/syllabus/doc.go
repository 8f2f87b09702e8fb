// Package syllabus defines the fixed subject hierarchy that modules are
// placed in: a closed set of strands, each holding an open set of topics.
//
// The hierarchy itself is static. A Tree supplies display labels and topic
// ordering and is normally decoded from the `strand` blocks of the
// application's HCL settings file.
package syllabus

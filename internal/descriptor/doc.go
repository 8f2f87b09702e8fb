// Package descriptor defines the unit of registration for a visualization
// module: its identity, syllabus placement, rendering entry point, initial
// state factory and state validator.
//
// A Descriptor is plain data plus three function-valued capabilities. The
// catalog validates descriptors with Validate before committing them and
// treats them as immutable afterwards.
package descriptor

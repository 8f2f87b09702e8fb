// Package catalog is the single source of truth for registered modules.
//
// The Catalog maps module ids to descriptors and maintains derived indexes
// by syllabus strand, by topic and by free-form tag. Every descriptor goes
// through a validation gate before it is committed; a rejected descriptor
// leaves the catalog exactly as it was.
//
// Modules are registered by an explicit, ordered bootstrap (see Bootstrap)
// rather than as an import side effect, so initialization order is
// deterministic and each test can build its own Catalog.
package catalog

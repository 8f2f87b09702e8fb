/*
Package moduleid provides a structured representation for module
identifiers, based on the canonical dotted-path format.

An identifier is two or more dot-separated segments, where every segment is
lowercase kebab-case: `[a-z0-9]+(-[a-z0-9]+)*`. For example
`vectors.dot-cross-product` or `probability-statistics.permutation-slot-method`.

This package centralizes the formatting and parsing logic so the catalog,
navigation and module loaders agree on what a valid id is.
*/
package moduleid

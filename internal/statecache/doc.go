// Package statecache provides the in-memory store of in-progress module
// state.
//
// # Purpose
//
// Every module the user has touched during a session keeps its last known
// state here, so leaving a module and coming back later resumes it with the
// exact prior configuration.
//
// # Characteristics
//
//   - **Session-scoped:** Created fresh for each process, never persisted.
//   - **Opaque:** Values are stored and returned as-is; the cache never
//     merges, validates or interprets them.
//   - **Explicit eviction only:** Entries leave the cache through Clear or
//     ResetAll. There is no TTL and no size-based eviction.
//
// The cache is independent of navigation history, so clearing history does
// not lose in-progress work.
package statecache

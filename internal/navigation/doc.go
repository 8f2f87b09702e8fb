// Package navigation tracks the user's position in the strand, topic and
// module hierarchy.
//
// The Controller moves through Home → StrandSelected → TopicSelected →
// ModuleActive. Selecting a strand always clears the topic and module,
// selecting a topic always clears the module, and selecting a module is the
// only transition that appends to the bounded history used by GoBack.
//
// The controller does not check that a module belongs to the selected
// topic; keeping the two consistent is the caller's job.
//
// When a kvstore.Store is attached, the position (and only the position) is
// persisted after every transition so it can be restored after a restart.
// History is always session-scoped.
package navigation

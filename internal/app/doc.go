// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the wiring of the module catalog, the
// navigation controller, the state cache and the session that ties them
// together, decoupled from any specific entrypoint like a CLI or a TUI.
package app

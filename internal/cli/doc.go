// Package cli is responsible for all command-line interface concerns. It
// builds the cobra command tree, binds flags and MATHVIZ_* environment
// variables through viper, translates them into an app.Config, and
// presents catalog, navigation and session results as text.
package cli

// Package cells provides a declarative terminal UI framework for Go.
//
// Users import this single package for the complete public API:
// app lifecycle, element construction, layout types, events, and reactive state.
package cells

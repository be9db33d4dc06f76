// Package registry provides the central "glue" for the component system.
//
// The Registry stores the mapping between the kind strings used in
// component manifests (e.g., "gate") and the compiled Go behaviors that
// give those kinds their ports and logic. It also holds the parsed,
// format-agnostic definitions from the manifests themselves.
//
// During application startup, the registry is populated and then validated
// to ensure that the Go code and the manifests are in sync, so that every
// component a document can name can also be built and simulated.
package registry

// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface for reading it from
// various sources.
//
// A Model carries two kinds of content: component manifests, which feed
// the component catalog, and board documents, which the builder turns into
// a live circuit. Concrete loaders, such as the HCL one, live in separate
// packages.
package config

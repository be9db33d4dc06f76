// Package library holds the built-in component kinds: their Go behaviors
// and the manifest that names them in the catalog.
package library

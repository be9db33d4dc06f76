// Package app contains the core application wiring. It builds the logger,
// the component registry and catalog, and opens circuit documents,
// decoupled from any specific entrypoint like a CLI or a test harness.
package app

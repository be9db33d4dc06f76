// Package cli is the command-line front end: a cobra command tree that
// validates flags, builds the application and maps failures to exit codes.
// Usage errors exit with 2, every other failure with 1.
package cli

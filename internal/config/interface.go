package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads every configuration file found under paths and translates
	// them into one format-agnostic model. A path that does not exist is an
	// error wrapping fs.ErrNotExist.
	Load(ctx context.Context, paths ...string) (*Model, error)

	// LoadSource translates a single in-memory source. filename is used for
	// diagnostics only.
	LoadSource(ctx context.Context, filename string, src []byte) (*Model, error)
}

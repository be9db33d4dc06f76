package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/circuitprobe/internal/builder"
	"github.com/specialistvlad/circuitprobe/internal/catalog"
	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/config"
	"github.com/specialistvlad/circuitprobe/internal/ctxlog"
	"github.com/specialistvlad/circuitprobe/internal/library"
	"github.com/specialistvlad/circuitprobe/internal/registry"
)

// App encapsulates the application's dependencies: its logger, the
// component registry and the catalog derived from it.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	loader   config.Loader
	registry *registry.Registry
	catalog  *catalog.Catalog
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// A manifest that fails to load or disagrees with the registered behaviors
// is a programmer error and panics.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// The embedded manifest comes first so extra manifests cannot shadow it.
	model, err := loader.LoadSource(ctx, library.ManifestName, library.Manifest)
	if err != nil {
		panic(fmt.Errorf("failed to load the built-in component manifest: %w", err))
	}
	if len(cfg.CatalogPaths) > 0 {
		extra, err := loader.Load(ctx, cfg.CatalogPaths...)
		if err != nil {
			panic(fmt.Errorf("failed to load component manifests: %w", err))
		}
		if len(extra.Boards) > 0 {
			logger.Warn("Component manifests declare boards; they are ignored.", "boards", len(extra.Boards))
		}
		model.Merge(&config.Model{Components: extra.Components})
	}
	logger.Debug("Component manifests loaded.", "components", len(model.Components))

	// Create and populate the registry with Go behaviors.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	reg.PopulateDefinitionsFromModel(model)
	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	cat, err := catalog.Build(reg.Descriptors())
	if err != nil {
		panic(err)
	}
	logger.Debug("Component catalog built.", "names", len(cat.Names()))

	return &App{
		outW:     outW,
		logger:   logger,
		loader:   loader,
		registry: reg,
		catalog:  cat,
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Registry returns the application's registry.
func (a *App) Registry() *registry.Registry { return a.registry }

// Catalog returns the catalog of every known component type.
func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// OpenDocument loads the circuit document at path and builds it. Component
// types declared in a document are not allowed; they belong in manifests.
func (a *App) OpenDocument(ctx context.Context, path string) (*circuit.Document, error) {
	logger := ctxlog.FromContext(ctx)
	model, err := a.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if len(model.Components) > 0 {
		return nil, fmt.Errorf("document %s declares component types; pass them with --catalog instead", path)
	}
	return a.build(ctx, path, model, logger)
}

// OpenSource builds a document from an in-memory source.
func (a *App) OpenSource(ctx context.Context, filename string, src []byte) (*circuit.Document, error) {
	model, err := a.loader.LoadSource(ctx, filename, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if len(model.Components) > 0 {
		return nil, fmt.Errorf("document %s declares component types; pass them with --catalog instead", filename)
	}
	return a.build(ctx, filename, model, ctxlog.FromContext(ctx))
}

func (a *App) build(ctx context.Context, path string, model *config.Model, logger *slog.Logger) (*circuit.Document, error) {
	doc, err := builder.Build(ctx, path, model, a.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to build document: %w", err)
	}
	logger.Info("Document opened.", "path", path, "boards", len(doc.Boards()))
	return doc, nil
}

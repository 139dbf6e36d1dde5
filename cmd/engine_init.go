package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/policy-extract/internal/extract"
	"github.com/sells-group/policy-extract/internal/model"
	"github.com/sells-group/policy-extract/internal/ocr"
	"github.com/sells-group/policy-extract/internal/registry"
	"github.com/sells-group/policy-extract/internal/store"
)

// engineEnv holds the initialized extractor, OCR frontend, store, and
// field registry shared by the extract/batch/serve commands.
type engineEnv struct {
	Engine *extract.Engine
	OCR    ocr.Extractor
	Store  store.Store
	Fields *model.FieldRegistry
}

// Close releases resources held by the environment.
func (e *engineEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEngine validates config, loads the field schema, and builds the
// extraction engine with its OCR and storage collaborators. Callers should
// defer env.Close().
func initEngine(ctx context.Context, mode string) (*engineEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	fields, err := loadFields()
	if err != nil {
		return nil, err
	}

	engine, err := extract.New(fields, engineSettings(), zap.L())
	if err != nil {
		return nil, err
	}

	ocrClient, err := ocr.NewExtractor(cfg.OCR)
	if err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	zap.L().Info("extraction engine ready", zap.Int("fields", fields.Len()))

	return &engineEnv{
		Engine: engine,
		OCR:    ocrClient,
		Store:  st,
		Fields: fields,
	}, nil
}

// loadFields returns the production schema unless a fixture override is
// configured.
func loadFields() (*model.FieldRegistry, error) {
	if cfg.Fields.FixturePath == "" {
		return registry.Production(), nil
	}
	zap.L().Info("loading field schema from fixture", zap.String("path", cfg.Fields.FixturePath))
	return registry.LoadFieldsFromFile(cfg.Fields.FixturePath)
}

// engineSettings maps the config tunables onto the engine's Config.
func engineSettings() extract.Config {
	ec := extract.Config{
		MinScore:            cfg.Engine.MinScore,
		DirectBase:          cfg.Engine.DirectBase,
		DirectDecay:         cfg.Engine.DirectDecay,
		DirectFloor:         cfg.Engine.DirectFloor,
		ProximityConfidence: cfg.Engine.ProximityConfidence,
		FuzzyThreshold:      cfg.Engine.FuzzyThreshold,
		FuzzyBase:           cfg.Engine.FuzzyBase,
		FallbackMonetary:    cfg.Engine.FallbackMonetary,
		FallbackCode:        cfg.Engine.FallbackCode,
		FallbackDate:        cfg.Engine.FallbackDate,
		UnmatchedLimit:      cfg.Engine.UnmatchedLimit,
		Bounds:              cfg.Engine.Bounds,
	}

	if cfg.Fields.BoundsPath != "" {
		bounds, err := registry.LoadBoundsFromFile(cfg.Fields.BoundsPath)
		if err != nil {
			zap.L().Warn("monetary bounds fixture not loaded, using configured bounds", zap.Error(err))
		} else {
			ec.Bounds = bounds
		}
	}

	return ec
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "policy-extract.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

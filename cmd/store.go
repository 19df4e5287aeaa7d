package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/advisory-cli/internal/model"
	"github.com/sells-group/advisory-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "advisory.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// loadCatalog returns the configured catalogue override, or the built-in
// one when no path is set.
func loadCatalog() (*model.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return model.DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "read catalog %s", cfg.Catalog.Path)
	}
	cat, err := model.ParseCatalog(raw)
	if err != nil {
		return nil, eris.Wrapf(err, "parse catalog %s", cfg.Catalog.Path)
	}
	return cat, nil
}

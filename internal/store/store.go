// Package store persists clients and their form documents. Form data is
// stored as raw JSON: the intake forms are loosely typed and only the
// aggregation engine assigns meaning to individual values at read time.
package store

import (
	"context"
	"encoding/json"

	"github.com/sells-group/advisory-cli/internal/model"
)

// Store defines the persistence interface for the intake tool.
type Store interface {
	// Clients
	CreateClient(ctx context.Context, name, email string) (*model.Client, error)
	GetClient(ctx context.Context, clientID string) (*model.Client, error)
	ListClients(ctx context.Context) ([]model.Client, error)

	// Form records. UpsertRecord creates or replaces the single record for
	// a client/module pair; the first successful write is what flips the
	// module's completion flag. GetRecord returns nil (not an error) when
	// no record exists, so a brand-new client renders as all zeros.
	UpsertRecord(ctx context.Context, clientID string, module model.ModuleKey, data json.RawMessage, completed bool) (*model.FormRecord, error)
	GetRecord(ctx context.Context, clientID string, module model.ModuleKey) (*model.FormRecord, error)
	ListRecords(ctx context.Context, clientID string) ([]model.FormRecord, error)

	// ModuleFlags reports record existence per module for one client.
	ModuleFlags(ctx context.Context, clientID string) (model.ModuleFlags, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

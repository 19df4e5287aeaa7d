package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/advisory-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS clients (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS form_records (
	id           TEXT PRIMARY KEY,
	client_id    TEXT NOT NULL REFERENCES clients(id),
	module       TEXT NOT NULL,
	data         TEXT NOT NULL,
	is_completed INTEGER NOT NULL DEFAULT 0,
	completed_at DATETIME,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE(client_id, module)
);

CREATE INDEX IF NOT EXISTS idx_form_records_client_id ON form_records(client_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateClient(ctx context.Context, name, email string) (*model.Client, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clients (id, name, email, created_at) VALUES (?, ?, ?, ?)`,
		id, name, email, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert client")
	}

	return &model.Client{ID: id, Name: name, Email: email, CreatedAt: now}, nil
}

func (s *SQLiteStore) GetClient(ctx context.Context, clientID string) (*model.Client, error) {
	var c model.Client
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, created_at FROM clients WHERE id = ?`,
		clientID,
	).Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: client %s not found", clientID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get client %s", clientID)
	}
	return &c, nil
}

func (s *SQLiteStore) ListClients(ctx context.Context) ([]model.Client, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, created_at FROM clients ORDER BY created_at`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list clients")
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan client")
		}
		clients = append(clients, c)
	}
	return clients, eris.Wrap(rows.Err(), "sqlite: list clients iterate")
}

func (s *SQLiteStore) UpsertRecord(ctx context.Context, clientID string, module model.ModuleKey, data json.RawMessage, completed bool) (*model.FormRecord, error) {
	if !json.Valid(data) {
		return nil, eris.Errorf("sqlite: record for module %s is not valid JSON", module)
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	var completedAt *time.Time
	if completed {
		completedAt = &now
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO form_records (id, client_id, module, data, is_completed, completed_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(client_id, module) DO UPDATE SET
			data = excluded.data,
			is_completed = excluded.is_completed,
			completed_at = COALESCE(form_records.completed_at, excluded.completed_at),
			updated_at = excluded.updated_at`,
		id, clientID, string(module), string(data), completed, completedAt, now, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: upsert record %s/%s", clientID, module)
	}

	return s.GetRecord(ctx, clientID, module)
}

func (s *SQLiteStore) GetRecord(ctx context.Context, clientID string, module model.ModuleKey) (*model.FormRecord, error) {
	var (
		r    model.FormRecord
		data string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, client_id, module, data, is_completed, completed_at, created_at, updated_at
		 FROM form_records WHERE client_id = ? AND module = ?`,
		clientID, string(module),
	).Scan(&r.ID, &r.ClientID, &r.Module, &data, &r.IsCompleted, &r.CompletedAt, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get record %s/%s", clientID, module)
	}
	r.Data = json.RawMessage(data)
	return &r, nil
}

func (s *SQLiteStore) ListRecords(ctx context.Context, clientID string) ([]model.FormRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, client_id, module, data, is_completed, completed_at, created_at, updated_at
		 FROM form_records WHERE client_id = ? ORDER BY created_at`,
		clientID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list records %s", clientID)
	}
	defer rows.Close()

	var records []model.FormRecord
	for rows.Next() {
		var (
			r    model.FormRecord
			data string
		)
		if err := rows.Scan(&r.ID, &r.ClientID, &r.Module, &data, &r.IsCompleted, &r.CompletedAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		r.Data = json.RawMessage(data)
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list records iterate")
}

// ModuleFlags derives completion flags from record existence. A module's
// own is_completed marker is persisted but not consulted here; existence
// is the completion semantic for progress purposes.
func (s *SQLiteStore) ModuleFlags(ctx context.Context, clientID string) (model.ModuleFlags, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT module FROM form_records WHERE client_id = ?`,
		clientID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: module flags %s", clientID)
	}
	defer rows.Close()

	flags := make(model.ModuleFlags)
	for rows.Next() {
		var module string
		if err := rows.Scan(&module); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan module flag")
		}
		flags[model.ModuleKey(module)] = true
	}
	return flags, eris.Wrap(rows.Err(), "sqlite: module flags iterate")
}

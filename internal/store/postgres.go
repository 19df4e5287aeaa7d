package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/advisory-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_client": `INSERT INTO clients (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
	"get_client":    `SELECT id, name, email, created_at FROM clients WHERE id = $1`,
	"get_record":    `SELECT id, client_id, module, data, is_completed, completed_at, created_at, updated_at FROM form_records WHERE client_id = $1 AND module = $2`,
	"module_flags":  `SELECT module FROM form_records WHERE client_id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS clients (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS form_records (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	client_id    TEXT NOT NULL REFERENCES clients(id),
	module       TEXT NOT NULL,
	data         JSONB NOT NULL,
	is_completed BOOLEAN NOT NULL DEFAULT false,
	completed_at TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE(client_id, module)
);

CREATE INDEX IF NOT EXISTS idx_form_records_client_id ON form_records(client_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateClient(ctx context.Context, name, email string) (*model.Client, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO clients (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		id, name, email, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert client")
	}

	return &model.Client{ID: id, Name: name, Email: email, CreatedAt: now}, nil
}

func (s *PostgresStore) GetClient(ctx context.Context, clientID string) (*model.Client, error) {
	var c model.Client
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, created_at FROM clients WHERE id = $1`,
		clientID,
	).Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("postgres: client %s not found", clientID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get client %s", clientID)
	}
	return &c, nil
}

func (s *PostgresStore) ListClients(ctx context.Context) ([]model.Client, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, created_at FROM clients ORDER BY created_at`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list clients")
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan client")
		}
		clients = append(clients, c)
	}
	return clients, eris.Wrap(rows.Err(), "postgres: list clients iterate")
}

func (s *PostgresStore) UpsertRecord(ctx context.Context, clientID string, module model.ModuleKey, data json.RawMessage, completed bool) (*model.FormRecord, error) {
	if !json.Valid(data) {
		return nil, eris.Errorf("postgres: record for module %s is not valid JSON", module)
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	var completedAt *time.Time
	if completed {
		completedAt = &now
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO form_records (id, client_id, module, data, is_completed, completed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (client_id, module) DO UPDATE SET
			data = EXCLUDED.data,
			is_completed = EXCLUDED.is_completed,
			completed_at = COALESCE(form_records.completed_at, EXCLUDED.completed_at),
			updated_at = EXCLUDED.updated_at`,
		id, clientID, string(module), data, completed, completedAt, now, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: upsert record %s/%s", clientID, module)
	}

	return s.GetRecord(ctx, clientID, module)
}

func (s *PostgresStore) GetRecord(ctx context.Context, clientID string, module model.ModuleKey) (*model.FormRecord, error) {
	var (
		r    model.FormRecord
		data []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, client_id, module, data, is_completed, completed_at, created_at, updated_at
		 FROM form_records WHERE client_id = $1 AND module = $2`,
		clientID, string(module),
	).Scan(&r.ID, &r.ClientID, &r.Module, &data, &r.IsCompleted, &r.CompletedAt, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get record %s/%s", clientID, module)
	}
	r.Data = json.RawMessage(data)
	return &r, nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, clientID string) ([]model.FormRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, client_id, module, data, is_completed, completed_at, created_at, updated_at
		 FROM form_records WHERE client_id = $1 ORDER BY created_at`,
		clientID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list records %s", clientID)
	}
	defer rows.Close()

	var records []model.FormRecord
	for rows.Next() {
		var (
			r    model.FormRecord
			data []byte
		)
		if err := rows.Scan(&r.ID, &r.ClientID, &r.Module, &data, &r.IsCompleted, &r.CompletedAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
		}
		r.Data = json.RawMessage(data)
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list records iterate")
}

// ModuleFlags derives completion flags from record existence, matching the
// progress tracker's exists-implies-complete semantic.
func (s *PostgresStore) ModuleFlags(ctx context.Context, clientID string) (model.ModuleFlags, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT module FROM form_records WHERE client_id = $1`,
		clientID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: module flags %s", clientID)
	}
	defer rows.Close()

	flags := make(model.ModuleFlags)
	for rows.Next() {
		var module string
		if err := rows.Scan(&module); err != nil {
			return nil, eris.Wrap(err, "postgres: scan module flag")
		}
		flags[model.ModuleKey(module)] = true
	}
	return flags, eris.Wrap(rows.Err(), "postgres: module flags iterate")
}

package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/db"
	"github.com/sells-group/prospect-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
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
	"load_overlays":     `SELECT institution_id, status, contact, notes, last_touch FROM overlays`,
	"save_overlay":      `INSERT INTO overlays (institution_id, status, contact, notes, last_touch, updated_at) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (institution_id) DO UPDATE SET status = $2, contact = $3, notes = $4, last_touch = $5, updated_at = $6`,
	"load_institutions": `SELECT record FROM institutions`,
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

	// Prepare frequently-used statements on each new connection.
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

// newPostgresWithPool wires an existing pool, used by tests with pgxmock.
func newPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS overlays (
	institution_id TEXT PRIMARY KEY,
	status         TEXT NOT NULL DEFAULT '',
	contact        TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	last_touch     TIMESTAMPTZ,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS institutions (
	id         TEXT PRIMARY KEY,
	record     JSONB NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_overlays_status ON overlays(status);
CREATE INDEX IF NOT EXISTS idx_institutions_fetched_at ON institutions(fetched_at);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

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

func (s *PostgresStore) LoadOverlays(ctx context.Context) (map[string]model.CRMOverlay, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT institution_id, status, contact, notes, last_touch FROM overlays`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load overlays")
	}
	defer rows.Close()

	overlays := make(map[string]model.CRMOverlay)
	for rows.Next() {
		var o model.CRMOverlay
		var status string
		var lastTouch *time.Time
		if err := rows.Scan(&o.InstitutionID, &status, &o.Contact, &o.Notes, &lastTouch); err != nil {
			return nil, eris.Wrap(err, "postgres: scan overlay")
		}
		o.Status = model.LeadStatus(status)
		o.LastTouch = lastTouch
		overlays[o.InstitutionID] = o
	}
	return overlays, eris.Wrap(rows.Err(), "postgres: load overlays iterate")
}

func (s *PostgresStore) SaveOverlay(ctx context.Context, id string, o model.CRMOverlay) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO overlays (institution_id, status, contact, notes, last_touch, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (institution_id) DO UPDATE SET
		   status = $2, contact = $3, notes = $4, last_touch = $5, updated_at = $6`,
		id, string(o.Status), o.Contact, o.Notes, o.LastTouch, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: save overlay %s", id)
}

func (s *PostgresStore) SaveInstitutions(ctx context.Context, insts []model.Institution) error {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(insts))
	for _, inst := range insts {
		record, err := json.Marshal(inst)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal institution %s", inst.ID)
		}
		rows = append(rows, []any{inst.ID, record, now})
	}

	_, err := db.Upsert(ctx, s.pool, db.UpsertSpec{
		Into:    "institutions",
		Columns: []string{"id", "record", "fetched_at"},
		Key:     []string{"id"},
	}, rows)
	return eris.Wrap(err, "postgres: save institutions")
}

func (s *PostgresStore) LoadInstitutions(ctx context.Context) ([]model.Institution, error) {
	rows, err := s.pool.Query(ctx, `SELECT record FROM institutions`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load institutions")
	}
	defer rows.Close()

	var insts []model.Institution
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, eris.Wrap(err, "postgres: scan institution")
		}
		var inst model.Institution
		if err := json.Unmarshal(record, &inst); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal institution")
		}
		insts = append(insts, inst)
	}
	return insts, eris.Wrap(rows.Err(), "postgres: load institutions iterate")
}

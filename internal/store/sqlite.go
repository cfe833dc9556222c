package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/prospect-cli/internal/model"
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
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS overlays (
	institution_id TEXT PRIMARY KEY,
	status         TEXT NOT NULL DEFAULT '',
	contact        TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	last_touch     DATETIME,
	updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS institutions (
	id         TEXT PRIMARY KEY,
	record     TEXT NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_overlays_status ON overlays(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadOverlays(ctx context.Context) (map[string]model.CRMOverlay, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT institution_id, status, contact, notes, last_touch FROM overlays`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load overlays")
	}
	defer rows.Close()

	overlays := make(map[string]model.CRMOverlay)
	for rows.Next() {
		var o model.CRMOverlay
		var status string
		var lastTouch sql.NullTime
		if err := rows.Scan(&o.InstitutionID, &status, &o.Contact, &o.Notes, &lastTouch); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan overlay")
		}
		o.Status = model.LeadStatus(status)
		if lastTouch.Valid {
			t := lastTouch.Time
			o.LastTouch = &t
		}
		overlays[o.InstitutionID] = o
	}
	return overlays, eris.Wrap(rows.Err(), "sqlite: load overlays iterate")
}

func (s *SQLiteStore) SaveOverlay(ctx context.Context, id string, o model.CRMOverlay) error {
	var lastTouch any
	if o.LastTouch != nil {
		lastTouch = o.LastTouch.UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO overlays (institution_id, status, contact, notes, last_touch, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (institution_id) DO UPDATE SET
		   status = excluded.status, contact = excluded.contact,
		   notes = excluded.notes, last_touch = excluded.last_touch,
		   updated_at = excluded.updated_at`,
		id, string(o.Status), o.Contact, o.Notes, lastTouch, time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: save overlay %s", id)
}

func (s *SQLiteStore) SaveInstitutions(ctx context.Context, insts []model.Institution) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin snapshot tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM institutions`); err != nil {
		return eris.Wrap(err, "sqlite: clear snapshot")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO institutions (id, record, fetched_at) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare snapshot insert")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, inst := range insts {
		record, err := json.Marshal(inst)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal institution %s", inst.ID)
		}
		if _, err := stmt.ExecContext(ctx, inst.ID, string(record), now); err != nil {
			return eris.Wrapf(err, "sqlite: insert institution %s", inst.ID)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit snapshot")
}

func (s *SQLiteStore) LoadInstitutions(ctx context.Context) ([]model.Institution, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record FROM institutions`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load institutions")
	}
	defer rows.Close()

	var insts []model.Institution
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan institution")
		}
		var inst model.Institution
		if err := json.Unmarshal([]byte(record), &inst); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal institution")
		}
		insts = append(insts, inst)
	}
	return insts, eris.Wrap(rows.Err(), "sqlite: load institutions iterate")
}

// Package store persists the CRM overlay records that sales reps edit on
// top of the fetched institution data, plus a local snapshot of the last
// feed refresh so the CLI works offline.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/config"
	"github.com/sells-group/prospect-cli/internal/model"
)

// Store defines the persistence interface for overlays and snapshots.
type Store interface {
	// Overlays
	LoadOverlays(ctx context.Context) (map[string]model.CRMOverlay, error)
	SaveOverlay(ctx context.Context, id string, o model.CRMOverlay) error

	// Institution snapshot from the last feed refresh
	SaveInstitutions(ctx context.Context, insts []model.Institution) error
	LoadInstitutions(ctx context.Context) ([]model.Institution, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// New selects a store backend from config.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = "prospect.db"
		}
		return NewSQLite(path)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

// Merge applies overlays onto institutions by id and returns the same
// slice. Applying the same overlay twice yields the same result.
func Merge(insts []model.Institution, overlays map[string]model.CRMOverlay) []model.Institution {
	if len(overlays) == 0 {
		return insts
	}
	for i := range insts {
		o, ok := overlays[insts[i].ID]
		if !ok {
			continue
		}
		if o.Status != "" {
			insts[i].Status = o.Status
		}
		if o.Contact != "" {
			insts[i].Contact = o.Contact
		}
		if o.Notes != "" {
			insts[i].Notes = o.Notes
		}
		if o.LastTouch != nil {
			insts[i].LastTouch = o.LastTouch
		}
	}
	return insts
}

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// UpsertSpec describes one batched-upsert target. Key lists the columns of
// the unique constraint; Update lists the columns rewritten on conflict and
// defaults to every non-key column when nil.
type UpsertSpec struct {
	Into    string // target table, optionally schema-qualified
	Columns []string
	Key     []string
	Update  []string
}

func (s UpsertSpec) validate() error {
	if len(s.Columns) == 0 {
		return eris.Errorf("db: upsert into %s: no columns", s.Into)
	}
	if len(s.Key) == 0 {
		return eris.Errorf("db: upsert into %s: no key columns", s.Into)
	}
	return nil
}

// stageName derives the session-local staging table name from the target.
func (s UpsertSpec) stageName() string {
	return "_stage_" + strings.ReplaceAll(s.Into, ".", "_")
}

func (s UpsertSpec) createStageSQL() string {
	return fmt.Sprintf(
		"CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP",
		pgx.Identifier{s.stageName()}.Sanitize(),
		qualify(s.Into),
	)
}

// mergeSQL builds the INSERT ... ON CONFLICT statement that folds the staged
// rows into the target.
func (s UpsertSpec) mergeSQL() string {
	cols := quoteList(s.Columns)

	update := s.Update
	if update == nil {
		key := make(map[string]bool, len(s.Key))
		for _, k := range s.Key {
			key[k] = true
		}
		for _, c := range s.Columns {
			if !key[c] {
				update = append(update, c)
			}
		}
	}

	set := make([]string, len(update))
	for i, col := range update {
		q := pgx.Identifier{col}.Sanitize()
		set[i] = q + " = EXCLUDED." + q
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT (%s) DO UPDATE SET %s",
		qualify(s.Into),
		cols,
		cols,
		pgx.Identifier{s.stageName()}.Sanitize(),
		quoteList(s.Key),
		strings.Join(set, ", "),
	)
}

// Upsert merges rows into spec.Into in one transaction: the rows are staged
// into a temp table with COPY, then folded in with INSERT ... ON CONFLICT.
// The staging table drops itself on commit. Returns the rows written.
func Upsert(ctx context.Context, pool Pool, spec UpsertSpec, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if err := spec.validate(); err != nil {
		return 0, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "db: upsert: begin tx")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, spec.createStageSQL()); err != nil {
		return 0, eris.Wrapf(err, "db: upsert: stage table for %s", spec.Into)
	}

	stage := pgx.Identifier{spec.stageName()}
	if _, err := tx.CopyFrom(ctx, stage, spec.Columns, pgx.CopyFromRows(rows)); err != nil {
		return 0, eris.Wrapf(err, "db: upsert: copy into stage for %s", spec.Into)
	}

	tag, err := tx.Exec(ctx, spec.mergeSQL())
	if err != nil {
		return 0, eris.Wrapf(err, "db: upsert: merge into %s", spec.Into)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "db: upsert: commit tx")
	}
	return tag.RowsAffected(), nil
}

// qualify quotes a table name, honoring an optional schema prefix.
func qualify(table string) string {
	if schema, name, ok := strings.Cut(table, "."); ok {
		return pgx.Identifier{schema, name}.Sanitize()
	}
	return pgx.Identifier{table}.Sanitize()
}

func quoteList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	hottub "github.com/christophersalem/hebard-hot-tub"
	"github.com/christophersalem/hebard-hot-tub/internal/models"

	"github.com/google/uuid"
)

// dbtx is the part of *sql.DB and *sql.Tx the sheet needs.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SheetSQLite struct {
	db *sql.DB // nil when bound to a transaction
	q  dbtx
}

func NewSheetSQLite(db *sql.DB) *SheetSQLite { return &SheetSQLite{db: db, q: db} }

// Ensure implementation of Sheet interface at compile time.
var _ Sheet = (*SheetSQLite)(nil)

// firstDataRow is the position of the newest event, right below the header.
const firstDataRow = 2

const (
	selectHeaderSQL = `SELECT name FROM sheet_header ORDER BY position ASC`
	countHeaderSQL  = `SELECT COUNT(*) FROM sheet_header`
	insertHeaderSQL = `INSERT INTO sheet_header (position, name) VALUES (?, ?)`

	insertRowSQL = `
		INSERT INTO event_rows (id, revision, recorded_at, pump, heater, tub, solar, delta, action, note, duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	countRowsSQL = `SELECT (SELECT COUNT(*) FROM sheet_header), (SELECT COUNT(*) FROM event_rows)`

	// Rows are addressed newest-first, so position p is OFFSET p-2 in seq DESC order.
	deleteRowsSQL = `
		DELETE FROM event_rows WHERE seq IN (
			SELECT seq FROM event_rows ORDER BY seq DESC LIMIT ? OFFSET ?
		)
	`
)

// WithTx runs fn against a view of the sheet bound to one transaction.
// The transaction commits only if fn returns nil. Nested calls reuse it.
func (r *SheetSQLite) WithTx(ctx context.Context, fn func(Sheet) error) error {
	return r.inTx(ctx, func(tx *SheetSQLite) error { return fn(tx) })
}

func (r *SheetSQLite) inTx(ctx context.Context, fn func(*SheetSQLite) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&SheetSQLite{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Header returns the header cells in column order, nil if none were written.
func (r *SheetSQLite) Header(ctx context.Context) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, selectHeaderSQL)
	if err != nil {
		return nil, fmt.Errorf("select header: %w", err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan header: %w", err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate header: %w", err)
	}
	return cols, nil
}

// EnsureHeader writes the header once. An existing header is left as is.
func (r *SheetSQLite) EnsureHeader(ctx context.Context, cols []string) (bool, error) {
	if len(cols) == 0 {
		return false, fmt.Errorf("ensure header: no columns")
	}

	var created bool
	err := r.inTx(ctx, func(tx *SheetSQLite) error {
		var n int
		if err := tx.q.QueryRowContext(ctx, countHeaderSQL).Scan(&n); err != nil {
			return fmt.Errorf("count header: %w", err)
		}
		if n > 0 {
			return nil
		}
		for i, name := range cols {
			if _, err := tx.q.ExecContext(ctx, insertHeaderSQL, i+1, name); err != nil {
				return fmt.Errorf("insert header column %q: %w", name, err)
			}
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// InsertTop writes rec as the newest row. Only the cells of rev are written;
// columns outside it are stored empty. If ID or Timestamp are empty, they're set.
func (r *SheetSQLite) InsertTop(ctx context.Context, rev hottub.Revision, rec models.EventRecord) error {
	if !rev.Valid() {
		return fmt.Errorf("insert row: unknown revision %d", int(rev))
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	c := rowCells(rev, rec)
	_, err := r.q.ExecContext(ctx, insertRowSQL,
		rec.ID,
		int(rev),
		c[hottub.ColTimestamp],
		c[hottub.ColPump],
		c[hottub.ColHeater],
		c[hottub.ColTub],
		c[hottub.ColSolar],
		c[hottub.ColDelta],
		c[hottub.ColAction],
		c[hottub.ColNote],
		c[hottub.ColDuration],
	)
	if err != nil {
		return fmt.Errorf("insert row %s: %w", rec.ID, err)
	}
	return nil
}

// rowCells keys the positional cells of rev by column name.
func rowCells(rev hottub.Revision, rec models.EventRecord) map[string]string {
	cols := rev.Columns()
	values := rev.Values(rec)
	out := make(map[string]string, rev.Width())
	for i, col := range cols {
		out[col] = values[i]
	}
	return out
}

// LastRow returns data rows plus one for the header, or 0 for an empty sheet.
func (r *SheetSQLite) LastRow(ctx context.Context) (int, error) {
	var headerCols, dataRows int
	if err := r.q.QueryRowContext(ctx, countRowsSQL).Scan(&headerCols, &dataRows); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	if headerCols > 0 {
		return dataRows + 1, nil
	}
	return dataRows, nil
}

// DeleteRows removes count rows starting at start (start >= 2) and reports
// how many were actually deleted.
func (r *SheetSQLite) DeleteRows(ctx context.Context, start, count int) (int, error) {
	if start < firstDataRow {
		return 0, ErrHeaderRow
	}
	if count <= 0 {
		return 0, ErrInvalidRange
	}

	res, err := r.q.ExecContext(ctx, deleteRowsSQL, count, start-firstDataRow)
	if err != nil {
		return 0, fmt.Errorf("delete rows %d..%d: %w", start, start+count-1, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

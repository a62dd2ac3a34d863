package repository

import (
	"context"
	"database/sql"
	"errors"

	hottub "github.com/christophersalem/hebard-hot-tub"
	"github.com/christophersalem/hebard-hot-tub/internal/models"
)

var (
	// ErrHeaderRow is returned when a delete range would touch row 1.
	ErrHeaderRow = errors.New("row 1 is the header and cannot be deleted")
	// ErrInvalidRange is returned for a non-positive row count.
	ErrInvalidRange = errors.New("row count must be positive")
)

// Sheet is the ordered table behind the event log. Row 1 is the header,
// row 2 the newest event; positions are 1-based like a spreadsheet.
type Sheet interface {
	// Header returns the header cells, or nil when the sheet has no header.
	Header(ctx context.Context) ([]string, error)
	// EnsureHeader writes cols as the header unless one already exists.
	EnsureHeader(ctx context.Context, cols []string) (bool, error)
	// InsertTop inserts rec as row 2 in a single write.
	InsertTop(ctx context.Context, rev hottub.Revision, rec models.EventRecord) error
	// LastRow returns the index of the last used row, header included.
	LastRow(ctx context.Context) (int, error)
	// DeleteRows removes count rows starting at position start.
	DeleteRows(ctx context.Context, start, count int) (int, error)
	// WithTx runs fn so that all of its sheet operations apply together or not at all.
	WithTx(ctx context.Context, fn func(Sheet) error) error
}

type Repository struct {
	Sheet Sheet
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Sheet: NewSheetSQLite(db),
	}
}

package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	hottub "github.com/christophersalem/hebard-hot-tub"
	"github.com/christophersalem/hebard-hot-tub/internal/models"
	"github.com/christophersalem/hebard-hot-tub/internal/repository"
	"github.com/christophersalem/hebard-hot-tub/internal/repository/db"
)

func openSheet(t *testing.T) (*sql.DB, *repository.SheetSQLite) {
	t.Helper()
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "hottub.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn, repository.NewSheetSQLite(conn)
}

// notesNewestFirst reads the note column in row order (row 2 first).
func notesNewestFirst(t *testing.T, conn *sql.DB) []string {
	t.Helper()
	rows, err := conn.Query(`SELECT note FROM event_rows ORDER BY seq DESC`)
	if err != nil {
		t.Fatalf("query rows: %v", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			t.Fatalf("scan: %v", err)
		}
		out = append(out, n)
	}
	return out
}

func TestSheetSQLite_HeaderLifecycle(t *testing.T) {
	_, sheet := openSheet(t)
	ctx := context.Background()

	h, err := sheet.Header(ctx)
	if err != nil || h != nil {
		t.Fatalf("fresh sheet header = %v, %v; want nil", h, err)
	}
	last, err := sheet.LastRow(ctx)
	if err != nil || last != 0 {
		t.Fatalf("fresh sheet last row = %d, %v; want 0", last, err)
	}

	created, err := sheet.EnsureHeader(ctx, hottub.RevisionThree.Columns())
	if err != nil || !created {
		t.Fatalf("EnsureHeader = %v, %v", created, err)
	}
	created, err = sheet.EnsureHeader(ctx, hottub.RevisionOne.Columns())
	if err != nil || created {
		t.Fatalf("second EnsureHeader must keep existing header: %v, %v", created, err)
	}

	h, err = sheet.Header(ctx)
	if err != nil {
		t.Fatalf("Header: %v", err)
	}
	if fmt.Sprint(h) != fmt.Sprint(hottub.RevisionThree.Columns()) {
		t.Fatalf("header = %v", h)
	}
	if last, _ := sheet.LastRow(ctx); last != 1 {
		t.Fatalf("header-only last row = %d; want 1", last)
	}
}

func TestSheetSQLite_InsertTopOrdersNewestFirst(t *testing.T) {
	conn, sheet := openSheet(t)
	ctx := context.Background()
	if _, err := sheet.EnsureHeader(ctx, hottub.RevisionThree.Columns()); err != nil {
		t.Fatalf("EnsureHeader: %v", err)
	}

	for i := 1; i <= 3; i++ {
		rec := models.EventRecord{Timestamp: time.Now(), Pump: "on", Note: fmt.Sprint(i)}
		if err := sheet.InsertTop(ctx, hottub.RevisionThree, rec); err != nil {
			t.Fatalf("InsertTop %d: %v", i, err)
		}
	}

	if got := fmt.Sprint(notesNewestFirst(t, conn)); got != "[3 2 1]" {
		t.Fatalf("row order = %s; want [3 2 1]", got)
	}
	if last, _ := sheet.LastRow(ctx); last != 4 {
		t.Fatalf("last row = %d; want 4", last)
	}
}

func TestSheetSQLite_DeleteRowsRemovesOldest(t *testing.T) {
	conn, sheet := openSheet(t)
	ctx := context.Background()
	if _, err := sheet.EnsureHeader(ctx, hottub.RevisionTwo.Columns()); err != nil {
		t.Fatalf("EnsureHeader: %v", err)
	}

	const total = 503
	for i := 1; i <= total; i++ {
		if err := sheet.InsertTop(ctx, hottub.RevisionTwo, models.EventRecord{Note: fmt.Sprint(i)}); err != nil {
			t.Fatalf("InsertTop %d: %v", i, err)
		}
	}

	last, err := sheet.LastRow(ctx)
	if err != nil || last != total+1 {
		t.Fatalf("last row = %d, %v; want %d", last, err, total+1)
	}

	n, err := sheet.DeleteRows(ctx, 502, last-501)
	if err != nil {
		t.Fatalf("DeleteRows: %v", err)
	}
	if n != 3 {
		t.Fatalf("deleted %d; want 3", n)
	}

	notes := notesNewestFirst(t, conn)
	if len(notes) != 500 {
		t.Fatalf("rows = %d; want 500", len(notes))
	}
	if notes[0] != "503" || notes[len(notes)-1] != "4" {
		t.Fatalf("kept wrong rows: first %s last %s", notes[0], notes[len(notes)-1])
	}
	if h, _ := sheet.Header(ctx); len(h) != hottub.RevisionTwo.Width() {
		t.Fatalf("header touched by delete: %v", h)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	hottub "github.com/christophersalem/hebard-hot-tub"
	"github.com/christophersalem/hebard-hot-tub/internal/metrics"
	"github.com/christophersalem/hebard-hot-tub/internal/models"
	"github.com/christophersalem/hebard-hot-tub/internal/repository"

	"github.com/google/uuid"
)

// Domain errors for the write path.
var (
	ErrStorageUnavailable = errors.New("event log storage unavailable")
	ErrHeaderMissing      = errors.New("event log has no header row")
)

// headerRows is the number of rows above the newest event.
const headerRows = 1

// Recorder prepends events below the header and trims the oldest rows.
type Recorder struct {
	sheet   repository.Sheet
	rev     hottub.Revision
	maxRows int
	now     func() time.Time

	// mu keeps the write transactions of concurrent events from overlapping.
	mu sync.Mutex
}

func NewRecorder(sheet repository.Sheet, cfg RecorderConfig) *Recorder {
	cfg = cfg.withDefaults()
	return &Recorder{
		sheet:   sheet,
		rev:     cfg.Revision,
		maxRows: cfg.MaxRows,
		now:     cfg.Now,
	}
}

// RecordEvent writes one event as row 2 and deletes rows past the cap.
// Header check, insert and trim commit together, so a failure leaves the log as it was.
// The header must already exist; it is never created here.
func (r *Recorder) RecordEvent(ctx context.Context, f models.EventFields) (models.EventRecord, error) {
	rec := r.rev.Project(models.EventRecord{
		ID:        uuid.NewString(),
		Timestamp: r.now().UTC(),
		Pump:      f.Pump,
		Heater:    f.Heater,
		Tub:       f.Tub,
		Solar:     f.Solar,
		Delta:     f.Delta,
		Action:    f.Action,
		Note:      f.Note,
		Duration:  f.Duration,
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	var trimmed, rows int
	err := r.sheet.WithTx(ctx, func(sheet repository.Sheet) error {
		header, err := sheet.Header(ctx)
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		if len(header) == 0 {
			return ErrHeaderMissing
		}

		if err := sheet.InsertTop(ctx, r.rev, rec); err != nil {
			return fmt.Errorf("insert row: %w", err)
		}

		trimmed, rows, err = r.trim(ctx, sheet)
		return err
	})
	switch {
	case errors.Is(err, ErrHeaderMissing):
		metrics.RecordFailures.WithLabelValues(metrics.ReasonHeaderMissing).Inc()
		return models.EventRecord{}, ErrHeaderMissing
	case err != nil:
		metrics.RecordFailures.WithLabelValues(metrics.ReasonStorage).Inc()
		return models.EventRecord{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	metrics.EventsRecorded.WithLabelValues(r.rev.String()).Inc()
	metrics.RowsTrimmed.Add(float64(trimmed))
	metrics.LogRows.Set(float64(rows))
	return rec, nil
}

// trim deletes everything past row maxRows+1, oldest rows being the furthest from the header.
// It reports the deleted count and the data rows left.
func (r *Recorder) trim(ctx context.Context, sheet repository.Sheet) (int, int, error) {
	last, err := sheet.LastRow(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count rows: %w", err)
	}

	var n int
	limit := r.maxRows + headerRows
	if last > limit {
		n, err = sheet.DeleteRows(ctx, limit+1, last-limit)
		if err != nil {
			return 0, 0, fmt.Errorf("trim rows: %w", err)
		}
		last -= n
	}
	return n, last - headerRows, nil
}

package hottub

import (
	"fmt"
	"time"

	"github.com/christophersalem/hebard-hot-tub/internal/models"
)

// Revision identifies the column layout of the event log.
// Rows written under one revision carry exactly Width() cells.
type Revision int

const (
	RevisionOne   Revision = 1 // Timestamp | Pump | Heater | Tub | Solar | Action | Note
	RevisionTwo   Revision = 2 // + Duration
	RevisionThree Revision = 3 // + Delta between Solar and Action

	LatestRevision = RevisionThree
)

// Column names as they appear in the header row.
const (
	ColTimestamp = "Timestamp"
	ColPump      = "Pump"
	ColHeater    = "Heater"
	ColTub       = "Tub"
	ColSolar     = "Solar"
	ColDelta     = "Delta"
	ColAction    = "Action"
	ColNote      = "Note"
	ColDuration  = "Duration"
)

// TimestampLayout is used when a row is rendered as positional cells.
// Sub-second digits are kept so the stored time never precedes the write.
const TimestampLayout = time.RFC3339Nano

var revisionColumns = map[Revision][]string{
	RevisionOne:   {ColTimestamp, ColPump, ColHeater, ColTub, ColSolar, ColAction, ColNote},
	RevisionTwo:   {ColTimestamp, ColPump, ColHeater, ColTub, ColSolar, ColAction, ColNote, ColDuration},
	RevisionThree: {ColTimestamp, ColPump, ColHeater, ColTub, ColSolar, ColDelta, ColAction, ColNote, ColDuration},
}

// ParseRevision validates a numeric revision coming from configuration.
func ParseRevision(n int) (Revision, error) {
	r := Revision(n)
	if !r.Valid() {
		return 0, fmt.Errorf("unknown schema revision %d (supported: 1, 2, 3)", n)
	}
	return r, nil
}

// Valid reports whether r is a known revision.
func (r Revision) Valid() bool {
	_, ok := revisionColumns[r]
	return ok
}

func (r Revision) String() string {
	return fmt.Sprintf("v%d", int(r))
}

// Columns returns a copy of the header names for r.
func (r Revision) Columns() []string {
	cols := revisionColumns[r]
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// Width is the number of cells in a row of this revision.
func (r Revision) Width() int {
	return len(revisionColumns[r])
}

// Carries reports whether the revision has a column with the given name.
func (r Revision) Carries(col string) bool {
	for _, c := range revisionColumns[r] {
		if c == col {
			return true
		}
	}
	return false
}

// Project clears the fields that r has no column for.
func (r Revision) Project(rec models.EventRecord) models.EventRecord {
	if !r.Carries(ColDelta) {
		rec.Delta = ""
	}
	if !r.Carries(ColDuration) {
		rec.Duration = ""
	}
	return rec
}

// Values renders rec as the positional cells of a row in r's column order.
func (r Revision) Values(rec models.EventRecord) []string {
	cols := revisionColumns[r]
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, cell(rec, c))
	}
	return out
}

func cell(rec models.EventRecord, col string) string {
	switch col {
	case ColTimestamp:
		if rec.Timestamp.IsZero() {
			return ""
		}
		return rec.Timestamp.UTC().Format(TimestampLayout)
	case ColPump:
		return rec.Pump
	case ColHeater:
		return rec.Heater
	case ColTub:
		return rec.Tub
	case ColSolar:
		return rec.Solar
	case ColDelta:
		return rec.Delta
	case ColAction:
		return rec.Action
	case ColNote:
		return rec.Note
	case ColDuration:
		return rec.Duration
	default:
		return ""
	}
}

package service

import (
	"time"

	hottub "github.com/christophersalem/hebard-hot-tub"
)

// DefaultMaxRows is the number of data rows kept below the header.
const DefaultMaxRows = 500

type RecorderConfig struct {
	Revision hottub.Revision // column layout of written rows; zero means latest
	MaxRows  int             // data rows kept; zero means DefaultMaxRows
	Now      func() time.Time
}

func (c RecorderConfig) withDefaults() RecorderConfig {
	if !c.Revision.Valid() {
		c.Revision = hottub.LatestRevision
	}
	if c.MaxRows <= 0 {
		c.MaxRows = DefaultMaxRows
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

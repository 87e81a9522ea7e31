package export

import (
	"time"

	"github.com/hverdal/marketpulse/internal/domain"
)

// Snapshot is a point-in-time export of every topic record, with source
// attribution so downstream consumers can trace where each dataset came
// from.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	Topics    map[string]domain.Record
	Sources   map[string][]string
}

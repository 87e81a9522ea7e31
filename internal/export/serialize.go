package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hverdal/marketpulse/internal/domain"
)

type snapshotJSON struct {
	ID        string                   `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	Topics    map[string]domain.Record `json:"topics"`
	Sources   map[string][]string      `json:"sources"`
}

// SerializeSnapshot encodes a snapshot for persistence and download. The
// encoding is stable: timestamps are RFC 3339 and every value in a record is
// numeric.
func SerializeSnapshot(snapshot Snapshot) ([]byte, error) {
	data, err := json.Marshal(snapshotJSON{
		ID:        snapshot.ID,
		CreatedAt: snapshot.CreatedAt.UTC(),
		Topics:    snapshot.Topics,
		Sources:   snapshot.Sources,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

func ParseSnapshot(data []byte) (Snapshot, error) {
	var parsed snapshotJSON
	err := json.Unmarshal(data, &parsed)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	topics := make(map[string]domain.Record, len(parsed.Topics))
	for key, record := range parsed.Topics {
		topics[key] = normalizeRecord(record)
	}

	return Snapshot{
		ID:        parsed.ID,
		CreatedAt: parsed.CreatedAt,
		Topics:    topics,
		Sources:   parsed.Sources,
	}, nil
}

// normalizeRecord rebuilds the concrete value types a record carries.
// encoding/json decodes nested objects as map[string]any; records store
// compounds as map[string]float64 and nested levels as Records. An object
// whose values are all numbers is a compound. Schemas must not define a
// nested level holding only scalars, as it would be indistinguishable from a
// compound on the wire.
func normalizeRecord(raw map[string]any) domain.Record {
	record := domain.Record{}
	for key, value := range raw {
		switch typed := value.(type) {
		case map[string]any:
			if compound, ok := asCompound(typed); ok {
				record[key] = compound
			} else {
				record[key] = normalizeRecord(typed)
			}
		default:
			record[key] = value
		}
	}
	return record
}

func asCompound(raw map[string]any) (map[string]float64, bool) {
	compound := make(map[string]float64, len(raw))
	for key, value := range raw {
		number, ok := value.(float64)
		if !ok {
			return nil, false
		}
		compound[key] = number
	}
	return compound, true
}

package topicprovider

import (
	"slices"
	"time"

	"github.com/hverdal/marketpulse/internal/domain"
	"github.com/hverdal/marketpulse/internal/extraction"
)

// Topic is one logical dataset the engine tracks. It maps 1:1 to a cache
// slot. Topics without extraction patterns resolve entirely from their
// baseline schema.
type Topic struct {
	Key string
	TTL time.Duration

	// Sources maps stable source identifiers to URLs. PrimarySource names
	// the identifier fetched during a live refresh; the rest are attribution
	// only.
	Sources       map[string]string
	PrimarySource string

	Patterns []extraction.FieldPattern
	Schema   domain.Schema
}

const (
	GenderBasedAnalysisKey    = "gender_based_analysis"
	GeographicSegmentationKey = "geographic_segmentation"
	ComorbidityAnalysisKey    = "comorbidity_analysis"
	TreatmentPatternsKey      = "treatment_patterns"
)

// SourceIdentifiers returns the topic's source identifiers in deterministic
// order for export attribution.
func (t Topic) SourceIdentifiers() []string {
	identifiers := make([]string, 0, len(t.Sources))
	for identifier := range t.Sources {
		identifiers = append(identifiers, identifier)
	}
	slices.Sort(identifiers)
	return identifiers
}

func AllTopics() []Topic {
	return []Topic{
		genderBasedAnalysisTopic,
		geographicSegmentationTopic,
		comorbidityAnalysisTopic,
		treatmentPatternsTopic,
	}
}

func TopicByKey(key string) (Topic, bool) {
	for _, topic := range AllTopics() {
		if topic.Key == key {
			return topic, true
		}
	}
	return Topic{}, false
}

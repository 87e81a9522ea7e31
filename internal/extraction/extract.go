package extraction

import (
	"regexp"
	"strconv"

	"github.com/hverdal/marketpulse/internal/domain"
)

// FieldPattern targets one scalar field path with a regular expression whose
// first capture group is the candidate value. A captured value is accepted
// only if it falls strictly within the plausibility bounds.
type FieldPattern struct {
	Pattern *regexp.Regexp
	Path    string
	Min     float64
	Max     float64
}

// Extract scans lowercased page text with the ordered field patterns and
// returns the fields it could confidently extract. The first accepted value
// per field path wins; later matches and later patterns for the same path are
// ignored. Malformed or implausible captures are skipped, never errors.
func Extract(text string, patterns []FieldPattern) domain.PartialRecord {
	partial := domain.PartialRecord{}

	for _, field := range patterns {
		if _, ok := partial[field.Path]; ok {
			continue
		}

		for _, match := range field.Pattern.FindAllStringSubmatch(text, -1) {
			if len(match) < 2 {
				continue
			}

			value, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				continue
			}

			if value <= field.Min || value >= field.Max {
				continue
			}

			partial[field.Path] = value
			break
		}
	}

	return partial
}

package domain

import "maps"

// FieldDefault is one required field path of a topic schema together with its
// fallback value. A field is either scalar or compound, never both.
type FieldDefault struct {
	Path     string
	Scalar   float64
	Compound map[string]float64
}

// Schema is the ordered, fixed set of required field paths for a topic.
type Schema []FieldDefault

// Complete fills every schema field missing from the partial record with its
// fallback default. The result contains exactly the schema's field paths:
// extracted values outside the schema are dropped, and compound defaults are
// inserted wholesale, never merged per sub-key. Deterministic for the same
// inputs.
func Complete(partial PartialRecord, schema Schema) Record {
	record := Record{}

	for _, field := range schema {
		if field.Compound != nil {
			record.setPath(field.Path, maps.Clone(field.Compound))
			continue
		}

		value, extracted := partial[field.Path]
		if !extracted {
			value = field.Scalar
		}
		record.setPath(field.Path, value)
	}

	return record
}

// MissingFields returns the scalar schema paths not present in the partial
// record. Compound fields always count as missing since extraction only ever
// produces scalars.
func MissingFields(partial PartialRecord, schema Schema) []string {
	var missing []string
	for _, field := range schema {
		if field.Compound != nil {
			missing = append(missing, field.Path)
			continue
		}
		if _, ok := partial[field.Path]; !ok {
			missing = append(missing, field.Path)
		}
	}
	return missing
}

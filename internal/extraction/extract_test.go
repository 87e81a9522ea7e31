package extraction_test

import (
	"regexp"
	"testing"

	"github.com/hverdal/marketpulse/internal/extraction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var prevalencePatterns = []extraction.FieldPattern{
	{
		Pattern: regexp.MustCompile(`(?:male|men)[^.%]{0,80}?(\d+\.?\d*)\s*%[^.]{0,80}?obesity`),
		Path:    "male_obesity.prevalence",
		Min:     1,
		Max:     50,
	},
	{
		Pattern: regexp.MustCompile(`(?:female|women)[^.%]{0,80}?(\d+\.?\d*)\s*%[^.]{0,80}?obesity`),
		Path:    "female_obesity.prevalence",
		Min:     1,
		Max:     50,
	},
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("extracts plausible values", func(t *testing.T) {
		t.Parallel()

		text := "among men an estimated 12.8% had obesity, while for women 15.2% reported obesity."

		partial := extraction.Extract(text, prevalencePatterns)
		require.Len(t, partial, 2)
		assert.Equal(t, 12.8, partial["male_obesity.prevalence"])
		assert.Equal(t, 15.2, partial["female_obesity.prevalence"])
	})

	t.Run("rejects values outside the plausibility range", func(t *testing.T) {
		t.Parallel()

		text := "men reported a 72% rise in obesity awareness."

		partial := extraction.Extract(text, prevalencePatterns)
		assert.Empty(t, partial)
	})

	t.Run("accepts boundary-adjacent values only strictly inside", func(t *testing.T) {
		t.Parallel()

		pattern := []extraction.FieldPattern{{
			Pattern: regexp.MustCompile(`rate of (\d+\.?\d*)`),
			Path:    "rate",
			Min:     1,
			Max:     50,
		}}

		assert.Empty(t, extraction.Extract("rate of 1", pattern))
		assert.Empty(t, extraction.Extract("rate of 50", pattern))
		assert.Equal(t, 15.2, extraction.Extract("rate of 15.2", pattern)["rate"])
	})

	t.Run("first accepted value per field wins", func(t *testing.T) {
		t.Parallel()

		text := "men showed 72% then men showed 14.1% with obesity rates and later men showed 9.9% with obesity rates"

		pattern := []extraction.FieldPattern{{
			Pattern: regexp.MustCompile(`men showed (\d+\.?\d*)%[^.]{0,40}?obesity`),
			Path:    "male_obesity.prevalence",
			Min:     1,
			Max:     50,
		}}

		partial := extraction.Extract(text, pattern)
		assert.Equal(t, 14.1, partial["male_obesity.prevalence"])
	})

	t.Run("later pattern for an already extracted field is ignored", func(t *testing.T) {
		t.Parallel()

		patterns := []extraction.FieldPattern{
			{
				Pattern: regexp.MustCompile(`primary (\d+\.?\d*)`),
				Path:    "rate",
				Min:     1,
				Max:     50,
			},
			{
				Pattern: regexp.MustCompile(`secondary (\d+\.?\d*)`),
				Path:    "rate",
				Min:     1,
				Max:     50,
			},
		}

		partial := extraction.Extract("primary 10.5 secondary 20.5", patterns)
		assert.Equal(t, 10.5, partial["rate"])
	})

	t.Run("no match produces an empty partial, not an error", func(t *testing.T) {
		t.Parallel()

		partial := extraction.Extract("nothing relevant here", prevalencePatterns)
		assert.Empty(t, partial)
	})
}

func TestText(t *testing.T) {
	t.Parallel()

	t.Run("strips markup and lowercases", func(t *testing.T) {
		t.Parallel()

		body := []byte(`<html><head><style>p { color: red }</style></head>
			<body><h1>Obesity Data</h1><p>Among   MEN an estimated 12.8% had obesity.</p>
			<script>var x = 1;</script></body></html>`)

		text := extraction.Text(body)
		assert.Contains(t, text, "obesity data among men an estimated 12.8% had obesity.")
		assert.NotContains(t, text, "color: red")
		assert.NotContains(t, text, "var x")
	})

	t.Run("extraction works end to end on an html body", func(t *testing.T) {
		t.Parallel()

		body := []byte(`<html><body>
			<p>Among men an estimated 12.8% had obesity.</p>
			<p>Among women 15.2% reported obesity.</p>
		</body></html>`)

		partial := extraction.Extract(extraction.Text(body), prevalencePatterns)
		require.Len(t, partial, 2)
		assert.Equal(t, 12.8, partial["male_obesity.prevalence"])
		assert.Equal(t, 15.2, partial["female_obesity.prevalence"])
	})
}

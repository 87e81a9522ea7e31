package topicprovider_test

import (
	"context"
	"testing"
	"time"

	"github.com/hverdal/marketpulse/internal/adapters/sourcefetcher"
	"github.com/hverdal/marketpulse/internal/adapters/topicprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSourceFetcher struct {
	t *testing.T

	fetchedURLs []string
	result      sourcefetcher.FetchResult
	err         error
}

func (m *mockSourceFetcher) Fetch(ctx context.Context, url string) (sourcefetcher.FetchResult, error) {
	m.t.Helper()
	m.fetchedURLs = append(m.fetchedURLs, url)
	return m.result, m.err
}

func TestLiveTopicProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	nowFunc := func() time.Time { return now }

	genderTopic, found := topicprovider.TopicByKey(topicprovider.GenderBasedAnalysisKey)
	require.True(t, found)

	t.Run("extracted values override baselines", func(t *testing.T) {
		t.Parallel()

		page := `<html><body>
			<p>Among men, 13.4% were classified as obese in the latest survey.</p>
			<p>Among women, 16.1% were classified as obese.</p>
		</body></html>`
		fetcher := &mockSourceFetcher{t: t, result: sourcefetcher.FetchResult{StatusCode: 200, Body: []byte(page), FetchedAt: now}}
		provider, err := topicprovider.NewLiveTopicProvider(fetcher, nowFunc)
		require.NoError(t, err)

		record := provider.RefreshTopic(ctx, genderTopic)

		assert.Equal(t, topicprovider.GenderBasedAnalysisKey, record.Topic)
		assert.Equal(t, now, record.ProducedAt)

		male, ok := record.Record.Float("male_obesity.prevalence")
		require.True(t, ok)
		assert.Equal(t, 13.4, male)

		female, ok := record.Record.Float("female_obesity.prevalence")
		require.True(t, ok)
		assert.Equal(t, 16.1, female)

		// Fields with no pattern keep their baselines
		diabetes, ok := record.Record.Float("male_obesity.diabetes_comorbidity")
		require.True(t, ok)
		assert.Equal(t, 18.5, diabetes)
	})

	t.Run("fetches the primary source", func(t *testing.T) {
		t.Parallel()

		fetcher := &mockSourceFetcher{t: t, result: sourcefetcher.FetchResult{StatusCode: 200, Body: []byte("<html></html>"), FetchedAt: now}}
		provider, err := topicprovider.NewLiveTopicProvider(fetcher, nowFunc)
		require.NoError(t, err)

		provider.RefreshTopic(ctx, genderTopic)

		require.Len(t, fetcher.fetchedURLs, 1)
		assert.Equal(t, genderTopic.Sources[genderTopic.PrimarySource], fetcher.fetchedURLs[0])
	})

	t.Run("timeout falls back to baselines", func(t *testing.T) {
		t.Parallel()

		fetcher := &mockSourceFetcher{t: t, err: &sourcefetcher.FetchError{Kind: sourcefetcher.Timeout, URL: "https://data.worldobesity.org/country/india-95/"}}
		provider, err := topicprovider.NewLiveTopicProvider(fetcher, nowFunc)
		require.NoError(t, err)

		record := provider.RefreshTopic(ctx, genderTopic)

		male, ok := record.Record.Float("male_obesity.prevalence")
		require.True(t, ok)
		assert.Equal(t, 12.8, male)

		female, ok := record.Record.Float("female_obesity.prevalence")
		require.True(t, ok)
		assert.Equal(t, 15.2, female)
	})

	t.Run("implausible values fall back to baselines", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><p>Among men, 72% were classified as obese.</p></body></html>`
		fetcher := &mockSourceFetcher{t: t, result: sourcefetcher.FetchResult{StatusCode: 200, Body: []byte(page), FetchedAt: now}}
		provider, err := topicprovider.NewLiveTopicProvider(fetcher, nowFunc)
		require.NoError(t, err)

		record := provider.RefreshTopic(ctx, genderTopic)

		male, ok := record.Record.Float("male_obesity.prevalence")
		require.True(t, ok)
		assert.Equal(t, 12.8, male)
	})

	t.Run("schema-only topics never fetch", func(t *testing.T) {
		t.Parallel()

		for _, key := range []string{
			topicprovider.GeographicSegmentationKey,
			topicprovider.ComorbidityAnalysisKey,
			topicprovider.TreatmentPatternsKey,
		} {
			topic, found := topicprovider.TopicByKey(key)
			require.True(t, found)

			fetcher := &mockSourceFetcher{t: t}
			provider, err := topicprovider.NewLiveTopicProvider(fetcher, nowFunc)
			require.NoError(t, err)

			record := provider.RefreshTopic(ctx, topic)

			assert.Empty(t, fetcher.fetchedURLs)
			assert.Equal(t, key, record.Topic)
			assert.NotEmpty(t, record.Record)
		}
	})

	t.Run("geographic record derives state prevalence", func(t *testing.T) {
		t.Parallel()

		topic, found := topicprovider.TopicByKey(topicprovider.GeographicSegmentationKey)
		require.True(t, found)

		provider, err := topicprovider.NewLiveTopicProvider(&mockSourceFetcher{t: t}, nowFunc)
		require.NoError(t, err)

		record := provider.RefreshTopic(ctx, topic)

		states, ok := record.Record.Section("state_ranking")
		require.True(t, ok)
		require.Len(t, states, len(topicprovider.TrackedStates()))

		goa := states["Goa"]
		require.NotNil(t, goa)
		// 3.9 * 3.2 rounded to one decimal
		assert.Equal(t, 12.5, goa["obesity_prevalence"])
		assert.Equal(t, 35.0, goa["diabetes_prevalence"])
		// 12.5*0.4 + 35.0*0.3 + 0.85*30
		assert.Equal(t, 41.0, goa["market_potential_score"])
	})
}

func TestTopicByKey(t *testing.T) {
	t.Parallel()

	for _, topic := range topicprovider.AllTopics() {
		found, ok := topicprovider.TopicByKey(topic.Key)
		require.True(t, ok)
		assert.Equal(t, topic.Key, found.Key)
		assert.Positive(t, found.TTL)
		assert.NotEmpty(t, found.Sources)
		assert.NotEmpty(t, found.Schema)
	}

	_, ok := topicprovider.TopicByKey("unknown")
	assert.False(t, ok)
}

func TestSourceIdentifiersAreSorted(t *testing.T) {
	t.Parallel()

	topic, found := topicprovider.TopicByKey(topicprovider.GenderBasedAnalysisKey)
	require.True(t, found)

	assert.Equal(t, []string{"icmr_gender_study", "lancet_gender_diabetes", "who_gender_data"}, topic.SourceIdentifiers())
}

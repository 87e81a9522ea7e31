package sourcefetcher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHttpClient struct {
	t *testing.T

	response *http.Response
	err      error

	requests []*http.Request
}

func (m *mockHttpClient) Do(req *http.Request) (*http.Response, error) {
	m.t.Helper()
	m.requests = append(m.requests, req)
	return m.response, m.err
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "deadline exceeded" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func newResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestFetch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("successful fetch returns body and status", func(t *testing.T) {
		t.Parallel()

		client := &mockHttpClient{t: t, response: newResponse(200, "<html>stats</html>")}
		fetcher := New(client)

		before := time.Now()
		result, err := fetcher.Fetch(ctx, "https://data.example.org/india")
		require.NoError(t, err)

		assert.Equal(t, 200, result.StatusCode)
		assert.Equal(t, "<html>stats</html>", string(result.Body))
		assert.False(t, result.FetchedAt.Before(before))
	})

	t.Run("sends browser identity headers", func(t *testing.T) {
		t.Parallel()

		client := &mockHttpClient{t: t, response: newResponse(200, "")}
		fetcher := New(client)

		_, err := fetcher.Fetch(ctx, "https://data.example.org/india")
		require.NoError(t, err)

		require.Len(t, client.requests, 1)
		req := client.requests[0]
		assert.Contains(t, req.Header.Get("User-Agent"), "Mozilla/5.0")
		assert.Contains(t, req.Header.Get("Accept"), "text/html")
		assert.Equal(t, "en-US,en;q=0.5", req.Header.Get("Accept-Language"))
	})

	t.Run("timeout is classified", func(t *testing.T) {
		t.Parallel()

		client := &mockHttpClient{t: t, err: timeoutError{}}
		fetcher := New(client)

		_, err := fetcher.Fetch(ctx, "https://data.example.org/india")
		require.Error(t, err)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, Timeout, fetchErr.Kind)
	})

	t.Run("context deadline is classified as timeout", func(t *testing.T) {
		t.Parallel()

		client := &mockHttpClient{t: t, err: context.DeadlineExceeded}
		fetcher := New(client)

		_, err := fetcher.Fetch(ctx, "https://data.example.org/india")

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, Timeout, fetchErr.Kind)
	})

	t.Run("connection failure is classified", func(t *testing.T) {
		t.Parallel()

		client := &mockHttpClient{t: t, err: errors.New("connection refused")}
		fetcher := New(client)

		_, err := fetcher.Fetch(ctx, "https://data.example.org/india")

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, ConnectionError, fetchErr.Kind)
	})

	t.Run("non-2xx status is an error with the status code", func(t *testing.T) {
		t.Parallel()

		client := &mockHttpClient{t: t, response: newResponse(403, "blocked")}
		fetcher := New(client)

		_, err := fetcher.Fetch(ctx, "https://data.example.org/india")

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, NonSuccessStatus, fetchErr.Kind)
		assert.Equal(t, 403, fetchErr.StatusCode)
	})

	t.Run("never retries", func(t *testing.T) {
		t.Parallel()

		client := &mockHttpClient{t: t, err: errors.New("connection refused")}
		fetcher := New(client)

		_, _ = fetcher.Fetch(ctx, "https://data.example.org/india")
		assert.Len(t, client.requests, 1)
	})
}

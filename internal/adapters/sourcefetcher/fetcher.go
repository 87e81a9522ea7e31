package sourcefetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/hverdal/marketpulse/internal/logging"
)

// Browser-identity headers. Several of the upstream statistics sites refuse
// requests from default script clients.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Accept-Encoding":           "gzip, deflate",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// Limit how much of an arbitrary upstream page we are willing to read
const maxBodySize = 4 << 20

type ErrorKind string

const (
	Timeout          ErrorKind = "timeout"
	ConnectionError  ErrorKind = "connection_error"
	NonSuccessStatus ErrorKind = "non_success_status"
)

type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	wrapped    error
}

func (e *FetchError) Error() string {
	if e.Kind == NonSuccessStatus {
		return fmt.Sprintf("fetch %s: %s (%d)", e.URL, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.wrapped)
}

func (e *FetchError) Unwrap() error {
	return e.wrapped
}

type FetchResult struct {
	StatusCode int
	Body       []byte
	FetchedAt  time.Time
}

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SourceFetcher performs a single GET against an upstream source. It never
// retries; retry policy belongs to the caller.
type SourceFetcher interface {
	Fetch(ctx context.Context, url string) (FetchResult, error)
}

type sourceFetcherImpl struct {
	httpClient HttpClient
}

func (f sourceFetcherImpl) Fetch(ctx context.Context, url string) (FetchResult, error) {
	logger := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchResult{}, &FetchError{Kind: ConnectionError, URL: url, wrapped: err}
	}

	for key, value := range browserHeaders {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return FetchResult{}, &FetchError{Kind: classify(err), URL: url, wrapped: err}
	}

	fetchedAt := time.Now()

	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return FetchResult{}, &FetchError{Kind: classify(err), URL: url, wrapped: err}
	}

	logger.InfoContext(ctx, "source request completed", "url", url, "status", resp.StatusCode, "duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FetchResult{}, &FetchError{Kind: NonSuccessStatus, URL: url, StatusCode: resp.StatusCode}
	}

	return FetchResult{
		StatusCode: resp.StatusCode,
		Body:       body,
		FetchedAt:  fetchedAt,
	}, nil
}

func classify(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Timeout
	}
	return ConnectionError
}

func New(httpClient HttpClient) SourceFetcher {
	return sourceFetcherImpl{
		httpClient: httpClient,
	}
}

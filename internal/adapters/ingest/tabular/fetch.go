package tabular

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultFetchTimeout = 30 * time.Second

// Fetcher opens a remote tabular document
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// FetchError reports a transport failure or a non 2xx response
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tabular: fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("tabular: fetch %s: unexpected status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPFetcher fetches over plain HTTP(S)
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcherWithTimeout creates an HTTPFetcher; d <= 0 uses 30s
func NewHTTPFetcherWithTimeout(d time.Duration) *HTTPFetcher {
	if d <= 0 {
		d = defaultFetchTimeout
	}
	return &HTTPFetcher{Client: &http.Client{Timeout: d}}
}

// Fetch issues one GET; the caller closes the body
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "text/csv, */*;q=0.5")
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		_ = resp.Body.Close()
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}
	return resp.Body, nil
}

package knowledge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Fetcher returns the raw bytes of one reference document.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// FileFetcher reads documents from the local filesystem.
type FileFetcher struct{}

func (f *FileFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("unable to read knowledge file %s: %w", source, err)
	}
	return data, nil
}

// HTTPFetcher downloads documents over HTTP(S).
type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to build knowledge request for %s: %w", source, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch knowledge source %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("knowledge source %s returned status %d", source, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read knowledge body from %s: %w", source, err)
	}

	return data, nil
}

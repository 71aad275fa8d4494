package ingest

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/KeleWarg/design-theme-library/pkg/util"
)

// ReadSource loads a token export from disk and normalizes it. Large design
// exports (full variable dumps easily reach tens of megabytes) are read
// through a memory mapping.
func ReadSource(path string) (*Result, error) {
	data, err := util.ReadFileMapped(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token source: %w", err)
	}
	return NormalizeBytes(data)
}

// FetchOptions tunes the HTTP client used by FetchSource.
type FetchOptions struct {
	Timeout    time.Duration
	RetryCount int
}

// DefaultFetchOptions returns the client settings used by the CLI.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		Timeout:    30 * time.Second,
		RetryCount: 2,
	}
}

// FetchSource pulls a token export over HTTP and normalizes it.
func FetchSource(url string, opts FetchOptions) (*Result, error) {
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetHeader("Accept", "application/json")

	resp, err := client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token source: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch token source: %s returned %s", url, resp.Status())
	}
	return NormalizeBytes(resp.Body())
}

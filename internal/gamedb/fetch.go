package gamedb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gofrs/flock"

	"gameid/internal/platform"
)

// Fetcher refreshes the metadata cache from published per-platform TSV
// snapshots. A file lock around the import keeps concurrent invocations
// from interleaving writes to the same cache.
type Fetcher struct {
	client   *http.Client
	baseURL  string
	cache    *Cache
	lockPath string
	logger   *slog.Logger
}

// NewFetcher builds a fetcher against baseURL, the prefix the per-platform
// snapshot repositories live under (each platform publishes its snapshot in
// its own GameDB-<platform> repository).
func NewFetcher(cache *Cache, baseURL string, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		baseURL:  baseURL,
		cache:    cache,
		lockPath: cache.Path() + ".lock",
		logger:   logger,
	}
}

// SnapshotURL resolves the published snapshot location for one platform:
// <base>/GameDB-<platform>/releases/latest/download/<platform>.data.tsv.
func SnapshotURL(base string, tag platform.Tag) (string, error) {
	return url.JoinPath(base,
		"GameDB-"+string(tag),
		"releases", "latest", "download",
		string(tag)+".data.tsv")
}

// FetchPlatform downloads one platform's snapshot and replaces its cached
// records. Returns the number of records imported.
func (f *Fetcher) FetchPlatform(ctx context.Context, tag platform.Tag) (int, error) {
	snapshotURL, err := SnapshotURL(f.baseURL, tag)
	if err != nil {
		return 0, fmt.Errorf("build snapshot url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, snapshotURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build snapshot request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch %s snapshot: %w", tag, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("fetch %s snapshot: unexpected status %s", tag, resp.Status)
	}

	body, err := maybeGzip(resp.Body)
	if err != nil {
		return 0, err
	}
	recs, err := ParseTSV(tag, body)
	if err != nil {
		return 0, err
	}

	lock := flock.New(f.lockPath)
	locked, err := lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return 0, fmt.Errorf("lock cache: %w", err)
	}
	if !locked {
		return 0, fmt.Errorf("lock cache: not acquired")
	}
	defer lock.Unlock()

	if err := f.cache.ReplacePlatform(ctx, tag, recs); err != nil {
		return 0, err
	}
	f.logger.Info("imported metadata snapshot",
		slog.String("platform", string(tag)),
		slog.Int("records", len(recs)))
	return len(recs), nil
}

// FetchAll refreshes every supported platform, continuing past individual
// failures and reporting the first error at the end.
func (f *Fetcher) FetchAll(ctx context.Context) (int, error) {
	total := 0
	var firstErr error
	for _, tag := range platform.All {
		n, err := f.FetchPlatform(ctx, tag)
		if err != nil {
			f.logger.Warn("snapshot fetch failed",
				slog.String("platform", string(tag)),
				slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		total += n
	}
	return total, firstErr
}

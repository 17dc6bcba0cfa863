// Command gameid-dbbuild populates the metadata cache from a release page
// that lists per-platform TSV snapshots as download links. It scrapes the
// page for snapshot assets, downloads each one, and imports them into the
// same SQLite cache the gameid CLI reads.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"gameid/internal/config"
	"gameid/internal/gamedb"
	"gameid/internal/logging"
	"gameid/internal/platform"
)

func main() {
	var (
		pageURL    = flag.String("page", "", "Release page listing snapshot downloads")
		configPath = flag.String("config", "", "Configuration file path")
		console    = flag.String("console", "", "Only import this console's snapshot")
		timeout    = flag.Duration("timeout", 5*time.Minute, "Total run timeout")
	)
	flag.Parse()

	if err := run(*pageURL, *configPath, *console, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(pageURL, configPath, console string, timeout time.Duration) error {
	if pageURL == "" {
		return fmt.Errorf("-page is required")
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	var only platform.Tag
	if console != "" {
		if only, err = platform.Parse(console); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	assets, err := discoverAssets(ctx, pageURL)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		return fmt.Errorf("no snapshot links found on %s", pageURL)
	}

	cache, err := gamedb.OpenCache(cfg.Paths.DatabasePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	client := &http.Client{Timeout: time.Duration(cfg.Database.FetchTimeout) * time.Second}
	imported := 0
	for tag, assetURL := range assets {
		if only != "" && tag != only {
			continue
		}
		n, err := importAsset(ctx, client, cache, tag, assetURL)
		if err != nil {
			logger.Warn("snapshot import failed",
				slog.String("platform", string(tag)),
				slog.String("url", assetURL),
				slog.String("error", err.Error()))
			continue
		}
		logger.Info("snapshot imported",
			slog.String("platform", string(tag)),
			slog.Int("records", n))
		imported += n
	}
	if imported == 0 {
		return fmt.Errorf("no records imported")
	}
	fmt.Printf("Imported %d records into %s\n", imported, cfg.Paths.DatabasePath)
	return nil
}

// discoverAssets scrapes anchor hrefs off the release page and keeps the
// ones that look like per-platform snapshots: <name>.tsv, <name>.data.tsv,
// or a .gz of either, where the name parses as a console.
func discoverAssets(ctx context.Context, pageURL string) (map[platform.Tag]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build page request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch release page: unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse release page: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	assets := make(map[platform.Tag]string)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		name := strings.ToLower(path.Base(href))
		name = strings.TrimSuffix(name, ".gz")
		if !strings.HasSuffix(name, ".tsv") {
			return
		}
		name = strings.TrimSuffix(name, ".tsv")
		name = strings.TrimSuffix(name, ".data")
		tag, err := platform.Parse(name)
		if err != nil {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if _, seen := assets[tag]; !seen {
			assets[tag] = resolved.String()
		}
	})
	return assets, nil
}

func importAsset(ctx context.Context, client *http.Client, cache *gamedb.Cache, tag platform.Tag, assetURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build asset request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download snapshot: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("download snapshot: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp("", "gameid-snapshot-*")
	if err != nil {
		return 0, fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return 0, fmt.Errorf("save snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close snapshot: %w", err)
	}

	return cache.ImportFile(ctx, tag, tmp.Name())
}

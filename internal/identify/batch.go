package identify

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gameid/internal/platform"
)

// imageExtensions lists the dump file extensions accepted per platform when
// scanning a directory. Cue sheets stand in for their bin tracks.
var imageExtensions = map[platform.Tag][]string{
	platform.GB:       {".gb"},
	platform.GBC:      {".gbc", ".gb"},
	platform.GBA:      {".gba", ".agb"},
	platform.SNES:     {".sfc", ".smc"},
	platform.N64:      {".n64", ".z64", ".v64"},
	platform.Genesis:  {".md", ".gen", ".smd", ".bin"},
	platform.PSX:      {".cue", ".bin", ".iso", ".img"},
	platform.PS2:      {".iso", ".bin", ".cue", ".img"},
	platform.PSP:      {".iso", ".img"},
	platform.GC:       {".gcm", ".iso"},
	platform.Saturn:   {".cue", ".bin", ".iso", ".img"},
	platform.SegaCD:   {".cue", ".bin", ".iso", ".img"},
	platform.NeoGeoCD: {".cue", ".bin", ".iso", ".img"},
}

// FileResult pairs one scanned path with its outcome or failure.
type FileResult struct {
	Path    string   `json:"path"`
	Outcome *Outcome `json:"outcome,omitempty"`
	Err     error    `json:"-"`
	Error   string   `json:"error,omitempty"`
}

// Report is the output of one batch run.
type Report struct {
	RunID    string        `json:"run_id"`
	Platform platform.Tag  `json:"platform"`
	Started  time.Time     `json:"started"`
	Elapsed  time.Duration `json:"elapsed"`
	Results  []FileResult  `json:"results"`
}

// ListImages collects the platform's candidate image files directly under
// dir, sorted by name. When a directory holds cue sheets, their bin tracks
// are excluded so each disc is identified once.
func ListImages(dir string, tag platform.Tag) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	exts := imageExtensions[tag]
	accepted := func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		for _, e := range exts {
			if ext == e {
				return true
			}
		}
		return false
	}

	hasCue := false
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".cue") {
			hasCue = true
			break
		}
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !accepted(e.Name()) {
			continue
		}
		if hasCue && strings.EqualFold(filepath.Ext(e.Name()), ".bin") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ScanFiles identifies every path with a bounded worker pool. Individual
// failures land in their FileResult; the batch itself only stops on context
// cancellation.
func ScanFiles(ctx context.Context, paths []string, tag platform.Tag, ix IndexLookup, opts Options, workers int, logger *slog.Logger) *Report {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	report := &Report{
		RunID:    uuid.NewString(),
		Platform: tag,
		Started:  time.Now().UTC(),
		Results:  make([]FileResult, len(paths)),
	}
	logger = logger.With(slog.String("run_id", report.RunID))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				path := paths[i]
				out, err := IdentifyPath(ctx, path, tag, ix, opts)
				report.Results[i] = FileResult{Path: path, Outcome: out, Err: err}
				if err != nil {
					report.Results[i].Error = err.Error()
					logger.Warn("identification failed",
						slog.String("path", path),
						slog.String("error", err.Error()))
					continue
				}
				LogOutcome(logger, path, out)
			}
		}()
	}

	for i := range paths {
		select {
		case <-ctx.Done():
			report.Results[i] = FileResult{Path: paths[i], Err: ctx.Err(), Error: ctx.Err().Error()}
			continue
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	report.Elapsed = time.Since(report.Started)
	return report
}

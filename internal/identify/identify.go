// Package identify ties the pipeline together: extract an identifier from
// an image, look its serial up in the metadata index, and reconcile the two
// sides into a final result.
package identify

import (
	"context"
	"log/slog"

	"gameid/internal/binread"
	"gameid/internal/extract"
	"gameid/internal/gamedb"
	"gameid/internal/platform"
	"gameid/internal/reconcile"
)

// IndexLookup is the read side of the metadata index.
type IndexLookup interface {
	Lookup(tag platform.Tag, serial string) ([]gamedb.Record, error)
}

// Options adjusts identification behavior.
type Options struct {
	// PreferDatabase resolves field conflicts in favor of the database.
	PreferDatabase bool
	// Mounted carries caller-supplied volume metadata for mounted disc
	// directories. Ignored for regular image files.
	Mounted extract.MountedOptions
}

// Outcome is one completed identification.
type Outcome struct {
	Identifier *extract.Identifier `json:"identifier"`
	Result     reconcile.Result    `json:"result"`
}

// Identify runs the full pipeline over an open source.
func Identify(ctx context.Context, src *binread.Source, tag platform.Tag, ix IndexLookup, opts Options) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := extract.Extract(src, tag)
	if err != nil {
		return nil, err
	}
	return finish(id, ix, opts)
}

// IdentifyPath runs the full pipeline over a file, block device, cue sheet,
// or mounted disc directory.
func IdentifyPath(ctx context.Context, path string, tag platform.Tag, ix IndexLookup, opts Options) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := extract.ExtractPathWith(path, tag, opts.Mounted)
	if err != nil {
		return nil, err
	}
	return finish(id, ix, opts)
}

func finish(id *extract.Identifier, ix IndexLookup, opts Options) (*Outcome, error) {
	candidates, err := ix.Lookup(id.Platform, id.Serial)
	if err != nil {
		return nil, err
	}
	res := reconcile.Reconcile(id, candidates, opts.PreferDatabase)
	return &Outcome{Identifier: id, Result: res}, nil
}

// LogOutcome emits one structured line summarizing an identification.
func LogOutcome(logger *slog.Logger, path string, out *Outcome) {
	attrs := []any{
		slog.String("path", path),
		slog.String("platform", string(out.Identifier.Platform)),
		slog.String("serial", out.Identifier.Serial),
		slog.String("status", string(out.Result.Status)),
	}
	if out.Result.Metadata != nil {
		attrs = append(attrs, slog.String("title", out.Result.Metadata.Title))
	}
	logger.Info("identified", attrs...)
}

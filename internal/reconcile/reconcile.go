// Package reconcile merges what a header said about a game with what the
// metadata database knows about its serial, and decides between a match, an
// ambiguity, and a miss.
package reconcile

import (
	"strings"

	"gameid/internal/extract"
	"gameid/internal/gamedb"
	"gameid/internal/platform"
)

// Status classifies a reconciliation outcome.
type Status string

// Outcome statuses.
const (
	StatusMatched   Status = "matched"
	StatusAmbiguous Status = "ambiguous"
	StatusNotFound  Status = "not-found"
)

// Metadata is the merged view of one identified game.
type Metadata struct {
	Platform    platform.Tag `json:"platform"`
	Serial      string       `json:"serial"`
	Title       string       `json:"title"`
	Developer   string       `json:"developer,omitempty"`
	Publisher   string       `json:"publisher,omitempty"`
	Rating      string       `json:"rating,omitempty"`
	Region      string       `json:"region,omitempty"`
	ReleaseDate string       `json:"release_date,omitempty"`
	Version     string       `json:"version,omitempty"`
	CanonicalID string       `json:"canonical_id,omitempty"`
}

// Result carries the decision. Metadata is set only for a match; Candidates
// only for an ambiguity.
type Result struct {
	Status     Status          `json:"status"`
	Serial     string          `json:"serial"`
	Metadata   *Metadata       `json:"metadata,omitempty"`
	Candidates []gamedb.Record `json:"candidates,omitempty"`
}

// Reconcile resolves the database candidates for an extracted identifier.
// With several candidates the identifier's region and title hints narrow
// the field; if they cannot single one out the result is ambiguous and the
// caller sees every remaining candidate. preferDatabase decides whose
// fields win when the header and the database both know a value.
func Reconcile(id *extract.Identifier, candidates []gamedb.Record, preferDatabase bool) Result {
	if len(candidates) == 0 {
		return Result{Status: StatusNotFound, Serial: id.Serial}
	}

	if len(candidates) > 1 {
		candidates = narrow(candidates, id)
	}
	if len(candidates) > 1 {
		out := make([]gamedb.Record, len(candidates))
		copy(out, candidates)
		return Result{Status: StatusAmbiguous, Serial: id.Serial, Candidates: out}
	}

	meta := merge(id, candidates[0], preferDatabase)
	return Result{Status: StatusMatched, Serial: id.Serial, Metadata: meta}
}

// narrow filters candidates by the identifier's region hint, then by an
// exact title match. A filter that would eliminate every candidate is
// skipped; narrowing must never turn an ambiguity into a miss.
func narrow(candidates []gamedb.Record, id *extract.Identifier) []gamedb.Record {
	if id.Region != "" {
		if byRegion := filter(candidates, func(r gamedb.Record) bool {
			return strings.EqualFold(r.Region, id.Region)
		}); len(byRegion) > 0 {
			candidates = byRegion
		}
	}
	if len(candidates) > 1 && id.Title != "" {
		if byTitle := filter(candidates, func(r gamedb.Record) bool {
			return strings.EqualFold(r.Title, id.Title)
		}); len(byTitle) > 0 {
			candidates = byTitle
		}
	}
	return candidates
}

func filter(recs []gamedb.Record, keep func(gamedb.Record) bool) []gamedb.Record {
	var out []gamedb.Record
	for _, r := range recs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func merge(id *extract.Identifier, rec gamedb.Record, preferDatabase bool) *Metadata {
	pick := func(header, db string) string {
		if preferDatabase {
			if db != "" {
				return db
			}
			return header
		}
		if header != "" {
			return header
		}
		return db
	}
	return &Metadata{
		Platform:    id.Platform,
		Serial:      id.Serial,
		Title:       pick(id.Title, rec.Title),
		Developer:   rec.Developer,
		Publisher:   rec.Publisher,
		Rating:      rec.Rating,
		Region:      pick(id.Region, rec.Region),
		ReleaseDate: rec.ReleaseDate,
		Version:     id.Version,
		CanonicalID: rec.CanonicalID,
	}
}

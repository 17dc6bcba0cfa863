package gamedb

import "gameid/internal/platform"

// Record is one known release. Serial holds the normalized lookup key; the
// remaining fields are whatever the snapshot knows about the release.
type Record struct {
	Platform    platform.Tag `json:"platform"`
	Serial      string       `json:"serial"`
	Title       string       `json:"title"`
	Developer   string       `json:"developer,omitempty"`
	Publisher   string       `json:"publisher,omitempty"`
	Rating      string       `json:"rating,omitempty"`
	Region      string       `json:"region,omitempty"`
	ReleaseDate string       `json:"release_date,omitempty"`
	CanonicalID string       `json:"canonical_id,omitempty"`
}

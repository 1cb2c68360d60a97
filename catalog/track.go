// Package catalog defines the domain models for the AfroRhythm catalog and an
// in-memory aggregate used for lookups and playback ordering.
package catalog

import (
	"strings"

	"github.com/afrorhythm/afro/util"
)

// Track represents a single playable song record.
// All fields except PlayCount are immutable from the client's perspective;
// the play count is authoritative on the remote store and only shadowed here.
type Track struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ArtistID int64  `json:"artist_id"`
	Genre    string `json:"genre"`
	// Duration is the track length in whole seconds.
	Duration  int    `json:"duration"`
	PlayCount int64  `json:"play_count"`
	CoverURL  string `json:"cover_url,omitempty"`
	// MediaURL is the URI of the playable content. Empty or placeholder
	// values mean the track has no playable source and playback degrades
	// to the simulated mode.
	MediaURL string `json:"media_url,omitempty"`
}

// Playable reports whether the track carries a real media source.
func (t *Track) Playable() bool {
	u := strings.TrimSpace(t.MediaURL)
	if u == "" || u == "#" {
		return false
	}
	return !strings.Contains(u, "placeholder")
}

// DurationDisplay returns the track length formatted as "M:SS".
func (t *Track) DurationDisplay() string {
	return util.FormatDuration(t.Duration)
}

func (t *Track) String() string {
	return t.Title
}

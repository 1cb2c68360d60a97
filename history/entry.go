package history

import (
	"fmt"
	"time"

	"github.com/afrorhythm/afro/catalog"
)

// Entry represents a single playback record preserved in the user's listening
// history. Title and artist are stored redundantly so history stays
// displayable without a catalog fetch. Entries are never mutated; replays
// produce a fresh entry at the front.
type Entry struct {
	TrackID    int64     `json:"track_id"`
	Title      string    `json:"title"`
	ArtistName string    `json:"artist_name"`
	PlayedAt   time.Time `json:"played_at"`
}

// NewEntry builds a history entry for a track played now.
func NewEntry(track *catalog.Track, artistName string) *Entry {
	return &Entry{
		TrackID:    track.ID,
		Title:      track.Title,
		ArtistName: artistName,
		PlayedAt:   time.Now(),
	}
}

// PlayedAtDisplay derives the human-readable "played at" string.
func (e *Entry) PlayedAtDisplay() string {
	elapsed := time.Since(e.PlayedAt)

	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		m := int(elapsed.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case elapsed < 24*time.Hour:
		h := int(elapsed.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	default:
		return e.PlayedAt.Format("Jan 2, 2006")
	}
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s — %s (%s)", e.Title, e.ArtistName, e.PlayedAtDisplay())
}

// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/util"
)

// Track is the serialized shape of a single search result.
type Track struct {
	// Track is the catalog track itself.
	Track *catalog.Track `json:"track"`
	// Artist is the resolved artist entry (optional).
	Artist *catalog.Artist `json:"artist,omitempty"`
	// Favorite reports the authenticated user's favorite state.
	Favorite bool `json:"favorite"`
	// DurationDisplay is the track length formatted as M:SS.
	DurationDisplay string `json:"duration_display"`
}

// Output is the top-level JSON document written in --json mode.
type Output struct {
	Query  string   `json:"query"`
	Result []*Track `json:"result"`
}

func asJson(tracks []*catalog.Track, options *Options) ([]byte, error) {
	var result = make([]*Track, len(tracks))
	for i, t := range tracks {
		var artist *catalog.Artist
		if a, err := options.Library.Catalog().Artist(t.ArtistID); err == nil {
			artist = a
		}

		result[i] = &Track{
			Track:           t,
			Artist:          artist,
			Favorite:        options.Library.IsFavorite(t.ID),
			DurationDisplay: util.FormatDuration(t.Duration),
		}
	}

	return json.Marshal(&Output{
		Query:  options.Query,
		Result: result,
	})
}

package catalog

import "github.com/samber/lo"

// FavoritesPlaylistID is the sentinel id of the synthetic favorites playlist.
// It is derived on demand from the favorites set and never persisted.
const FavoritesPlaylistID int64 = -1

// Playlist is a named, ordered collection of track references.
// Order matters: playback position within a playlist is index-based.
type Playlist struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	TrackIDs    []int64 `json:"track_ids"`
	OwnerID     int64   `json:"owner_id"`
	PlayCount   int64   `json:"play_count"`
	Likes       int64   `json:"likes"`
	Public      bool    `json:"public"`
}

// IndexOf returns the position of a track within the playlist, or -1.
func (p *Playlist) IndexOf(trackID int64) int {
	return lo.IndexOf(p.TrackIDs, trackID)
}

// Contains reports whether the playlist references the given track.
func (p *Playlist) Contains(trackID int64) bool {
	return p.IndexOf(trackID) >= 0
}

func (p *Playlist) String() string {
	return p.Name
}

// FavoritesPlaylist synthesizes the favorites pseudo-playlist from a set of
// favorited track ids. The result is ephemeral and must not be persisted.
func FavoritesPlaylist(trackIDs []int64) *Playlist {
	return &Playlist{
		ID:       FavoritesPlaylistID,
		Name:     "Favorites",
		TrackIDs: trackIDs,
	}
}

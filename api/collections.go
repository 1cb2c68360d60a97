package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/afrorhythm/afro/catalog"
)

// HistoryRecord is the wire form of a remote listening history entry.
type HistoryRecord struct {
	TrackID  int64     `json:"track_id"`
	PlayedAt time.Time `json:"played_at"`
}

// Notification is a user-scoped message created by the remote store in
// response to activity. Only the read flag is mutated client-side.
type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	// Optional correlated entity used to route a click-through action.
	TrackID    int64 `json:"track_id,omitempty"`
	ArtistID   int64 `json:"artist_id,omitempty"`
	PlaylistID int64 `json:"playlist_id,omitempty"`
}

// Favorites retrieves the set of favorited track ids.
func (c *Client) Favorites() ([]int64, error) {
	var ids []int64
	if err := c.request(http.MethodGet, "/me/favorites", nil, &ids, true); err != nil {
		return nil, err
	}
	return ids, nil
}

// AddFavorite marks a track as favorited.
func (c *Client) AddFavorite(trackID int64) error {
	body := map[string]int64{"track_id": trackID}
	return c.request(http.MethodPost, "/me/favorites", body, nil, true)
}

// RemoveFavorite removes a track from the favorites set.
func (c *Client) RemoveFavorite(trackID int64) error {
	return c.request(http.MethodDelete, fmt.Sprintf("/me/favorites/%d", trackID), nil, nil, true)
}

// Follows retrieves the set of followed artist ids.
func (c *Client) Follows() ([]int64, error) {
	var ids []int64
	if err := c.request(http.MethodGet, "/me/follows", nil, &ids, true); err != nil {
		return nil, err
	}
	return ids, nil
}

// Follow subscribes the user to an artist.
func (c *Client) Follow(artistID int64) error {
	body := map[string]int64{"artist_id": artistID}
	return c.request(http.MethodPost, "/me/follows", body, nil, true)
}

// Unfollow removes an artist subscription.
func (c *Client) Unfollow(artistID int64) error {
	return c.request(http.MethodDelete, fmt.Sprintf("/me/follows/%d", artistID), nil, nil, true)
}

// LikedPlaylists retrieves the set of liked playlist ids.
func (c *Client) LikedPlaylists() ([]int64, error) {
	var ids []int64
	if err := c.request(http.MethodGet, "/me/playlist-likes", nil, &ids, true); err != nil {
		return nil, err
	}
	return ids, nil
}

// LikePlaylist marks a playlist as liked.
func (c *Client) LikePlaylist(playlistID int64) error {
	body := map[string]int64{"playlist_id": playlistID}
	return c.request(http.MethodPost, "/me/playlist-likes", body, nil, true)
}

// UnlikePlaylist removes a playlist like.
func (c *Client) UnlikePlaylist(playlistID int64) error {
	return c.request(http.MethodDelete, fmt.Sprintf("/me/playlist-likes/%d", playlistID), nil, nil, true)
}

// Playlists retrieves the playlists owned by the user.
func (c *Client) Playlists() ([]*catalog.Playlist, error) {
	var playlists []*catalog.Playlist
	if err := c.request(http.MethodGet, "/me/playlists", nil, &playlists, true); err != nil {
		return nil, err
	}
	return playlists, nil
}

// CreatePlaylist creates a new playlist and returns its persisted form.
func (c *Client) CreatePlaylist(name, description string, public bool, trackIDs []int64) (*catalog.Playlist, error) {
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
		"track_ids":   trackIDs,
	}

	var playlist catalog.Playlist
	if err := c.request(http.MethodPost, "/me/playlists", body, &playlist, true); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// UpdatePlaylist replaces a playlist's metadata.
func (c *Client) UpdatePlaylist(id int64, name, description string, public bool) error {
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}
	return c.request(http.MethodPut, fmt.Sprintf("/me/playlists/%d", id), body, nil, true)
}

// DeletePlaylist removes a playlist permanently.
func (c *Client) DeletePlaylist(id int64) error {
	return c.request(http.MethodDelete, fmt.Sprintf("/me/playlists/%d", id), nil, nil, true)
}

// AddPlaylistTrack appends a track to a playlist.
func (c *Client) AddPlaylistTrack(playlistID, trackID int64) error {
	body := map[string]int64{"track_id": trackID}
	return c.request(http.MethodPost, fmt.Sprintf("/me/playlists/%d/tracks", playlistID), body, nil, true)
}

// RemovePlaylistTrack removes a track from a playlist.
func (c *Client) RemovePlaylistTrack(playlistID, trackID int64) error {
	return c.request(http.MethodDelete, fmt.Sprintf("/me/playlists/%d/tracks/%d", playlistID, trackID), nil, nil, true)
}

// History retrieves the remote listening history, most recent first.
func (c *Client) History() ([]HistoryRecord, error) {
	var records []HistoryRecord
	if err := c.request(http.MethodGet, "/me/history", nil, &records, true); err != nil {
		return nil, err
	}
	return records, nil
}

// RecordPlay notifies the remote store of a completed play. The remote store
// is the authoritative source of per-track play counts.
func (c *Client) RecordPlay(trackID int64) error {
	body := map[string]int64{"track_id": trackID}
	return c.request(http.MethodPost, "/me/history", body, nil, true)
}

// ClearHistory removes the entire remote listening history.
func (c *Client) ClearHistory() error {
	return c.request(http.MethodDelete, "/me/history", nil, nil, true)
}

// Notifications retrieves the user's notifications, most recent first.
func (c *Client) Notifications() ([]*Notification, error) {
	var notifications []*Notification
	if err := c.request(http.MethodGet, "/me/notifications", nil, &notifications, true); err != nil {
		return nil, err
	}
	return notifications, nil
}

// CreateNotification records a client-originated notification, e.g. a
// favorites milestone.
func (c *Client) CreateNotification(title, message string) error {
	body := map[string]string{"title": title, "message": message}
	return c.request(http.MethodPost, "/me/notifications", body, nil, true)
}

// MarkNotificationRead flips a single notification's read flag remotely.
func (c *Client) MarkNotificationRead(id int64) error {
	return c.request(http.MethodPut, fmt.Sprintf("/me/notifications/%d", id), nil, nil, true)
}

// MarkAllNotificationsRead flips every notification's read flag remotely.
func (c *Client) MarkAllNotificationsRead() error {
	return c.request(http.MethodPut, "/me/notifications", nil, nil, true)
}

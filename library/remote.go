package library

import (
	"github.com/afrorhythm/afro/api"
	"github.com/afrorhythm/afro/catalog"
)

// Remote is the slice of the AfroRhythm API the library depends on.
// *api.Client satisfies it; tests substitute a scripted fake.
type Remote interface {
	Favorites() ([]int64, error)
	AddFavorite(trackID int64) error
	RemoveFavorite(trackID int64) error

	Follows() ([]int64, error)
	Follow(artistID int64) error
	Unfollow(artistID int64) error

	LikedPlaylists() ([]int64, error)
	LikePlaylist(playlistID int64) error
	UnlikePlaylist(playlistID int64) error

	Playlists() ([]*catalog.Playlist, error)
	CreatePlaylist(name, description string, public bool, trackIDs []int64) (*catalog.Playlist, error)
	UpdatePlaylist(id int64, name, description string, public bool) error
	DeletePlaylist(id int64) error
	AddPlaylistTrack(playlistID, trackID int64) error
	RemovePlaylistTrack(playlistID, trackID int64) error

	History() ([]api.HistoryRecord, error)
	RecordPlay(trackID int64) error
	ClearHistory() error

	Notifications() ([]*api.Notification, error)
	CreateNotification(title, message string) error
	MarkNotificationRead(id int64) error
	MarkAllNotificationsRead() error
}

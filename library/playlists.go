package library

import (
	"fmt"
	"strings"

	"github.com/afrorhythm/afro/log"
)

// CreatePlaylist creates a playlist remotely and appends it to the owned
// list. The name must be non-empty after trimming.
func (l *Library) CreatePlaylist(name, description string, public bool, trackIDs []int64) error {
	if err := l.requireSession(); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", ErrValidation)
	}

	playlist, err := l.remote.CreatePlaylist(name, description, public, trackIDs)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.playlists = append(l.playlists, playlist)
	l.mu.Unlock()

	l.changed()
	return nil
}

// RenamePlaylist updates an owned playlist's metadata.
func (l *Library) RenamePlaylist(id int64, name, description string, public bool) error {
	if err := l.requireSession(); err != nil {
		return err
	}

	playlist, err := l.OwnedPlaylist(id)
	if err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", ErrValidation)
	}

	if err := l.remote.UpdatePlaylist(id, name, description, public); err != nil {
		return err
	}

	l.mu.Lock()
	playlist.Name = name
	playlist.Description = description
	playlist.Public = public
	l.mu.Unlock()

	l.changed()
	return nil
}

// DeletePlaylist removes an owned playlist. Callers are expected to have
// confirmed the action with the user.
func (l *Library) DeletePlaylist(id int64) error {
	if err := l.requireSession(); err != nil {
		return err
	}

	if _, err := l.OwnedPlaylist(id); err != nil {
		return err
	}

	if err := l.remote.DeletePlaylist(id); err != nil {
		return err
	}

	l.mu.Lock()
	kept := l.playlists[:0]
	for _, p := range l.playlists {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	l.playlists = kept
	l.mu.Unlock()

	log.Infof("playlist %d deleted", id)
	l.changed()
	return nil
}

// AddTrackToPlaylist appends a catalog track to an owned playlist.
func (l *Library) AddTrackToPlaylist(playlistID, trackID int64) error {
	if err := l.requireSession(); err != nil {
		return err
	}

	playlist, err := l.OwnedPlaylist(playlistID)
	if err != nil {
		return err
	}

	if _, err := l.catalog.Track(trackID); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if playlist.Contains(trackID) {
		return fmt.Errorf("%w: track %d is already in %q", ErrValidation, trackID, playlist.Name)
	}

	if err := l.remote.AddPlaylistTrack(playlistID, trackID); err != nil {
		return err
	}

	l.mu.Lock()
	playlist.TrackIDs = append(playlist.TrackIDs, trackID)
	l.mu.Unlock()

	l.changed()
	return nil
}

// RemoveTrackFromPlaylist removes a track from an owned playlist.
func (l *Library) RemoveTrackFromPlaylist(playlistID, trackID int64) error {
	if err := l.requireSession(); err != nil {
		return err
	}

	playlist, err := l.OwnedPlaylist(playlistID)
	if err != nil {
		return err
	}

	index := playlist.IndexOf(trackID)
	if index < 0 {
		return fmt.Errorf("%w: track %d is not in %q", ErrValidation, trackID, playlist.Name)
	}

	if err := l.remote.RemovePlaylistTrack(playlistID, trackID); err != nil {
		return err
	}

	l.mu.Lock()
	playlist.TrackIDs = append(playlist.TrackIDs[:index], playlist.TrackIDs[index+1:]...)
	l.mu.Unlock()

	l.changed()
	return nil
}

package library

import (
	"fmt"
	"time"

	"github.com/afrorhythm/afro/api"
	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/log"
	"github.com/afrorhythm/afro/util"
)

// favoriteMilestone is the favorites count interval that produces a
// celebratory notification.
const favoriteMilestone = 5

// ToggleFavorite adds the track to the favorites set or removes it, matching
// the remote store. The local set is only updated once the remote confirms,
// so a failed call leaves local state untouched.
func (l *Library) ToggleFavorite(trackID int64) error {
	if err := l.requireSession(); err != nil {
		return err
	}

	if _, err := l.catalog.Track(trackID); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	entity := fmt.Sprintf("favorite:%d", trackID)
	seq := l.issue(entity)

	adding := !l.IsFavorite(trackID)

	var err error
	if adding {
		err = l.remote.AddFavorite(trackID)
	} else {
		err = l.remote.RemoveFavorite(trackID)
	}
	if err != nil {
		return err
	}

	if !l.current(entity, seq) {
		log.Debugf("favorite toggle for track %d superseded, discarding", trackID)
		return ErrSuperseded
	}

	l.mu.Lock()
	if adding {
		l.favorites[trackID] = struct{}{}
	} else {
		delete(l.favorites, trackID)
	}
	count := len(l.favorites)
	l.mu.Unlock()

	if adding && count > 0 && count%favoriteMilestone == 0 {
		l.favoriteMilestoneReached(count)
	}

	l.changed()
	return nil
}

// favoriteMilestoneReached records a milestone notification. Best effort: a
// remote failure only loses the server copy, the local one still shows.
func (l *Library) favoriteMilestoneReached(count int) {
	title := "Milestone reached"
	message := fmt.Sprintf("You have favorited %s!", util.Quantify(count, "track", "tracks"))

	if err := l.remote.CreateNotification(title, message); err != nil {
		log.Warnf("milestone notification not persisted remotely: %v", err)
	}

	l.mu.Lock()
	l.notifications = append([]*api.Notification{{
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}}, l.notifications...)
	l.mu.Unlock()
}

// ToggleFollow subscribes to or unsubscribes from an artist, adjusting the
// artist's shadow follower count by one for immediate feedback. The count is
// reconciled against the authoritative value on the next full reload.
func (l *Library) ToggleFollow(artistID int64) error {
	if err := l.requireSession(); err != nil {
		return err
	}

	artist, err := l.catalog.Artist(artistID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	entity := fmt.Sprintf("follow:%d", artistID)
	seq := l.issue(entity)

	following := !l.IsFollowing(artistID)

	if following {
		err = l.remote.Follow(artistID)
	} else {
		err = l.remote.Unfollow(artistID)
	}
	if err != nil {
		return err
	}

	if !l.current(entity, seq) {
		log.Debugf("follow toggle for artist %d superseded, discarding", artistID)
		return ErrSuperseded
	}

	l.mu.Lock()
	if following {
		l.follows[artistID] = struct{}{}
		artist.Followers++
	} else {
		delete(l.follows, artistID)
		if artist.Followers > 0 {
			artist.Followers--
		}
	}
	l.mu.Unlock()

	l.changed()
	return nil
}

// ToggleLikePlaylist likes or unlikes a playlist, adjusting the playlist's
// shadow like count by one, floored at zero.
func (l *Library) ToggleLikePlaylist(playlistID int64) error {
	if err := l.requireSession(); err != nil {
		return err
	}

	playlist := l.findPlaylist(playlistID)
	if playlist == nil {
		return fmt.Errorf("%w: playlist %d not found", ErrValidation, playlistID)
	}

	entity := fmt.Sprintf("playlist-like:%d", playlistID)
	seq := l.issue(entity)

	liking := !l.LikesPlaylist(playlistID)

	var err error
	if liking {
		err = l.remote.LikePlaylist(playlistID)
	} else {
		err = l.remote.UnlikePlaylist(playlistID)
	}
	if err != nil {
		return err
	}

	if !l.current(entity, seq) {
		log.Debugf("like toggle for playlist %d superseded, discarding", playlistID)
		return ErrSuperseded
	}

	l.mu.Lock()
	if liking {
		l.likedPlaylists[playlistID] = struct{}{}
		playlist.Likes++
	} else {
		delete(l.likedPlaylists, playlistID)
		if playlist.Likes > 0 {
			playlist.Likes--
		}
	}
	l.mu.Unlock()

	l.changed()
	return nil
}

// findPlaylist resolves a playlist from the owned list or the public catalog.
func (l *Library) findPlaylist(id int64) *catalog.Playlist {
	l.mu.Lock()
	for _, p := range l.playlists {
		if p.ID == id {
			l.mu.Unlock()
			return p
		}
	}
	l.mu.Unlock()

	for _, p := range l.catalog.Playlists() {
		if p.ID == id {
			return p
		}
	}
	return nil
}

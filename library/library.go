// Package library maintains the user-scoped collections - favorites, follows,
// liked playlists, owned playlists, listening history and notifications - as
// an in-memory mirror of the remote store. Mutations are applied locally only
// after the remote store confirms them; on failure the local state is left
// exactly as it was.
package library

import (
	"fmt"
	"sync"

	"github.com/afrorhythm/afro/api"
	"github.com/afrorhythm/afro/auth"
	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/history"
	"github.com/afrorhythm/afro/key"
	"github.com/afrorhythm/afro/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Library is the local state cache. It owns the user collections for the
// lifetime of a session: constructed on startup, populated by LoadAll, reset
// on logout.
type Library struct {
	remote  Remote
	catalog *catalog.Catalog
	session mo.Option[*auth.Session]

	mu             sync.Mutex
	favorites      map[int64]struct{}
	follows        map[int64]struct{}
	likedPlaylists map[int64]struct{}
	playlists      []*catalog.Playlist
	entries        []*history.Entry
	notifications  []*api.Notification

	// seq tracks the latest issued request per entity so a stale completion
	// can be recognized and discarded (last-write-wins by issue order).
	seq map[string]uint64

	// OnChange, when set, is invoked after every applied mutation so views
	// can re-render from the cache instead of re-deriving state.
	OnChange func()
}

// New builds an empty library bound to a remote store and a catalog.
// session is None for anonymous use: history keeps working locally, every
// other mutation rejects with ErrAuthRequired.
func New(remote Remote, cat *catalog.Catalog, session mo.Option[*auth.Session]) *Library {
	return &Library{
		remote:         remote,
		catalog:        cat,
		session:        session,
		favorites:      make(map[int64]struct{}),
		follows:        make(map[int64]struct{}),
		likedPlaylists: make(map[int64]struct{}),
		seq:            make(map[string]uint64),
	}
}

// Authenticated reports whether an active session is bound.
func (l *Library) Authenticated() bool {
	return l.session.IsPresent()
}

// Session returns the bound session, if any.
func (l *Library) Session() mo.Option[*auth.Session] {
	return l.session
}

// Catalog returns the catalog the library resolves tracks against.
func (l *Library) Catalog() *catalog.Catalog {
	return l.catalog
}

// requireSession gates mutating collection operations.
func (l *Library) requireSession() error {
	if l.session.IsAbsent() {
		return ErrAuthRequired
	}
	return nil
}

// issue registers a new request for the entity and returns its sequence.
func (l *Library) issue(entity string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq[entity]++
	return l.seq[entity]
}

// current reports whether the given sequence is still the latest issued for
// the entity. A false result means a newer request superseded this one while
// it was in flight and its completion must not touch local state.
func (l *Library) current(entity string, seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq[entity] == seq
}

// changed fires the OnChange hook outside the lock.
func (l *Library) changed() {
	if l.OnChange != nil {
		l.OnChange()
	}
}

// historyCap resolves the configured history length bound.
func historyCap() int {
	if c := viper.GetInt(key.HistoryCap); c > 0 {
		return c
	}
	return history.DefaultCap
}

// LoadAll is the bootstrap: it fetches every user collection concurrently and
// waits for all of them to settle. Each fetch failure independently degrades
// that one collection instead of aborting the others, so the session starts
// with whatever loaded successfully.
func (l *Library) LoadAll() {
	if l.session.IsAbsent() {
		// Anonymous bootstrap: only the local history file is available.
		if entries, err := history.Get(); err == nil {
			l.mu.Lock()
			l.entries = entries
			l.mu.Unlock()
		}
		return
	}

	var wg sync.WaitGroup
	part := func(name string, load func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := load(); err != nil {
				log.Warnf("bootstrap: %s degraded to empty: %v", name, err)
			}
		}()
	}

	part("favorites", func() error {
		ids, err := l.remote.Favorites()
		if err != nil {
			return err
		}
		l.mu.Lock()
		l.favorites = lo.SliceToMap(ids, func(id int64) (int64, struct{}) {
			return id, struct{}{}
		})
		l.mu.Unlock()
		return nil
	})

	part("follows", func() error {
		ids, err := l.remote.Follows()
		if err != nil {
			return err
		}
		l.mu.Lock()
		l.follows = lo.SliceToMap(ids, func(id int64) (int64, struct{}) {
			return id, struct{}{}
		})
		l.mu.Unlock()
		return nil
	})

	part("playlists", func() error {
		playlists, err := l.remote.Playlists()
		if err != nil {
			return err
		}
		l.mu.Lock()
		l.playlists = playlists
		l.mu.Unlock()
		return nil
	})

	part("liked playlists", func() error {
		ids, err := l.remote.LikedPlaylists()
		if err != nil {
			return err
		}
		l.mu.Lock()
		l.likedPlaylists = lo.SliceToMap(ids, func(id int64) (int64, struct{}) {
			return id, struct{}{}
		})
		l.mu.Unlock()
		return nil
	})

	part("history", func() error {
		records, err := l.remote.History()
		if err != nil {
			// The local history file still serves the session.
			if entries, localErr := history.Get(); localErr == nil {
				l.mu.Lock()
				l.entries = entries
				l.mu.Unlock()
			}
			return err
		}

		entries := history.Normalize(lo.Map(records, func(r api.HistoryRecord, _ int) *history.Entry {
			entry := &history.Entry{TrackID: r.TrackID, PlayedAt: r.PlayedAt}
			if track, err := l.catalog.Track(r.TrackID); err == nil {
				entry.Title = track.Title
				entry.ArtistName = l.catalog.ArtistName(track)
			}
			return entry
		}), historyCap())

		l.mu.Lock()
		l.entries = entries
		l.mu.Unlock()
		return history.Replace(entries, historyCap())
	})

	part("notifications", func() error {
		notifications, err := l.remote.Notifications()
		if err != nil {
			return err
		}
		l.mu.Lock()
		l.notifications = notifications
		l.mu.Unlock()
		return nil
	})

	wg.Wait()
	l.changed()
}

// Reset tears the cache down to its unauthenticated zero state. Called on
// logout.
func (l *Library) Reset() {
	l.mu.Lock()
	l.session = mo.None[*auth.Session]()
	l.favorites = make(map[int64]struct{})
	l.follows = make(map[int64]struct{})
	l.likedPlaylists = make(map[int64]struct{})
	l.playlists = nil
	l.entries = nil
	l.notifications = nil
	l.seq = make(map[string]uint64)
	l.mu.Unlock()
	l.changed()
}

// Favorites returns the favorited track ids. Order is unspecified.
func (l *Library) Favorites() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return lo.Keys(l.favorites)
}

// IsFavorite reports whether the track is in the favorites set.
func (l *Library) IsFavorite(trackID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.favorites[trackID]
	return ok
}

// FavoritesPlaylist synthesizes the favorites pseudo-playlist on demand.
func (l *Library) FavoritesPlaylist() *catalog.Playlist {
	return catalog.FavoritesPlaylist(l.Favorites())
}

// Follows returns the followed artist ids.
func (l *Library) Follows() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return lo.Keys(l.follows)
}

// IsFollowing reports whether the artist is followed.
func (l *Library) IsFollowing(artistID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.follows[artistID]
	return ok
}

// LikesPlaylist reports whether the playlist is liked.
func (l *Library) LikesPlaylist(playlistID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.likedPlaylists[playlistID]
	return ok
}

// Playlists returns the user's owned playlists in creation order.
func (l *Library) Playlists() []*catalog.Playlist {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.playlists
}

// OwnedPlaylist looks a playlist up in the owned list.
func (l *Library) OwnedPlaylist(id int64) (*catalog.Playlist, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := lo.Find(l.playlists, func(p *catalog.Playlist) bool {
		return p.ID == id
	})
	if !ok {
		return nil, fmt.Errorf("%w: playlist %d", ErrNotOwner, id)
	}
	return p, nil
}

// History returns the listening history, most recent first.
func (l *Library) History() []*history.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries
}

// Notifications returns the user's notifications.
func (l *Library) Notifications() []*api.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.notifications
}

// UnreadCount returns the number of unread notifications.
func (l *Library) UnreadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return lo.CountBy(l.notifications, func(n *api.Notification) bool {
		return !n.Read
	})
}

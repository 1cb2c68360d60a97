package catalog

import (
	"time"

	"github.com/afrorhythm/afro/filesystem"
	"github.com/afrorhythm/afro/where"
	"github.com/metafates/gache"
)

// snapshot is the on-disk form of a fetched catalog.
type snapshot struct {
	Tracks    []*Track    `json:"tracks"`
	Artists   []*Artist   `json:"artists"`
	Playlists []*Playlist `json:"playlists"`
}

// snapshotCacher persists the last fetched catalog so browse and play keep
// working between fetches and while the remote store is unreachable.
var snapshotCacher = gache.New[*snapshot](
	&gache.Options{
		Path:       where.Catalog(),
		Lifetime:   time.Hour * 24,
		FileSystem: &filesystem.GacheFs{},
	},
)

// SaveSnapshot persists the given catalog contents to the local cache.
func SaveSnapshot(tracks []*Track, artists []*Artist, playlists []*Playlist) error {
	return snapshotCacher.Set(&snapshot{
		Tracks:    tracks,
		Artists:   artists,
		Playlists: playlists,
	})
}

// LoadSnapshot rebuilds a Catalog from the local cache.
// Returns ok=false when no fresh snapshot is available.
func LoadSnapshot() (*Catalog, bool) {
	cached, expired, err := snapshotCacher.Get()
	if err != nil || expired || cached == nil {
		return nil, false
	}
	return New(cached.Tracks, cached.Artists, cached.Playlists), true
}

package catalog

import (
	"fmt"
	"math/rand"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// Catalog is the in-memory aggregate of the public AfroRhythm catalog.
// Tracks are kept sorted by id; circular playback order follows that sequence.
type Catalog struct {
	tracks    []*Track
	artists   map[int64]*Artist
	playlists []*Playlist

	trackIndex map[int64]int
}

// New builds a Catalog from the raw collections returned by the remote store.
func New(tracks []*Track, artists []*Artist, playlists []*Playlist) *Catalog {
	c := &Catalog{
		artists:   make(map[int64]*Artist, len(artists)),
		playlists: playlists,
	}

	c.tracks = slices.Clone(tracks)
	slices.SortFunc(c.tracks, func(a, b *Track) int {
		return int(a.ID - b.ID)
	})

	c.trackIndex = make(map[int64]int, len(c.tracks))
	for i, t := range c.tracks {
		c.trackIndex[t.ID] = i
	}

	for _, a := range artists {
		c.artists[a.ID] = a
	}

	return c
}

// Tracks returns the catalog's tracks in id order.
func (c *Catalog) Tracks() []*Track {
	return c.tracks
}

// Playlists returns the public playlists known to the catalog.
func (c *Catalog) Playlists() []*Playlist {
	return c.playlists
}

// Artists returns all known artists.
func (c *Catalog) Artists() []*Artist {
	return lo.Values(c.artists)
}

// Len returns the number of tracks in the catalog.
func (c *Catalog) Len() int {
	return len(c.tracks)
}

// Track looks up a track by id.
func (c *Catalog) Track(id int64) (*Track, error) {
	i, ok := c.trackIndex[id]
	if !ok {
		return nil, fmt.Errorf("track %d not found", id)
	}
	return c.tracks[i], nil
}

// Artist looks up an artist by id.
func (c *Catalog) Artist(id int64) (*Artist, error) {
	a, ok := c.artists[id]
	if !ok {
		return nil, fmt.Errorf("artist %d not found", id)
	}
	return a, nil
}

// ArtistName returns the display name for a track's artist, or an empty string.
func (c *Catalog) ArtistName(t *Track) string {
	if a, ok := c.artists[t.ArtistID]; ok {
		return a.Name
	}
	return ""
}

// IndexOf returns the position of a track id within the catalog order, or -1.
func (c *Catalog) IndexOf(id int64) int {
	i, ok := c.trackIndex[id]
	if !ok {
		return -1
	}
	return i
}

// NextAfter returns the track following the given one in catalog order,
// wrapping from the last position back to the first.
func (c *Catalog) NextAfter(id int64) (*Track, error) {
	return c.step(id, 1)
}

// PrevBefore returns the track preceding the given one in catalog order,
// wrapping from the first position to the last.
func (c *Catalog) PrevBefore(id int64) (*Track, error) {
	return c.step(id, -1)
}

func (c *Catalog) step(id int64, delta int) (*Track, error) {
	if len(c.tracks) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	i, ok := c.trackIndex[id]
	if !ok {
		return nil, fmt.Errorf("track %d not found", id)
	}

	n := len(c.tracks)
	return c.tracks[((i+delta)%n+n)%n], nil
}

// Random returns a uniformly chosen track, used as the convenience default
// when playback is requested with nothing selected.
func (c *Catalog) Random() mo.Option[*Track] {
	if len(c.tracks) == 0 {
		return mo.None[*Track]()
	}
	return mo.Some(c.tracks[rand.Intn(len(c.tracks))])
}

// Search returns tracks whose title or artist fuzzily matches the query.
func (c *Catalog) Search(query string) []*Track {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	return lo.Filter(c.tracks, func(t *Track, _ int) bool {
		return fuzzy.Match(query, strings.ToLower(t.Title)) ||
			fuzzy.Match(query, strings.ToLower(c.ArtistName(t)))
	})
}

// Closest returns the track whose title has the smallest levenshtein distance
// to the query. Used by `afro play <name>` to resolve free-form input.
func (c *Catalog) Closest(query string) (*Track, error) {
	if len(c.tracks) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	query = strings.ToLower(strings.TrimSpace(query))
	return lo.MinBy(c.tracks, func(a, b *Track) bool {
		return levenshtein.Distance(query, strings.ToLower(a.Title)) <
			levenshtein.Distance(query, strings.ToLower(b.Title))
	}), nil
}

// Package history provides the local listening history: an ordered,
// deduplicated, capped log of recently played tracks, persisted on disk so it
// survives restarts and works without an authenticated session.
package history

import (
	"github.com/afrorhythm/afro/filesystem"
	"github.com/afrorhythm/afro/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

// DefaultCap bounds the history length; oldest entries are evicted first.
const DefaultCap = 50

// cacher provides an abstracted, disk-backed registry for playback records.
var cacher = gache.New[[]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Insert places an entry at the front of the list, removing any previous
// entry for the same track first, then truncates to the limit. Replays therefore
// move to the top instead of duplicating, and at most limit entries survive.
func Insert(entries []*Entry, entry *Entry, limit int) []*Entry {
	kept := lo.Reject(entries, func(e *Entry, _ int) bool {
		return e.TrackID == entry.TrackID
	})

	result := append([]*Entry{entry}, kept...)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Normalize applies the dedup and cap rules to an externally sourced list:
// the first entry per track survives (the list is most recent first), and at
// most limit entries remain.
func Normalize(entries []*Entry, limit int) []*Entry {
	result := lo.UniqBy(entries, func(e *Entry) int64 {
		return e.TrackID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Get returns all historical playback records, most recent first.
func Get() ([]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return []*Entry{}, nil
	}
	return cached, nil
}

// Save persists a new playback record, applying dedup and cap rules.
func Save(entry *Entry, limit int) error {
	entries, err := Get()
	if err != nil {
		return err
	}
	return cacher.Set(Insert(entries, entry, limit))
}

// Replace overwrites the whole history, applying the dedup and cap rules.
func Replace(entries []*Entry, limit int) error {
	return cacher.Set(Normalize(entries, limit))
}

// Remove deletes every record for the given track.
func Remove(trackID int64) error {
	entries, err := Get()
	if err != nil {
		return err
	}

	kept := lo.Reject(entries, func(e *Entry, _ int) bool {
		return e.TrackID == trackID
	})
	return cacher.Set(kept)
}

// Clear removes all playback records.
func Clear() error {
	return cacher.Set([]*Entry{})
}

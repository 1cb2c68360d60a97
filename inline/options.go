// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/library"
	"github.com/samber/mo"
)

// TrackPicker narrows a search result down to a single track.
type TrackPicker func([]*catalog.Track) *catalog.Track

type Options struct {
	Out     io.Writer
	Library *library.Library
	Json    bool
	Query   string
	Picker  mo.Option[TrackPicker]
	// Play records a playback for the picked track after printing it.
	Play bool
	// Limit truncates the result set; zero means no truncation.
	Limit int
}

// ParseTrackPicker builds a TrackPicker from its CLI flag description.
// Supported kinds are "first", "last", "exact" and "index".
func ParseTrackPicker(kind, value string) (TrackPicker, error) {
	switch kind {
	case "first":
		return func(tracks []*catalog.Track) *catalog.Track {
			if len(tracks) == 0 {
				return nil
			}
			return tracks[0]
		}, nil
	case "last":
		return func(tracks []*catalog.Track) *catalog.Track {
			if len(tracks) == 0 {
				return nil
			}
			return tracks[len(tracks)-1]
		}, nil
	case "exact":
		return func(tracks []*catalog.Track) *catalog.Track {
			for _, t := range tracks {
				if t.Title == value {
					return t
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(tracks []*catalog.Track) *catalog.Track {
			if len(tracks) == 0 {
				return nil
			}
			if idx >= uint64(len(tracks)) {
				return tracks[len(tracks)-1]
			}
			return tracks[idx]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

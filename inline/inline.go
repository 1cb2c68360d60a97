// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"os"

	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/log"
	"github.com/afrorhythm/afro/query"
	"github.com/afrorhythm/afro/util"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	query.Remember(options.Query, 1)

	tracks := options.Library.Catalog().Search(options.Query)
	if options.Limit > 0 && len(tracks) > options.Limit {
		tracks = tracks[:options.Limit]
	}

	if picker, ok := options.Picker.Get(); ok {
		if choice := picker(tracks); choice != nil {
			tracks = []*catalog.Track{choice}
		} else {
			tracks = nil
		}
	}

	if options.Play && len(tracks) == 1 {
		if err := options.Library.RecordPlay(tracks[0].ID); err != nil {
			log.Error(err)
		}
	}

	if options.Json {
		return writeJson(options.Out, tracks, options)
	}

	for _, t := range tracks {
		artist := options.Library.Catalog().ArtistName(t)
		fmt.Fprintf(options.Out, "%s — %s (%s)\n", t.Title, artist, util.FormatDuration(t.Duration))
	}

	return nil
}

func writeJson(out io.Writer, tracks []*catalog.Track, options *Options) error {
	payload, err := asJson(tracks, options)
	if err != nil {
		return err
	}

	_, err = out.Write(payload)
	return err
}

// Package cmd implements the command-line interface for afro.
package cmd

import (
	"fmt"

	"github.com/afrorhythm/afro/api"
	"github.com/afrorhythm/afro/auth"
	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/library"
	"github.com/afrorhythm/afro/log"
	"github.com/samber/mo"
)

// loadLibrary brings up a complete non-interactive session: catalog,
// authenticated user (when a token is stored) and all remote collections.
// A stale catalog snapshot is used when the API is unreachable.
func loadLibrary() (*library.Library, error) {
	client := api.NewClient()

	cat, err := client.FetchCatalog()
	if err != nil {
		log.Warnf("catalog fetch failed, trying local snapshot: %v", err)

		snapshot, ok := catalog.LoadSnapshot()
		if !ok {
			return nil, fmt.Errorf("catalog unavailable: %w", err)
		}
		cat = snapshot
	}

	session := mo.None[*auth.Session]()
	if auth.HasToken() {
		if me, err := client.Me(); err == nil {
			session = mo.Some(me)
		} else {
			log.Warnf("session invalid, continuing anonymously: %v", err)
		}
	}

	lib := library.New(client, cat, session)
	lib.LoadAll()

	return lib, nil
}

// requireUser loads the library and fails when no user is signed in.
func requireUser() (*library.Library, error) {
	lib, err := loadLibrary()
	if err != nil {
		return nil, err
	}

	if !lib.Authenticated() {
		return nil, auth.ErrNoSession
	}

	return lib, nil
}

// Package cache prunes expired entries from the on-disk cache directory.
package cache

import (
	"os"
	"time"

	"github.com/afrorhythm/afro/filesystem"
	"github.com/afrorhythm/afro/where"
	"github.com/spf13/afero"
)

// TTL is the maximum age of a cache entry before it is eligible for pruning.
// Cached release lookups and query suggestions carry their own expiry inside
// the files; this sweep only reclaims disk space from long-abandoned entries.
const TTL = 7 * 24 * time.Hour

// CollectGarbage initializes an asynchronous background task to prune expired
// cache entries from the filesystem.
func CollectGarbage() {
	go func() {
		_ = afero.Walk(filesystem.API(), where.Cache(), func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}

			if time.Since(info.ModTime()) > TTL {
				_ = filesystem.API().Remove(path)
			}

			return nil
		})
	}()
}

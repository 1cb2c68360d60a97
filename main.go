// Package main is the entry point for the afro application.
package main

import (
	"github.com/afrorhythm/afro/cmd"
	"github.com/afrorhythm/afro/config"
	"github.com/afrorhythm/afro/internal/cache"
	"github.com/afrorhythm/afro/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Reclaim disk from long-expired cache entries in the background.
	cache.CollectGarbage()

	cmd.Execute()
}

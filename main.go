// Package main is the entry point for the sylc application.
package main

import (
	"github.com/samber/lo"

	"github.com/sylc-player/sylc/cmd"
	"github.com/sylc-player/sylc/config"
	"github.com/sylc-player/sylc/internal/cache"
	"github.com/sylc-player/sylc/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Expired preview frames are swept in the background.
	cache.CollectGarbage()

	cmd.Execute()
}

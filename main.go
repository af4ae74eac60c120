// Package main is the entry point for the vidtouch application.
package main

import (
	"github.com/samber/lo"
	"github.com/vidtouch/vidtouch/cmd"
	"github.com/vidtouch/vidtouch/config"
	"github.com/vidtouch/vidtouch/internal/cache"
	"github.com/vidtouch/vidtouch/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}

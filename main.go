package main

import (
	"github.com/mrlokans/hifz-tracker/internal/config"
	"github.com/mrlokans/hifz-tracker/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}

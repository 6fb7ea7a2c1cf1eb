package main

import (
	"flag"
	"os"

	"github.com/dayhub/dayhub-server/dayhubservice"
	"github.com/dayhub/dayhub-server/internal/config"
	"github.com/dayhub/dayhub-server/internal/logger"
)

func main() {
	// Optional build-target flag override (local | cloud)
	buildTarget := flag.String("build-target", "", "Override BUILD_TARGET (local, cloud)")
	flag.Parse()

	log := logger.New("dayhub-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *buildTarget != "" {
		cfg.BuildTarget = *buildTarget
		cfg.DBDriver = "auto"
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("Invalid build-target override")
		}
	}

	if err := dayhubservice.Run(cfg); err != nil {
		os.Exit(1)
	}
}

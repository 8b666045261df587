// Command api serves the transport records over a local JSON API.
package main

import (
	"os"

	"github.com/yigit/mototransporte/internal/pkg/logger"
	"github.com/yigit/mototransporte/internal/server"
)

func main() {
	srv, err := server.NewServer(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to start the records API")
		os.Exit(1)
	}

	// Blocks until SIGINT or SIGTERM, then drains pending storage writes.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Records API stopped with an error")
		os.Exit(1)
	}

	logger.Info().Msg("Records API stopped")
}

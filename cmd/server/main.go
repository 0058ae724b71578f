package main

import (
	"os"

	"clientdesk/internal/config"
	"clientdesk/internal/logging"
	"clientdesk/internal/server"
)

func main() {
	cfg := config.New()
	log := logging.New()

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Error("failed to create server", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	if err := srv.Run(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/yigit/gradebook/internal/pkg/logger"
	"github.com/yigit/gradebook/internal/server"
)

// @title Student Records API
// @version 1.0
// @description Users, students and grades behind bearer token authentication.

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

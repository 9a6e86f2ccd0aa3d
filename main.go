// @title Eurovision Scoreboard API
// @version 1.0
// @description Backend API for loading scoreboards, televote reveals and screenshot exports

// @securityDefinitions.apikey AdminToken
// @in header
// @name x-admin-token
package main

import (
	_ "github.com/alex-pricope/eurovision-scoreboard/docs"

	"github.com/alex-pricope/eurovision-scoreboard/api"
	"github.com/alex-pricope/eurovision-scoreboard/logging"
)

func main() {
	logging.BoostrapLogger()

	// Load env
	api.LoadViper()

	// Read config
	config := api.ReadConfig()
	logging.Configure(logging.Config{Level: config.Level, Format: config.Format})

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}

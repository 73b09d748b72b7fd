// @title Hip-hop Roadmap API
// @version 1.0
// @description Skill catalog, progress tracking and personalized learning roadmaps for hip-hop dancers.

// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"hiphop_roadmap_backend/cmd"
	"os"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"arplace/internal/config"
	"arplace/internal/game"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	g.Run()
}

// Command sandbox opens a walkable test level for the character controller,
// collision meshes and animation playback.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gamecore/internal/bake"
	"gamecore/internal/config"
	"gamecore/internal/game"
	"gamecore/internal/logging"
)

func main() {
	configDir := flag.String("config", ".", "directory holding gamecore.json")
	bundlePath := flag.String("bundle", "", "baked bundle to load into the level")
	modelPath := flag.String("model", "", "model drawn on the animated rig")
	flag.Parse()

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil && *configDir == "." {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logging.SetupWithGraylog(cfg.LogLevel, cfg.Graylog, os.Stderr); err != nil {
		logging.Logger.Warn().Err(err).Msg("Graylog disabled")
	}
	log := logging.For("sandbox")

	var contents *bake.Contents
	if *bundlePath != "" {
		bundle, err := bake.ReadFile(*bundlePath)
		if err != nil {
			log.Error().Err(err).Str("bundle", *bundlePath).Msg("Load failed")
			os.Exit(1)
		}
		c, err := bundle.Unpack()
		if err != nil {
			log.Error().Err(err).Str("bundle", *bundlePath).Msg("Unpack failed")
			os.Exit(1)
		}
		contents = &c
		log.Info().
			Str("bundle", *bundlePath).
			Int("polyhedra", len(c.Polyhedra)).
			Int("animations", len(c.Animations)).
			Msg("Bundle loaded")
	}

	g := game.New(cfg, contents, *modelPath)
	g.Run()
}

package main

import (
	"fmt"
	"os"

	"github.com/tomz197/spacedodge/internal/audio"
	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/desktop"
	"github.com/tomz197/spacedodge/internal/loop"
	"github.com/tomz197/spacedodge/internal/scores"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "desktop error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	logger := config.NewLogger(os.Stderr, "spacedodge")

	gameOpts, err := config.GameOptions()
	if err != nil {
		return err
	}
	board := scores.Open(config.ScoresFile(), logger)

	engine := audio.Disabled()
	if !config.GetEnvBool("SPACEDODGE_MUTE", false) {
		engine = audio.Open(logger)
	}
	defer engine.Close()

	logger.Info("starting", "scores", board.Path(), "spawn_mode", gameOpts.SpawnMode, "audio", engine.Enabled())

	return desktop.Run(desktop.Options{
		Client: loop.ClientOptions{
			Game:        gameOpts,
			Board:       board,
			Audio:       engine,
			Logger:      logger,
			Rand:        config.NewRand(),
			DefaultName: os.Getenv("USER"),
		},
		Scale:   config.GetEnvFloat("SPACEDODGE_WINDOW_SCALE", 0.5),
		ShowFPS: config.GetEnvBool("SPACEDODGE_SHOW_FPS", false),
	})
}

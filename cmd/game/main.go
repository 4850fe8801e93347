package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/spacedodge/internal/audio"
	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/loop"
	"github.com/tomz197/spacedodge/internal/scores"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	// Stdout is the game screen, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("SPACEDODGE_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "spacedodge")

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

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	logger.Info("starting", "scores", board.Path(), "spawn_mode", gameOpts.SpawnMode, "audio", engine.Enabled())

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, loop.Options{
		Client: loop.ClientOptions{
			Game:        gameOpts,
			Board:       board,
			Audio:       engine,
			Logger:      logger,
			Rand:        config.NewRand(),
			DefaultName: os.Getenv("USER"),
		},
	})
}

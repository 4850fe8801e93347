package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/scores"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("starting web server", "addr", "http://"+addr, "scores", config.ScoresFile())
	if err := http.ListenAndServe(addr, newHandler(sshHost, config.ScoresFile(), logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newHandler serves the landing page and the read-only score board.
func newHandler(sshHost, scoresPath string, logger *log.Logger) http.Handler {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	// The board is re-read per request so scores recorded by the SSH
	// server show up without a restart.
	mux.HandleFunc("GET /api/scores", func(w http.ResponseWriter, r *http.Request) {
		entries, err := scores.Load(scoresPath)
		if err != nil {
			logger.Error("cannot read scores", "path", scoresPath, "err", err)
			http.Error(w, "scores unavailable", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []scores.Entry{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.Warn("write scores response", "err", err)
		}
	})

	return mux
}

// Command usersctl is an interactive terminal client for the user records
// API.
//
// Usage:
//
//	usersctl [--url=http://localhost:5000/api/users] [--debug]
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/ren-lyn/midterm-lab3/internal/client"
	"github.com/ren-lyn/midterm-lab3/internal/client/cli"
)

func main() {
	baseURL := flag.String("url", client.DefaultBaseURL, "users collection URL")
	debug := flag.Bool("debug", false, "log every API request to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := client.NewController(client.NewHTTPClient(*baseURL, logger))
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	repl := cli.NewREPL(ctrl, os.Stdin, os.Stdout, interactive)
	if err := repl.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("usersctl: %v", err)
	}
}

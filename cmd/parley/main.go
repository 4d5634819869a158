package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/parley/internal/chat"
	"github.com/naveenspark/parley/internal/config"
	"github.com/naveenspark/parley/internal/identity"
	"github.com/naveenspark/parley/internal/logx"
	"github.com/naveenspark/parley/internal/tui"
	"github.com/naveenspark/parley/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "--version", "version", "-v":
		fmt.Fprintln(out, "parley "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(out)
		return nil
	case "", "rooms", "logout":
	default:
		printHelp(out)
		return fmt.Errorf("unknown command %q", cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCloser, err := logx.Init(cfg.LogFile, cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer logCloser.Close() //nolint:errcheck

	store, err := identity.OpenBadgerStore(cfg.SessionDir, cfg.SessionTTL)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck
	session := identity.NewSession(store)

	c := client.New(cfg.APIURL, cfg.ReadToken())

	switch cmd {
	case "rooms":
		return runRooms(context.Background(), c, out)
	case "logout":
		return runLogout(session, out)
	}

	logx.Info("starting", "version", version, "api", cfg.APIURL, "stream", cfg.Stream)

	syncer := chat.New(c, session, cfg.HistoryLimit)
	if cfg.Stream {
		stream := c.Stream()
		defer stream.Close() //nolint:errcheck
		syncer = syncer.WithEvents(stream)
	}

	p := tea.NewProgram(tui.NewApp(syncer, version).WithReleaseURL(cfg.ReleaseURL), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

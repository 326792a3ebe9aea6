package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/app"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/kv"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/logging"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/mail"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/reminder"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/session"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/store"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("congviec %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "congviec: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// Logs go to a file; the terminal belongs to the UI.
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}

	backend, err := kv.Open(context.Background(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer backend.Close()

	service := store.New(backend, store.Options{
		Logger:     logger,
		LatencyMin: time.Duration(cfg.Storage.LatencyMinMs) * time.Millisecond,
		LatencyMax: time.Duration(cfg.Storage.LatencyMaxMs) * time.Millisecond,
	})

	outbox, err := mail.NewOutbox(cfg.Mail, mail.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("preparing outbox: %w", err)
	}

	evaluator := reminder.New(service, outbox, reminder.Options{Logger: logger})

	sessions, err := session.Open()
	if err != nil {
		return fmt.Errorf("opening session keyring: %w", err)
	}

	logger.WithField("version", version).Info("starting")

	root := app.New(app.Deps{
		Service:    service,
		Sessions:   sessions,
		Evaluator:  evaluator,
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}

	return nil
}

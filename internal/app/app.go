package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanguard-ops/vanguard/internal/config"
	"github.com/vanguard-ops/vanguard/internal/logging"
	"github.com/vanguard-ops/vanguard/internal/opsapi"
	"github.com/vanguard-ops/vanguard/internal/prefs"
	"github.com/vanguard-ops/vanguard/internal/proxy"
	"github.com/vanguard-ops/vanguard/internal/state"
	"github.com/vanguard-ops/vanguard/internal/ui"
)

// Options configure the Vanguard application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/vanguard/prefs.toml
	Backend    string // overrides the configured backend base URL
	PollMS     int    // milliseconds; zero uses the configured value
	ProxyAddr  string // when set, also serve the reverse proxy on this address
}

// Run boots the Vanguard dashboard until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Backend != "" {
		cfg.BackendURL = opts.Backend
	}
	if opts.PollMS > 0 {
		cfg.PollIntervalMS = opts.PollMS
	}
	if opts.ProxyAddr != "" {
		cfg.ProxyAddr = opts.ProxyAddr
	}

	logger, closeLog, err := logging.New(cfg.LogPath())
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()
	logger.Infow("starting", "backend", cfg.BackendURL, "poll_ms", cfg.PollIntervalMS)

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := opsapi.NewClient(cfg.BackendURL)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	store := state.New(client, state.Options{
		Interval: time.Duration(cfg.PollIntervalMS) * time.Millisecond,
		Logger:   logger,
	})
	selections := state.NewSelectionCoordinator(logger)

	if cfg.ProxyAddr != "" {
		fwd, err := proxy.New(cfg.BackendURL, logger)
		if err != nil {
			return fmt.Errorf("init proxy: %w", err)
		}
		go func() {
			if err := fwd.ListenAndServe(ctx, cfg.ProxyAddr); err != nil {
				logger.Errorw("proxy stopped", "error", err)
			}
		}()
	}

	uiErr := ui.Run(ui.Options{
		Context:     ctx,
		Client:      client,
		Store:       store,
		Selections:  selections,
		ThemeName:   userPrefs.Theme,
		DefaultView: userPrefs.DefaultView,
		PrefsPath:   opts.PrefsPath,
	})
	if uiErr != nil && errors.Is(uiErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Shutdown signal, not a failure.
		return nil
	}
	return uiErr
}

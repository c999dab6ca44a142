package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/coolctl/internal/auth"
	"github.com/five82/coolctl/internal/config"
	"github.com/five82/coolctl/internal/credential"
	"github.com/five82/coolctl/internal/logging"
	"github.com/five82/coolctl/internal/prefs"
	"github.com/five82/coolctl/internal/remote"
	"github.com/five82/coolctl/internal/state"
	"github.com/five82/coolctl/internal/ui"
)

// Options configure the coolctl application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/coolctl/prefs.toml
	PollEvery  time.Duration // zero uses poll_interval from config

	// Prompter asks for the credential in the one-shot commands. Nil uses
	// the terminal. The TUI always asks through its own modal.
	Prompter auth.Prompter
}

// services is everything built from config that talks to the device.
type services struct {
	cfg    config.Config
	log    *logging.Logger
	creds  *credential.FileStore
	auth   *auth.Authenticator
	client *remote.Client
}

func openServices(opts Options, prompter auth.Prompter) (*services, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	creds := credential.NewFileStore(cfg.CredentialPath)
	authn := auth.New(creds, prompter, log)
	client, err := remote.NewClient(cfg.APIURL, authn, authn, log)
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("init client: %w", err)
	}
	return &services{cfg: cfg, log: log, creds: creds, auth: authn, client: client}, nil
}

func (s *services) Close() error {
	return s.log.Close()
}

// Run boots the coolctl TUI until the operator quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	prompter := ui.NewPrompter()
	svc, err := openServices(opts, prompter)
	if err != nil {
		return err
	}
	defer svc.Close()

	userPrefs := prefs.Load(opts.PrefsPath)
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	interval := svc.cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = opts.PollEvery
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	svc.log.Infow("coolctl starting", "api", svc.client.BaseURL(), "poll_interval", interval)
	store := &state.Store{}
	session := NewPoller(svc.client, interval, svc.log).Subscribe(ctx, store)
	defer session.Unsubscribe()

	err = ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Commander: svc.client,
		Presets:   svc.cfg.Presets,
		Prompter:  prompter,
		Log:       svc.log,
		APIURL:    svc.client.BaseURL(),
		LogPath:   svc.cfg.LogFile,
		ThemeName: userPrefs.Theme,
		HideLog:   userPrefs.HideLog,
		PrefsPath: prefsPath,
	})
	svc.log.Infow("coolctl exiting")
	return err
}

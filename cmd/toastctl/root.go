package main

import (
	"context"
	"fmt"

	clog "github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/jktr/go-toastnotify/internal/config"
	"github.com/jktr/go-toastnotify/internal/logging"
	"github.com/jktr/go-toastnotify/internal/pushsender"
	"github.com/jktr/go-toastnotify/toast"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "toastctl",
		Short:        "Show desktop toast notifications",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: <user config dir>/toastnotify/config.json)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSetupCmd(opts),
		newInfoCmd(opts),
		newShowCmd(opts),
		newCallCmd(opts),
	)
	return cmd
}

// session is what a subcommand runs against.
type session struct {
	cfg  *config.Configuration
	log  *clog.Logger
	conn *dbus.Conn
	rep  *toast.Representer
}

func (o *rootOptions) load(cmd *cobra.Command) (*config.Configuration, *clog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, logging.New(cmd.ErrOrStderr(), cfg.LogLevel), nil
}

// open builds a representer on the configured backend. Setup runs
// only when the config allows it and setup is true.
func (o *rootOptions) open(ctx context.Context, cmd *cobra.Command, setup bool) (*session, error) {
	cfg, log, err := o.load(cmd)
	if err != nil {
		return nil, err
	}

	tcfg := toast.Config{
		AppID:     cfg.AppID,
		AppName:   cfg.AppName,
		IconPath:  cfg.IconPath,
		SkipSetup: cfg.SkipSetup || !setup,
	}
	topts := []toast.Option{
		toast.WithLogger(log),
		toast.WithRateLimit(cfg.RatePerSec, cfg.RateBurst),
	}

	s := &session{cfg: cfg, log: log}
	switch cfg.Backend {
	case config.BackendPush:
		s.rep, err = toast.New(ctx, pushsender.New(cfg.AppID), tcfg, topts...)
	default:
		s.conn, err = dbus.ConnectSessionBus()
		if err != nil {
			return nil, fmt.Errorf("connect session bus: %w", err)
		}
		s.rep, err = toast.Connect(ctx, s.conn, tcfg, topts...)
	}
	if err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *session) close() {
	if s.rep != nil {
		if err := s.rep.Close(); err != nil {
			s.log.Warn("close representer", "err", err)
		}
	}
	if s.conn != nil {
		s.conn.Close()
	}
}

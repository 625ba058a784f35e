package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jktr/go-toastnotify/internal/desktopentry"
	"github.com/jktr/go-toastnotify/internal/pushsender"
	"github.com/jktr/go-toastnotify/toast"
)

func newSetupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Install the desktop entry toasts are associated with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}

			// Setup needs no live backend; the push sender is never called.
			rep, err := toast.New(cmd.Context(), pushsender.New(cfg.AppID), toast.Config{
				AppID:     cfg.AppID,
				AppName:   cfg.AppName,
				IconPath:  cfg.IconPath,
				SkipSetup: true,
			}, toast.WithLogger(log))
			if err != nil {
				return err
			}

			installed, err := rep.Setup()
			if err != nil {
				return err
			}
			path, _ := desktopentry.Path(cfg.AppID)
			if installed {
				fmt.Fprintf(cmd.OutOrStdout(), "installed %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "already present: %s\n", path)
			}
			return nil
		},
	}
}

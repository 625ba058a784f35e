package main

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	notify "github.com/jktr/go-toastnotify"
)

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the notification server's identity and capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, _, err := opts.load(cmd); err != nil {
				return err
			}

			conn, err := dbus.ConnectSessionBus()
			if err != nil {
				return fmt.Errorf("connect session bus: %w", err)
			}
			defer conn.Close()

			client := notify.Dial(conn)
			info, err := client.ServerInfo(cmd.Context())
			if err != nil {
				return err
			}
			caps, err := client.Capabilities(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:         %s\n", info.Name)
			fmt.Fprintf(out, "Vendor:       %s\n", info.Vendor)
			fmt.Fprintf(out, "Version:      %s\n", info.Version)
			fmt.Fprintf(out, "Spec:         %s\n", info.SpecVersion)
			fmt.Fprintf(out, "Capabilities: %s\n", strings.Join(caps, ", "))
			return nil
		},
	}
}

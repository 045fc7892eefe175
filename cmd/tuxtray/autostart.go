package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Guliveer/tuxtray/internal/autostart"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage starting TuxTray at login",
}

func init() {
	autostartCmd.AddCommand(
		&cobra.Command{
			Use:   "install",
			Short: "Start TuxTray at login",
			RunE: func(cmd *cobra.Command, args []string) error {
				exe, err := autostart.ResolveExecutable()
				if err != nil {
					return err
				}
				m := autostart.New()
				if err := m.Install(exe); err != nil {
					return fmt.Errorf("installing autostart entry: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Installed %s\n", m.Location())
				return nil
			},
		},
		&cobra.Command{
			Use:   "uninstall",
			Short: "Stop starting TuxTray at login",
			RunE: func(cmd *cobra.Command, args []string) error {
				m := autostart.New()
				if err := m.Uninstall(); err != nil {
					return fmt.Errorf("removing autostart entry: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", m.Location())
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether the login entry exists",
			RunE: func(cmd *cobra.Command, args []string) error {
				m := autostart.New()
				installed, err := m.IsInstalled()
				if err != nil {
					return err
				}
				state := "not installed"
				if installed {
					state = "installed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", state, m.Location())
				return nil
			},
		},
	)
}

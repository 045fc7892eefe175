package main

import (
	"github.com/spf13/cobra"

	"github.com/Guliveer/tuxtray/internal/autostart"
	"github.com/Guliveer/tuxtray/internal/config"
	"github.com/Guliveer/tuxtray/internal/setup"
)

var (
	setupAssets    string
	setupAutostart string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write a user configuration and optionally enable autostart",
	Long: `Run the first-run wizard. Answers given with --mode, --skin, --assets and
--autostart are not asked for, so the wizard can run unattended.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := config.LoadBase(embeddedConfig, "")
		if err != nil {
			return err
		}
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		w := setup.New(cmd.InOrStdin(), cmd.OutOrStdout(), base, autostart.New())
		_, err = w.Run(version, setup.Options{
			Mode:       flagMode,
			Skin:       flagSkin,
			AssetsDir:  setupAssets,
			Autostart:  setupAutostart,
			ConfigPath: path,
		})
		return err
	},
}

func init() {
	setupCmd.Flags().StringVar(&setupAssets, "assets", "", "Assets directory")
	setupCmd.Flags().StringVar(&setupAutostart, "autostart", "", "Enable login autostart (yes or no)")
}

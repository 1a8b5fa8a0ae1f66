package main

import (
	"github.com/spf13/cobra"

	"fincast/internal/config"
)

var (
	flagConfig  string
	flagEnvFile string
	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:          "fincast",
	Short:        "Savings prediction dashboard",
	Long:         "Serve the fincast dashboard and manage its data directory.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "fincast.toml", "TOML config file (skipped if missing)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file (skipped if missing)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (overrides config)")

	rootCmd.AddCommand(serveCmd, encryptCmd, decryptCmd, versionCmd)
}

// loadConfig resolves the configuration shared by every command
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig, flagEnvFile)
	if err != nil {
		return nil, err
	}
	if flagDataDir != "" {
		cfg.DataDirectory = flagDataDir
	}
	return cfg, nil
}

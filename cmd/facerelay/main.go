package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/facerelay/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "facerelay",
	Short:   "Relay face-detection uploads to downstream consumers",
	Long: `facerelay accepts face-detection observations (a captured frame plus
age, gender, mood and recognition fields), keeps them in memory and serves
the latest one back over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			files = append(files, configFile)
		}

		cfg, err := config.Load(files, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("storage-path", "", "upload directory (default: uploads, env: FACERELAY_STORAGE_PATH)")
	rootCmd.PersistentFlags().Int("port", 8000, "HTTP server port (env: FACERELAY_SERVER_PORT)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: FACERELAY_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

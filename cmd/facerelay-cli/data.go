package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Show the latest record",
	Long: `Show the most recent upload.

Exits non-zero with "No data available" when nothing was uploaded yet.
With -q only the recognized name is printed.`,
	Args: cobra.NoArgs,
	RunE: runData,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is up",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func runData(cmd *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	data, err := client.LatestData(cmd.Context())
	if err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatData(os.Stdout, data)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	health, err := client.Health(cmd.Context())
	if err != nil {
		return handleError(os.Stderr, err)
	}

	if jsonOutput {
		return getFormatter().FormatMessage(os.Stdout, health.Status)
	}
	return getFormatter().FormatMessage(os.Stdout, fmt.Sprintf("%s (%d records)", health.Status, health.Records))
}

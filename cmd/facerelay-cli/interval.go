package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var intervalCmd = &cobra.Command{
	Use:   "interval",
	Short: "Show or change the pacing intervals",
}

var intervalGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the upload and recognition intervals",
	Args:  cobra.NoArgs,
	RunE:  runIntervalGet,
}

var intervalSetCmd = &cobra.Command{
	Use:   "set <upload|recognition> <seconds>",
	Short: "Set an interval",
	Long: `Set how often the detector uploads or runs recognition.

Examples:
  facerelay-cli interval set upload 2
  facerelay-cli interval set recognition 30`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"upload", "recognition"},
	RunE:      runIntervalSet,
}

func init() {
	intervalCmd.AddCommand(intervalGetCmd)
	intervalCmd.AddCommand(intervalSetCmd)
}

func runIntervalGet(cmd *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	intervals, err := client.Intervals(cmd.Context())
	if err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatIntervals(os.Stdout, intervals)
}

func runIntervalSet(cmd *cobra.Command, args []string) error {
	seconds, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", args[1], err)
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	var got int
	switch args[0] {
	case "upload":
		got, err = client.SetUploadInterval(cmd.Context(), seconds)
	case "recognition":
		got, err = client.SetRecognitionInterval(cmd.Context(), seconds)
	default:
		return fmt.Errorf("unknown interval %q, want upload or recognition", args[0])
	}
	if err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatMessage(os.Stdout, fmt.Sprintf("%s interval set to %ds", args[0], got))
}

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var nameCmd = &cobra.Command{
	Use:   "name",
	Short: "Manage the pending name",
	Long: `Manage the pending name.

The pending name is how an operator tells the detector who the current
face belongs to. The detector polls it and clears it once consumed.`,
}

var nameSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Set the pending name",
	Args:  cobra.ExactArgs(1),
	RunE:  runNameSet,
}

var nameGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the pending name",
	Args:  cobra.NoArgs,
	RunE:  runNameGet,
}

var nameClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the pending name",
	Args:  cobra.NoArgs,
	RunE:  runNameClear,
}

func init() {
	nameCmd.AddCommand(nameSetCmd)
	nameCmd.AddCommand(nameGetCmd)
	nameCmd.AddCommand(nameClearCmd)
}

func runNameSet(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	if err := client.SetUpdateName(cmd.Context(), args[0]); err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatMessage(os.Stdout, "Name updated successfully")
}

func runNameGet(cmd *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	name, err := client.UpdateName(cmd.Context())
	if err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatUpdateName(os.Stdout, name)
}

func runNameClear(cmd *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	if err := client.ClearUpdateName(cmd.Context()); err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatMessage(os.Stdout, "Data cleared successfully")
}

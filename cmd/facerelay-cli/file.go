package main

import (
	"io"
	"os"

	"github.com/sagarc03/facerelay/clientcli"
	"github.com/spf13/cobra"
)

var (
	fileOutput string
	fileStdout bool
)

var fileCmd = &cobra.Command{
	Use:   "file [local-path]",
	Short: "Download the latest file",
	Long: `Download the file attached to the most recent upload.

The file is saved under the name the server reports unless a path is given.
Fails with "No file available" when the latest upload carried no file.

Examples:
  facerelay-cli file
  facerelay-cli file ./latest.png
  facerelay-cli file --stdout > frame.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFile,
}

func init() {
	fileCmd.Flags().StringVarP(&fileOutput, "output", "o", "", `output file path ("-" for stdout)`)
	fileCmd.Flags().BoolVar(&fileStdout, "stdout", false, "write to stdout")
}

func runFile(cmd *cobra.Command, args []string) error {
	localPath := ""
	if len(args) > 0 {
		localPath = args[0]
	}
	if fileOutput != "" {
		localPath = fileOutput
	}
	if fileStdout {
		localPath = "-"
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	result, reader, err := client.DownloadFile(cmd.Context(), clientcli.DownloadOptions{LocalPath: localPath})
	if err != nil {
		return handleError(os.Stderr, err)
	}

	if reader != nil {
		defer func() { _ = reader.Close() }()
		if _, err := io.Copy(os.Stdout, reader); err != nil {
			return err
		}
		// metadata goes to stderr so it does not mix with the content
		if jsonOutput {
			return getFormatter().FormatDownload(os.Stderr, result)
		}
		return nil
	}

	return getFormatter().FormatDownload(os.Stdout, result)
}

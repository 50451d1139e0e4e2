package main

import (
	"os"

	"github.com/sagarc03/facerelay/clientcli"
	"github.com/spf13/cobra"
)

var uploadOpts clientcli.UploadOptions

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload an observation",
	Long: `Upload one observation, optionally with an image.

Every field is sent even when empty, the way the detector sends them.
Without --file the record is stored with no file and /file will report
that nothing is available until the next upload with one.

Examples:
  facerelay-cli upload --age 31 --gender female --mood happy --state true --name Alice --file ./frame.png
  facerelay-cli upload --state lost`,
	Args: cobra.NoArgs,
	RunE: runUpload,
}

func init() {
	f := uploadCmd.Flags()
	f.StringVar(&uploadOpts.Age, "age", "", "estimated age")
	f.StringVar(&uploadOpts.Gender, "gender", "", "estimated gender")
	f.StringVar(&uploadOpts.Mood, "mood", "", "estimated mood")
	f.StringVar(&uploadOpts.RecognizeState, "state", "", "recognition state")
	f.StringVar(&uploadOpts.RecognizedName, "name", "", "recognized name")
	f.StringVarP(&uploadOpts.FilePath, "file", "f", "", "image to attach")
	f.StringVar(&uploadOpts.FileName, "file-name", "", "file name to send (default: base name of --file)")
}

func runUpload(cmd *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	rec, err := client.Upload(cmd.Context(), uploadOpts)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatUpload(os.Stdout, rec)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	anuvad "github.com/anuvad-labs/anuvad-go"
)

var (
	flagKind   string
	flagOutput string
)

func artifactKind() (anuvad.ArtifactKind, error) {
	switch flagKind {
	case "translated":
		return anuvad.ArtifactTranslated, nil
	case "original":
		return anuvad.ArtifactOriginal, nil
	default:
		return "", fmt.Errorf("unknown artifact kind %q (translated or original)", flagKind)
	}
}

var downloadCmd = &cobra.Command{
	Use:   "download <job-id>",
	Short: "Download a finished translation to disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID := args[0]

		kind, err := artifactKind()
		if err != nil {
			return err
		}

		out := flagOutput
		if out == "" {
			out = fmt.Sprintf("%s_%s.pdf", kind, jobID)
		}

		client, err := buildClient()
		if err != nil {
			return err
		}

		n, err := client.SaveArtifact(cmd.Context(), jobID, kind, out)
		if err != nil {
			return err
		}

		color.Green("✓ saved %s (%d bytes)", out, n)
		recordDownload(jobID, out)
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <job-id>",
	Short: "Stream a document preview to stdout",
	Long: `Streams the inline preview rendition of the translated (or original)
document to stdout. Pipe it into a PDF viewer:

  anuvadctl preview 4f1c... | zathura -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := artifactKind()
		if err != nil {
			return err
		}

		client, err := buildClient()
		if err != nil {
			return err
		}

		rc, err := client.Preview(cmd.Context(), args[0], kind)
		if err != nil {
			return err
		}
		defer rc.Close()

		_, err = io.Copy(os.Stdout, rc)
		return err
	},
}

func recordDownload(jobID, path string) {
	store, err := openHistory()
	if err != nil || store == nil {
		return
	}
	defer store.Close()
	if err := store.RecordDownloaded(jobID, path); err != nil {
		log.Warn("failed to record download path", zap.Error(err))
	}
}

func init() {
	downloadCmd.Flags().StringVarP(&flagKind, "kind", "k", "translated",
		"artifact kind: translated or original")
	downloadCmd.Flags().StringVarP(&flagOutput, "output", "o", "",
		"output path (default <kind>_<job-id>.pdf)")
	previewCmd.Flags().StringVarP(&flagKind, "kind", "k", "translated",
		"artifact kind: translated or original")
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(previewCmd)
}

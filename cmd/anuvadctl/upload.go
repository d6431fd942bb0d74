package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	anuvad "github.com/anuvad-labs/anuvad-go"
	"github.com/anuvad-labs/anuvad-go/internal/history"
)

var (
	flagLanguage  string
	flagDirection string
	flagMode      string
	flagWatch     bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Submit a PDF document for translation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return err
		}

		client, err := buildClient()
		if err != nil {
			return err
		}

		params := anuvad.UploadParams{
			Filename:  info.Name(),
			Size:      info.Size(),
			Language:  anuvad.Language(flagLanguage),
			Direction: anuvad.Direction(flagDirection),
			Mode:      anuvad.Mode(flagMode),
		}

		handle, err := client.Upload(cmd.Context(), params, f)
		if err != nil {
			return err
		}

		color.Green("✓ %s", handle.Message)
		fmt.Printf("job id: %s\n", handle.JobID)
		recordSubmission(handle.JobID, params)

		if flagWatch {
			return watchJob(cmd, client, handle.JobID)
		}
		fmt.Printf("track progress with: anuvadctl status %s\n", handle.JobID)
		return nil
	},
}

// recordSubmission is best-effort; a broken history store never fails an
// accepted upload.
func recordSubmission(jobID string, params anuvad.UploadParams) {
	store, err := openHistory()
	if err != nil || store == nil {
		if err != nil {
			log.Warn("history store unavailable", zap.Error(err))
		}
		return
	}
	defer store.Close()

	err = store.RecordSubmitted(history.Record{
		JobID:       jobID,
		Filename:    params.Filename,
		Language:    string(params.Language),
		Direction:   string(params.Direction),
		Mode:        string(params.Mode),
		Status:      string(anuvad.StatusQueued),
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Warn("failed to record job in history", zap.Error(err))
	}
}

func init() {
	uploadCmd.Flags().StringVarP(&flagLanguage, "language", "l", "gu",
		"target Indic language: gu, hi or mr")
	uploadCmd.Flags().StringVarP(&flagDirection, "direction", "d", "to_target",
		"translation direction: to_target or to_source")
	uploadCmd.Flags().StringVarP(&flagMode, "mode", "m", "general",
		"translation register: general or formal")
	uploadCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false,
		"watch job progress until it finishes")
	rootCmd.AddCommand(uploadCmd)
}

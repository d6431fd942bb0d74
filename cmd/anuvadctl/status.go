package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	anuvad "github.com/anuvad-labs/anuvad-go"
)

var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show the current status of a translation job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}

		job, err := client.JobStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printJob(job)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <job-id>",
	Short: "Watch a job until it completes or fails",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		return watchJob(cmd, client, args[0])
	},
}

// watchJob streams job updates to the terminal until a terminal status.
// Ctrl-C cancels the watch without touching the server-side job.
func watchJob(cmd *cobra.Command, client *anuvad.Client, jobID string) error {
	w := client.WatchJob(cmd.Context(), jobID)
	defer w.Stop()

	var last anuvad.Job
	for job := range w.Updates() {
		last = job
		fmt.Printf("\r\033[K[%3d%%] %s", job.Progress, job.Phase())
	}
	fmt.Println()

	if err := w.Err(); err != nil {
		return err
	}

	switch last.Status {
	case anuvad.StatusCompleted:
		color.Green("✓ translation complete")
		fmt.Printf("download with: anuvadctl download %s\n", jobID)
		recordOutcome(jobID, last.Status)
	case anuvad.StatusFailed:
		color.Red("✗ translation failed: %s", last.Message)
		recordOutcome(jobID, last.Status)
		return fmt.Errorf("job %s failed", jobID)
	}
	return nil
}

func recordOutcome(jobID string, status anuvad.JobStatus) {
	store, err := openHistory()
	if err != nil || store == nil {
		return
	}
	defer store.Close()
	if err := store.RecordOutcome(jobID, string(status)); err != nil {
		log.Warn("failed to record job outcome", zap.Error(err))
	}
}

func printJob(job anuvad.Job) {
	statusLine := color.YellowString(string(job.Status))
	switch job.Status {
	case anuvad.StatusCompleted:
		statusLine = color.GreenString(string(job.Status))
	case anuvad.StatusFailed:
		statusLine = color.RedString(string(job.Status))
	}
	fmt.Printf("status:   %s\n", statusLine)
	fmt.Printf("progress: %d%%\n", job.Progress)
	fmt.Printf("phase:    %s\n", job.Phase())
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List locally tracked translation jobs",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		if store == nil {
			fmt.Println("history is disabled")
			return nil
		}
		defer store.Close()

		records, err := store.Recent(flagHistoryLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no jobs recorded yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "JOB ID\tFILE\tLANG\tSTATUS\tSUBMITTED\tOUTPUT")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.JobID, r.Filename, r.Language, r.Status,
				r.SubmittedAt.Local().Format("2006-01-02 15:04"), r.OutputPath)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20,
		"maximum number of jobs to list")
	rootCmd.AddCommand(historyCmd)
}

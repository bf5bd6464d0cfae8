package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/shazam-dl-go/internal/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded download attempts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		showStats, _ := cmd.Flags().GetBool("stats")

		if status != "" && !domain.ValidateStatus(domain.DownloadStatus(status)) {
			return fmt.Errorf("unknown status %q", status)
		}

		env, err := setupEnvironment(false)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.history == nil {
			return fmt.Errorf("download history is disabled or unavailable")
		}

		if showStats {
			stats, err := env.history.GetStats()
			if err != nil {
				return err
			}
			fmt.Printf("Total:     %d\n", stats.Total)
			fmt.Printf("Active:    %d\n", stats.Active)
			fmt.Printf("Completed: %d\n", stats.Completed)
			fmt.Printf("Failed:    %d\n", stats.Failed)
			return nil
		}

		downloads, err := env.history.FindAll(domain.DownloadStatus(status), limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSONG\tSTATUS\tSIZE\tCREATED")
		for _, d := range downloads {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				shortID(d.ID),
				truncate(d.SongLabel, 40),
				d.Status,
				formatSize(d.SizeBytes),
				d.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().StringP("status", "s", "", "Filter by status (completed, failed, ...)")
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of entries")
	historyCmd.Flags().Bool("stats", false, "Show totals per status instead of the list")
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes <= 0 {
		return "-"
	}
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

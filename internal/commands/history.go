package commands

import (
	"fmt"
	"io"

	"github.com/moasq/recent/internal/storage"
	"github.com/moasq/recent/internal/terminal"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyAll   bool
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show branches recently checked out with recent",
	Long:  "Display the checkouts recorded by recent for this repository, newest first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := storage.NewHistoryStore(cfg.StateDir)
		out := cmd.OutOrStdout()

		if historyClear {
			if err := store.Clear(); err != nil {
				return err
			}
			terminal.Success(out, "History cleared.")
			return nil
		}

		repo := ""
		if !historyAll {
			repo, err = newGitClient(io.Discard, io.Discard, nil).RepoRoot(cmd.Context())
			if err != nil {
				return fmt.Errorf("not inside a git repository (use --all to show every repository): %w", err)
			}
		}

		entries, err := store.Recent(repo, historyLimit)
		if err != nil {
			return err
		}
		printHistory(out, entries, historyAll)
		return nil
	},
}

func printHistory(out io.Writer, entries []storage.Entry, showRepo bool) {
	if len(entries) == 0 {
		terminal.Info(out, "No checkouts recorded yet.")
		return
	}

	terminal.Header(out, "Checkout History")
	fmt.Fprintf(out, "  %-17s %-30s %s\n", "When", "Branch", "From")
	terminal.Divider(out)
	for _, e := range entries {
		from := e.From
		if from == "" {
			from = "-"
		}
		fmt.Fprintf(out, "  %-17s %-30s %s\n", e.CheckedOutAt.Local().Format("2006-01-02 15:04"), e.Branch, from)
		if showRepo {
			terminal.Detail(out, "repo", e.Repo)
		}
	}
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of entries to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyAll, "all", false, "Show checkouts from every repository")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded history")
}

package commands

import (
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "recent",
	Short: "Pick a recently used git branch and check it out",
	Long: "recent lists local branches by most recent commit and lets you pick one\n" +
		"with the arrow keys (or j/k, w/s). Enter or space checks it out; q or Esc cancels.",
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelect(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Flag values shared by the commands.
var (
	dirFlag      string
	configFlag   string
	logFileFlag  string
	maxFlag      int
	windowFlag   int
	noRecordFlag bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "C", "", "Repository directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default: $RECENT_CONFIG or ~/.config/recent/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Write debug logs to this file")

	rootCmd.Flags().IntVar(&maxFlag, "max", 0, "Maximum number of branches to list")
	rootCmd.Flags().IntVar(&windowFlag, "window", 0, "Number of branches visible at once")
	rootCmd.Flags().BoolVar(&noRecordFlag, "no-record", false, "Do not record the checkout in history")

	rootCmd.AddCommand(historyCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/launchpad/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and manage the visit history",
}

var historyAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Record a visit",
	Args:  cobra.ExactArgs(1),
	RunE:  historyAddRun,
}

var historyRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recent visits",
	Args:  cobra.NoArgs,
	RunE:  historyRecentRun,
}

var historyTopCmd = &cobra.Command{
	Use:   "top",
	Short: "List the most visited URLs",
	Args:  cobra.NoArgs,
	RunE:  historyTopRun,
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search visits by URL or title",
	Args:  cobra.ExactArgs(1),
	RunE:  historySearchRun,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <url>",
	Short: "Remove the visits of a URL",
	Args:  cobra.ExactArgs(1),
	RunE:  historyRemoveRun,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every visit",
	Args:  cobra.NoArgs,
	RunE:  historyClearRun,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	Args:  cobra.NoArgs,
	RunE:  historyStatsRun,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the history to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  historyExportRun,
}

var (
	historyTitle   string
	historyBrowser string
	historyLimit   int
	historyTop     int
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyAddCmd)
	historyCmd.AddCommand(historyRecentCmd)
	historyCmd.AddCommand(historyTopCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyExportCmd)

	historyAddCmd.Flags().StringVar(&historyTitle, "title", "", "Title of the page, defaults to the URL")
	historyAddCmd.Flags().StringVar(&historyBrowser, "browser", "", "Name of the browser used")
	historyRecentCmd.Flags().IntVar(&historyLimit, "limit", history.DefaultRecentLimit, "Number of visits to list")
	historyTopCmd.Flags().IntVar(&historyTop, "limit", history.DefaultTopLimit, "Number of URLs to list")
}

func historyAddRun(cmd *cobra.Command, args []string) error {
	if err := current.History.Add(args[0], historyTitle, historyBrowser); err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return writeJSON(cmd, map[string]any{"recorded": current.History.Enabled(), "url": args[0]})
}

func historyRecentRun(cmd *cobra.Command, _ []string) error {
	return writeJSON(cmd, current.History.Recent(historyLimit))
}

func historyTopRun(cmd *cobra.Command, _ []string) error {
	return writeJSON(cmd, current.History.MostVisited(historyTop))
}

func historySearchRun(cmd *cobra.Command, args []string) error {
	return writeJSON(cmd, current.History.Search(args[0]))
}

func historyRemoveRun(cmd *cobra.Command, args []string) error {
	if err := current.History.Remove(args[0]); err != nil {
		return fmt.Errorf("removing %s from history: %w", args[0], err)
	}
	return writeJSON(cmd, map[string]string{"removed": args[0]})
}

func historyClearRun(cmd *cobra.Command, _ []string) error {
	if err := current.History.Clear(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return writeJSON(cmd, map[string]bool{"cleared": true})
}

func historyStatsRun(cmd *cobra.Command, _ []string) error {
	return writeJSON(cmd, current.History.Stats())
}

func historyExportRun(cmd *cobra.Command, args []string) error {
	if err := current.History.Export(args[0]); err != nil {
		return fmt.Errorf("exporting history: %w", err)
	}
	return writeJSON(cmd, map[string]string{"exported": args[0]})
}

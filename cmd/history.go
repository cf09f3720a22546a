package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"characli/internal/format"
)

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "View fetch history",
		Run:   runHistoryList,
	}

	historyCmd.Flags().IntP("limit", "n", 10, "Number of records to show")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all history",
		Run:   runHistoryClear,
	}

	historyCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) {
	store := openStorage()
	if store == nil {
		format.PrintError("Local storage unavailable")
		os.Exit(1)
	}
	defer closeStorage(store)

	records, err := store.LoadFetchHistory()
	if err != nil {
		format.PrintError(fmt.Sprintf("Failed to load history: %v", err))
		os.Exit(1)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	format.PrintFetchHistory(records, limit)
}

func runHistoryClear(cmd *cobra.Command, args []string) {
	store := openStorage()
	if store == nil {
		format.PrintError("Local storage unavailable")
		os.Exit(1)
	}
	defer closeStorage(store)

	if err := store.ClearFetchHistory(); err != nil {
		format.PrintError(fmt.Sprintf("Failed to clear history: %v", err))
		os.Exit(1)
	}

	format.PrintSuccess("History cleared")
}

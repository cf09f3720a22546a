package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"characli/internal/format"
	"characli/internal/model"
	"characli/internal/storage"
	"characli/internal/viewmodel"
)

var (
	showAll   bool
	fromCache bool
	noHistory bool
)

func init() {
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Fetch and print the character catalog",
		Run:     runList,
	}
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include hidden characters")
	listCmd.Flags().BoolVar(&fromCache, "cached", false, "Print the cached catalog without fetching")
	listCmd.Flags().BoolVar(&noHistory, "no-history", false, "Don't record the fetch in history")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	store := openStorage()
	defer closeStorage(store)

	if fromCache {
		if store == nil {
			format.PrintError("Local storage unavailable")
			os.Exit(1)
		}
		characters, err := store.LoadCatalog()
		if err != nil {
			format.PrintError(fmt.Sprintf("Failed to load cached catalog: %v", err))
			os.Exit(1)
		}
		format.PrintCatalog(characters, showAll)
		return
	}

	cfg := effectiveConfig()
	vm := viewmodel.NewCatalog(newAPIClient(cfg))

	start := time.Now()
	err := vm.Load(cmd.Context())
	recordFetch(store, err, len(vm.Characters()), time.Since(start))

	if state, msg := vm.State(); state == viewmodel.StateError {
		// Stale data + error banner: show the cached catalog if one exists.
		if store != nil {
			if cached, cerr := store.LoadCatalog(); cerr == nil && len(cached) > 0 {
				format.PrintCatalog(cached, showAll)
				fmt.Println()
			}
		}
		format.PrintError(msg)
		os.Exit(1)
	}

	format.PrintCatalog(vm.Characters(), showAll)

	if store != nil {
		_ = store.ReplaceCatalog(vm.Characters())
	}
}

// openStorage opens the local store, returning nil when unavailable so
// commands degrade to network-only operation.
func openStorage() *storage.SQLiteStorage {
	store, err := storage.NewStorage()
	if err != nil {
		return nil
	}
	return store
}

func closeStorage(store *storage.SQLiteStorage) {
	if store != nil {
		_ = store.Close()
	}
}

// recordFetch appends a fetch record to the local history. Failures are
// ignored so bookkeeping never interrupts the user.
func recordFetch(store *storage.SQLiteStorage, fetchErr error, count int, elapsed time.Duration) {
	if store == nil || noHistory {
		return
	}

	status := "ok"
	if fetchErr != nil {
		status = fetchErr.Error()
		count = 0
	}

	_ = store.AddFetchRecord(model.FetchRecord{
		ID:         uuid.New().String()[:8],
		Timestamp:  time.Now(),
		Endpoint:   "characters",
		Status:     status,
		ItemCount:  count,
		DurationMs: elapsed.Milliseconds(),
	})
}

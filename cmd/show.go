package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"characli/internal/format"
	"characli/internal/viewmodel"
)

func init() {
	showCmd := &cobra.Command{
		Use:   "show <id or index>",
		Short: "Show full details of a character",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) {
	store := openStorage()
	defer closeStorage(store)

	cfg := effectiveConfig()
	vm := viewmodel.NewCatalog(newAPIClient(cfg))

	start := time.Now()
	err := vm.Load(cmd.Context())
	recordFetch(store, err, len(vm.Characters()), time.Since(start))

	if state, msg := vm.State(); state == viewmodel.StateError {
		format.PrintError(msg)
		os.Exit(1)
	}

	if store != nil {
		_ = store.ReplaceCatalog(vm.Characters())
	}

	identifier := args[0]

	// Try a 1-based index first
	if index, err := strconv.Atoi(identifier); err == nil {
		characters := vm.Characters()
		if index > 0 && index <= len(characters) {
			format.PrintCharacterDetail(characters[index-1])
			return
		}
	}

	if ch, ok := vm.CharacterByID(identifier); ok {
		format.PrintCharacterDetail(ch)
		return
	}

	format.PrintError(fmt.Sprintf("Character not found: %s", identifier))
	os.Exit(1)
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"characli/internal/format"
	"characli/internal/model"
)

func init() {
	favoritesCmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage pinned characters",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all favorites",
		Run:   runFavoritesList,
	}

	addCmd := &cobra.Command{
		Use:   "add <character-id>",
		Short: "Pin a character from the cached catalog",
		Args:  cobra.ExactArgs(1),
		Run:   runFavoritesAdd,
	}

	removeCmd := &cobra.Command{
		Use:   "remove <character-id>",
		Short: "Unpin a character",
		Args:  cobra.ExactArgs(1),
		Run:   runFavoritesRemove,
	}

	favoritesCmd.AddCommand(listCmd, addCmd, removeCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) {
	store := openStorage()
	if store == nil {
		format.PrintError("Local storage unavailable")
		os.Exit(1)
	}
	defer closeStorage(store)

	favorites, err := store.ListFavorites()
	if err != nil {
		format.PrintError(fmt.Sprintf("Failed to load favorites: %v", err))
		os.Exit(1)
	}

	format.PrintFavorites(favorites)
}

func runFavoritesAdd(cmd *cobra.Command, args []string) {
	id := args[0]

	store := openStorage()
	if store == nil {
		format.PrintError("Local storage unavailable")
		os.Exit(1)
	}
	defer closeStorage(store)

	// Resolve the name from the cached catalog so the favorite stays
	// listable offline. Unknown ids are still accepted.
	name := ""
	if characters, err := store.LoadCatalog(); err == nil {
		for _, ch := range characters {
			if ch.ID == id {
				name = ch.Name
				break
			}
		}
	}

	fav := model.Favorite{CharacterID: id, Name: name, AddedAt: time.Now()}
	if err := store.AddFavorite(fav); err != nil {
		format.PrintError(fmt.Sprintf("Failed to add favorite: %v", err))
		os.Exit(1)
	}

	format.PrintSuccess(fmt.Sprintf("Favorite '%s' added", id))
}

func runFavoritesRemove(cmd *cobra.Command, args []string) {
	id := args[0]

	store := openStorage()
	if store == nil {
		format.PrintError("Local storage unavailable")
		os.Exit(1)
	}
	defer closeStorage(store)

	if err := store.RemoveFavorite(id); err != nil {
		format.PrintError(fmt.Sprintf("Failed to remove favorite: %v", err))
		os.Exit(1)
	}

	format.PrintSuccess(fmt.Sprintf("Favorite '%s' removed", id))
}

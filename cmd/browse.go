package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"characli/internal/config"
	"characli/internal/format"
	"characli/internal/model"
	"characli/internal/router"
	"characli/internal/storage"
	"characli/internal/viewmodel"
)

func init() {
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Browse the catalog interactively with back-navigation.

Commands inside the browser:
  open <n>     open the detail screen for item n
  settings     open the settings screen
  back [n]     go back one (or n) screens
  home         return to the catalog
  refresh      re-fetch the catalog
  fav <n>      pin item n as a favorite
  quit         leave the browser`,
		Run: runBrowse,
	}
	browseCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include hidden characters")
	rootCmd.AddCommand(browseCmd)
}

// printlnFn is a test seam for browser prompts and messages.
var printlnFn = fmt.Println

// browserCommands is the command surface the browse loop dispatches to.
// The real browser satisfies it; tests provide a lightweight fake.
type browserCommands interface {
	Refresh(ctx context.Context)
	Open(n int)
	OpenSettings()
	Back(n int)
	Home()
	Fav(n int)
}

func runBrowse(cmd *cobra.Command, args []string) {
	store := openStorage()
	defer closeStorage(store)

	cfg := effectiveConfig()
	b := &browser{
		cfg:   cfg,
		vm:    viewmodel.NewCatalog(newAPIClient(cfg)),
		rt:    router.New(),
		store: store,
	}

	// The screen re-renders synchronously whenever the stack or the load
	// state changes; Render reads only the current route and state.
	b.rt.Subscribe(b.Render)
	b.vm.Subscribe(b.Render)

	b.Refresh(cmd.Context())

	runBrowseLoop(cmd.Context(), b, bufio.NewScanner(os.Stdin))
}

// runBrowseLoop reads commands and dispatches them until EOF or quit.
func runBrowseLoop(ctx context.Context, b browserCommands, scanner *bufio.Scanner) {
	for {
		printlnFn("characli> ")
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Commands: open <n>, settings, back [n], home, refresh, fav <n>, quit")

		case "open":
			n, ok := parseIndex(args)
			if !ok {
				printlnFn("Usage: open <n>")
				continue
			}
			b.Open(n)

		case "settings":
			b.OpenSettings()

		case "back":
			n := 1
			if len(args) > 0 {
				parsed, ok := parseIndex(args)
				if !ok {
					printlnFn("Usage: back [n]")
					continue
				}
				n = parsed
			}
			b.Back(n)

		case "home":
			b.Home()

		case "refresh":
			b.Refresh(ctx)

		case "fav":
			n, ok := parseIndex(args)
			if !ok {
				printlnFn("Usage: fav <n>")
				continue
			}
			b.Fav(n)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func parseIndex(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// browser glues the view model, router, and local store to the terminal.
type browser struct {
	cfg   *config.Config
	vm    *viewmodel.Catalog
	rt    *router.Router
	store *storage.SQLiteStorage
}

// Render draws the screen for the current route. It is a pure function of
// the router's stack and the view model's state.
func (b *browser) Render() {
	route := b.rt.Current()

	switch route.Kind {
	case router.RouteHome:
		state, msg := b.vm.State()
		switch state {
		case viewmodel.StateLoading:
			format.PrintLoadState(state, msg)
		case viewmodel.StateError:
			// Stale data stays on screen under the error banner.
			if characters := b.vm.Characters(); len(characters) > 0 {
				format.PrintCatalog(characters, showAll)
			}
			format.PrintLoadState(state, msg)
		default:
			format.PrintCatalog(b.vm.Characters(), showAll)
		}

	case router.RouteExperienceDetail:
		format.PrintCharacterDetail(route.Character)

	case router.RouteSettings:
		format.PrintSettings(b.cfg.BaseURL, b.cfg.Timeout)
	}
}

// Refresh re-fetches the catalog, recording the outcome and updating the
// cache on success.
func (b *browser) Refresh(ctx context.Context) {
	start := time.Now()
	err := b.vm.Load(ctx)
	recordFetch(b.store, err, len(b.vm.Characters()), time.Since(start))

	if err == nil && b.store != nil {
		_ = b.store.ReplaceCatalog(b.vm.Characters())
	}
}

// Open pushes the detail route for the n-th catalog item (1-based).
func (b *browser) Open(n int) {
	ch, ok := b.characterAt(n)
	if !ok {
		printlnFn("No such item:", n)
		return
	}
	b.rt.Push(router.ExperienceDetail(ch))
}

// OpenSettings pushes the settings route.
func (b *browser) OpenSettings() {
	b.rt.Push(router.Settings())
}

// Back pops n routes from the stack.
func (b *browser) Back(n int) {
	if n == 1 {
		b.rt.PopOne()
		return
	}
	b.rt.PopN(n)
}

// Home resets the stack to the root view.
func (b *browser) Home() {
	b.rt.Reset()
}

// Fav pins the n-th catalog item as a favorite.
func (b *browser) Fav(n int) {
	ch, ok := b.characterAt(n)
	if !ok {
		printlnFn("No such item:", n)
		return
	}
	if b.store == nil {
		printlnFn("Local storage unavailable")
		return
	}

	fav := model.Favorite{CharacterID: ch.ID, Name: ch.Name, AddedAt: time.Now()}
	if err := b.store.AddFavorite(fav); err != nil {
		printlnFn("Failed to add favorite:", err)
		return
	}
	format.PrintSuccess(fmt.Sprintf("Favorite '%s' added", ch.Name))
}

func (b *browser) characterAt(n int) (model.Character, bool) {
	characters := b.vm.Characters()
	if n < 1 || n > len(characters) {
		return model.Character{}, false
	}
	return characters[n-1], true
}

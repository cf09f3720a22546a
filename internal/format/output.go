package format

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/fatih/color"

	"characli/internal/model"
	"characli/internal/viewmodel"
)

// sanitizeOutput removes or escapes potentially dangerous control characters
// that could manipulate terminal display or execute commands
func sanitizeOutput(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			// Allow common whitespace characters
			result.WriteRune(r)
		case r == '\x1b':
			// Escape ANSI escape sequences - replace ESC with visible representation
			result.WriteString("\\x1b")
		case unicode.IsControl(r) && r < 0x20:
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		case r == 0x7F:
			result.WriteString("\\x7f")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errColor     = color.New(color.FgRed, color.Bold)
	nameColor    = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgCyan)
	ratingColor  = color.New(color.FgYellow)
	urlColor     = color.New(color.FgBlue)
	dimColor     = color.New(color.Faint)
)

// Stars renders a rating in [0,5] as a five-star bar.
func Stars(rating float64) string {
	full := int(rating + 0.5)
	if full < 0 {
		full = 0
	}
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

// PrintCatalog prints the character list in a compact row format. Items
// flagged as hidden are skipped unless showAll is set.
func PrintCatalog(characters []model.Character, showAll bool) {
	if len(characters) == 0 {
		dimColor.Println("No characters in catalog")
		return
	}

	shown := 0
	for i, ch := range characters {
		if !showAll && !ch.Visible() {
			continue
		}
		shown++

		dimColor.Printf("[%d] ", i+1)
		nameColor.Printf("%-24s ", sanitizeOutput(ch.Name))
		ratingColor.Printf("%s %.1f  ", Stars(ch.Rating), ch.Rating)
		dimColor.Printf("%d chats  cost %d", ch.ChatsCount, ch.Cost)
		if !ch.Visible() {
			dimColor.Print("  (hidden)")
		}
		fmt.Println()
	}

	if shown == 0 {
		dimColor.Println("All characters are hidden (use --all to show them)")
	}
}

// PrintCharacterDetail prints the full card for one character.
func PrintCharacterDetail(ch model.Character) {
	nameColor.Println(sanitizeOutput(ch.Name))
	fmt.Println(strings.Repeat("-", 40))

	ratingColor.Printf("%s %.1f", Stars(ch.Rating), ch.Rating)
	dimColor.Printf("  (%d chats)\n", ch.ChatsCount)

	if ch.Description != "" {
		fmt.Println(sanitizeOutput(ch.Description))
	}
	if ch.FirstMessage != "" {
		labelColor.Print("First message: ")
		fmt.Println(sanitizeOutput(ch.FirstMessage))
	}

	labelColor.Print("ID: ")
	fmt.Println(sanitizeOutput(ch.ID))
	labelColor.Print("State: ")
	fmt.Println(sanitizeOutput(ch.State))
	labelColor.Print("Avatar: ")
	urlColor.Println(sanitizeOutput(ch.Avatar))
	labelColor.Print("Created: ")
	fmt.Println(ch.CreatedAt.Format("2006-01-02 15:04:05"))

	labelColor.Print("Cost: ")
	fmt.Printf("%d", ch.Cost)
	if len(ch.Costs) > 0 {
		tiers := make([]string, 0, len(ch.Costs))
		for _, t := range ch.Costs {
			tiers = append(tiers, fmt.Sprintf("%d from %d", t.Cost, t.From))
		}
		dimColor.Printf("  (tiers: %s)", strings.Join(tiers, ", "))
	}
	fmt.Println()

	if ch.VoiceID != "" {
		labelColor.Print("Voice: ")
		fmt.Println(sanitizeOutput(ch.VoiceID))
	}
	labelColor.Print("Accepts photos: ")
	fmt.Println(ch.AcceptPhotos)
}

// PrintLoadState prints a one-line banner for a load state. Stale data, if
// any, is printed by the caller before the error banner.
func PrintLoadState(state viewmodel.LoadState, message string) {
	switch state {
	case viewmodel.StateLoading:
		dimColor.Println("Loading...")
	case viewmodel.StateError:
		errColor.Printf("✗ %s\n", sanitizeOutput(message))
	}
}

// PrintFavorites prints pinned characters, most recently added first.
func PrintFavorites(favorites []model.Favorite) {
	if len(favorites) == 0 {
		dimColor.Println("No favorites yet")
		return
	}

	fmt.Println("Favorites:")
	for _, fav := range favorites {
		labelColor.Printf("  %s ", sanitizeOutput(fav.CharacterID))
		if fav.Name != "" {
			nameColor.Printf("%s ", sanitizeOutput(fav.Name))
		}
		dimColor.Printf("(added %s)\n", fav.AddedAt.Format("2006-01-02 15:04:05"))
	}
}

// PrintFetchHistory prints fetch records in a compact format.
func PrintFetchHistory(records []model.FetchRecord, limit int) {
	if len(records) == 0 {
		dimColor.Println("No fetches in history")
		return
	}

	count := len(records)
	if limit > 0 && limit < count {
		count = limit
	}

	for i := 0; i < count; i++ {
		rec := records[i]
		dimColor.Printf("[%d] ", i+1)
		dimColor.Printf("%s  ", rec.Timestamp.Format("2006-01-02 15:04:05"))
		labelColor.Printf("%-12s ", sanitizeOutput(rec.Endpoint))
		if rec.Ok() {
			successColor.Printf("ok (%d items) ", rec.ItemCount)
		} else {
			errColor.Printf("%s ", sanitizeOutput(rec.Status))
		}
		dimColor.Printf("(%dms)\n", rec.DurationMs)
	}

	if limit > 0 && len(records) > limit {
		dimColor.Printf("\n... and %d more records\n", len(records)-limit)
	}
}

// PrintSettings prints the effective client configuration.
func PrintSettings(baseURL string, timeout time.Duration) {
	fmt.Println("Settings")
	fmt.Println(strings.Repeat("-", 40))
	labelColor.Print("Base URL: ")
	urlColor.Println(sanitizeOutput(baseURL))
	labelColor.Print("Timeout: ")
	fmt.Println(timeout)
}

// PrintSuccess prints a success message
func PrintSuccess(msg string) {
	successColor.Printf("✓ %s\n", msg)
}

// PrintError prints an error message
func PrintError(msg string) {
	errColor.Printf("✗ %s\n", msg)
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeBrowser struct {
	calls []string
}

func (f *fakeBrowser) Refresh(ctx context.Context) { f.calls = append(f.calls, "refresh") }
func (f *fakeBrowser) Open(n int)                  { f.calls = append(f.calls, fmt.Sprintf("open %d", n)) }
func (f *fakeBrowser) OpenSettings()               { f.calls = append(f.calls, "settings") }
func (f *fakeBrowser) Back(n int)                  { f.calls = append(f.calls, fmt.Sprintf("back %d", n)) }
func (f *fakeBrowser) Home()                       { f.calls = append(f.calls, "home") }
func (f *fakeBrowser) Fav(n int)                   { f.calls = append(f.calls, fmt.Sprintf("fav %d", n)) }

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunBrowseLoop_DispatchesCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.Join([]string{
		"open 2",
		"settings",
		"back",
		"back 3",
		"home",
		"refresh",
		"fav 1",
		"quit",
	}, "\n")

	fb := &fakeBrowser{}
	runBrowseLoop(context.Background(), fb, bufio.NewScanner(strings.NewReader(input)))

	require.Equal(t, []string{
		"open 2",
		"settings",
		"back 1",
		"back 3",
		"home",
		"refresh",
		"fav 1",
	}, fb.calls)
}

func TestRunBrowseLoop_IgnoresBlankAndUnknown(t *testing.T) {
	silencePrintln(t)

	input := "\n\nnonsense\nopen\nopen zero\nexit\n"
	fb := &fakeBrowser{}
	runBrowseLoop(context.Background(), fb, bufio.NewScanner(strings.NewReader(input)))

	require.Empty(t, fb.calls)
}

func TestRunBrowseLoop_ExitsOnEOF(t *testing.T) {
	silencePrintln(t)

	fb := &fakeBrowser{}
	runBrowseLoop(context.Background(), fb, bufio.NewScanner(strings.NewReader("home\n")))

	require.Equal(t, []string{"home"}, fb.calls)
}

func TestParseIndex(t *testing.T) {
	n, ok := parseIndex([]string{"3"})
	require.True(t, ok)
	require.Equal(t, 3, n)

	_, ok = parseIndex(nil)
	require.False(t, ok)

	_, ok = parseIndex([]string{"0"})
	require.False(t, ok)

	_, ok = parseIndex([]string{"abc"})
	require.False(t, ok)
}

package viewmodel

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"characli/internal/model"
)

type fakeFetcher struct {
	mu      sync.Mutex
	items   []model.Character
	err     error
	calls   int
	release chan struct{} // when non-nil, FetchCharacters blocks until closed
}

func (f *fakeFetcher) FetchCharacters(ctx context.Context) ([]model.Character, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	return f.items, f.err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestLoad_SuccessReplacesCollection(t *testing.T) {
	first := []model.Character{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	f := &fakeFetcher{items: first}
	vm := NewCatalog(f)

	require.NoError(t, vm.Load(context.Background()))

	state, msg := vm.State()
	require.Equal(t, StateSuccess, state)
	require.Empty(t, msg)
	require.Equal(t, first, vm.Characters())

	// A second fetch replaces the collection in full, order preserved.
	second := []model.Character{{ID: "c", Name: "C"}}
	f.items = second
	require.NoError(t, vm.Load(context.Background()))
	require.Equal(t, second, vm.Characters())
}

func TestLoad_FailureKeepsPreviousCollection(t *testing.T) {
	items := []model.Character{{ID: "a"}}
	f := &fakeFetcher{items: items}
	vm := NewCatalog(f)
	require.NoError(t, vm.Load(context.Background()))

	f.items = nil
	f.err = errors.New("server error: status 500")
	require.Error(t, vm.Load(context.Background()))

	state, msg := vm.State()
	require.Equal(t, StateError, state)
	require.Equal(t, "server error: status 500", msg)
	require.Equal(t, items, vm.Characters())
}

func TestLoad_TransitionsThroughLoading(t *testing.T) {
	f := &fakeFetcher{items: []model.Character{{ID: "a"}}}
	vm := NewCatalog(f)

	var states []LoadState
	vm.Subscribe(func() {
		s, _ := vm.State()
		states = append(states, s)
	})

	require.NoError(t, vm.Load(context.Background()))
	require.Equal(t, []LoadState{StateLoading, StateSuccess}, states)
}

func TestLoad_InFlightGuard(t *testing.T) {
	f := &fakeFetcher{release: make(chan struct{})}
	vm := NewCatalog(f)

	done := make(chan struct{})
	go func() {
		_ = vm.Load(context.Background())
		close(done)
	}()

	// Wait for the first load to reach the loading state.
	for {
		if s, _ := vm.State(); s == StateLoading {
			break
		}
	}

	// A re-entrant load while a fetch is outstanding is a no-op.
	require.NoError(t, vm.Load(context.Background()))
	require.Equal(t, 1, f.callCount())

	close(f.release)
	<-done

	state, _ := vm.State()
	require.Equal(t, StateSuccess, state)
}

func TestState_InitiallyIdle(t *testing.T) {
	vm := NewCatalog(&fakeFetcher{})
	state, msg := vm.State()
	require.Equal(t, StateIdle, state)
	require.Empty(t, msg)
}

func TestCharacterByID(t *testing.T) {
	f := &fakeFetcher{items: []model.Character{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}}
	vm := NewCatalog(f)
	require.NoError(t, vm.Load(context.Background()))

	ch, ok := vm.CharacterByID("b")
	require.True(t, ok)
	require.Equal(t, "B", ch.Name)

	_, ok = vm.CharacterByID("missing")
	require.False(t, ok)
}

func TestCharacters_ReturnsCopy(t *testing.T) {
	f := &fakeFetcher{items: []model.Character{{ID: "a"}}}
	vm := NewCatalog(f)
	require.NoError(t, vm.Load(context.Background()))

	out := vm.Characters()
	out[0].ID = "mutated"

	again := vm.Characters()
	require.Equal(t, "a", again[0].ID)
}

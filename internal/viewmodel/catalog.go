// Package viewmodel ties fetch outcomes to presentation state. Each view
// model owns one load cycle: idle -> loading -> success|error, with any
// state reachable back to loading on re-fetch.
package viewmodel

import (
	"context"
	"sync"

	"characli/internal/model"
)

// LoadState is the lifecycle of one data-fetching operation.
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateSuccess
	StateError
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Fetcher is the slice of the api client the catalog view model needs.
type Fetcher interface {
	FetchCharacters(ctx context.Context) ([]model.Character, error)
}

// Catalog holds the character collection together with its load state.
// A successful fetch replaces the collection wholesale; a failed fetch
// keeps the previous collection and records only the error message, so a
// renderer can show stale data next to an error banner.
//
// A Load issued while another is outstanding is a no-op: the in-flight
// fetch wins and the second call returns immediately.
type Catalog struct {
	fetcher Fetcher

	mu          sync.Mutex
	state       LoadState
	errMessage  string
	characters  []model.Character
	inFlight    bool
	subscribers []func()
}

// NewCatalog creates an idle catalog view model backed by the fetcher.
func NewCatalog(fetcher Fetcher) *Catalog {
	return &Catalog{fetcher: fetcher, state: StateIdle}
}

// Subscribe registers a callback invoked after every state transition.
func (c *Catalog) Subscribe(fn func()) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, fn)
	c.mu.Unlock()
}

// Load fetches the catalog and drives the state machine. The returned
// error is the classified fetch error, already reflected in State; callers
// that only render may ignore it.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil
	}
	c.inFlight = true
	c.state = StateLoading
	c.errMessage = ""
	c.mu.Unlock()
	c.notify()

	items, err := c.fetcher.FetchCharacters(ctx)

	c.mu.Lock()
	c.inFlight = false
	if err != nil {
		c.state = StateError
		c.errMessage = err.Error()
	} else {
		c.state = StateSuccess
		c.characters = items
	}
	c.mu.Unlock()
	c.notify()

	return err
}

// State returns the current load state and, when in StateError, the
// flattened error message.
func (c *Catalog) State() (LoadState, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.errMessage
}

// Characters returns a copy of the current collection, in server order.
func (c *Catalog) Characters() []model.Character {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Character, len(c.characters))
	copy(out, c.characters)
	return out
}

// CharacterByID looks up a character in the current collection.
func (c *Catalog) CharacterByID(id string) (model.Character, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.characters {
		if ch.ID == id {
			return ch, true
		}
	}
	return model.Character{}, false
}

func (c *Catalog) notify() {
	c.mu.Lock()
	subs := make([]func(), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

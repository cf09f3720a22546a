// Package router maintains the navigation history of the client. The
// current stack is the single source of truth for which screen is shown:
// rendering is a pure function of Current(), and every mutation goes
// through one of the four operations below.
package router

import (
	"sync"

	"characli/internal/model"
)

// RouteKind identifies a navigable destination.
type RouteKind int

const (
	RouteHome RouteKind = iota
	RouteExperienceDetail
	RouteSettings
)

// Route is a tagged value naming a destination together with the data the
// destination needs. Only RouteExperienceDetail carries a character.
type Route struct {
	Kind      RouteKind
	Character model.Character
}

// Home returns the root route.
func Home() Route {
	return Route{Kind: RouteHome}
}

// ExperienceDetail returns a detail route for the given character.
func ExperienceDetail(c model.Character) Route {
	return Route{Kind: RouteExperienceDetail, Character: c}
}

// Settings returns the settings route.
func Settings() Route {
	return Route{Kind: RouteSettings}
}

// Router owns the navigation stack. The zero value is not usable;
// construct with New. Subscribers registered via Subscribe are invoked
// after every mutation, while the stack already reflects the change.
type Router struct {
	mu          sync.Mutex
	stack       []Route
	subscribers []func()
}

// New creates a router with an empty stack.
func New() *Router {
	return &Router{}
}

// Subscribe registers a callback invoked after every stack mutation.
func (r *Router) Subscribe(fn func()) {
	r.mu.Lock()
	r.subscribers = append(r.subscribers, fn)
	r.mu.Unlock()
}

// Push appends a route to the stack. Depth is unbounded and duplicate
// routes are allowed.
func (r *Router) Push(route Route) {
	r.mu.Lock()
	r.stack = append(r.stack, route)
	r.mu.Unlock()
	r.notify()
}

// PopOne removes the top route. Popping an empty stack is a no-op.
func (r *Router) PopOne() {
	r.mu.Lock()
	if len(r.stack) > 0 {
		r.stack = r.stack[:len(r.stack)-1]
	}
	r.mu.Unlock()
	r.notify()
}

// PopN removes up to n routes from the top. It never removes more entries
// than exist and never errors.
func (r *Router) PopN(n int) {
	r.mu.Lock()
	if n > len(r.stack) {
		n = len(r.stack)
	}
	if n > 0 {
		r.stack = r.stack[:len(r.stack)-n]
	}
	r.mu.Unlock()
	r.notify()
}

// Reset clears the stack, returning to the root view.
func (r *Router) Reset() {
	r.mu.Lock()
	r.stack = r.stack[:0]
	r.mu.Unlock()
	r.notify()
}

// Current returns the route to render: the top of the stack, or the home
// route when the stack is empty.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) == 0 {
		return Home()
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of routes on the stack.
func (r *Router) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack)
}

// Stack returns a copy of the current stack, bottom first.
func (r *Router) Stack() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Route, len(r.stack))
	copy(out, r.stack)
	return out
}

func (r *Router) notify() {
	r.mu.Lock()
	subs := make([]func(), len(r.subscribers))
	copy(subs, r.subscribers)
	r.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

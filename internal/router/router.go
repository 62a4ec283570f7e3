package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

const defaultMaxRedirects = 3

// Router tracks the current location and history. Every change goes
// through the guard.
type Router struct {
	guard        *Guard
	maxRedirects int

	mu      sync.Mutex
	current *Match
	history []Match
}

type Option func(*Router)

// WithMaxRedirects bounds how many redirects one navigation may follow.
func WithMaxRedirects(n int) Option {
	return func(r *Router) {
		if n >= 0 {
			r.maxRedirects = n
		}
	}
}

func New(routes Table, auth AuthState, logger *log.Logger, opts ...Option) *Router {
	r := &Router{
		guard:        NewGuard(routes, auth, logger),
		maxRedirects: defaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Guard exposes the router's guard for callers that only need a decision.
func (r *Router) Guard() *Guard { return r.guard }

// Navigate resolves to, following redirects, and makes the final location
// current. The previous location is pushed onto the history.
func (r *Router) Navigate(ctx context.Context, to string) (Match, error) {
	m, err := r.resolve(ctx, to)
	if err != nil {
		return Match{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != nil && r.current.Path != m.Path {
		r.history = append(r.history, *r.current)
	}
	r.current = &m
	return m, nil
}

// Back navigates to the previous location. The guard still applies, so a
// logged-out user going back to a protected screen lands on /login.
func (r *Router) Back(ctx context.Context) (Match, error) {
	r.mu.Lock()
	if len(r.history) == 0 {
		r.mu.Unlock()
		return Match{}, errors.New("no history")
	}
	prev := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.mu.Unlock()

	m, err := r.resolve(ctx, prev.Path)
	if err != nil {
		return Match{}, err
	}
	r.mu.Lock()
	r.current = &m
	r.mu.Unlock()
	return m, nil
}

// Current returns the current location, if any navigation has happened.
func (r *Router) Current() (Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return Match{}, false
	}
	return *r.current, true
}

func (r *Router) resolve(ctx context.Context, to string) (Match, error) {
	target := to
	for i := 0; ; i++ {
		d, err := r.guard.Resolve(ctx, target)
		if err != nil {
			return Match{}, err
		}
		if d.Proceed() {
			return d.To, nil
		}
		if i >= r.maxRedirects {
			return Match{}, fmt.Errorf("%w: %s", ErrTooManyRedirects, to)
		}
		target = d.Redirect
	}
}

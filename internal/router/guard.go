package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

var (
	ErrNotFound         = errors.New("route not found")
	ErrTooManyRedirects = errors.New("too many redirects")

	errMissingAuth = errors.New("auth state is required")
)

// AuthState is what the guard needs from the session.
type AuthState interface {
	// Wait blocks until the session has finished initializing or ctx is done.
	Wait(ctx context.Context) error
	IsAuthenticated() bool
}

// Decision is the outcome of guarding one navigation. Redirect is empty
// when the navigation may proceed to To.
type Decision struct {
	To       Match
	Redirect string
}

func (d Decision) Proceed() bool { return d.Redirect == "" }

// Guard decides, per navigation attempt, whether to proceed or redirect.
type Guard struct {
	routes Table
	auth   AuthState
	logger *log.Logger
}

func NewGuard(routes Table, auth AuthState, logger *log.Logger) *Guard {
	if logger == nil {
		logger = log.Default()
	}
	return &Guard{routes: routes, auth: auth, logger: logger}
}

// Resolve waits for the session to be ready, then applies the rules:
// protected route while logged out goes to /login, /login while logged in
// goes to /, anything else proceeds. Unknown paths return ErrNotFound.
func (g *Guard) Resolve(ctx context.Context, to string) (Decision, error) {
	if g.auth == nil {
		return Decision{}, errMissingAuth
	}
	m, ok := g.routes.Match(to)
	if !ok {
		return Decision{}, fmt.Errorf("%w: %s", ErrNotFound, Normalize(to))
	}
	if err := g.auth.Wait(ctx); err != nil {
		return Decision{}, fmt.Errorf("wait for session: %w", err)
	}

	authed := g.auth.IsAuthenticated()
	d := Decision{To: m}
	switch {
	case m.Route.RequiresAuth && !authed:
		d.Redirect = PathLogin
	case m.Path == PathLogin && authed:
		d.Redirect = PathHome
	}
	g.logger.Debug("guard", "to", m.Path, "authenticated", authed, "redirect", d.Redirect)
	return d, nil
}

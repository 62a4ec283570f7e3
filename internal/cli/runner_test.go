package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/auth"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/router"
	"github.com/idilsaglam/tada/internal/store/kv"
	"github.com/idilsaglam/tada/internal/ui"
)

type stubTodos struct{}

func (stubTodos) List(context.Context) ([]model.Todo, error) {
	return []model.Todo{
		{ID: 1, Title: "first", UserID: 1},
		{ID: 2, Title: "second", Completed: true, UserID: 1},
	}, nil
}

func (stubTodos) Get(_ context.Context, id int) (model.Todo, error) {
	if id == 2 {
		return model.Todo{ID: 2, Title: "second", Completed: true, UserID: 1}, nil
	}
	return model.Todo{}, &model.APIError{Message: "get todo", Response: &model.APIResponse{Status: http.StatusNotFound}}
}

type testEnv struct {
	Env
	store    *kv.Memory
	out, err *bytes.Buffer
}

func newEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()
	logger := log.New(io.Discard)
	store := kv.NewMemory()
	sess := auth.New(store, auth.WithLogger(logger))
	sess.Initialize(context.Background())
	theme, _ := ui.LookupTheme(ui.ThemeDark)

	te := &testEnv{store: store, out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	te.Env = Env{
		Ctx:     context.Background(),
		Session: sess,
		Router:  router.New(router.DefaultRoutes(), sess, logger),
		Todos:   stubTodos{},
		Logger:  logger,
		Theme:   theme,
		Storage: "memory",
		In:      strings.NewReader(stdin),
		Out:     te.out,
		Err:     te.err,
	}
	return te
}

func (te *testEnv) run(args ...string) int {
	te.out.Reset()
	te.err.Reset()
	return Run(te.Env, args)
}

func TestLoginLogout(t *testing.T) {
	te := newEnv(t, "")

	if code := te.run("login", "admin@example.com", "password"); code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, te.err)
	}
	if !strings.Contains(te.out.String(), "logged in as Admin User") {
		t.Fatalf("unexpected output %q", te.out)
	}
	if _, ok, _ := te.store.Get(context.Background(), auth.UserKey); !ok {
		t.Fatal("expected persisted user")
	}

	if code := te.run("logout"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if te.Session.IsAuthenticated() {
		t.Fatal("expected logged out")
	}
	if _, ok, _ := te.store.Get(context.Background(), auth.UserKey); ok {
		t.Fatal("expected persisted user removed")
	}
}

func TestLoginPromptsForPassword(t *testing.T) {
	te := newEnv(t, "password\n")
	if code := te.run("login", "admin@example.com"); code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, te.err)
	}
	if !te.Session.IsAuthenticated() {
		t.Fatal("expected authenticated session")
	}
}

func TestLoginInvalid(t *testing.T) {
	te := newEnv(t, "")
	if code := te.run("login", "admin@example.com", "nope"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(te.err.String(), "invalid email or password") {
		t.Fatalf("unexpected stderr %q", te.err)
	}
}

func TestStatusAndWhoAmI(t *testing.T) {
	te := newEnv(t, "")

	if code := te.run("status"); code != 0 || !strings.Contains(te.out.String(), "not logged in") {
		t.Fatalf("unexpected status output %d %q", code, te.out)
	}
	if code := te.run("whoami"); code != 2 {
		t.Fatalf("expected exit 2 when logged out, got %d", code)
	}

	te.run("login", "admin@example.com", "password")
	if code := te.run("status"); code != 0 || !strings.Contains(te.out.String(), "Admin User <admin@example.com>") {
		t.Fatalf("unexpected status output %d %q", code, te.out)
	}
	if !strings.Contains(te.out.String(), "storage: memory") {
		t.Fatalf("expected storage line, got %q", te.out)
	}
	if code := te.run("whoami"); code != 0 || !strings.Contains(te.out.String(), "admin@example.com") {
		t.Fatalf("unexpected whoami output %d %q", code, te.out)
	}
}

func TestListRequiresLogin(t *testing.T) {
	te := newEnv(t, "")
	if code := te.run("ls"); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(te.err.String(), "not logged in") {
		t.Fatalf("unexpected stderr %q", te.err)
	}
}

func TestListFiltered(t *testing.T) {
	te := newEnv(t, "")
	te.run("login", "admin@example.com", "password")

	if code := te.run("ls", "--filter", "pending"); code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, te.err)
	}
	out := te.out.String()
	if !strings.Contains(out, "first") || strings.Contains(out, "second") {
		t.Fatalf("expected only pending todos, got %q", out)
	}
	if !strings.Contains(out, "1 shown, filter pending") {
		t.Fatalf("expected summary, got %q", out)
	}

	if code := te.run("ls", "--filter", "someday"); code != 2 {
		t.Fatalf("expected usage exit for bad filter, got %d", code)
	}
}

func TestShow(t *testing.T) {
	te := newEnv(t, "")
	if code := te.run("show", "2"); code != 2 {
		t.Fatalf("expected exit 2 when logged out, got %d", code)
	}

	te.run("login", "admin@example.com", "password")
	if code := te.run("show", "2"); code != 0 || !strings.Contains(te.out.String(), "Todo #2") {
		t.Fatalf("unexpected show output %d %q", code, te.out)
	}
	if code := te.run("show", "9"); code != 1 || !strings.Contains(te.err.String(), "todo 9 not found") {
		t.Fatalf("unexpected not-found output %d %q", code, te.err)
	}
	if code := te.run("show", "x"); code != 2 {
		t.Fatalf("expected usage exit, got %d", code)
	}
}

func TestRoute(t *testing.T) {
	te := newEnv(t, "")

	te.run("route", "/todos/4")
	if !strings.Contains(te.out.String(), "/todos/4 -> redirect /login") {
		t.Fatalf("unexpected output %q", te.out)
	}

	te.run("login", "admin@example.com", "password")
	te.run("route", "/login")
	if !strings.Contains(te.out.String(), "/login -> redirect /") {
		t.Fatalf("unexpected output %q", te.out)
	}
	te.run("route", "/todos/4")
	if !strings.Contains(te.out.String(), "proceed (todo-details)") {
		t.Fatalf("unexpected output %q", te.out)
	}

	if code := te.run("route", "/missing"); code != 1 {
		t.Fatalf("expected exit 1 for unknown route, got %d", code)
	}
}

func TestUnknownSubcommand(t *testing.T) {
	te := newEnv(t, "")
	if code := te.run("frobnicate"); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(te.err.String(), "unknown subcommand") {
		t.Fatalf("unexpected stderr %q", te.err)
	}
}

func TestWantsUI(t *testing.T) {
	if !WantsUI(nil) || !WantsUI([]string{"ui"}) || WantsUI([]string{"ls"}) {
		t.Fatal("unexpected WantsUI result")
	}
}

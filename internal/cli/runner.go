package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/auth"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/router"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// Env is everything a subcommand may touch.
type Env struct {
	Ctx     context.Context
	Session *auth.Session
	Router  *router.Router
	Todos   tui.TodoSource
	Logger  *log.Logger
	Theme   ui.Theme

	// InitTimeout bounds how long a command waits for the session to load.
	InitTimeout time.Duration
	// Storage describes the backend for `status`.
	Storage string

	In       io.Reader
	Out, Err io.Writer
}

// WantsUI reports whether args launch the full-screen UI.
func WantsUI(args []string) bool {
	return len(args) == 0 || args[0] == "ui"
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(env Env, args []string) int {
	if WantsUI(args) {
		return doUI(env)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(env.Out)
		return 0

	case "login":
		if len(a) < 1 || len(a) > 2 {
			env.Theme.Fail(env.Err, "usage: tada login <email> [password]")
			return 2
		}
		password := ""
		if len(a) == 2 {
			password = a[1]
		}
		return doLogin(env, a[0], password)

	case "logout":
		return doLogout(env)

	case "status":
		return doStatus(env)

	case "whoami":
		return doWhoAmI(env)

	case "ls":
		fs := flag.NewFlagSet("ls", flag.ContinueOnError)
		fs.SetOutput(env.Err)
		filter := fs.String("filter", "all", "all, completed or pending")
		if err := fs.Parse(a); err != nil {
			return 2
		}
		status, err := model.ParseFilterStatus(*filter)
		if err != nil {
			env.Theme.Fail(env.Err, "ls: "+err.Error())
			return 2
		}
		return doList(env, status)

	case "show":
		if len(a) != 1 {
			env.Theme.Fail(env.Err, "usage: tada show <id>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			env.Theme.Fail(env.Err, "show: not a number: "+a[0])
			return 2
		}
		return doShow(env, n)

	case "route":
		if len(a) != 1 {
			env.Theme.Fail(env.Err, "usage: tada route <path>")
			return 2
		}
		return doRoute(env, a[0])
	}

	env.Theme.Fail(env.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(env.Err)
	PrintHelp(env.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tada - an auth-gated todo browser

Usage:
  tada [--theme dark|light] [subcommand] [args]

Subcommands:
  ui                        Full-screen client (default)
  login <email> [password]  Sign in (prompts for the password if omitted)
  logout                    Sign out and forget the saved session
  status                    Show session and storage status
  whoami                    Show the signed-in user
  ls [--filter STATUS]      List todos (all, completed, pending)
  show <id>                 Show one todo
  route <path>              Print what the navigation guard decides for path

Examples:
  tada login admin@example.com
  tada ls --filter pending
  tada show 3
  tada route /todos/3
`)
}

// waitCtx bounds session initialization for one command.
func (env Env) waitCtx() (context.Context, context.CancelFunc) {
	if env.InitTimeout <= 0 {
		return context.WithCancel(env.Ctx)
	}
	return context.WithTimeout(env.Ctx, env.InitTimeout)
}

// enter asks the router for path; ok is false when the guard sent us elsewhere.
func enter(env Env, path string) (router.Match, bool, int) {
	ctx, cancel := env.waitCtx()
	defer cancel()
	loc, err := env.Router.Navigate(ctx, path)
	if err != nil {
		env.Theme.Fail(env.Err, err.Error())
		return router.Match{}, false, 1
	}
	if loc.Path != router.Normalize(path) {
		if loc.Path == router.PathLogin {
			env.Theme.Fail(env.Err, "not logged in. Run: tada login <email>")
			return loc, false, 2
		}
		env.Theme.Fail(env.Err, "redirected to "+loc.Path)
		return loc, false, 1
	}
	return loc, true, 0
}

func doUI(env Env) int {
	app := tui.New(env.Ctx, env.Session, env.Router, env.Todos, tui.Options{
		Theme:  env.Theme,
		Logger: env.Logger,
	})
	if err := tui.Run(app); err != nil {
		env.Theme.Fail(env.Err, "tui: "+err.Error())
		return 1
	}
	return 0
}

// ---------------------------------------------------
// Auth subcommands
// ---------------------------------------------------

func doLogin(env Env, email, password string) int {
	ctx, cancel := env.waitCtx()
	defer cancel()
	if err := env.Session.Wait(ctx); err != nil {
		env.Theme.Fail(env.Err, "session: "+err.Error())
		return 1
	}
	if u, ok := env.Session.User(); ok {
		env.Theme.OK(env.Out, "already logged in as "+u.Email)
		return 0
	}

	if password == "" {
		fmt.Fprint(env.Out, "Password: ")
		line, err := bufio.NewReader(env.In).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			env.Theme.Fail(env.Err, "read password: "+err.Error())
			return 1
		}
		password = strings.TrimRight(line, "\r\n")
	}

	ok, err := env.Session.Login(ctx, email, password)
	if err != nil {
		env.Theme.Fail(env.Err, "login: "+err.Error())
		return 1
	}
	if !ok {
		env.Theme.Fail(env.Err, "invalid email or password")
		return 1
	}
	u, _ := env.Session.User()
	env.Theme.OK(env.Out, "logged in as "+u.Name)
	return 0
}

func doLogout(env Env) int {
	ctx, cancel := env.waitCtx()
	defer cancel()
	if err := env.Session.Wait(ctx); err != nil {
		env.Theme.Fail(env.Err, "session: "+err.Error())
		return 1
	}
	if err := env.Session.Logout(ctx); err != nil {
		env.Theme.Fail(env.Err, "logout: "+err.Error())
		return 1
	}
	env.Theme.OK(env.Out, "logged out")
	return 0
}

func doStatus(env Env) int {
	ctx, cancel := env.waitCtx()
	defer cancel()
	if err := env.Session.Wait(ctx); err != nil {
		env.Theme.Fail(env.Err, "session: "+err.Error())
		return 1
	}
	u, ok := env.Session.User()
	if !ok {
		fmt.Fprintln(env.Out, env.Theme.Muted.Render("not logged in"))
		fmt.Fprintln(env.Out, "Run: tada login <email>")
	} else {
		fmt.Fprintf(env.Out, "logged in as %s <%s>\n", u.Name, u.Email)
	}
	if env.Storage != "" {
		fmt.Fprintf(env.Out, "storage: %s\n", env.Storage)
	}
	return 0
}

func doWhoAmI(env Env) int {
	ctx, cancel := env.waitCtx()
	defer cancel()
	if err := env.Session.Wait(ctx); err != nil {
		env.Theme.Fail(env.Err, "session: "+err.Error())
		return 1
	}
	u, ok := env.Session.User()
	if !ok {
		env.Theme.Fail(env.Err, "not logged in. Run: tada login <email>")
		return 2
	}
	t := env.Theme
	fmt.Fprintln(env.Out, t.Panel(
		t.Title.Render(u.Name),
		t.Muted.Render("email ")+u.Email,
		t.Muted.Render("id    ")+u.ID,
	))
	return 0
}

// ---------------------------------------------------
// Todo subcommands (guarded like the UI screens)
// ---------------------------------------------------

func doList(env Env, filter model.FilterStatus) int {
	if _, ok, code := enter(env, router.PathHome); !ok {
		return code
	}
	todos, err := env.Todos.List(env.Ctx)
	if err != nil {
		env.Theme.Fail(env.Err, "ls: "+err.Error())
		return 1
	}

	t := env.Theme
	visible := model.FilterTodos(todos, filter)
	for _, td := range visible {
		title := td.Title
		if td.Completed {
			title = t.Done.Render(title)
		}
		fmt.Fprintf(env.Out, "%4d %s %s\n", td.ID, t.Box(td.Completed), title)
	}
	done, pending := model.Stats(todos)
	fmt.Fprintf(env.Out, "\n%s  %s %d done  %s %d pending  (%d shown, filter %s)\n",
		ui.ProgressBar(done, len(todos), 20),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		len(visible), filter,
	)
	return 0
}

func doShow(env Env, id int) int {
	if _, ok, code := enter(env, router.TodoPath(id)); !ok {
		return code
	}
	td, err := env.Todos.Get(env.Ctx, id)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Status() == http.StatusNotFound {
			env.Theme.Fail(env.Err, fmt.Sprintf("todo %d not found", id))
			return 1
		}
		env.Theme.Fail(env.Err, "show: "+err.Error())
		return 1
	}

	t := env.Theme
	status := "pending"
	if td.Completed {
		status = "completed"
	}
	fmt.Fprintln(env.Out, t.Panel(
		t.Title.Render(fmt.Sprintf("Todo #%d", td.ID)),
		t.Box(td.Completed)+" "+td.Title,
		t.Muted.Render("status ")+status,
		t.Muted.Render("user   ")+strconv.Itoa(td.UserID),
	))
	return 0
}

func doRoute(env Env, path string) int {
	ctx, cancel := env.waitCtx()
	defer cancel()
	d, err := env.Router.Guard().Resolve(ctx, path)
	if err != nil {
		env.Theme.Fail(env.Err, err.Error())
		return 1
	}
	if d.Proceed() {
		fmt.Fprintf(env.Out, "%s -> proceed (%s)\n", d.To.Path, d.To.Route.Name)
		return 0
	}
	fmt.Fprintf(env.Out, "%s -> redirect %s\n", d.To.Path, d.Redirect)
	return 0
}

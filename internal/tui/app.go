// Package tui is the full-screen terminal client. Every screen change goes
// through the router, so the auth guard decides what is shown.
package tui

import (
	"context"
	"errors"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/router"
	"github.com/idilsaglam/tada/internal/ui"
)

// TodoSource is where the list and detail screens read todos from.
type TodoSource interface {
	List(ctx context.Context) ([]model.Todo, error)
	Get(ctx context.Context, id int) (model.Todo, error)
}

// Auth is the part of the session the screens drive.
type Auth interface {
	Login(ctx context.Context, email, password string) (bool, error)
	Logout(ctx context.Context) error
	User() (model.User, bool)
}

type Options struct {
	// Start is the first path navigated to. Defaults to "/".
	Start  string
	Theme  ui.Theme
	Logger *log.Logger
}

// messages
type (
	navigatedMsg struct {
		loc router.Match
		err error
	}
	todosLoadedMsg struct {
		todos []model.Todo
		err   error
	}
	todoLoadedMsg struct {
		id   int
		todo model.Todo
		err  error
	}
	loginResultMsg struct {
		ok  bool
		err error
	}
	loggedOutMsg struct{ err error }
)

// App is the root Bubble Tea model.
type App struct {
	ctx    context.Context
	auth   Auth
	router *router.Router
	todos  TodoSource
	logger *log.Logger
	theme  ui.Theme
	start  string

	loc     router.Match
	located bool
	status  string // last navigation or load error

	width, height int

	login  loginScreen
	list   listScreen
	detail detailScreen
}

func New(ctx context.Context, auth Auth, r *router.Router, todos TodoSource, opts Options) App {
	if opts.Start == "" {
		opts.Start = router.PathHome
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Theme.Name == "" {
		opts.Theme, _ = ui.LookupTheme(ui.ThemeDark)
	}
	return App{
		ctx:    ctx,
		auth:   auth,
		router: r,
		todos:  todos,
		logger: opts.Logger,
		theme:  opts.Theme,
		start:  opts.Start,
		width:  80,
		height: 24,
		login:  newLoginScreen(),
		list:   newListScreen(opts.Theme),
	}
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(app App) error {
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(app.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && app.ctx.Err() != nil {
		return nil
	}
	return err
}

func (a App) Init() tea.Cmd { return a.navigate(a.start) }

func (a App) navigate(to string) tea.Cmd {
	ctx, r := a.ctx, a.router
	return func() tea.Msg {
		loc, err := r.Navigate(ctx, to)
		return navigatedMsg{loc: loc, err: err}
	}
}

func (a App) back() tea.Cmd {
	ctx, r := a.ctx, a.router
	return func() tea.Msg {
		loc, err := r.Back(ctx)
		if err != nil {
			// nothing to go back to
			loc, err = r.Navigate(ctx, router.PathHome)
		}
		return navigatedMsg{loc: loc, err: err}
	}
}

func (a App) loadTodos() tea.Cmd {
	ctx, src := a.ctx, a.todos
	return func() tea.Msg {
		todos, err := src.List(ctx)
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func (a App) loadTodo(id int) tea.Cmd {
	ctx, src := a.ctx, a.todos
	return func() tea.Msg {
		t, err := src.Get(ctx, id)
		return todoLoadedMsg{id: id, todo: t, err: err}
	}
}

func (a App) doLogin(email, password string) tea.Cmd {
	ctx, auth := a.ctx, a.auth
	return func() tea.Msg {
		ok, err := auth.Login(ctx, email, password)
		return loginResultMsg{ok: ok, err: err}
	}
}

func (a App) doLogout() tea.Cmd {
	ctx, auth := a.ctx, a.auth
	return func() tea.Msg {
		return loggedOutMsg{err: auth.Logout(ctx)}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.list.setSize(a.width, a.height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case navigatedMsg:
		if msg.err != nil {
			a.logger.Warn("navigation failed", "err", msg.err)
			a.status = msg.err.Error()
			return a, nil
		}
		a.loc, a.located, a.status = msg.loc, true, ""
		return a.enter()

	case todosLoadedMsg:
		a.list.loading = false
		if msg.err != nil {
			a.logger.Error("load todos", "err", msg.err)
			a.status = "could not load todos: " + msg.err.Error()
			return a, nil
		}
		a.list.all = msg.todos
		a.list.loaded = true
		cmd := a.list.refresh(a.theme)
		return a, cmd

	case todoLoadedMsg:
		a.detail.loading = false
		if msg.err != nil {
			a.logger.Error("load todo", "id", msg.id, "err", msg.err)
			a.detail.err = describeLoadError(msg.err)
			return a, nil
		}
		a.detail.todo, a.detail.found = msg.todo, true
		return a, nil

	case loginResultMsg:
		a.login.busy = false
		switch {
		case msg.err != nil:
			a.logger.Error("login", "err", msg.err)
			a.login.err = "login failed: " + msg.err.Error()
			return a, nil
		case !msg.ok:
			a.login.err = "Invalid email or password"
			return a, nil
		}
		a.login = newLoginScreen()
		return a, a.navigate(router.PathHome)

	case loggedOutMsg:
		if msg.err != nil {
			a.logger.Error("logout", "err", msg.err)
			a.status = "logout: " + msg.err.Error()
		}
		a.list = newListScreen(a.theme)
		a.list.setSize(a.width, a.height)
		// the guard sends us to /login
		return a, a.navigate(router.PathHome)
	}

	if !a.located {
		return a, nil
	}
	switch a.loc.Route.Name {
	case router.NameLogin:
		return a.updateLogin(msg)
	case router.NameHome:
		return a.updateList(msg)
	case router.NameTodoDetails:
		return a.updateDetail(msg)
	}
	return a, nil
}

// enter prepares the screen for the location just navigated to.
func (a App) enter() (tea.Model, tea.Cmd) {
	switch a.loc.Route.Name {
	case router.NameLogin:
		a.login = newLoginScreen()
		cmd := a.login.focus()
		return a, cmd
	case router.NameHome:
		if !a.list.loaded && !a.list.loading {
			a.list.loading = true
			return a, a.loadTodos()
		}
		cmd := a.list.refresh(a.theme)
		return a, cmd
	case router.NameTodoDetails:
		id, err := a.loc.IntParam("id")
		if err != nil {
			a.detail = detailScreen{err: "invalid todo id " + a.loc.Param("id")}
			return a, nil
		}
		a.detail = detailScreen{id: id}
		if t, ok := a.list.find(id); ok {
			a.detail.todo, a.detail.found = t, true
			return a, nil
		}
		a.detail.loading = true
		return a, a.loadTodo(id)
	}
	return a, nil
}

func (a App) toggleTheme() App {
	a.theme = a.theme.Toggled()
	a.list.applyTheme(a.theme)
	return a
}

func describeLoadError(err error) string {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) && apiErr.Status() == http.StatusNotFound {
		return "Todo not found"
	}
	return err.Error()
}

func (a App) View() string {
	if !a.located {
		if a.status != "" {
			return a.theme.Panel(a.theme.Error.Render(a.status))
		}
		return a.theme.Panel(a.theme.Muted.Render("Loading session…"))
	}

	var body string
	switch a.loc.Route.Name {
	case router.NameLogin:
		body = a.viewLogin()
	case router.NameHome:
		body = a.viewList()
	case router.NameTodoDetails:
		body = a.viewDetail()
	}
	if a.status != "" {
		body += "\n" + a.theme.Error.Render(a.status)
	}
	return body
}

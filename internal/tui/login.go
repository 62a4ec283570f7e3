package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginScreen struct {
	email    textinput.Model
	password textinput.Model
	focused  int // 0 email, 1 password
	err      string
	busy     bool
}

func newLoginScreen() loginScreen {
	email := textinput.New()
	email.Prompt = "Email    "
	email.Placeholder = "admin@example.com"
	email.CharLimit = 254

	pw := textinput.New()
	pw.Prompt = "Password "
	pw.Placeholder = "password"
	pw.CharLimit = 128
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'

	return loginScreen{email: email, password: pw}
}

func (s *loginScreen) focus() tea.Cmd {
	if s.focused == 1 {
		s.email.Blur()
		return s.password.Focus()
	}
	s.password.Blur()
	return s.email.Focus()
}

func (a App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return a, tea.Quit
		case "tab", "shift+tab", "up", "down":
			a.login.focused = 1 - a.login.focused
			cmd := a.login.focus()
			return a, cmd
		case "enter":
			if a.login.busy {
				return a, nil
			}
			email := strings.TrimSpace(a.login.email.Value())
			if a.login.focused == 0 && a.login.password.Value() == "" {
				a.login.focused = 1
				cmd := a.login.focus()
				return a, cmd
			}
			if email == "" || a.login.password.Value() == "" {
				a.login.err = "Email and password are required"
				return a, nil
			}
			a.login.err = ""
			a.login.busy = true
			return a, a.doLogin(email, a.login.password.Value())
		}
	}

	var cmd tea.Cmd
	if a.login.focused == 1 {
		a.login.password, cmd = a.login.password.Update(msg)
	} else {
		a.login.email, cmd = a.login.email.Update(msg)
	}
	return a, cmd
}

func (a App) viewLogin() string {
	t := a.theme
	lines := []string{
		t.Title.Render("Sign in"),
		"",
		a.login.email.View(),
		a.login.password.View(),
		"",
	}
	switch {
	case a.login.busy:
		lines = append(lines, t.Muted.Render("Signing in…"))
	case a.login.err != "":
		lines = append(lines, t.Error.Render(a.login.err))
	default:
		lines = append(lines, t.Muted.Render("demo account: admin@example.com / password"))
	}
	lines = append(lines, t.Help.Render("tab switch field • enter sign in • esc quit"))
	return t.Panel(lines...)
}

package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
)

type detailScreen struct {
	id      int
	todo    model.Todo
	found   bool
	loading bool
	err     string
}

func (a App) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch km.String() {
	case "q":
		return a, tea.Quit
	case "esc", "backspace", "h", "left":
		return a, a.back()
	case " ":
		if !a.detail.found {
			return a, nil
		}
		if t, ok := a.list.toggle(a.detail.id); ok {
			a.detail.todo = t
		} else {
			a.detail.todo.Completed = !a.detail.todo.Completed
		}
		return a, nil
	case "t":
		return a.toggleTheme(), nil
	case "L":
		return a, a.doLogout()
	}
	return a, nil
}

func (a App) viewDetail() string {
	t := a.theme
	help := t.Help.Render("space toggle • esc back • t theme • L log out • q quit")

	switch {
	case a.detail.loading:
		return t.Panel(t.Muted.Render("Loading todo…"), "", help)
	case a.detail.err != "":
		return t.Panel(t.Error.Render(a.detail.err), "", help)
	case !a.detail.found:
		return t.Panel(t.Muted.Render("No todo selected"), "", help)
	}

	td := a.detail.todo
	status := t.Pending.Render(t.SymPending + " pending")
	if td.Completed {
		status = t.Success.Render(t.SymDone + " completed")
	}
	return t.Panel(
		t.Title.Render(fmt.Sprintf("Todo #%d", td.ID)),
		"",
		t.Box(td.Completed)+" "+td.Title,
		"",
		t.Muted.Render("Status  ")+status,
		t.Muted.Render("User    ")+strconv.Itoa(td.UserID),
		"",
		help,
	)
}

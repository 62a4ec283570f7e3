package tui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/router"
	"github.com/idilsaglam/tada/internal/ui"
)

// todoItem adapts model.Todo to bubbles/list.Item
type todoItem struct {
	todo model.Todo
}

func (i todoItem) FilterValue() string { return i.todo.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	theme ui.Theme
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	text := it.todo.Title
	if it.todo.Completed {
		text = d.theme.Done.Render(text)
	}
	line := fmt.Sprintf("%s %s", d.theme.Box(it.todo.Completed), text)
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type removed struct {
	todo  model.Todo
	index int
}

type listScreen struct {
	list    list.Model
	all     []model.Todo
	filter  model.FilterStatus
	loaded  bool
	loading bool

	// Inline add / edit share one input
	ti       textinput.Model
	adding   bool
	editing  bool
	editID   int
	inputErr string

	// Undo support (single-level)
	undo *removed
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	undoBind   = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	filterBind = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter"))
	openBind   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details"))
	themeBind  = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme"))
	logoutBind = key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out"))
)

func newListScreen(theme ui.Theme) listScreen {
	l := list.New(nil, itemDelegate{theme: theme}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	short := func() []key.Binding { return []key.Binding{openBind, toggleBind, addBind, filterBind} }
	full := func() []key.Binding {
		return []key.Binding{openBind, toggleBind, addBind, editBind, deleteBind, undoBind, filterBind, themeBind, logoutBind}
	}
	l.AdditionalShortHelpKeys = short
	l.AdditionalFullHelpKeys = full

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	s := listScreen{list: l, filter: model.FilterAll, ti: ti}
	s.applyTheme(theme)
	return s
}

func (s *listScreen) applyTheme(t ui.Theme) {
	s.list.SetDelegate(itemDelegate{theme: t})
	s.list.Styles.Title = t.Title
	s.list.Styles.HelpStyle = t.Help
	s.list.Styles.PaginationStyle = t.Help
	s.list.Title = s.title(t)
}

func (s *listScreen) setSize(w, h int) {
	listHeight := h - 4
	if s.adding || s.editing {
		listHeight = h - 7
	}
	if listHeight < 3 {
		listHeight = 3
	}
	s.list.SetSize(w-4, listHeight)
}

// Header title with live counts
func (s *listScreen) title(t ui.Theme) string {
	dn, pn := model.Stats(s.all)
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), dn,
		t.Pending.Render(t.SymPending), pn,
		t.Accent.Render("Total"), len(s.all),
		t.Muted.Render("["+string(s.filter)+"]"),
	)
}

// refresh rebuilds the visible items from all + filter.
func (s *listScreen) refresh(t ui.Theme) tea.Cmd {
	visible := model.FilterTodos(s.all, s.filter)
	items := make([]list.Item, 0, len(visible))
	for _, td := range visible {
		items = append(items, todoItem{todo: td})
	}
	s.list.Title = s.title(t)
	return s.list.SetItems(items)
}

func (s *listScreen) selected() (model.Todo, bool) {
	it, ok := s.list.SelectedItem().(todoItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (s *listScreen) indexOf(id int) int {
	for i, t := range s.all {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *listScreen) find(id int) (model.Todo, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.all[i], true
	}
	return model.Todo{}, false
}

// toggle flips completion of todo id; local only.
func (s *listScreen) toggle(id int) (model.Todo, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Todo{}, false
	}
	s.all[i].Completed = !s.all[i].Completed
	return s.all[i], true
}

func (s *listScreen) nextID() int {
	hi := 0
	for _, t := range s.all {
		if t.ID > hi {
			hi = t.ID
		}
	}
	return hi + 1
}

func (s *listScreen) add(f model.AddTodoForm, userID int) model.Todo {
	t := model.Todo{ID: s.nextID(), Title: f.Title, Completed: f.Completed, UserID: userID}
	s.all = append([]model.Todo{t}, s.all...)
	return t
}

func (s *listScreen) remove(id int) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.undo = &removed{todo: s.all[i], index: i}
	s.all = append(s.all[:i], s.all[i+1:]...)
	return true
}

func (s *listScreen) restore() bool {
	if s.undo == nil {
		return false
	}
	idx := min(max(s.undo.index, 0), len(s.all))
	s.all = append(s.all[:idx], append([]model.Todo{s.undo.todo}, s.all[idx:]...)...)
	s.undo = nil
	return true
}

func (a App) currentUserID() int {
	u, ok := a.auth.User()
	if !ok {
		return 0
	}
	id, _ := strconv.Atoi(u.ID)
	return id
}

func (a App) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &a.list

	// add / edit mode
	if s.adding || s.editing {
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.String() {
			case "enter":
				if s.adding {
					f := model.AddTodoForm{Title: s.ti.Value()}
					if err := f.Validate(); err != nil {
						s.inputErr = err.Error()
						return a, nil
					}
					s.add(f, a.currentUserID())
				} else {
					cur, found := s.find(s.editID)
					f := model.EditTodoForm{Title: s.ti.Value(), Completed: cur.Completed}
					if err := f.Validate(); err != nil {
						s.inputErr = err.Error()
						return a, nil
					}
					if found {
						s.all[s.indexOf(s.editID)] = f.Apply(cur)
					}
				}
				s.closeInput()
				s.setSize(a.width, a.height)
				cmd := s.refresh(a.theme)
				return a, cmd
			case "esc":
				s.closeInput()
				s.setSize(a.width, a.height)
				return a, nil
			}
		}
		var cmd tea.Cmd
		s.ti, cmd = s.ti.Update(msg)
		return a, cmd
	}

	// while the list's own filter prompt is open, keys belong to it
	if km, ok := msg.(tea.KeyMsg); ok && s.list.FilterState() != list.Filtering {
		switch km.String() {
		case "q", "esc":
			return a, tea.Quit
		case " ":
			if t, ok := s.selected(); ok {
				s.toggle(t.ID)
				cmd := s.refresh(a.theme)
				return a, cmd
			}
			return a, nil
		case "a":
			s.adding = true
			s.inputErr = ""
			s.ti.SetValue("")
			s.ti.Placeholder = "New todo title..."
			s.setSize(a.width, a.height)
			cmd := s.ti.Focus()
			return a, cmd
		case "e":
			if t, ok := s.selected(); ok {
				s.editing = true
				s.editID = t.ID
				s.inputErr = ""
				s.ti.SetValue(t.Title)
				s.ti.CursorEnd()
				s.ti.Placeholder = "Edit todo title..."
				s.setSize(a.width, a.height)
				cmd := s.ti.Focus()
				return a, cmd
			}
			return a, nil
		case "d":
			if t, ok := s.selected(); ok {
				s.remove(t.ID)
				cmd := s.refresh(a.theme)
				return a, cmd
			}
			return a, nil
		case "u":
			if s.restore() {
				cmd := s.refresh(a.theme)
				return a, cmd
			}
			return a, nil
		case "f":
			s.filter = s.filter.Next()
			s.list.ResetSelected()
			cmd := s.refresh(a.theme)
			return a, cmd
		case "t":
			return a.toggleTheme(), nil
		case "r":
			s.loading = true
			return a, a.loadTodos()
		case "enter":
			if t, ok := s.selected(); ok {
				return a, a.navigate(router.TodoPath(t.ID))
			}
			return a, nil
		case "L":
			return a, a.doLogout()
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return a, cmd
}

func (s *listScreen) closeInput() {
	s.adding, s.editing = false, false
	s.inputErr = ""
	s.ti.SetValue("")
	s.ti.Blur()
}

func (a App) viewList() string {
	t := a.theme
	s := a.list

	var header string
	if u, ok := a.auth.User(); ok {
		header = t.Muted.Render("Signed in as ") + t.Accent.Render(u.Name) + t.Muted.Render(" <"+u.Email+">")
	}
	if s.loading && !s.loaded {
		return t.Panel(header, "", t.Muted.Render("Loading todos…"))
	}

	dn, _ := model.Stats(s.all)
	content := header + "   " + ui.ProgressBar(dn, len(s.all), 20) + "\n" + s.list.View()
	if s.adding || s.editing {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1)
		title := "Add todo"
		if s.editing {
			title = "Edit todo"
		}
		if s.inputErr != "" {
			title += " - " + t.Error.Render(s.inputErr)
		}
		content += "\n" + bar.Render(title+"\n"+s.ti.View())
	}
	return t.Panel(content)
}

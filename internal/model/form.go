package model

import (
	"errors"
	"strings"
)

var ErrEmptyTitle = errors.New("title cannot be empty")

// AddTodoForm holds the values of the "add todo" form.
type AddTodoForm struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// EditTodoForm holds the values of the "edit todo" form.
type EditTodoForm struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Validate trims the title and rejects empty input.
func (f *AddTodoForm) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

func (f *EditTodoForm) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Apply copies the edited fields onto t.
func (f EditTodoForm) Apply(t Todo) Todo {
	t.Title = f.Title
	t.Completed = f.Completed
	return t
}

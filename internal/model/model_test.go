package model

import (
	"errors"
	"testing"
)

func TestFilterTodos(t *testing.T) {
	todos := []Todo{
		{ID: 1, Title: "a", Completed: true},
		{ID: 2, Title: "b"},
		{ID: 3, Title: "c", Completed: true},
	}

	tests := []struct {
		filter FilterStatus
		want   []int
	}{
		{FilterAll, []int{1, 2, 3}},
		{FilterCompleted, []int{1, 3}},
		{FilterPending, []int{2}},
	}
	for _, tt := range tests {
		got := FilterTodos(todos, tt.filter)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: expected %d todos, got %d", tt.filter, len(tt.want), len(got))
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Fatalf("%s: expected id %d at %d, got %d", tt.filter, id, i, got[i].ID)
			}
		}
	}
}

func TestParseFilterStatus(t *testing.T) {
	if f, err := ParseFilterStatus(" Pending "); err != nil || f != FilterPending {
		t.Fatalf("expected pending, got %q (%v)", f, err)
	}
	if f, err := ParseFilterStatus(""); err != nil || f != FilterAll {
		t.Fatalf("expected all for empty input, got %q (%v)", f, err)
	}
	if _, err := ParseFilterStatus("done"); err == nil {
		t.Fatal("expected error for unknown filter")
	}
}

func TestFilterStatusNextCycles(t *testing.T) {
	f := FilterAll
	for _, want := range []FilterStatus{FilterCompleted, FilterPending, FilterAll} {
		f = f.Next()
		if f != want {
			t.Fatalf("expected %s, got %s", want, f)
		}
	}
}

func TestAddTodoFormValidate(t *testing.T) {
	f := AddTodoForm{Title: "   "}
	if err := f.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	f = AddTodoForm{Title: "  buy milk "}
	if err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if f.Title != "buy milk" {
		t.Fatalf("expected trimmed title, got %q", f.Title)
	}
}

func TestEditTodoFormApply(t *testing.T) {
	f := EditTodoForm{Title: "new", Completed: true}
	got := f.Apply(Todo{ID: 7, Title: "old", UserID: 2})
	if got.ID != 7 || got.UserID != 2 || got.Title != "new" || !got.Completed {
		t.Fatalf("unexpected todo after apply: %+v", got)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Message: "get todo", Response: &APIResponse{Status: 404, StatusText: "Not Found"}}
	if err.Error() != "get todo (404 Not Found)" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err.Status() != 404 {
		t.Fatalf("expected status 404, got %d", err.Status())
	}
	if (&APIError{Message: "x"}).Status() != 0 {
		t.Fatal("expected status 0 without response")
	}
}

func TestUserValid(t *testing.T) {
	if (User{Email: "a@b"}).Valid() {
		t.Fatal("expected user without id to be invalid")
	}
	if !(User{ID: "1", Email: "a@b"}).Valid() {
		t.Fatal("expected user to be valid")
	}
}

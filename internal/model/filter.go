package model

import (
	"fmt"
	"strings"
)

// FilterStatus selects which todos a list shows.
type FilterStatus string

const (
	FilterAll       FilterStatus = "all"
	FilterCompleted FilterStatus = "completed"
	FilterPending   FilterStatus = "pending"
)

func ParseFilterStatus(s string) (FilterStatus, error) {
	switch FilterStatus(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCompleted:
		return FilterCompleted, nil
	case FilterPending:
		return FilterPending, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, completed or pending)", s)
}

// Next cycles all -> completed -> pending -> all.
func (f FilterStatus) Next() FilterStatus {
	switch f {
	case FilterAll:
		return FilterCompleted
	case FilterCompleted:
		return FilterPending
	default:
		return FilterAll
	}
}

// FilterTodos returns the todos matching f, in their original order.
func FilterTodos(todos []Todo, f FilterStatus) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		switch f {
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterPending:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Stats counts completed and pending todos.
func Stats(todos []Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

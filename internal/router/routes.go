// Package router maps screen paths to routes and guards every navigation
// against the auth session.
package router

import (
	"path"
	"strconv"
	"strings"
)

// Canonical paths.
const (
	PathLogin      = "/login"
	PathHome       = "/"
	PathTodoPrefix = "/todos/"
)

// Route names.
const (
	NameLogin       = "login"
	NameHome        = "home"
	NameTodoDetails = "todo-details"
)

// Route is one entry of the route table. Pattern segments starting with ':'
// capture a parameter.
type Route struct {
	Name         string
	Pattern      string
	RequiresAuth bool
}

// Table is an ordered route table; the first matching route wins.
type Table []Route

// DefaultRoutes is the application route table.
func DefaultRoutes() Table {
	return Table{
		{Name: NameLogin, Pattern: PathLogin, RequiresAuth: false},
		{Name: NameHome, Pattern: PathHome, RequiresAuth: true},
		{Name: NameTodoDetails, Pattern: PathTodoPrefix + ":id", RequiresAuth: true},
	}
}

// TodoPath returns the detail path for a todo id.
func TodoPath(id int) string {
	return PathTodoPrefix + strconv.Itoa(id)
}

// Match is a resolved location: the route plus the concrete path and params.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
}

func (m Match) Param(name string) string {
	return m.Params[name]
}

// IntParam parses a numeric path parameter.
func (m Match) IntParam(name string) (int, error) {
	return strconv.Atoi(m.Params[name])
}

// Normalize drops query and fragment, cleans the path and keeps a leading slash.
func Normalize(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Match finds the first route matching p.
func (t Table) Match(p string) (Match, bool) {
	p = Normalize(p)
	segs := splitPath(p)
	for _, r := range t {
		params, ok := matchSegments(splitPath(r.Pattern), segs)
		if ok {
			return Match{Route: r, Path: p, Params: params}, true
		}
	}
	return Match{}, false
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := map[string]string{}
	for i, ps := range pattern {
		if name, ok := strings.CutPrefix(ps, ":"); ok {
			if segs[i] == "" {
				return nil, false
			}
			params[name] = segs[i]
			continue
		}
		if ps != segs[i] {
			return nil, false
		}
	}
	return params, true
}

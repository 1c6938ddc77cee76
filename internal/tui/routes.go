package tui

import (
	"net/url"
	"strings"
)

// RouteName identifies which view a path opens
type RouteName int

const (
	RouteList RouteName = iota
	RouteCreate
	RouteDetails
	RouteEdit
)

func (n RouteName) String() string {
	switch n {
	case RouteList:
		return "list"
	case RouteCreate:
		return "create"
	case RouteDetails:
		return "details"
	case RouteEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Route is a resolved navigation target
type Route struct {
	Name RouteName
	ID   string
}

// Path returns the canonical path of the route
func (r Route) Path() string {
	switch r.Name {
	case RouteCreate:
		return CreatePath()
	case RouteDetails:
		return DetailsPath(r.ID)
	case RouteEdit:
		return EditPath(r.ID)
	default:
		return ListPath()
	}
}

// ListPath is the task list
func ListPath() string { return "/" }

// CreatePath is the empty form
func CreatePath() string { return "/cadastrar" }

// DetailsPath is the details view of id
func DetailsPath(id string) string { return "/tarefa/" + url.PathEscape(id) }

// EditPath is the form pre-filled with id
func EditPath(id string) string { return "/tarefa/editar/" + url.PathEscape(id) }

// Resolve maps a path to a route. "/tarefa" and "/tarefa/" resolve to the
// details view with an empty id, which the view reports as missing.
func Resolve(path string) (Route, bool) {
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		return Route{}, false
	}

	segs := strings.Split(strings.TrimPrefix(path, "/"), "/")
	switch {
	case len(segs) == 1 && segs[0] == "":
		return Route{Name: RouteList}, true
	case len(segs) == 1 && segs[0] == "cadastrar":
		return Route{Name: RouteCreate}, true
	case len(segs) == 1 && segs[0] == "tarefa":
		return Route{Name: RouteDetails}, true
	case len(segs) == 2 && segs[0] == "tarefa":
		id, err := url.PathUnescape(segs[1])
		if err != nil {
			return Route{}, false
		}
		return Route{Name: RouteDetails, ID: id}, true
	case len(segs) == 3 && segs[0] == "tarefa" && segs[1] == "editar":
		id, err := url.PathUnescape(segs[2])
		if err != nil {
			return Route{}, false
		}
		return Route{Name: RouteEdit, ID: id}, true
	}
	return Route{}, false
}

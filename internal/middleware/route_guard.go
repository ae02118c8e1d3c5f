package middleware

import (
	"strings"

	"github.com/brightframe/studio-backend/internal/models"
)

// RouteAccess is who may open a client route.
type RouteAccess int

const (
	AccessPublic RouteAccess = iota
	AccessAuthenticated
	AccessAdmin
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type clientRoute struct {
	pattern string
	access  RouteAccess
}

// clientRoutes mirrors the browser router. Segments starting with ':'
// match any single segment.
var clientRoutes = []clientRoute{
	{"/", AccessPublic},
	{"/about", AccessPublic},
	{"/services", AccessPublic},
	{"/pricing", AccessPublic},
	{"/gallery", AccessPublic},
	{"/gallery/:albumId", AccessPublic},
	{"/contact", AccessPublic},
	{"/login", AccessPublic},
	{"/register", AccessPublic},
	{"/forgot-password", AccessPublic},
	{"/reset-password", AccessPublic},
	{"/shared/albums/:albumId", AccessPublic},

	{"/dashboard", AccessAuthenticated},
	{"/booking", AccessAuthenticated},
	{"/my-bookings", AccessAuthenticated},
	{"/my-albums", AccessAuthenticated},
	{"/my-albums/:albumId", AccessAuthenticated},
	{"/profile", AccessAuthenticated},

	{"/admin", AccessAdmin},
	{"/admin/albums", AccessAdmin},
	{"/admin/albums/new", AccessAdmin},
	{"/admin/albums/:albumId", AccessAdmin},
	{"/admin/appointments", AccessAdmin},
	{"/admin/users", AccessAdmin},
	{"/admin/messages", AccessAdmin},
}

// AccessFor returns the access level of path. Unknown paths under /admin
// are admin only; other unknown paths are public so the client can render
// its not found page.
func AccessFor(path string) RouteAccess {
	path = normalize(path)
	for _, r := range clientRoutes {
		if matchRoute(r.pattern, path) {
			return r.access
		}
	}
	if path == "/admin" || strings.HasPrefix(path, "/admin/") {
		return AccessAdmin
	}
	return AccessPublic
}

// Guard decides whether session may open path. When it may not, redirect
// names where to send the user instead.
func Guard(path string, session *models.Session) (redirect string, ok bool) {
	switch AccessFor(path) {
	case AccessAuthenticated:
		if session == nil {
			return LoginPath, false
		}
	case AccessAdmin:
		if session == nil {
			return LoginPath, false
		}
		if session.Role != models.RoleAdmin {
			return DashboardPath, false
		}
	}
	return "", true
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func matchRoute(pattern, path string) bool {
	ps := strings.Split(pattern, "/")
	xs := strings.Split(path, "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}

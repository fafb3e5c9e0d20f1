package domain

import "fmt"

const (
	LoginRoute          = "/login"
	StaffDashboardRoute = "/staff/dashboard"
)

var dashboards = map[Role]string{
	RoleEditor:     "/editor/dashboard",
	RoleAdmin:      "/admin/dashboard",
	RoleJournalist: "/journalist/dashboard",
}

// DashboardRoute is where a freshly logged-in user lands.
func DashboardRoute(r Role) (string, error) {
	route, ok := dashboards[r]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, r)
	}
	return route, nil
}

// DefaultRoute is where the role guard sends a user it turns away.
func DefaultRoute(r Role) string {
	if route, ok := dashboards[r]; ok {
		return route
	}
	return StaffDashboardRoute
}

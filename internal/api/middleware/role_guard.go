package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// RoleGuard restricts a route group to roles. Visitors without a profile go
// to the login page; other roles go to their own dashboard.
func RoleGuard(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := SessionFrom(c)
			if st == nil || st.Session.Profile == nil {
				return redirect(c, "role", "no_session", domain.LoginRoute)
			}
			role := st.Session.Role()
			if _, ok := allowed[role]; !ok {
				return redirect(c, "role", "role", domain.DefaultRoute(role))
			}
			return next(c)
		}
	}
}

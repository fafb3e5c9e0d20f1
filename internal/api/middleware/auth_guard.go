package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/pkg/metrics"
)

// ProfileRefresher fetches the current user's profile with the bearer token
// carried by ctx.
type ProfileRefresher interface {
	RefreshProfile(ctx context.Context) (*domain.UserProfile, error)
}

func redirect(c echo.Context, guard, reason, to string) error {
	metrics.GuardRedirectsTotal.WithLabelValues(guard, reason).Inc()
	return c.Redirect(http.StatusSeeOther, to)
}

// AuthGuard lets through visitors holding an unexpired bearer token. A
// cached profile older than interval is refreshed first: a 401 ends the
// session, any other failure keeps the cached profile and queues a notice.
func AuthGuard(refresher ProfileRefresher, interval time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := SessionFrom(c)
			if st == nil || !st.Session.Authenticated() {
				return redirect(c, "auth", "no_session", domain.LoginRoute)
			}

			now := time.Now()
			if st.Session.TokenExpired(now) {
				st.Destroy()
				return redirect(c, "auth", "expired", domain.LoginRoute)
			}

			if st.Session.NeedsRefresh(now, interval) {
				profile, err := refresher.RefreshProfile(c.Request().Context())
				switch {
				case err == nil:
					metrics.ProfileRefreshTotal.WithLabelValues("ok").Inc()
					st.Session.SetProfile(*profile, now)
				case errors.Is(err, domain.ErrUnauthorized):
					metrics.ProfileRefreshTotal.WithLabelValues("unauthorized").Inc()
					st.Destroy()
					return redirect(c, "auth", "unauthorized", domain.LoginRoute)
				default:
					metrics.ProfileRefreshTotal.WithLabelValues("error").Inc()
					log.Warn().Err(err).Str("user_id", st.Session.UserID()).Msg("profile refresh failed, using cached profile")
					st.Session.Notify(domain.NoticeError, "Could not refresh your profile. Showing saved details.")
				}
			}
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"

	"pacho/internal/entity"

	"github.com/labstack/echo/v4"
)

func RequireRole(role entity.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			currentRole, ok := RoleFromContext(c)
			if !ok || currentRole != string(role) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// RequireActiveExpert gates the treatment workspace: role experto, test
// approved, account active. Claims are the login-time snapshot; the
// services re-check the authoritative rows on every mutation.
func RequireActiveExpert() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := RoleFromContext(c)
			if !ok || role != string(entity.UserRoleExpert) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			status, ok := StatusFromContext(c)
			if !ok || entity.UserStatus(status) != entity.StatusActive {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			state, ok := TestStateFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			parsed, err := entity.ParseTestState(state)
			if err != nil || parsed != entity.TestStateApproved {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

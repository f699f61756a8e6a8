package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextUserIDKey    = "auth_user_id"
	contextRoleKey      = "auth_role"
	contextStatusKey    = "auth_status"
	contextTestStateKey = "auth_test_state"
	contextSessionKey   = "auth_session_id"
)

func SetAuthContext(c echo.Context, userID uuid.UUID, role string, status int, testState string, sessionID uuid.UUID) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextRoleKey, role)
	c.Set(contextStatusKey, status)
	c.Set(contextTestStateKey, testState)
	c.Set(contextSessionKey, sessionID)
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(contextUserIDKey)
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func RoleFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextRoleKey)
	role, ok := value.(string)
	return role, ok
}

func StatusFromContext(c echo.Context) (int, bool) {
	value := c.Get(contextStatusKey)
	status, ok := value.(int)
	return status, ok
}

func TestStateFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextTestStateKey)
	state, ok := value.(string)
	return state, ok
}

func SessionIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(contextSessionKey)
	sessionID, ok := value.(uuid.UUID)
	return sessionID, ok
}

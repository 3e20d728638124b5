package middleware

import "github.com/labstack/echo/v4"

// Context keys set by JWTAuth and RequestLogger.
const (
	KeyUserID    = "user_id"
	KeyRole      = "role"
	KeyRequestID = "request_id"
)

// currentUserID returns the authenticated subject, or "anon" on public
// routes where JWTAuth did not run.
func currentUserID(c echo.Context) string {
	if s, ok := c.Get(KeyUserID).(string); ok && s != "" {
		return s
	}
	return "anon"
}

package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Sabbath window: Friday 18:00 through Saturday 18:30 local time.
const (
	sabbathStartMinute = 18 * 60
	sabbathEndMinute   = 18*60 + 30
)

// Sabbath rejects requests while the shop observes the Sabbath. Mutating
// routes mount it so the ledger stays untouched during the window; when
// disabled in config it passes everything through.
func Sabbath(enabled bool, now func() time.Time) echo.MiddlewareFunc {
	if now == nil {
		now = time.Now
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if enabled && inSabbathWindow(now()) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":   "Sabbath Time - System Unavailable",
					"message": "The system is unavailable from Friday 18:00 to Saturday 18:30",
				})
			}
			return next(c)
		}
	}
}

func inSabbathWindow(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()
	switch t.Weekday() {
	case time.Friday:
		return minute >= sabbathStartMinute
	case time.Saturday:
		return minute <= sabbathEndMinute
	default:
		return false
	}
}

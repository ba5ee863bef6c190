package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

// Friday Jan 9 2026 and Saturday Jan 10 2026.
func friday(hour, minute int) time.Time {
	return time.Date(2026, 1, 9, hour, minute, 0, 0, time.UTC)
}

func saturday(hour, minute int) time.Time {
	return time.Date(2026, 1, 10, hour, minute, 0, 0, time.UTC)
}

func callSabbath(t *testing.T, enabled bool, at time.Time) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	passed := false
	handler := Sabbath(enabled, func() time.Time { return at })(func(c echo.Context) error {
		passed = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec.Code, passed
}

func TestSabbath_WindowBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		at      time.Time
		blocked bool
	}{
		{"friday before start", friday(17, 59), false},
		{"friday at start", friday(18, 0), true},
		{"friday night", friday(23, 59), true},
		{"saturday morning", saturday(9, 0), true},
		{"saturday at end", saturday(18, 30), true},
		{"saturday after end", saturday(18, 31), false},
		{"sunday", time.Date(2026, 1, 11, 12, 0, 0, 0, time.UTC), false},
		{"wednesday evening", time.Date(2026, 1, 7, 19, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		code, passed := callSabbath(t, true, tc.at)
		if tc.blocked {
			if passed || code != http.StatusForbidden {
				t.Fatalf("%s: expected 403 block, got code=%d passed=%v", tc.name, code, passed)
			}
		} else {
			if !passed || code != http.StatusOK {
				t.Fatalf("%s: expected pass-through, got code=%d passed=%v", tc.name, code, passed)
			}
		}
	}
}

func TestSabbath_DisabledPassesThrough(t *testing.T) {
	code, passed := callSabbath(t, false, friday(20, 0))
	if !passed || code != http.StatusOK {
		t.Fatalf("disabled lock must pass everything: code=%d passed=%v", code, passed)
	}
}

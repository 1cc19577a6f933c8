package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func doAdminRequest(t *testing.T, allowlist []string, session *Session) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set(sessionContextKey, session)
	}

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	if err := RequireAdministrator(allowlist)(handler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestRequireAdministrator_NoSession(t *testing.T) {
	t.Parallel()

	rec := doAdminRequest(t, []string{"ridwankhan@iut-dhaka.edu"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdministrator_NotAllowlisted(t *testing.T) {
	t.Parallel()

	// Domain membership is not administrator membership.
	rec := doAdminRequest(t, []string{"ridwankhan@iut-dhaka.edu"}, &Session{Email: "x@iut-dhaka.edu"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAdministrator_Allowlisted(t *testing.T) {
	t.Parallel()

	rec := doAdminRequest(t, []string{"ridwankhan@iut-dhaka.edu"}, &Session{Email: "ridwankhan@iut-dhaka.edu"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAdministrator_EmptyAllowlist(t *testing.T) {
	t.Parallel()

	rec := doAdminRequest(t, nil, &Session{Email: "anyone@iut-dhaka.edu"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

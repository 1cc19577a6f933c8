package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-connect/app/server/jwt"
	"campus-connect/app/server/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stubUserFinder records whether the store was touched.
type stubUserFinder struct {
	user   *models.User
	err    error
	called bool
}

func (f *stubUserFinder) FindUserByEmail(_ context.Context, _ string) (*models.User, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func newAuthTest(t *testing.T, finder UserFinder) (*jwt.JWT, echo.HandlerFunc, echo.MiddlewareFunc) {
	t.Helper()

	j, err := jwt.New("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("jwt.New: %v", err)
	}

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	return j, handler, SessionAuth(finder, j, zap.NewNop())
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, handler echo.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := mw(handler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestSessionAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	finder := &stubUserFinder{}
	_, handler, mw := newAuthTest(t, finder)

	rec := doRequest(t, mw, handler, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if finder.called {
		t.Fatal("store must not be touched before credentials are checked")
	}
}

func TestSessionAuth_MalformedHeader(t *testing.T) {
	t.Parallel()

	finder := &stubUserFinder{}
	_, handler, mw := newAuthTest(t, finder)

	rec := doRequest(t, mw, handler, "Token abc")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if finder.called {
		t.Fatal("store must not be touched on a malformed header")
	}
}

func TestSessionAuth_BadSignature(t *testing.T) {
	t.Parallel()

	finder := &stubUserFinder{}
	_, handler, mw := newAuthTest(t, finder)

	other, err := jwt.New("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("jwt.New: %v", err)
	}
	tok, err := other.SignSession("x@iut-dhaka.edu")
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	rec := doRequest(t, mw, handler, "Bearer "+tok)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if finder.called {
		t.Fatal("store must not be touched on a bad signature")
	}
}

func TestSessionAuth_UnprovisionedUser(t *testing.T) {
	t.Parallel()

	finder := &stubUserFinder{err: gorm.ErrRecordNotFound}
	j, handler, mw := newAuthTest(t, finder)

	tok, err := j.SignSession("ghost@iut-dhaka.edu")
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	rec := doRequest(t, mw, handler, "Bearer "+tok)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !finder.called {
		t.Fatal("expected a store lookup for a verified token")
	}
}

func TestSessionAuth_HappyPath(t *testing.T) {
	t.Parallel()

	user := &models.User{Email: "x@iut-dhaka.edu", Name: "X"}
	user.ID = 42
	finder := &stubUserFinder{user: user}

	j, _, mw := newAuthTest(t, finder)

	tok, err := j.SignSession("x@iut-dhaka.edu")
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	var got *Session
	handler := func(c echo.Context) error {
		s, ok := SessionFrom(c)
		if !ok {
			t.Fatal("expected session in context")
		}
		got = s
		return c.NoContent(http.StatusOK)
	}

	rec := doRequest(t, mw, handler, "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.UserID != 42 || got.Email != "x@iut-dhaka.edu" || got.Name != "X" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestSessionAuth_StoreFailure(t *testing.T) {
	t.Parallel()

	finder := &stubUserFinder{err: errors.New("store down")}
	j, handler, mw := newAuthTest(t, finder)

	tok, err := j.SignSession("x@iut-dhaka.edu")
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	rec := doRequest(t, mw, handler, "Bearer "+tok)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

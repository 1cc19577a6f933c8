package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campus-connect/app/server/config"
	"campus-connect/app/server/identity"
	"campus-connect/app/server/jwt"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier struct {
	id      *identity.Identity
	err     error
	revoked []string
}

func (v *stubVerifier) VerifyAssertion(_ context.Context, _ string) (*identity.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.id, nil
}

func (v *stubVerifier) RevokeSessions(_ context.Context, subjectID string) error {
	v.revoked = append(v.revoked, subjectID)
	return nil
}

func newSigninTestApp(t *testing.T, verifier identity.Verifier) *App {
	t.Helper()

	cfg := &config.Config{}
	cfg.Security.RequiredDomain = "iut-dhaka.edu"

	j, err := jwt.New("test-secret", time.Hour)
	require.NoError(t, err)

	return NewApp(zap.NewNop(), nil, nil, nil, j, verifier, cfg)
}

func postJSON(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGoogleSignin_MissingToken(t *testing.T) {
	t.Parallel()

	a := newSigninTestApp(t, &stubVerifier{})

	c, rec := postJSON(`{}`)
	require.NoError(t, a.GoogleSignin(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token is missing.")
}

func TestGoogleSignin_InvalidAssertion(t *testing.T) {
	t.Parallel()

	a := newSigninTestApp(t, &stubVerifier{err: identity.ErrInvalidAssertion})

	c, rec := postJSON(`{"token":"bogus"}`)
	require.NoError(t, a.GoogleSignin(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Firebase token")
}

func TestGoogleSignin_DomainMismatch(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{id: &identity.Identity{
		Email:     "outsider@gmail.com",
		SubjectID: "uid-1",
	}}
	a := newSigninTestApp(t, verifier)

	c, rec := postJSON(`{"token":"valid-but-wrong-domain"}`)
	require.NoError(t, a.GoogleSignin(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only @iut-dhaka.edu email allowed.")
	// provider-side sessions are revoked before the rejection
	assert.Equal(t, []string{"uid-1"}, verifier.revoked)
}

func TestVerifySignin_DomainMatchPasses(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{id: &identity.Identity{
		Email:     "student@iut-dhaka.edu",
		SubjectID: "uid-2",
		Name:      "Student",
	}}
	a := newSigninTestApp(t, verifier)

	c, _ := postJSON(`{}`)
	id, _, ok := a.verifySignin(c, &signinRequest{Token: "valid"})

	require.True(t, ok)
	assert.Equal(t, "student@iut-dhaka.edu", id.Email)
	assert.Empty(t, verifier.revoked)
}

func TestEmailDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "iut-dhaka.edu", emailDomain("x@iut-dhaka.edu"))
	assert.Equal(t, "gmail.com", emailDomain("a@b@gmail.com"))
	assert.Equal(t, "nodomain", emailDomain("nodomain"))
}

func TestAdministratorSignin_NotAllowlisted(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{id: &identity.Identity{
		Email:     "student@iut-dhaka.edu",
		SubjectID: "uid-3",
	}}
	a := newSigninTestApp(t, verifier)
	a.cfg.Security.AdministratorEmails = []string{"ridwankhan@iut-dhaka.edu"}

	c, rec := postJSON(`{"token":"valid"}`)
	require.NoError(t, a.AdministratorSignin(c))

	// allowlist is checked before any token is issued
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVerifySignin_ProviderError(t *testing.T) {
	t.Parallel()

	a := newSigninTestApp(t, &stubVerifier{err: errors.New("provider unreachable")})

	c, rec := postJSON(`{}`)
	_, _, ok := a.verifySignin(c, &signinRequest{Token: "anything"})

	require.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"campus-connect/app/server/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenVersion is bumped when the claim schema changes; tokens signed
// with an older version are rejected.
const TokenVersion = 1

var ErrInvalidToken = errors.New("invalid session token")

type JWT struct {
	key      []byte
	validity time.Duration
}

// SessionClaims binds the holder's email. Expiry and the token ID are
// mandatory; authorization data never lives in the token.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Version int    `json:"ver"`
}

func New(key string, validity time.Duration) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}
	if validity <= 0 {
		return nil, errors.New("validity must be positive")
	}

	return &JWT{key: []byte(key), validity: validity}, nil
}

func (j *JWT) SignSession(email string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.validity)),
		},
		Email:   email,
		Version: TokenVersion,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(j.key)
}

func (j *JWT) ParseSession(tokenString string) (*SessionClaims, error) {
	if len(tokenString) == 0 {
		return nil, ErrInvalidToken
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	if !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	// Unversioned tokens predate the expiry claim and are no longer
	// accepted.
	if claims.Version != TokenVersion {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// SessionCookie builds the write-only cookie carrier set at issuance.
// The authenticator reads the Authorization header only; the cookie is
// kept for the web client pending product clarification.
func SessionCookie(token string, isProd bool) *http.Cookie {
	c := &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	}
	if isProd {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	} else {
		c.SameSite = http.SameSiteLaxMode
	}

	return c
}

// ExpiredSessionCookie is set on logout. Logout is client-side discard;
// no server-side session state exists to revoke.
func ExpiredSessionCookie(isProd bool) *http.Cookie {
	c := SessionCookie("", isProd)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)

	return c
}

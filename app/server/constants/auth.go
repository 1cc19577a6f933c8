package constants

import "time"

const (
	// Session tokens carry a mandatory expiry; indefinitely-lived
	// credentials are rejected by the authenticator.
	AuthTokenDuration = 7 * 24 * time.Hour

	// Name of the write-only session cookie. Verification reads the
	// Authorization header, never this cookie.
	SessionCookieName = "token"
)

// Package identity wraps the federated identity provider. The server
// never sees provider credentials directly; it exchanges an opaque
// assertion for a verified email and subject identifier.
package identity

import (
	"context"
	"errors"
)

var ErrInvalidAssertion = errors.New("invalid identity assertion")

type Identity struct {
	Email     string // lowercase
	SubjectID string // provider-scoped subject identifier
	Name      string // display name, may be empty
}

type Verifier interface {
	// VerifyAssertion validates a provider-issued assertion and
	// returns the identity it proves. Fails with ErrInvalidAssertion
	// on malformed, expired or unverifiable assertions.
	VerifyAssertion(ctx context.Context, assertion string) (*Identity, error)

	// RevokeSessions invalidates the provider-side sessions of a
	// subject. Used when the domain policy rejects a sign-in.
	RevokeSessions(ctx context.Context, subjectID string) error
}

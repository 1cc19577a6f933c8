package identity

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type FirebaseVerifier struct {
	client *auth.Client
}

var _ Verifier = (*FirebaseVerifier)(nil)

func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) VerifyAssertion(ctx context.Context, assertion string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, assertion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssertion, err)
	}

	id := &Identity{SubjectID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = strings.ToLower(email)
	}
	if name, ok := token.Claims["name"].(string); ok {
		id.Name = name
	}

	if id.Email == "" {
		// An assertion without an email claim cannot be mapped to a
		// local account.
		return nil, ErrInvalidAssertion
	}

	return id, nil
}

func (v *FirebaseVerifier) RevokeSessions(ctx context.Context, subjectID string) error {
	return v.client.RevokeRefreshTokens(ctx, subjectID)
}

package inits

import (
	"campus-connect/app/server/identity"
	"context"
	"fmt"
)

func Identity(ctx context.Context, credentialsFile string) (identity.Verifier, error) {
	v, err := identity.NewFirebaseVerifier(ctx, credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("init identity verifier: %w", err)
	}

	return v, nil
}

// Package firebase verifies Firebase Auth ID tokens for federated sign-in.
package firebase

import (
	"context"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"feria/config"
	"feria/internal/domain/entity"
	domainerrors "feria/internal/domain/errors"
	"feria/internal/domain/service"
)

type identityVerifier struct {
	client *auth.Client
	logger *slog.Logger
}

// NewIdentityVerifier creates a verifier backed by the Firebase Admin SDK.
func NewIdentityVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IdentityVerifier, error) {
	if cfg.Firebase == nil {
		return nil, errors.New("firebase config is required")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &identityVerifier{
		client: client,
		logger: logger,
	}, nil
}

// VerifyIDToken checks the token signature against Firebase's public keys and
// returns the asserted principal.
func (v *identityVerifier) VerifyIDToken(ctx context.Context, idToken string) (*service.ExternalPrincipal, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		v.logger.Warn("ID token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrIDTokenInvalid.WithDetails(err.Error())
	}

	principal := &service.ExternalPrincipal{ID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		principal.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		principal.Name = name
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		principal.EmailVerified = verified
	}

	return principal, nil
}

func (v *identityVerifier) Provider() entity.ProviderType {
	return entity.ProviderTypeFirebase
}

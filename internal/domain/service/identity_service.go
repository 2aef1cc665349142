package service

import (
	"context"

	"feria/internal/domain/entity"
)

// ExternalPrincipal represents a verified principal from the external
// identity provider (Firebase Auth fronting email and Google sign-in).
type ExternalPrincipal struct {
	ID            string // Provider-specific opaque user ID (Firebase UID).
	Email         string // The principal's email address.
	Name          string // Display name reported by the provider, may be empty.
	EmailVerified bool   // Whether the provider has verified the email.
}

// IdentityVerifier verifies ID tokens minted by the external identity
// provider. Used for federated sign-in; local email/password sessions go
// through PasswordHasher/TokenService instead.
type IdentityVerifier interface {
	// VerifyIDToken checks an ID token's signature and audience and returns
	// the principal it asserts.
	VerifyIDToken(ctx context.Context, idToken string) (*ExternalPrincipal, error)

	// Provider returns the provider type this verifier authenticates.
	Provider() entity.ProviderType
}

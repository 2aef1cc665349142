// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"feria/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterMerchantInput defines the data required to register a new merchant.
type RegisterMerchantInput struct {
	DisplayName string
	Email       string
	Password    string
	WhatsApp    string
}

// LoginInput defines the data required for an email/password login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginWithIDTokenInput carries an identity provider ID token for federated sign-in.
type LoginWithIDTokenInput struct {
	IDToken string
}

// RefreshTokenInput carries a refresh token to mint a new access token.
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token of the session to end.
type LogoutInput struct {
	RefreshToken string
}

// UpdateProfileInput defines the self-service profile fields a user may edit.
type UpdateProfileInput struct {
	UserID      uuid.UUID
	DisplayName string
	WhatsApp    string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshTokenOutput returns a freshly minted access token.
type RefreshTokenOutput struct {
	AccessToken string
}

// UserUsecase defines the interface for identity and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// RegisterMerchant creates a merchant account. Depending on configuration
	// the account starts as pending (awaiting admin approval) or as an
	// immediately active merchant.
	RegisterMerchant(ctx context.Context, input *RegisterMerchantInput) (*RegisterOutput, error)

	// Login authenticates an email/password pair and opens a session.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// LoginWithIDToken authenticates a federated identity provider token,
	// provisioning a profile on first sign-in. An email matching the
	// configured admin address is provisioned as admin.
	LoginWithIDToken(ctx context.Context, input *LoginWithIDTokenInput) (*LoginOutput, error)

	// RefreshToken exchanges a valid refresh token for a new access token.
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)

	// Logout ends the session identified by the refresh token.
	Logout(ctx context.Context, input *LogoutInput) error

	// GetProfile returns the profile of the given user.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile edits the caller's own display name and contact number.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error)
}

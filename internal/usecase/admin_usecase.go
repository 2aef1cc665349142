package usecase

import (
	"context"

	"github.com/google/uuid"

	"feria/internal/domain/entity"
)

// SetMerchantActiveInput toggles a merchant account on or off.
type SetMerchantActiveInput struct {
	UserID uuid.UUID
	Active bool
}

// AdminUsecase defines the admin console operations over merchant accounts.
// Every operation requires the caller to hold the admin role; the delivery
// layer enforces this before invoking.
type AdminUsecase interface {
	// ListPendingMerchants returns accounts awaiting approval, newest first.
	ListPendingMerchants(ctx context.Context) ([]*entity.User, error)

	// ListMerchants returns all approved merchant accounts, newest first.
	ListMerchants(ctx context.Context) ([]*entity.User, error)

	// ApproveMerchant promotes a pending account to an active merchant.
	// Approving an already-approved merchant is a no-op on the role.
	ApproveMerchant(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// SetMerchantActive enables or disables a merchant account. Depending on
	// configuration, disabling also hides the merchant's listings.
	SetMerchantActive(ctx context.Context, input *SetMerchantActiveInput) (*entity.User, error)

	// ListAllListings returns every listing, active or not, newest first.
	// Backs the admin console inventory where visibility and promotion
	// flags are managed.
	ListAllListings(ctx context.Context) ([]*entity.Listing, error)
}

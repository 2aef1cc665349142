package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"feria/config"
	deliverycontext "feria/internal/delivery/context"
	"feria/internal/domain/entity"
	domainerrors "feria/internal/domain/errors"
	"feria/internal/domain/repository"
	"feria/internal/usecase"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	listingRepo       repository.ListingRepository
	cascadeDeactivate bool
	logger            *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	ListingRepo repository.ListingRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	cascade := false
	if params.Config.Approval != nil {
		cascade = params.Config.Approval.CascadeDeactivate
	}

	return &adminService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		listingRepo:       params.ListingRepo,
		cascadeDeactivate: cascade,
		logger:            params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListPendingMerchants returns accounts awaiting approval, newest first.
func (srv *adminService) ListPendingMerchants(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindByRole(ctx, entity.RolePending)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending merchants")
	}

	return users, nil
}

// ListMerchants returns all approved merchant accounts, newest first.
func (srv *adminService) ListMerchants(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindByRole(ctx, entity.RoleMerchant)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list merchants")
	}

	return users, nil
}

// ListAllListings returns every listing regardless of its active flag,
// newest first. Discovery surfaces keep their own filtered queries.
func (srv *adminService) ListAllListings(ctx context.Context) ([]*entity.Listing, error) {
	listings, err := srv.listingRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list all listings")
	}

	return listings, nil
}

// ApproveMerchant promotes a pending account to an active merchant.
// Calling it on an already-approved merchant leaves the role untouched.
func (srv *adminService) ApproveMerchant(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var approved *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user for approval")
		}

		if user.Role == entity.RoleAdmin {
			return domainerrors.ErrForbidden.WrapMessage("admin accounts are not part of the approval flow")
		}

		if user.Role == entity.RoleMerchant && user.Active {
			// Idempotent: nothing to change.
			approved = user

			return nil
		}

		user.Role = entity.RoleMerchant
		user.Active = true

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to approve merchant")
		}

		approved = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Merchant approval failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Merchant approved", slog.Any("userID", userID))

	return approved, nil
}

// SetMerchantActive enables or disables a merchant account. When cascade
// deactivation is configured, disabling also hides the merchant's listings;
// re-enabling never cascades back, listings stay individually toggled.
func (srv *adminService) SetMerchantActive(ctx context.Context, input *usecase.SetMerchantActiveInput) (*entity.User, error) {
	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if user.Role != entity.RoleMerchant {
			return domainerrors.ErrForbidden.WrapMessage("only merchant accounts can be toggled")
		}

		user.Active = input.Active
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update merchant account")
		}

		if !input.Active && srv.cascadeDeactivate {
			if err := srv.hideMerchantListings(ctx, repoFactory, user.ID); err != nil {
				return err
			}
		}

		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Merchant toggle failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Merchant account toggled",
		slog.Any("userID", input.UserID),
		slog.Bool("active", input.Active),
	)

	return updated, nil
}

func (srv *adminService) hideMerchantListings(ctx context.Context, repoFactory repository.RepositoryFactory, merchantID uuid.UUID) error {
	listingRepo := repoFactory.ListingRepo()

	listings, err := listingRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return errors.Wrap(err, "failed to load merchant listings for cascade")
	}

	for _, listing := range listings {
		if !listing.Active {
			continue
		}
		listing.Active = false
		if err := listingRepo.Update(ctx, listing); err != nil {
			return errors.Wrap(err, "failed to hide listing during cascade")
		}
	}

	return nil
}

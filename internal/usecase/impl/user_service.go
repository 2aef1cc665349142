// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"feria/config"
	deliverycontext "feria/internal/delivery/context"
	"feria/internal/domain/entity"
	domainerrors "feria/internal/domain/errors"
	"feria/internal/domain/repository"
	"feria/internal/domain/service"
	"feria/internal/usecase"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	authRepo         repository.AuthRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	identityVerifier service.IdentityVerifier
	adminEmail       string
	requireApproval  bool
	logger           *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	AuthRepo         repository.AuthRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	IdentityVerifier service.IdentityVerifier
	Config           *config.Config
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	adminEmail := ""
	if params.Config.Admin != nil {
		adminEmail = strings.ToLower(params.Config.Admin.Email)
	}
	requireApproval := true
	if params.Config.Approval != nil {
		requireApproval = params.Config.Approval.RequireApproval
	}

	return &userService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		authRepo:         params.AuthRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		identityVerifier: params.IdentityVerifier,
		adminEmail:       adminEmail,
		requireApproval:  requireApproval,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// provisionRole decides the role for a newly registered account. The
// configured admin address becomes admin; everyone else starts as pending
// or as an approved merchant depending on the approval workflow setting.
func (srv *userService) provisionRole(email string) entity.Role {
	if srv.adminEmail != "" && strings.EqualFold(email, srv.adminEmail) {
		return entity.RoleAdmin
	}
	if srv.requireApproval {
		return entity.RolePending
	}

	return entity.RoleMerchant
}

// RegisterMerchant orchestrates the merchant registration process.
func (srv *userService) RegisterMerchant(ctx context.Context, input *usecase.RegisterMerchantInput) (*usecase.RegisterOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Info("Starting merchant registration", slog.String("email", email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	// bcrypt is CPU-bound, hash outside the transaction.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		_, findErr := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
		if findErr == nil {
			return domainerrors.ErrUserAlreadyExists
		}
		if !errors.Is(findErr, repository.ErrAuthNotFound) {
			return errors.Wrap(findErr, "failed to find authentication")
		}

		newUser := &entity.User{
			Email:       email,
			DisplayName: input.DisplayName,
			WhatsApp:    input.WhatsApp,
			Role:        srv.provisionRole(email),
			Active:      true,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create authentication during registration")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Merchant registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Merchant registered", slog.Any("userID", registeredUser.ID), slog.Any("role", registeredUser.Role))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// Login orchestrates the email/password login process.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	authRecord, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	loggedInUser, err := srv.userRepo.FindByID(ctx, authRecord.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load login user")
	}

	output, err := srv.openSession(ctx, loggedInUser)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return output, nil
}

// LoginWithIDToken authenticates a federated ID token, provisioning a
// profile on first sign-in.
func (srv *userService) LoginWithIDToken(ctx context.Context, input *usecase.LoginWithIDTokenInput) (*usecase.LoginOutput, error) {
	principal, err := srv.identityVerifier.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.log(ctx).Warn("Federated login failed", slog.Any("error", err))

		return nil, err
	}

	email := strings.ToLower(principal.Email)
	provider := srv.identityVerifier.Provider()

	var loggedInUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		authRecord, findErr := authRepo.FindAuthentication(ctx, provider, principal.ID)
		if findErr == nil {
			existing, loadErr := userRepo.FindByID(ctx, authRecord.UserID)
			if loadErr != nil {
				return errors.Wrap(loadErr, "failed to load federated user")
			}
			loggedInUser = existing

			return nil
		}
		if !errors.Is(findErr, repository.ErrAuthNotFound) {
			return errors.Wrap(findErr, "failed to find federated authentication")
		}

		// First sign-in with this provider: provision a profile.
		newUser := &entity.User{
			Email:       email,
			DisplayName: principal.Name,
			Role:        srv.provisionRole(email),
			Active:      true,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to provision federated user")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       provider,
			ProviderUserID: principal.ID,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create federated authentication")
		}

		loggedInUser = newUser

		return nil
	})
	if err != nil {
		return nil, err
	}

	output, err := srv.openSession(ctx, loggedInUser)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Federated login succeeded", slog.Any("userID", loggedInUser.ID))

	return output, nil
}

// openSession mints tokens for a user and persists the refresh token hash.
func (srv *userService) openSession(ctx context.Context, user *entity.User) (*usecase.LoginOutput, error) {
	roles := entity.Roles{user.Role}

	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(user.ID, roles.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	refreshToken := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshTokenString),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	if err := srv.authRepo.CreateRefreshToken(ctx, refreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to create refresh token")
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         user,
	}, nil
}

// RefreshToken issues a new access token for a stored, unexpired session.
// The refresh token itself remains unchanged.
func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Debug("Attempting to refresh access token")

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	stored, err := srv.authRepo.FindRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not found")
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	if time.Now().After(stored.ExpiresAt) {
		// Expired sessions are removed eagerly so the table stays small.
		if delErr := srv.authRepo.DeleteRefreshTokenByHash(ctx, tokenHash); delErr != nil {
			srv.log(ctx).Warn("Failed to delete expired refresh token", slog.Any("error", delErr))
		}

		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token expired")
	}

	user, err := srv.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user for refresh")
	}

	roles := entity.Roles{user.Role}
	accessToken, _, err := srv.tokenService.GenerateTokens(user.ID, roles.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.RefreshTokenOutput{AccessToken: accessToken}, nil
}

// Logout ends the session identified by the refresh token. Unknown tokens
// are treated as already logged out.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	if err := srv.authRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			srv.log(ctx).Debug("Logout for unknown session, treating as success")

			return nil
		}

		return errors.Wrap(err, "failed to delete refresh token")
	}

	return nil
}

// GetProfile returns the profile of the given user.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateProfile edits the caller's own display name and contact number.
func (srv *userService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.User, error) {
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

		user.DisplayName = input.DisplayName
		user.WhatsApp = input.WhatsApp

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user profile")
		}

		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, err
	}

	return updated, nil
}

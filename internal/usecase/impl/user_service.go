// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterUserInput) (*usecase.UserInfo, error) {
	srv.log(ctx).Info("Starting user registration", slog.String("email", input.Email))

	var registered *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}

		hashed, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
		}

		registered = &entity.User{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hashed,
		}

		return userRepo.Create(ctx, registered)
	})
	if err != nil {
		srv.log(ctx).Warn("User registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User registered", slog.Any("userID", registered.ID))

	info := userInfoOf(registered)

	return &info, nil
}

// Login verifies credentials and issues the token pair.
func (srv *userService) Login(ctx context.Context, input usecase.UserLoginInput) (*usecase.UserLoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("User login rejected", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	identity := userIdentity(user)

	accessToken, err := srv.tokenService.IssueAccessToken(identity)
	if err != nil {
		return nil, domainerrors.ErrTokenSigningFailed.WrapMessage("failed to sign access token")
	}
	refreshToken, err := srv.tokenService.IssueRefreshToken(identity)
	if err != nil {
		return nil, domainerrors.ErrTokenSigningFailed.WrapMessage("failed to sign refresh token")
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return &usecase.UserLoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userInfoOf(user),
	}, nil
}

// Refresh mints a new access token from the user's current stored record.
// The claims in the returned token always reflect the record as it is now,
// not as it was when the refresh token was issued.
func (srv *userService) Refresh(ctx context.Context, userID uuid.UUID) (*usecase.UserTokenOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrAccountGone.WrapMessage("user behind refresh token no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find user for refresh")
	}

	return srv.tokenOutput(user)
}

// GetProfile returns the caller's current account info.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.UserInfo, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to find user profile")
	}

	info := userInfoOf(user)

	return &info, nil
}

// ChangeEmail updates the email and returns a new access token carrying it.
func (srv *userService) ChangeEmail(ctx context.Context, input usecase.ChangeEmailInput) (*usecase.UserTokenOutput, error) {
	return srv.updateAndReissue(ctx, input.UserID, func(user *entity.User) {
		user.Email = input.Email
	})
}

// ChangeName updates the display name and returns a new access token carrying it.
func (srv *userService) ChangeName(ctx context.Context, input usecase.ChangeNameInput) (*usecase.UserTokenOutput, error) {
	return srv.updateAndReissue(ctx, input.UserID, func(user *entity.User) {
		user.Name = input.Name
	})
}

// updateAndReissue applies a mutation to the stored user and mints a fresh
// access token reflecting the post-update record.
func (srv *userService) updateAndReissue(ctx context.Context, userID uuid.UUID, mutate func(*entity.User)) (*usecase.UserTokenOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to find user for update")
	}

	mutate(user)

	updated, err := srv.userRepo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("user vanished during update")
		}

		return nil, err
	}

	srv.log(ctx).Info("User account updated", slog.Any("userID", userID))

	return srv.tokenOutput(updated)
}

func (srv *userService) tokenOutput(user *entity.User) (*usecase.UserTokenOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(userIdentity(user))
	if err != nil {
		return nil, domainerrors.ErrTokenSigningFailed.WrapMessage("failed to sign access token")
	}

	return &usecase.UserTokenOutput{
		AccessToken: accessToken,
		User:        userInfoOf(user),
	}, nil
}

func userIdentity(user *entity.User) entity.Identity {
	return entity.Identity{
		Kind:  entity.PrincipalUser,
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func userInfoOf(user *entity.User) usecase.UserInfo {
	return usecase.UserInfo{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		RegisteredAt: user.RegisteredAt.Format(time.RFC3339),
	}
}

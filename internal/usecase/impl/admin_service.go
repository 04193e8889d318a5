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

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager    repository.TransactionManager
	adminRepo    repository.AdminRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AdminRepo    repository.AdminRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:    params.TxManager,
		adminRepo:    params.AdminRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete admin registration process.
func (srv *adminService) Register(ctx context.Context, input usecase.RegisterAdminInput) (*usecase.AdminInfo, error) {
	srv.log(ctx).Info("Starting admin registration", slog.String("username", input.Username))

	var registered *entity.Admin
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		adminRepo := repoFactory.NewAdminRepository()

		_, err := adminRepo.FindByUsername(ctx, input.Username)
		if err == nil {
			return domainerrors.ErrUsernameTaken.WrapMessage("username already registered")
		}
		if !errors.Is(err, repository.ErrAdminNotFound) {
			return errors.Wrap(err, "failed to check username availability")
		}

		hashed, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
		}

		registered = &entity.Admin{
			Username:     input.Username,
			PasswordHash: hashed,
		}

		return adminRepo.Create(ctx, registered)
	})
	if err != nil {
		srv.log(ctx).Warn("Admin registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	info := adminInfoOf(registered)

	return &info, nil
}

// Login verifies credentials, stamps the last-login time, and issues tokens.
func (srv *adminService) Login(ctx context.Context, input usecase.AdminLoginInput) (*usecase.AdminLoginOutput, error) {
	admin, err := srv.adminRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown username")
		}

		return nil, errors.Wrap(err, "failed to find admin for login")
	}

	if !srv.hasher.Check(input.Password, admin.PasswordHash) {
		srv.log(ctx).Warn("Admin login rejected", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	now := time.Now()
	if err := srv.adminRepo.StampLastLogin(ctx, admin.ID, now); err != nil {
		return nil, errors.Wrap(err, "failed to stamp admin last login")
	}
	admin.LastLoginAt = &now

	identity := adminIdentity(admin)

	accessToken, err := srv.tokenService.IssueAccessToken(identity)
	if err != nil {
		return nil, domainerrors.ErrTokenSigningFailed.WrapMessage("failed to sign access token")
	}
	refreshToken, err := srv.tokenService.IssueRefreshToken(identity)
	if err != nil {
		return nil, domainerrors.ErrTokenSigningFailed.WrapMessage("failed to sign refresh token")
	}

	srv.log(ctx).Info("Admin logged in", slog.Any("adminID", admin.ID))

	return &usecase.AdminLoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Admin:        adminInfoOf(admin),
	}, nil
}

// Refresh mints a new access token from the admin's current stored record.
func (srv *adminService) Refresh(ctx context.Context, adminID uuid.UUID) (*usecase.AdminTokenOutput, error) {
	admin, err := srv.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, domainerrors.ErrAccountGone.WrapMessage("admin behind refresh token no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find admin for refresh")
	}

	return srv.tokenOutput(admin)
}

// GetAccount returns the caller's current account info.
func (srv *adminService) GetAccount(ctx context.Context, adminID uuid.UUID) (*usecase.AdminInfo, error) {
	admin, err := srv.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("admin not found")
		}

		return nil, errors.Wrap(err, "failed to find admin account")
	}

	info := adminInfoOf(admin)

	return &info, nil
}

// ChangeUsername updates the username and returns a new access token carrying it.
func (srv *adminService) ChangeUsername(ctx context.Context, input usecase.ChangeUsernameInput) (*usecase.AdminTokenOutput, error) {
	return srv.updateAndReissue(ctx, input.AdminID, func(admin *entity.Admin) error {
		admin.Username = input.Username

		return nil
	})
}

// ChangePassword re-hashes and stores the password, returning a fresh token.
func (srv *adminService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) (*usecase.AdminTokenOutput, error) {
	return srv.updateAndReissue(ctx, input.AdminID, func(admin *entity.Admin) error {
		hashed, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
		}
		admin.PasswordHash = hashed

		return nil
	})
}

func (srv *adminService) updateAndReissue(ctx context.Context, adminID uuid.UUID, mutate func(*entity.Admin) error) (*usecase.AdminTokenOutput, error) {
	admin, err := srv.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("admin not found")
		}

		return nil, errors.Wrap(err, "failed to find admin for update")
	}

	if err := mutate(admin); err != nil {
		return nil, err
	}

	updated, err := srv.adminRepo.Update(ctx, admin)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("admin vanished during update")
		}

		return nil, err
	}

	srv.log(ctx).Info("Admin account updated", slog.Any("adminID", adminID))

	return srv.tokenOutput(updated)
}

func (srv *adminService) tokenOutput(admin *entity.Admin) (*usecase.AdminTokenOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(adminIdentity(admin))
	if err != nil {
		return nil, domainerrors.ErrTokenSigningFailed.WrapMessage("failed to sign access token")
	}

	return &usecase.AdminTokenOutput{
		AccessToken: accessToken,
		Admin:       adminInfoOf(admin),
	}, nil
}

func adminIdentity(admin *entity.Admin) entity.Identity {
	return entity.Identity{
		Kind:     entity.PrincipalAdmin,
		ID:       admin.ID,
		Username: admin.Username,
	}
}

func adminInfoOf(admin *entity.Admin) usecase.AdminInfo {
	info := usecase.AdminInfo{
		ID:           admin.ID,
		Username:     admin.Username,
		RegisteredAt: admin.RegisteredAt.Format(time.RFC3339),
	}
	if admin.LastLoginAt != nil {
		info.LastLoginAt = admin.LastLoginAt.Format(time.RFC3339)
	}

	return info
}

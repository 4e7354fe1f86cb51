package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

const roleGrantAttempts = 3

type AuthService struct {
	userRepo   *repositories.UserRepository
	roleRepo   *repositories.RoleRepository
	jwtService *utils.JWTService
	validator  *utils.ValidationService
}

func NewAuthService(
	userRepo *repositories.UserRepository,
	roleRepo *repositories.RoleRepository,
	jwtService *utils.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
		validator:  utils.NewValidationService(),
	}
}

// Register creates the account, then grants the requested role. The
// grant is retried a few times; if it still fails the account stands
// and the response carries a warning instead of rolling back signup.
func (as *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	email := utils.NormalizeEmail(req.Email)

	if _, err := as.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, utils.NewConflictError("Email is already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.WrapDatabaseError(err, "check existing user")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInternalError("Failed to hash password")
	}

	user := &models.User{
		Email:     email,
		Phone:     req.Phone,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		LastSeen:  time.Now(),
	}

	if err := as.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.NewConflictError("Email is already registered")
		}
		return nil, utils.WrapDatabaseError(err, "create user")
	}

	role := req.Role
	if role == "" {
		role = models.RoleCitizen
	}

	roleWarning := as.grantRoleWithRetry(ctx, user.ID.Hex(), role)

	tokens, err := as.jwtService.GenerateTokenPair(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, utils.NewInternalError("Failed to generate tokens")
	}

	roles, err := as.roleRepo.GetUserRoles(ctx, user.ID.Hex())
	if err != nil {
		roles = []string{}
	}

	logrus.Infof("👤 User registered: %s (%s)", user.Email, role)

	return &models.AuthResponse{
		User:         *user,
		Roles:        roles,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    tokens.TokenType,
		ExpiresIn:    tokens.ExpiresIn,
		RoleWarning:  roleWarning,
	}, nil
}

func (as *AuthService) grantRoleWithRetry(ctx context.Context, userID, role string) string {
	var lastErr error
	for attempt := 1; attempt <= roleGrantAttempts; attempt++ {
		err := as.roleRepo.Grant(ctx, userID, role, "")
		if err == nil || errors.Is(err, repositories.ErrDuplicate) {
			return ""
		}
		lastErr = err
		logrus.Warnf("Role grant attempt %d/%d failed for user %s: %v", attempt, roleGrantAttempts, userID, err)
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}

	logrus.Errorf("Giving up on role grant for user %s: %v", userID, lastErr)
	return "Account created, but the " + role + " role could not be granted. Contact an administrator."
}

func (as *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	user, err := as.userRepo.GetByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, utils.WrapDatabaseError(err, "get user by email")
	}

	if !user.IsActive {
		return nil, utils.NewForbiddenError("Account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, utils.NewInvalidCredentialsError()
	}

	tokens, err := as.jwtService.GenerateTokenPair(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, utils.NewInternalError("Failed to generate tokens")
	}

	roles, err := as.roleRepo.GetUserRoles(ctx, user.ID.Hex())
	if err != nil {
		roles = []string{}
	}

	if err := as.userRepo.UpdateLastSeen(ctx, user.ID.Hex()); err != nil {
		logrus.Warnf("Failed to update last seen for %s: %v", user.ID.Hex(), err)
	}

	return &models.AuthResponse{
		User:         *user,
		Roles:        roles,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    tokens.TokenType,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

func (as *AuthService) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*utils.TokenPair, error) {
	tokens, err := as.jwtService.RefreshToken(req.RefreshToken)
	if err != nil {
		return nil, utils.NewUnauthorizedError("Invalid refresh token")
	}
	return tokens, nil
}

func (as *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return utils.NewValidationError(validationErrors[0].Message)
	}

	user, err := as.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NewUserNotFoundError()
		}
		return utils.WrapDatabaseError(err, "get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return utils.NewUnauthorizedError("Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewInternalError("Failed to hash password")
	}

	if err := as.userRepo.Update(ctx, userID, bson.M{"password": string(hashedPassword)}); err != nil {
		return utils.WrapDatabaseError(err, "update password")
	}

	logrus.Infof("🔑 Password changed for user %s", userID)
	return nil
}

func (as *AuthService) GetCurrentUser(ctx context.Context, userID string) (*models.User, []string, error) {
	user, err := as.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, utils.NewUserNotFoundError()
		}
		return nil, nil, utils.WrapDatabaseError(err, "get user")
	}

	roles, err := as.roleRepo.GetUserRoles(ctx, userID)
	if err != nil {
		roles = []string{}
	}

	return user, roles, nil
}

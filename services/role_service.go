package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

// RoleService manages capability grants. Only admins reach these
// operations; the middleware enforces that before the service runs.
type RoleService struct {
	roleRepo  *repositories.RoleRepository
	userRepo  *repositories.UserRepository
	validator *utils.ValidationService
}

func NewRoleService(roleRepo *repositories.RoleRepository, userRepo *repositories.UserRepository) *RoleService {
	return &RoleService{
		roleRepo:  roleRepo,
		userRepo:  userRepo,
		validator: utils.NewValidationService(),
	}
}

func (rs *RoleService) GrantRole(ctx context.Context, grantedBy string, req models.GrantRoleRequest) error {
	if validationErrors := rs.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return utils.NewValidationError(validationErrors[0].Message)
	}

	if _, err := rs.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return utils.NewUserNotFoundError()
		}
		return utils.WrapDatabaseError(err, "get user")
	}

	err := rs.roleRepo.Grant(ctx, req.UserID, req.Role, grantedBy)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return utils.NewConflictError("User already has this role")
		}
		return utils.WrapDatabaseError(err, "grant role")
	}

	logrus.Infof("🛡️ Role %s granted to user %s by %s", req.Role, req.UserID, grantedBy)
	return nil
}

func (rs *RoleService) RevokeRole(ctx context.Context, revokedBy string, req models.RevokeRoleRequest) error {
	if validationErrors := rs.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return utils.NewValidationError(validationErrors[0].Message)
	}

	err := rs.roleRepo.Revoke(ctx, req.UserID, req.Role)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NewNotFoundError("Role grant")
		}
		if errors.Is(err, repositories.ErrInvalidID) {
			return utils.NewBadRequestError("Invalid user ID")
		}
		return utils.WrapDatabaseError(err, "revoke role")
	}

	logrus.Infof("🛡️ Role %s revoked from user %s by %s", req.Role, req.UserID, revokedBy)
	return nil
}

func (rs *RoleService) HasRole(ctx context.Context, userID, role string) (*models.HasRoleResponse, error) {
	if !models.IsValidRole(role) {
		return nil, utils.NewBadRequestError("Unknown role")
	}

	hasRole, err := rs.roleRepo.HasRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewBadRequestError("Invalid user ID")
		}
		return nil, utils.WrapDatabaseError(err, "check role")
	}

	return &models.HasRoleResponse{
		UserID:  userID,
		Role:    role,
		HasRole: hasRole,
	}, nil
}

func (rs *RoleService) GetUserRoles(ctx context.Context, userID string) ([]string, error) {
	roles, err := rs.roleRepo.GetUserRoles(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewBadRequestError("Invalid user ID")
		}
		return nil, utils.WrapDatabaseError(err, "get user roles")
	}
	return roles, nil
}

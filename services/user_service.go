package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

type UserService struct {
	userRepo  *repositories.UserRepository
	roleRepo  *repositories.RoleRepository
	validator *utils.ValidationService
}

func NewUserService(userRepo *repositories.UserRepository, roleRepo *repositories.RoleRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		validator: utils.NewValidationService(),
	}
}

func (us *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := us.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewUserNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get user")
	}
	return user, nil
}

func (us *UserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error) {
	if validationErrors := us.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	user, err := us.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updateFields := bson.M{}
	if req.FirstName != nil {
		updateFields["firstName"] = *req.FirstName
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		updateFields["lastName"] = *req.LastName
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		updateFields["phone"] = *req.Phone
		user.Phone = *req.Phone
	}
	if req.DeviceToken != nil {
		updateFields["deviceToken"] = *req.DeviceToken
		user.DeviceToken = *req.DeviceToken
	}
	if len(updateFields) == 0 {
		return user, nil
	}

	if err := us.userRepo.Update(ctx, userID, updateFields); err != nil {
		return nil, utils.WrapDatabaseError(err, "update user")
	}

	return user, nil
}

// ListUsers is the admin directory view, with each user's roles
// attached.
func (us *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	page, pageSize = utils.DefaultPagination(page, pageSize)

	users, total, err := us.userRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, utils.WrapDatabaseError(err, "list users")
	}

	return users, total, nil
}

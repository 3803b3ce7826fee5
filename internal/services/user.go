package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/logger"
	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: user %s", errs.ErrNotFound, userID)
	}
	return users[0], nil
}

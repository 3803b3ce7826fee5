package utils

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/storefront-backend/internal/normalization"
	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

func ValidateRegistration(ctx context.Context, userRepo repos.UserRepo, user *types.User) error {
	if user == nil {
		return fmt.Errorf("%w: no user given for registration", errs.ErrInvalidArgument)
	}
	if user.Email == "" {
		return fmt.Errorf("%w: an email is required to register", errs.ErrInvalidArgument)
	}
	emailExists, err := userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return fmt.Errorf("check user email: %w", err)
	}
	if emailExists {
		return fmt.Errorf("%w: email is already in use", errs.ErrInvalidArgument)
	}
	if user.Password == "" {
		return fmt.Errorf("%w: a password is required to register", errs.ErrInvalidArgument)
	}
	if user.FirstName == "" {
		return fmt.Errorf("%w: a first name is required to register", errs.ErrInvalidArgument)
	}
	if user.LastName == "" {
		return fmt.Errorf("%w: a last name is required to register", errs.ErrInvalidArgument)
	}
	return nil
}

func ValidateLogin(email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required to login", errs.ErrInvalidArgument)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required to login", errs.ErrInvalidArgument)
	}
	return nil
}

func HashPassword(user *types.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	return nil
}

func NormalizeUserFields(user *types.User) {
	user.Email = normalization.ParseInputString(user.Email)
	user.FirstName = normalization.TrimInputString(user.FirstName)
	user.LastName = normalization.TrimInputString(user.LastName)
}

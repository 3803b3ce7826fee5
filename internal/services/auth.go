package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/normalization"
	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/requestdata"
	"github.com/yungbote/storefront-backend/internal/types"
	"github.com/yungbote/storefront-backend/internal/utils"
)

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	avatarService AvatarService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	avatarService AvatarService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		avatarService: avatarService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	utils.NormalizeUserFields(user)
	if vErr := utils.ValidateRegistration(ctx, as.userRepo, user); vErr != nil {
		return vErr
	}
	if hErr := utils.HashPassword(user); hErr != nil {
		return hErr
	}
	user.ID = uuid.New()
	user.Role = types.RoleCustomer
	if as.avatarService != nil {
		avatarURL, aErr := as.avatarService.GenerateInitialsAvatar(ctx, user)
		if aErr != nil {
			// Avatar generation is cosmetic; registration proceeds without one.
			as.log.Warn("Failed to generate user avatar", "error", aErr)
		} else {
			user.AvatarURL = avatarURL
		}
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, ucErr := as.userRepo.Create(ctx, tx, []*types.User{user}); ucErr != nil {
			return fmt.Errorf("create user: %w", ucErr)
		}
		return nil
	})
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = normalization.ParseInputString(email)

	if vErr := utils.ValidateLogin(email, password); vErr != nil {
		return "", "", vErr
	}

	users, usErr := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if usErr != nil {
		return "", "", fmt.Errorf("retrieve user by email: %w", usErr)
	}
	if len(users) == 0 {
		return "", "", fmt.Errorf("%w: invalid email or password", errs.ErrUnauthorized)
	}

	user := users[0]
	if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
		return "", "", fmt.Errorf("%w: invalid email or password", errs.ErrUnauthorized)
	}

	var accessToken string
	var refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
		if ftErr != nil {
			return fmt.Errorf("check user tokens: %w", ftErr)
		}
		expired := make([]uuid.UUID, 0, len(foundTokens))
		for _, t := range foundTokens {
			if t != nil && t.ExpiresAt.Before(time.Now()) {
				expired = append(expired, t.ID)
			}
		}
		if len(expired) > 0 {
			if dtErr := as.userTokenRepo.DeleteByIDs(ctx, tx, expired); dtErr != nil {
				return fmt.Errorf("delete expired user tokens: %w", dtErr)
			}
		}
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
			return fmt.Errorf("create user token: %w", ctErr)
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return "", "", fmt.Errorf("%w: no request data found in context", errs.ErrUnauthorized)
	}
	if rd.RefreshToken == "" {
		return "", "", fmt.Errorf("%w: refresh token not found in request data", errs.ErrUnauthorized)
	}

	var accessToken string
	var newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if ftErr != nil {
			return fmt.Errorf("fetch refresh token: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return fmt.Errorf("%w: unknown refresh token", errs.ErrUnauthorized)
		}
		existingToken := foundTokens[0]
		// Small grace window so a refresh that races expiry still succeeds.
		const expiryBuffer = 5 * time.Minute
		if existingToken.ExpiresAt.Add(expiryBuffer).Before(time.Now()) {
			if dtErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dtErr != nil {
				return fmt.Errorf("delete expired refresh token: %w", dtErr)
			}
			return fmt.Errorf("%w: refresh token expired", errs.ErrUnauthorized)
		}
		users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existingToken.UserID})
		if uErr != nil {
			return fmt.Errorf("load user for refresh: %w", uErr)
		}
		if len(users) == 0 {
			return fmt.Errorf("%w: no user found for refresh token", errs.ErrUnauthorized)
		}
		user := users[0]
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		newUserToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); cErr != nil {
			return fmt.Errorf("create rotated user token: %w", cErr)
		}
		if dErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dErr != nil {
			return fmt.Errorf("remove old refresh token: %w", dErr)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return fmt.Errorf("%w: no request data found in context", errs.ErrUnauthorized)
	}
	if rd.TokenString == "" {
		return fmt.Errorf("%w: token string not found in request data", errs.ErrUnauthorized)
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if ftErr != nil {
			return fmt.Errorf("find user token: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return nil
		}
		if tdErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{foundTokens[0].ID}); tdErr != nil {
			return fmt.Errorf("delete user token: %w", tdErr)
		}
		return nil
	})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", errs.ErrUnauthorized, err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("%w: invalid or expired token", errs.ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("%w: invalid user id in token", errs.ErrUnauthorized)
	}
	var refreshTokenStr string
	foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if ftErr != nil {
		return ctx, fmt.Errorf("fetch user token by access token: %w", ftErr)
	}
	if len(foundTokens) > 0 {
		refreshTokenStr = foundTokens[0].RefreshToken
	}
	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshTokenStr,
		UserID:       userID,
		Role:         claims.Role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

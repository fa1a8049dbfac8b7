package services

import (
	"context"
	"errors"
	"time"

	"coinwatch/src/models"
	"coinwatch/src/repositories"
	"coinwatch/src/schemas"
	"coinwatch/src/utils"

	"github.com/go-chi/jwtauth"
	"gorm.io/gorm"
)

type UserServiceI interface {
	Register(ctx context.Context, req *schemas.UserRequest) (*schemas.UserResponse, error)
	IssueToken(ctx context.Context, username, password string) (*schemas.TokenResponse, error)
}

// UserService is the authentication glue: registration and token issuing.
// The core trusts the user id carried in the token.
type UserService struct {
	db        *gorm.DB
	tokenAuth *jwtauth.JWTAuth
	tokenTTL  time.Duration
}

func NewUserService(db *gorm.DB, tokenAuth *jwtauth.JWTAuth, tokenTTL time.Duration) *UserService {
	return &UserService{db: db, tokenAuth: tokenAuth, tokenTTL: tokenTTL}
}

func (s *UserService) Register(ctx context.Context, req *schemas.UserRequest) (*schemas.UserResponse, error) {
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashed,
		Role:           "user",
	}

	var existing models.User
	err = s.db.WithContext(ctx).Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error
	if err == nil {
		return nil, repositories.ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}

	return &schemas.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}

func (s *UserService) IssueToken(ctx context.Context, username, password string) (*schemas.TokenResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ? AND NOT deactivated", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.VerifyPassword(user.HashedPassword, password) {
		return nil, utils.ErrInvalidCredentials
	}

	expiry := time.Now().Add(s.tokenTTL)
	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     expiry.Unix(),
	})
	if err != nil {
		return nil, err
	}

	s.db.WithContext(ctx).Model(&user).Update("last_active_at", time.Now())

	return &schemas.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}

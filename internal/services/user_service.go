package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"clinicBack/internal/models"
	"clinicBack/internal/repositories"
	"clinicBack/utils"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type UserService struct {
	UserRepo  *repositories.UserRepository
	Tokens    *utils.Manager
	AccessTTL time.Duration
}

type SignInResult struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if err == models.ErrUserNotFound {
			return SignInResult{}, models.ErrInvalidCredentials
		}
		return SignInResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return SignInResult{}, models.ErrInvalidCredentials
	}
	user.Password = ""

	accessToken, err := s.Tokens.NewJWT(user.ID, user.Role, s.accessTTL())
	if err != nil {
		return SignInResult{}, err
	}

	refreshToken, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return SignInResult{}, err
	}

	session := models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	}
	if err := s.UserRepo.SaveSession(ctx, session); err != nil {
		return SignInResult{}, err
	}

	return SignInResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *UserService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.UserRepo.DeleteSession(ctx, refreshToken)
}

func (s *UserService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user.Password = string(hashed)

	return s.UserRepo.CreateUser(ctx, user)
}

func (s *UserService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return 20 * time.Hour
}

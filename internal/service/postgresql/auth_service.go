package service

import (
	"errors"

	entity "swap-market/internal/domain"
	repo "swap-market/internal/repository/postgresql"
	utils "swap-market/pkg"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInactiveAccount     = errors.New("account is inactive")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already taken")
)

type AuthService struct {
	userRepo repo.UserRepository
}

func NewAuthService(userRepo repo.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

func (s *AuthService) Register(input *entity.RegisterInput) (*entity.UserResp, error) {
	taken, err := s.userRepo.UsernameExists(input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.userRepo.EmailExists(input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	return &entity.UserResp{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
	}, nil
}

func (s *AuthService) Login(username, password string) (*entity.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	tokenString, err := utils.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &entity.LoginResponse{
		Token:        tokenString,
		RefreshToken: refresh,
		User: entity.UserResp{
			ID:        user.ID,
			Username:  user.Username,
			FullName:  user.FullName,
			AvatarURL: user.AvatarURL,
		},
	}, nil
}

func (s *AuthService) Refresh(refreshToken string) (*entity.RefreshResponse, error) {
	claims, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &entity.RefreshResponse{Token: token}, nil
}

func (s *AuthService) Profile(userID uuid.UUID) (*entity.UserResp, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &entity.UserResp{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
	}, nil
}

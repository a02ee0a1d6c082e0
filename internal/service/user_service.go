package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/auth"
	"github.com/mheijden/portfolio-tracker/internal/model"
	"github.com/mheijden/portfolio-tracker/internal/repository"
)

// UserService handles registration and login. Passwords are stored as bcrypt
// hashes; successful logins are answered with a fernet token from the token
// service.
type UserService struct {
	userRepo *repository.UserRepository
	tokens   *auth.TokenService
}

// NewUserService creates a new UserService with the provided dependencies.
func NewUserService(userRepo *repository.UserRepository, tokens *auth.TokenService) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user account.
// Returns apperrors.ErrUserExists when the username or email is taken.
func (s *UserService) Register(ctx context.Context, username, email, password string) (model.User, error) {
	exists, err := s.userRepo.UserExists(ctx, username, email)
	if err != nil {
		return model.User{}, err
	}
	if exists {
		return model.User{}, apperrors.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.InsertUser(ctx, user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// Login checks the credentials and returns a signed auth token.
// Returns apperrors.ErrInvalidCredentials for an unknown username or a wrong
// password; the two cases are deliberately indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

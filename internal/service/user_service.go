package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"growmate/internal/auth"
	"growmate/internal/cache"
	apperrors "growmate/internal/errors"
	"growmate/internal/model"
	"growmate/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// NewUser is the input for creating an account.
type NewUser struct {
	Username string
	Email    string
	Password string
	Role     model.Role
}

// UserUpdate carries optional profile changes.
type UserUpdate struct {
	Username *string
	Email    *string
	Role     *model.Role
}

// UserService exposes domain operations.
type UserService interface {
	CreateUser(ctx context.Context, in NewUser) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id string, in UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo    repository.UserRepository
	gardens GardenService
	cache   *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, gardens GardenService, cache *cache.Client) UserService {
	return &userService{repo: repo, gardens: gardens, cache: cache}
}

// UserCacheKey is the redis key of a cached user.
func UserCacheKey(id string) string {
	return "user:" + id
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// provisionUser validates, stores and sets up a new account with its default
// garden. Password complexity is checked before any repository call.
func provisionUser(ctx context.Context, users repository.UserRepository, gardens GardenService, in NewUser) (*model.User, error) {
	email := NormalizeEmail(in.Email)
	if err := auth.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	existing, err := users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	user := &model.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	if _, err := gardens.CreateDefault(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, in NewUser) (*model.User, error) {
	user, err := provisionUser(ctx, s.repo, s.gardens, in)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, UserCacheKey(user.ID))
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, UserCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, UserCacheKey(id), user, userCacheTTL)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, id string, in UserUpdate) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && strings.TrimSpace(*in.Username) != "" {
		user.Username = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if err := auth.ValidateEmail(email); err != nil {
			return nil, err
		}
		if email != user.Email {
			other, err := s.repo.FindByEmail(ctx, email)
			if err == nil && other != nil {
				return nil, apperrors.ErrUserAlreadyExists
			}
			if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
				return nil, fmt.Errorf("check user existence: %w", err)
			}
			user.Email = email
			user.IsEmailConfirmed = false
		}
	}
	if in.Role != nil {
		user.Role = *in.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, UserCacheKey(id))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, UserCacheKey(id))
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"growmate/internal/auth"
	"growmate/internal/cache"
	apperrors "growmate/internal/errors"
	"growmate/internal/logger"
	"growmate/internal/model"
	"growmate/internal/notify"
	"growmate/internal/repository"
)

const (
	passwordResetTTL     = time.Hour
	emailConfirmationTTL = 24 * time.Hour
)

// ProfileUpdate is a request to change the caller's (or, for admins, any
// user's) username or password.
type ProfileUpdate struct {
	UserID          string
	Username        string
	CurrentPassword string
	NewPassword     string
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	// Logout revokes refreshToken and, when given, blacklists accessToken
	// until it expires.
	Logout(ctx context.Context, refreshToken, accessToken string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ConfirmEmail(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, actor auth.Actor, in ProfileUpdate) (*model.User, error)
}

// AuthOptions holds collaborators that are optional for the auth service.
type AuthOptions struct {
	Mailer        notify.Mailer
	PublicBaseURL string
	Clock         clock.Clock
	Logger        *logger.Logger
	Cache         *cache.Client
}

type authService struct {
	users      repository.UserRepository
	gardens    GardenService
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	mailer     notify.Mailer
	baseURL    string
	clock      clock.Clock
	logger     *logger.Logger
	cache      *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	gardens GardenService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	opts AuthOptions,
) AuthService {
	s := &authService{
		users:      users,
		gardens:    gardens,
		jwtService: jwtService,
		tokenStore: tokenStore,
		mailer:     opts.Mailer,
		baseURL:    strings.TrimRight(opts.PublicBaseURL, "/"),
		clock:      opts.Clock,
		logger:     opts.Logger,
		cache:      opts.Cache,
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	s.logger = s.logger.WithComponent("auth")
	return s
}

// Register creates a new user with a hashed password and a default garden.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	user, err := provisionUser(ctx, s.users, s.gardens, NewUser{
		Username: username,
		Email:    email,
		Password: password,
		Role:     model.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateOpaqueToken()
	if err != nil {
		return nil, err
	}
	expires := s.clock.Now().UTC().Add(emailConfirmationTTL)
	user.EmailConfirmationToken = &token
	user.EmailConfirmationExpiration = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("store confirmation token: %w", err)
	}

	link := s.link("/api/Auth/confirm-email", token)
	s.sendMail(ctx, user.Email, "Confirm your email", fmt.Sprintf("Welcome to GrowMate! Confirm your email: %s", link))
	return user, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", "", nil, apperrors.ErrInvalidCredentials
		}
		return "", "", nil, fmt.Errorf("find user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}
	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, s.jwtService.RefreshExpiry()); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}
	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", apperrors.ErrInvalidRefreshToken
	}
	storedUserID, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || storedUserID != claims.UserID {
		return "", apperrors.ErrInvalidRefreshToken
	}

	// Re-read the user so role changes apply to new access tokens.
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken, accessToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}
	if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	if accessToken == "" {
		return nil
	}

	claims, err := s.jwtService.ValidateToken(accessToken)
	if err != nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("blacklist access token: %w", err)
	}
	return nil
}

// RequestPasswordReset issues a one hour reset token and mails a reset link.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}

	token, err := auth.GenerateOpaqueToken()
	if err != nil {
		return err
	}
	expires := s.clock.Now().UTC().Add(passwordResetTTL)
	user.PasswordResetToken = &token
	user.ResetTokenExpiration = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := s.link("/reset-password", token)
	s.sendMail(ctx, user.Email, "Password Reset Request", fmt.Sprintf("Click here to reset your password: %s", link))
	return nil
}

// ResetPassword sets a new password for the holder of a valid reset token.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}
	user, err := s.users.FindByResetToken(ctx, token, s.clock.Now().UTC())
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.PasswordResetToken = nil
	user.ResetTokenExpiration = nil
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ConfirmEmail marks the address of the token holder as confirmed.
func (s *authService) ConfirmEmail(ctx context.Context, token string) error {
	user, err := s.users.FindByConfirmationToken(ctx, token, s.clock.Now().UTC())
	if err != nil {
		return err
	}
	user.IsEmailConfirmed = true
	user.EmailConfirmationToken = nil
	user.EmailConfirmationExpiration = nil
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("confirm email: %w", err)
	}
	_ = s.cache.Delete(ctx, UserCacheKey(user.ID))
	return nil
}

// UpdateProfile changes username and password. Admins may target another
// user and skip the current password check.
func (s *authService) UpdateProfile(ctx context.Context, actor auth.Actor, in ProfileUpdate) (*model.User, error) {
	targetID := actor.UserID
	if in.UserID != "" && in.UserID != actor.UserID {
		if !actor.IsAdmin() {
			return nil, apperrors.ErrForbidden
		}
		targetID = in.UserID
	}
	if in.NewPassword != "" {
		if err := auth.ValidatePassword(in.NewPassword); err != nil {
			return nil, err
		}
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Username); name != "" {
		user.Username = name
	}
	if in.NewPassword != "" {
		if !actor.IsAdmin() && !auth.CheckPassword(user.PasswordHash, in.CurrentPassword) {
			return nil, apperrors.ErrCurrentPasswordRequired
		}
		hash, err := auth.HashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	_ = s.cache.Delete(ctx, UserCacheKey(user.ID))
	return user, nil
}

func (s *authService) link(path, token string) string {
	return s.baseURL + path + "?token=" + url.QueryEscape(token)
}

// sendMail logs delivery failures instead of failing the request.
func (s *authService) sendMail(ctx context.Context, to, subject, body string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		s.logger.WithError(err).Warnw("send email failed", "to", to, "subject", subject)
	}
}

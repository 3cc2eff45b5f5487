package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-auth-service/internal/model"
	"go-auth-service/pkg/apierror"
)

// AuthService implements the register / login protocol on top of the
// password hasher, token codec and user store.
type AuthService struct {
	store  UserStore
	hasher *PasswordHasher
	codec  *TokenCodec
}

func NewAuthService(store UserStore, hasher *PasswordHasher, codec *TokenCodec) *AuthService {
	return &AuthService{store: store, hasher: hasher, codec: codec}
}

// Register creates a new ACTIVE account and issues its first token.
// Username is checked before email so the first conflicting field surfaces
// deterministically; the store's unique indexes settle any race.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	slog.Info("registering new user", "username", req.Username)

	taken, err := s.store.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return model.AuthResponse{}, apierror.Duplicate("User", "username", req.Username)
	}

	taken, err = s.store.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return model.AuthResponse{}, apierror.Duplicate("User", "email", req.Email)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Status:       model.StatusActive,
	}

	if err := s.store.Insert(ctx, &user); err != nil {
		return model.AuthResponse{}, err
	}

	token, err := s.codec.Issue(user.Username)
	if err != nil {
		return model.AuthResponse{}, err
	}

	slog.Info("user registered", "username", user.Username, "id", user.ID)

	return model.AuthResponse{
		Token:     token,
		ExpiresIn: int64(s.codec.Lifetime().Seconds()),
		User:      model.NewUserResponse(user),
	}, nil
}

// Login authenticates a username/password pair and issues a token. Every
// failure mode (unknown user, hash mismatch, non-authenticatable status,
// store error) collapses to a single invalid-credentials failure so the
// response never reveals whether the account exists. The distinction is
// logged.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	slog.Info("user logging in", "username", req.Username)

	user, token, err := s.authenticate(ctx, req)
	if err != nil {
		slog.Warn("login failed", "username", req.Username, "reason", err)
		return model.AuthResponse{}, apierror.InvalidCredentials()
	}

	// Bookkeeping only: a failed lastLoginAt write must not revoke the
	// token already issued.
	now := time.Now().UTC()
	if err := s.store.UpdateLastLogin(ctx, user.Username, now); err != nil {
		slog.Warn("failed to update last login time", "username", user.Username, "error", err)
	} else {
		user.LastLoginAt = &now
	}

	slog.Info("user logged in", "username", user.Username)

	return model.AuthResponse{
		Token:     token,
		ExpiresIn: int64(s.codec.Lifetime().Seconds()),
		User:      model.NewUserResponse(user),
	}, nil
}

func (s *AuthService) authenticate(ctx context.Context, req model.LoginRequest) (model.User, string, error) {
	user, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		return model.User{}, "", fmt.Errorf("load user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return model.User{}, "", model.ErrInvalidCredentials
	}

	if !user.Status.MayAuthenticate() {
		return model.User{}, "", fmt.Errorf("account status %s may not authenticate", user.Status)
	}

	token, err := s.codec.Issue(user.Username)
	if err != nil {
		return model.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

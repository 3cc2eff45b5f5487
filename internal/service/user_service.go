package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go-auth-service/internal/model"
	"go-auth-service/pkg/apierror"
)

// UserService exposes read and narrow-update operations over user records.
type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (model.UserResponse, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.UserResponse{}, err
	}
	return model.NewUserResponse(user), nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (model.UserResponse, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return model.UserResponse{}, err
	}
	return model.NewUserResponse(user), nil
}

// List returns a 0-indexed page of users sorted newest first. Out-of-range
// pages come back empty with accurate totals.
func (s *UserService) List(ctx context.Context, page int, size int) (model.PageResponse[model.UserResponse], error) {
	users, total, err := s.store.ListPage(ctx, page, size)
	if err != nil {
		return model.PageResponse[model.UserResponse]{}, err
	}

	content := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		content = append(content, model.NewUserResponse(u))
	}

	return model.NewPageResponse(content, page, size, total), nil
}

// Update applies the provided email and/or phone to the user. Blank values
// are skipped. An email owned by another user is a duplicate-resource
// failure; the unique index settles any race the pre-check misses.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.UserResponse, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.UserResponse{}, err
	}

	if email := strings.TrimSpace(req.Email); email != "" {
		existing, err := s.store.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != id:
			return model.UserResponse{}, apierror.Duplicate("Email", "email", email)
		case err != nil && !apierror.IsNotFound(err):
			return model.UserResponse{}, fmt.Errorf("check email owner: %w", err)
		}

		user.Email = email
		slog.Info("updating email", "id", id)
	}

	if phone := strings.TrimSpace(req.Phone); phone != "" {
		user.Phone = phone
		slog.Info("updating phone", "id", id)
	}

	if err := s.store.Update(ctx, &user); err != nil {
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}

package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go-auth-service/internal/model"
	"go-auth-service/pkg/apierror"
)

// memStore is an in-memory UserStore with the same error contract as the
// pgx-backed repository.
type memStore struct {
	users  map[int64]*model.User
	nextID int64

	insertErr    error
	lastLoginErr error
}

func newMemStore() *memStore {
	return &memStore{users: map[int64]*model.User{}, nextID: 1}
}

func (m *memStore) Insert(_ context.Context, u *model.User) error {
	if m.insertErr != nil {
		return m.insertErr
	}

	for _, existing := range m.users {
		if existing.Username == u.Username {
			return apierror.Duplicate("User", "username", u.Username)
		}
		if existing.Email == u.Email {
			return apierror.Duplicate("User", "email", u.Email)
		}
	}

	now := time.Now().UTC()
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Status == "" {
		u.Status = model.StatusActive
	}

	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *memStore) FindByID(_ context.Context, id int64) (model.User, error) {
	if u, ok := m.users[id]; ok {
		return *u, nil
	}
	return model.User{}, apierror.NotFound("User", id)
}

func (m *memStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return *u, nil
		}
	}
	return model.User{}, apierror.NotFoundMessage("User not found: " + username)
}

func (m *memStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return model.User{}, apierror.NotFoundMessage("User not found: " + email)
}

func (m *memStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.FindByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if apierror.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

func (m *memStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if apierror.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

func (m *memStore) Update(_ context.Context, u *model.User) error {
	existing, ok := m.users[u.ID]
	if !ok {
		return apierror.NotFound("User", u.ID)
	}

	for id, other := range m.users {
		if id != u.ID && other.Email == u.Email {
			return apierror.Duplicate("User", "email", u.Email)
		}
	}

	u.UpdatedAt = time.Now().UTC()
	*existing = *u
	return nil
}

func (m *memStore) UpdateLastLogin(_ context.Context, username string, at time.Time) error {
	if m.lastLoginErr != nil {
		return m.lastLoginErr
	}

	for _, u := range m.users {
		if u.Username == username {
			stamp := at.UTC()
			u.LastLoginAt = &stamp
			u.UpdatedAt = stamp
			return nil
		}
	}
	return apierror.NotFoundMessage("User not found: " + username)
}

func (m *memStore) ListPage(_ context.Context, page int, size int) ([]model.User, int64, error) {
	all := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return []model.User{}, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

var errStoreDown = errors.New("store unavailable")

package service

import (
	"context"
	"time"

	"go-auth-service/internal/model"
)

// UserStore is the persistence contract the services compose over. The
// pgx-backed repository satisfies it; tests substitute an in-memory stub.
//
// Pre-checks such as ExistsByUsername are advisory: the store's unique
// indexes are authoritative, and Insert/Update must translate a constraint
// violation into a typed duplicate-resource error.
type UserStore interface {
	Insert(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *model.User) error
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error
	ListPage(ctx context.Context, page int, size int) ([]model.User, int64, error)
}

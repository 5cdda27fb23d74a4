package ports

import (
	"context"

	"github.com/property-management/property-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// FindByID returns domain.ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update applies the supplied fields and returns the stored user.
	Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/property-management/property-api/internal/core/domain"
)

// CreateUserInput carries a validated user creation request.
type CreateUserInput struct {
	FirstName      string
	LastName       string
	DateOfBirth    string
	IdempotencyKey string
}

// UserPatch lists the user fields a PATCH may change.
type UserPatch struct {
	FirstName   Optional[string]
	LastName    Optional[string]
	DateOfBirth Optional[string]
}

// Empty reports whether no supported field was supplied.
func (p UserPatch) Empty() bool {
	return !p.FirstName.Set && !p.LastName.Set && !p.DateOfBirth.Set
}

// UserService defines the user use cases.
type UserService interface {
	// CreateUser reports created=false when an idempotent replay returned an
	// existing user.
	CreateUser(ctx context.Context, input CreateUserInput) (user *domain.User, created bool, err error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// UpdateUser lets callerID change its own record only.
	UpdateUser(ctx context.Context, callerID, id int64, patch UserPatch) (*domain.User, error)
}

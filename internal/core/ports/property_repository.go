package ports

import (
	"context"

	"github.com/property-management/property-api/internal/core/domain"
)

// PropertyFilter narrows List. An empty City means no filter.
type PropertyFilter struct {
	City string // exact, case-insensitive
}

// PropertyRepository defines persistence operations for properties and their
// rooms. Every write touches the property row and its rooms in one transaction.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	// FindByID returns domain.ErrPropertyNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]*domain.Property, error)
	// Update applies the supplied top-level fields and, when Rooms is set,
	// replaces the whole room set.
	Update(ctx context.Context, id int64, patch PropertyPatch) (*domain.Property, error)
	Delete(ctx context.Context, id int64) error
}

package ports

import (
	"context"

	"github.com/property-management/property-api/internal/core/domain"
)

// RoomInput is a single room detail as submitted by a client.
type RoomInput struct {
	Name string
	Size float64
}

// CreatePropertyInput carries a validated property creation request.
type CreatePropertyInput struct {
	OwnerID        int64
	Name           string
	Description    string
	PropertyType   string
	City           string
	Rooms          []RoomInput
	IdempotencyKey string
}

// PropertyPatch lists the property fields a PATCH may change.
type PropertyPatch struct {
	Name         Optional[string]
	Description  Optional[string]
	PropertyType Optional[string]
	City         Optional[string]
	Rooms        Optional[[]RoomInput]
}

// Empty reports whether no supported field was supplied.
func (p PropertyPatch) Empty() bool {
	return !p.Name.Set && !p.Description.Set && !p.PropertyType.Set &&
		!p.City.Set && !p.Rooms.Set
}

// PropertyService defines the property use cases. Mutations take the caller
// identity and fail with domain.ErrForbidden unless it is the owner.
type PropertyService interface {
	CreateProperty(ctx context.Context, input CreatePropertyInput) (p *domain.Property, created bool, err error)
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	ListProperties(ctx context.Context, filter PropertyFilter) ([]*domain.Property, error)
	UpdateProperty(ctx context.Context, callerID, id int64, patch PropertyPatch) (*domain.Property, error)
	DeleteProperty(ctx context.Context, callerID, id int64) error
}

package sqlstore

import (
	"time"

	"github.com/property-management/property-api/internal/core/domain"
)

type userModel struct {
	ID          int64   `gorm:"primaryKey"`
	FirstName   string  `gorm:"size:100;not null"`
	LastName    string  `gorm:"size:100;not null"`
	DateOfBirth *string `gorm:"size:10"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Properties []propertyModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

func (userModel) TableName() string { return "users" }

type propertyModel struct {
	ID           int64  `gorm:"primaryKey"`
	OwnerID      int64  `gorm:"not null;index"`
	Name         string `gorm:"size:200;not null"`
	Description  string `gorm:"type:text"`
	PropertyType string `gorm:"size:20;not null"`
	City         string `gorm:"size:100;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Rooms []roomModel `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

func (propertyModel) TableName() string { return "properties" }

// roomModel rows have a surrogate key that never leaves the store; Position
// keeps the submitted order.
type roomModel struct {
	ID         int64   `gorm:"primaryKey"`
	PropertyID int64   `gorm:"not null;index"`
	Position   int     `gorm:"not null"`
	Name       string  `gorm:"size:100;not null"`
	Size       float64 `gorm:"not null"`
}

func (roomModel) TableName() string { return "rooms" }

func toUserModel(u *domain.User) userModel {
	m := userModel{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if u.DateOfBirth != "" {
		dob := u.DateOfBirth
		m.DateOfBirth = &dob
	}
	return m
}

func (m userModel) toDomain() *domain.User {
	u := &domain.User{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
	if m.DateOfBirth != nil {
		u.DateOfBirth = *m.DateOfBirth
	}
	return u
}

func toRoomModels(propertyID int64, rooms []domain.Room) []roomModel {
	out := make([]roomModel, len(rooms))
	for i, r := range rooms {
		out[i] = roomModel{PropertyID: propertyID, Position: i, Name: r.Name, Size: r.Size}
	}
	return out
}

func toPropertyModel(p *domain.Property) propertyModel {
	return propertyModel{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		Description:  p.Description,
		PropertyType: string(p.Type),
		City:         p.City,
		Rooms:        toRoomModels(p.ID, p.Rooms),
	}
}

func (m propertyModel) toDomain() *domain.Property {
	rooms := make([]domain.Room, len(m.Rooms))
	for i, r := range m.Rooms {
		rooms[i] = domain.Room{Name: r.Name, Size: r.Size}
	}
	return &domain.Property{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: m.Description,
		Type:        domain.PropertyType(m.PropertyType),
		City:        m.City,
		Rooms:       rooms,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

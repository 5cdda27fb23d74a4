package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/core/ports"
)

// PropertyRepository implements ports.PropertyRepository with gorm. A
// property and its rooms are always written in the same transaction.
type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func roomsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the property and its rooms, then fills in the generated id
// and timestamps.
func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	m.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&m).Error
	})
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	*p = *m.toDomain()
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	m, err := findProperty(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

func findProperty(db *gorm.DB, id int64) (*propertyModel, error) {
	var m propertyModel
	if err := db.Preload("Rooms", roomsByPosition).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property %d: %w", id, err)
	}
	return &m, nil
}

// List returns properties ordered by id. A non-empty filter.City matches the
// whole city name, ignoring case.
func (r *PropertyRepository) List(ctx context.Context, filter ports.PropertyFilter) ([]*domain.Property, error) {
	q := r.db.WithContext(ctx).Preload("Rooms", roomsByPosition).Order("id ASC")
	if city := strings.TrimSpace(filter.City); city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}

	var models []propertyModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	out := make([]*domain.Property, len(models))
	for i, m := range models {
		out[i] = m.toDomain()
	}
	return out, nil
}

// Update writes the supplied top-level fields and, when patch.Rooms is set,
// deletes the stored rooms and inserts the new ones. Concurrent updates are
// last-writer-wins.
func (r *PropertyRepository) Update(ctx context.Context, id int64, patch ports.PropertyPatch) (*domain.Property, error) {
	var updated *propertyModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findProperty(tx, id)
		if err != nil {
			return err
		}

		fields := map[string]any{}
		if patch.Name.HasValue() {
			fields["name"] = patch.Name.Value
		}
		if patch.Description.Set {
			fields["description"] = patch.Description.Value
		}
		if patch.PropertyType.HasValue() {
			fields["property_type"] = patch.PropertyType.Value
		}
		if patch.City.HasValue() {
			fields["city"] = patch.City.Value
		}
		if patch.Rooms.Set {
			// touch updated_at even when only rooms change
			fields["updated_at"] = tx.NowFunc()
		}
		if len(fields) > 0 {
			if err := tx.Model(&propertyModel{ID: current.ID}).Updates(fields).Error; err != nil {
				return fmt.Errorf("update property %d: %w", id, err)
			}
		}

		if patch.Rooms.Set {
			if err := replaceRooms(tx, id, patch.Rooms.Value); err != nil {
				return err
			}
		}

		updated, err = findProperty(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated.toDomain(), nil
}

func replaceRooms(tx *gorm.DB, propertyID int64, in []ports.RoomInput) error {
	if err := tx.Where("property_id = ?", propertyID).Delete(&roomModel{}).Error; err != nil {
		return fmt.Errorf("delete rooms of property %d: %w", propertyID, err)
	}
	if len(in) == 0 {
		return nil
	}
	rooms := make([]domain.Room, len(in))
	for i, r := range in {
		rooms[i] = domain.Room{Name: r.Name, Size: r.Size}
	}
	models := toRoomModels(propertyID, rooms)
	if err := tx.Create(&models).Error; err != nil {
		return fmt.Errorf("insert rooms of property %d: %w", propertyID, err)
	}
	return nil
}

// Delete removes the property and its rooms.
func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&roomModel{}).Error; err != nil {
			return fmt.Errorf("delete rooms of property %d: %w", id, err)
		}
		res := tx.Delete(&propertyModel{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete property %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrPropertyNotFound
		}
		return nil
	})
}

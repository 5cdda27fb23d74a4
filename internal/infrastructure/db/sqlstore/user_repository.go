package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository with gorm.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and fills in its generated id and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	m := toUserModel(user)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	*user = *m.toDomain()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var models []userModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]*domain.User, len(models))
	for i, m := range models {
		users[i] = m.toDomain()
	}
	return users, nil
}

// Update writes only the fields present in patch. A null date_of_birth is
// stored as NULL.
func (r *UserRepository) Update(ctx context.Context, id int64, patch ports.UserPatch) (*domain.User, error) {
	var updated userModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, id).Error; err != nil {
			return err
		}
		fields := map[string]any{}
		if patch.FirstName.HasValue() {
			fields["first_name"] = patch.FirstName.Value
		}
		if patch.LastName.HasValue() {
			fields["last_name"] = patch.LastName.Value
		}
		if patch.DateOfBirth.Set {
			if patch.DateOfBirth.Null {
				fields["date_of_birth"] = nil
			} else {
				fields["date_of_birth"] = patch.DateOfBirth.Value
			}
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&updated).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return updated.toDomain(), nil
}

package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates the users, properties and rooms tables when missing.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&userModel{}, &propertyModel{}, &roomModel{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Reset drops every table and recreates them empty.
func Reset(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Migrator().DropTable(&roomModel{}, &propertyModel{}, &userModel{}); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return Migrate(ctx, db)
}

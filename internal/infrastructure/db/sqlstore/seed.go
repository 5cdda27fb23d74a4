package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func sampleData() []userModel {
	return []userModel{
		{
			FirstName:   "Alice",
			LastName:    "Owner",
			DateOfBirth: strPtr("1990-01-01"),
			Properties: []propertyModel{{
				Name:         "Appartement centre-ville",
				Description:  "Super appart proche métro",
				PropertyType: "apartment",
				City:         "Paris",
				Rooms: []roomModel{
					{Position: 0, Name: "chambre", Size: 12},
					{Position: 1, Name: "salon", Size: 20},
				},
			}},
		},
		{
			FirstName:   "Bob",
			LastName:    "Landlord",
			DateOfBirth: strPtr("1985-05-15"),
			Properties: []propertyModel{{
				Name:         "Maison de campagne",
				Description:  "Maison calme avec jardin",
				PropertyType: "house",
				City:         "Lyon",
				Rooms: []roomModel{
					{Position: 0, Name: "chambre", Size: 15},
					{Position: 1, Name: "salon", Size: 25},
					{Position: 2, Name: "cuisine", Size: 10},
				},
			}},
		},
	}
}

// Populate inserts two sample owners with one property each. It does nothing
// and returns false when users already exist.
func Populate(ctx context.Context, db *gorm.DB) (bool, error) {
	inserted := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		users := sampleData()
		if err := tx.Create(&users).Error; err != nil {
			return err
		}
		inserted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("populate: %w", err)
	}
	return inserted, nil
}

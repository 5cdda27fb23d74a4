package handler

import (
	"time"

	"github.com/property-management/property-api/internal/core/ports"
)

// --- Request types ---

type roomRequest struct {
	Name string   `json:"name" validate:"required,notblank,max=100" example:"chambre"`
	Size *float64 `json:"size" validate:"required,gt=0"     example:"12"`
}

type createPropertyRequest struct {
	Name         string        `json:"name"          validate:"required,notblank,max=200" example:"Appartement centre-ville"`
	Description  string        `json:"description"   example:"Super appart proche métro"`
	PropertyType string        `json:"property_type" validate:"required,notblank" enums:"apartment,house,studio,villa"`
	City         string        `json:"city"          validate:"required,notblank,max=100" example:"Paris"`
	RoomsDetails []roomRequest `json:"rooms_details" validate:"omitempty,dive"`
}

// patchRoom mirrors roomRequest without boundary tags; patch contents are
// checked by the service.
type patchRoom struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

type updatePropertyRequest struct {
	Name         ports.Optional[string]      `json:"name"          swaggertype:"string"`
	Description  ports.Optional[string]      `json:"description"   swaggertype:"string"`
	PropertyType ports.Optional[string]      `json:"property_type" swaggertype:"string"`
	City         ports.Optional[string]      `json:"city"          swaggertype:"string"`
	RoomsDetails ports.Optional[[]patchRoom] `json:"rooms_details" swaggertype:"array,object"`
}

// --- Response types ---

type roomResponse struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

type propertyResponse struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	PropertyType string         `json:"property_type"`
	City         string         `json:"city"`
	OwnerID      int64          `json:"owner_id"`
	RoomsDetails []roomResponse `json:"rooms_details"`
	RoomsCount   int            `json:"rooms_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

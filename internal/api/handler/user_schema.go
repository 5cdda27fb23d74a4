package handler

import "github.com/property-management/property-api/internal/core/ports"

// --- Request types ---

type createUserRequest struct {
	FirstName   string `json:"first_name"    validate:"required,notblank,max=100" example:"Alice"`
	LastName    string `json:"last_name"     validate:"required,notblank,max=100" example:"Owner"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02" example:"1990-01-01"`
}

// updateUserRequest fields are validated by the service, which needs to tell
// an absent key from an explicit null.
type updateUserRequest struct {
	FirstName   ports.Optional[string] `json:"first_name"    swaggertype:"string"`
	LastName    ports.Optional[string] `json:"last_name"     swaggertype:"string"`
	DateOfBirth ports.Optional[string] `json:"date_of_birth" swaggertype:"string"`
}

// --- Response types ---

type userResponse struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
}

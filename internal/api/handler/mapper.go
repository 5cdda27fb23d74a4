package handler

import (
	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateUserInput(req createUserRequest, idempotencyKey string) ports.CreateUserInput {
	return ports.CreateUserInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    req.DateOfBirth,
		IdempotencyKey: idempotencyKey,
	}
}

func toUserPatch(req updateUserRequest) ports.UserPatch {
	return ports.UserPatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
	}
}

func toCreatePropertyInput(req createPropertyRequest, ownerID int64, idempotencyKey string) ports.CreatePropertyInput {
	rooms := make([]ports.RoomInput, len(req.RoomsDetails))
	for i, r := range req.RoomsDetails {
		rooms[i] = ports.RoomInput{Name: r.Name}
		if r.Size != nil {
			rooms[i].Size = *r.Size
		}
	}
	return ports.CreatePropertyInput{
		OwnerID:        ownerID,
		Name:           req.Name,
		Description:    req.Description,
		PropertyType:   req.PropertyType,
		City:           req.City,
		Rooms:          rooms,
		IdempotencyKey: idempotencyKey,
	}
}

func toPropertyPatch(req updatePropertyRequest) ports.PropertyPatch {
	patch := ports.PropertyPatch{
		Name:         req.Name,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		City:         req.City,
	}
	switch {
	case !req.RoomsDetails.Set:
	case req.RoomsDetails.Null:
		patch.Rooms = ports.Null[[]ports.RoomInput]()
	default:
		rooms := make([]ports.RoomInput, len(req.RoomsDetails.Value))
		for i, r := range req.RoomsDetails.Value {
			rooms[i] = ports.RoomInput{Name: r.Name, Size: r.Size}
		}
		patch.Rooms = ports.Some(rooms)
	}
	return patch
}

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if u.DateOfBirth != "" {
		dob := u.DateOfBirth
		resp.DateOfBirth = &dob
	}
	return resp
}

func toUserListResponse(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toPropertyResponse(p *domain.Property) propertyResponse {
	rooms := make([]roomResponse, len(p.Rooms))
	for i, r := range p.Rooms {
		rooms[i] = roomResponse{Name: r.Name, Size: r.Size}
	}
	return propertyResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		PropertyType: string(p.Type),
		City:         p.City,
		OwnerID:      p.OwnerID,
		RoomsDetails: rooms,
		RoomsCount:   len(rooms),
		CreatedAt:    p.CreatedAt.UTC(),
		UpdatedAt:    p.UpdatedAt.UTC(),
	}
}

func toPropertyListResponse(props []*domain.Property) []propertyResponse {
	out := make([]propertyResponse, len(props))
	for i, p := range props {
		out[i] = toPropertyResponse(p)
	}
	return out
}

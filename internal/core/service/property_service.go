package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/core/ports"
)

type PropertyService struct {
	repo   ports.PropertyRepository
	users  ports.UserRepository
	rules  rules
	effect sideEffects
	logger zerolog.Logger
}

// NewPropertyService returns a PropertyService. audit and idem may be nil.
func NewPropertyService(
	repo ports.PropertyRepository,
	users ports.UserRepository,
	audit ports.AuditRepository,
	idem ports.IdempotencyStore,
	logger zerolog.Logger,
) *PropertyService {
	return &PropertyService{
		repo:   repo,
		users:  users,
		rules:  newRules(),
		effect: newSideEffects(audit, idem, logger),
		logger: logger,
	}
}

// CreateProperty stores a property with its rooms, owned by input.OwnerID.
// The owner must exist; otherwise nothing is written.
func (s *PropertyService) CreateProperty(ctx context.Context, input ports.CreatePropertyInput) (*domain.Property, bool, error) {
	scope := fmt.Sprintf("properties:%d", input.OwnerID)
	if id, ok := s.effect.replayed(ctx, scope, input.IdempotencyKey); ok {
		existing, err := s.repo.FindByID(ctx, id)
		if err == nil {
			s.logger.Info().Int64("property_id", id).Msg("idempotent replay")
			return existing, false, nil
		}
		if !errors.Is(err, domain.ErrPropertyNotFound) {
			return nil, false, fmt.Errorf("create property: %w", err)
		}
	}

	p := &domain.Property{
		OwnerID:     input.OwnerID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Type:        domain.PropertyType(strings.TrimSpace(input.PropertyType)),
		City:        strings.TrimSpace(input.City),
	}
	if err := s.rules.text("name", p.Name, domain.MaxPropertyNameLength); err != nil {
		return nil, false, err
	}
	if err := s.rules.propertyType(string(p.Type)); err != nil {
		return nil, false, err
	}
	if err := s.rules.text("city", p.City, domain.MaxCityLength); err != nil {
		return nil, false, err
	}
	if err := s.rules.rooms(input.Rooms); err != nil {
		return nil, false, err
	}
	p.Rooms = toRooms(input.Rooms)

	if _, err := s.users.FindByID(ctx, input.OwnerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, domain.ErrOwnerNotFound
		}
		return nil, false, fmt.Errorf("create property: find owner: %w", err)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", input.OwnerID).Msg("failed to create property")
		return nil, false, fmt.Errorf("create property: %w", err)
	}

	s.effect.remember(ctx, scope, input.IdempotencyKey, p.ID)
	s.effect.record(ctx, domain.AuditPropertyCreated, p.ID, input.OwnerID)
	s.logger.Info().Int64("property_id", p.ID).Int64("owner_id", p.OwnerID).Msg("property created")
	return p, true, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	return s.repo.FindByID(ctx, id)
}

// ListProperties returns every property, or only those in filter.City.
func (s *PropertyService) ListProperties(ctx context.Context, filter ports.PropertyFilter) ([]*domain.Property, error) {
	filter.City = strings.TrimSpace(filter.City)
	return s.repo.List(ctx, filter)
}

// UpdateProperty applies patch on behalf of callerID, who must own the
// property. Supplied rooms replace the stored set. Concurrent patches are
// last-writer-wins.
func (s *PropertyService) UpdateProperty(ctx context.Context, callerID, id int64, patch ports.PropertyPatch) (*domain.Property, error) {
	if err := s.authorize(ctx, callerID, id); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.NewValidationError("nothing to update")
	}
	normalized, err := s.normalizePatch(patch)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, normalized)
	if err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}

	s.effect.record(ctx, domain.AuditPropertyUpdated, id, callerID)
	s.logger.Info().Int64("property_id", id).Int64("caller_id", callerID).Msg("property updated")
	return p, nil
}

// DeleteProperty removes the property and its rooms on behalf of its owner.
func (s *PropertyService) DeleteProperty(ctx context.Context, callerID, id int64) error {
	if err := s.authorize(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	s.effect.record(ctx, domain.AuditPropertyDeleted, id, callerID)
	s.logger.Info().Int64("property_id", id).Int64("caller_id", callerID).Msg("property deleted")
	return nil
}

// authorize loads the property and checks callerID against its owner. The
// owner never changes after creation, so the check stays valid for the write
// that follows.
func (s *PropertyService) authorize(ctx context.Context, callerID, id int64) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsOwnedBy(callerID) {
		s.logger.Warn().Int64("property_id", id).Int64("caller_id", callerID).Msg("ownership check failed")
		return domain.ErrForbidden
	}
	return nil
}

// normalizePatch trims the supplied strings and validates them. A null
// description clears it and null rooms_details clears the room set.
func (s *PropertyService) normalizePatch(p ports.PropertyPatch) (ports.PropertyPatch, error) {
	required := []struct {
		field string
		value ports.Optional[string]
	}{
		{"name", p.Name},
		{"property_type", p.PropertyType},
		{"city", p.City},
	}
	for _, r := range required {
		if err := cannotBeNull(r.field, r.value); err != nil {
			return p, err
		}
	}

	out := p
	if p.Name.Set {
		out.Name = ports.Some(strings.TrimSpace(p.Name.Value))
		if err := s.rules.text("name", out.Name.Value, domain.MaxPropertyNameLength); err != nil {
			return p, err
		}
	}
	if p.City.Set {
		out.City = ports.Some(strings.TrimSpace(p.City.Value))
		if err := s.rules.text("city", out.City.Value, domain.MaxCityLength); err != nil {
			return p, err
		}
	}
	if p.PropertyType.Set {
		out.PropertyType = ports.Some(strings.TrimSpace(p.PropertyType.Value))
		if err := s.rules.propertyType(out.PropertyType.Value); err != nil {
			return p, err
		}
	}
	if p.Description.Set {
		out.Description = ports.Some(strings.TrimSpace(p.Description.Value))
	}
	if p.Rooms.Set {
		if err := s.rules.rooms(p.Rooms.Value); err != nil {
			return p, err
		}
		rooms := make([]ports.RoomInput, len(p.Rooms.Value))
		for i, r := range p.Rooms.Value {
			rooms[i] = ports.RoomInput{Name: strings.TrimSpace(r.Name), Size: r.Size}
		}
		out.Rooms = ports.Some(rooms)
	}
	return out, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	rules  rules
	effect sideEffects
	logger zerolog.Logger
}

// NewUserService returns a UserService. audit and idem may be nil.
func NewUserService(repo ports.UserRepository, audit ports.AuditRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		rules:  newRules(),
		effect: newSideEffects(audit, idem, logger),
		logger: logger,
	}
}

// CreateUser persists a new user. A repeated Idempotency-Key returns the user
// created the first time with created=false.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, bool, error) {
	if id, ok := s.effect.replayed(ctx, scopeUsers, input.IdempotencyKey); ok {
		existing, err := s.repo.FindByID(ctx, id)
		if err == nil {
			s.logger.Info().Int64("user_id", id).Msg("idempotent replay")
			return existing, false, nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, fmt.Errorf("create user: %w", err)
		}
	}

	if err := s.rules.text("first_name", input.FirstName, domain.MaxNameLength); err != nil {
		return nil, false, err
	}
	if err := s.rules.text("last_name", input.LastName, domain.MaxNameLength); err != nil {
		return nil, false, err
	}
	if err := s.rules.date("date_of_birth", input.DateOfBirth); err != nil {
		return nil, false, err
	}

	user := &domain.User{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	s.effect.remember(ctx, scopeUsers, input.IdempotencyKey, user.ID)
	s.effect.record(ctx, domain.AuditUserCreated, user.ID, 0)
	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, true, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser applies patch to the user id on behalf of callerID. Only the
// user itself may change its record.
func (s *UserService) UpdateUser(ctx context.Context, callerID, id int64, patch ports.UserPatch) (*domain.User, error) {
	if callerID != id {
		return nil, domain.ErrForbidden
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.NewValidationError("no supported fields to update")
	}
	if err := s.validatePatch(patch); err != nil {
		return nil, err
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.effect.record(ctx, domain.AuditUserUpdated, id, callerID)
	s.logger.Info().Int64("user_id", id).Msg("user updated")
	return user, nil
}

func (s *UserService) validatePatch(p ports.UserPatch) error {
	if err := cannotBeNull("first_name", p.FirstName); err != nil {
		return err
	}
	if err := cannotBeNull("last_name", p.LastName); err != nil {
		return err
	}
	if p.FirstName.HasValue() {
		if err := s.rules.text("first_name", p.FirstName.Value, domain.MaxNameLength); err != nil {
			return err
		}
	}
	if p.LastName.HasValue() {
		if err := s.rules.text("last_name", p.LastName.Value, domain.MaxNameLength); err != nil {
			return err
		}
	}
	// date_of_birth may be cleared with null.
	if p.DateOfBirth.HasValue() {
		if err := s.rules.date("date_of_birth", p.DateOfBirth.Value); err != nil {
			return err
		}
	}
	return nil
}

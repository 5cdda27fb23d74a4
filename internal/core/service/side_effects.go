package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/core/ports"
)

const scopeUsers = "users"

// sideEffects bundles the best-effort collaborators of a mutation: the audit
// trail and the idempotency store. Their failures are logged, never returned.
type sideEffects struct {
	audit ports.AuditRepository
	idem  ports.IdempotencyStore
	log   zerolog.Logger
}

func newSideEffects(audit ports.AuditRepository, idem ports.IdempotencyStore, log zerolog.Logger) sideEffects {
	if audit == nil {
		audit = nopAudit{}
	}
	if idem == nil {
		idem = nopIdempotency{}
	}
	return sideEffects{audit: audit, idem: idem, log: log}
}

// replayed returns the id previously created with key, if any.
func (s sideEffects) replayed(ctx context.Context, scope, key string) (int64, bool) {
	if key == "" {
		return 0, false
	}
	id, ok, err := s.idem.Lookup(ctx, scope, key)
	if err != nil {
		s.log.Warn().Err(err).Str("scope", scope).Msg("idempotency lookup failed, creating anyway")
		return 0, false
	}
	return id, ok
}

func (s sideEffects) remember(ctx context.Context, scope, key string, id int64) {
	if key == "" {
		return
	}
	if err := s.idem.Remember(ctx, scope, key, id); err != nil {
		s.log.Warn().Err(err).Str("scope", scope).Int64("id", id).Msg("failed to store idempotency key")
	}
}

func (s sideEffects) record(ctx context.Context, action domain.AuditAction, resourceID, actorID int64) {
	event := domain.AuditEvent{
		Action:     action,
		ResourceID: resourceID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("action", string(action)).Int64("resource_id", resourceID).Msg("failed to record audit event")
	}
}

type nopAudit struct{}

func (nopAudit) Record(context.Context, domain.AuditEvent) error { return nil }

type nopIdempotency struct{}

func (nopIdempotency) Lookup(context.Context, string, string) (int64, bool, error) {
	return 0, false, nil
}

func (nopIdempotency) Remember(context.Context, string, string, int64) error { return nil }

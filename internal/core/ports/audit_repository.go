package ports

import (
	"context"

	"github.com/property-management/property-api/internal/core/domain"
)

// AuditRepository persists the mutation audit trail.
type AuditRepository interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// IdempotencyStore remembers which resource an Idempotency-Key created.
type IdempotencyStore interface {
	// Lookup returns the id stored for scope/key and whether it was found.
	Lookup(ctx context.Context, scope, key string) (int64, bool, error)
	// Remember stores id for scope/key unless the key is already taken.
	Remember(ctx context.Context, scope, key string, id int64) error
}

package domain

import "time"

// AuditAction names a successful mutation.
type AuditAction string

const (
	AuditUserCreated     AuditAction = "user.created"
	AuditUserUpdated     AuditAction = "user.updated"
	AuditPropertyCreated AuditAction = "property.created"
	AuditPropertyUpdated AuditAction = "property.updated"
	AuditPropertyDeleted AuditAction = "property.deleted"
)

// AuditEvent records who changed which resource and when.
type AuditEvent struct {
	Action     AuditAction
	ResourceID int64
	ActorID    int64 // zero for anonymous user creation
	OccurredAt time.Time
}

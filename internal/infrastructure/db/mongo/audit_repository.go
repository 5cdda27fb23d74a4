package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/property-management/property-api/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository implements ports.AuditRepository on the audit_events
// collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the lookup index on resource and resource_id.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "resource", Value: 1}, {Key: "resource_id", Value: 1}, {Key: "occurred_at", Value: -1}},
		Options: options.Index().SetName("resource_lookup"),
	})
	if err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}

// Record appends one audit document.
func (r *AuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	_, err := r.coll.InsertOne(ctx, auditDocument(event, uuid.NewString(), time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func auditDocument(event domain.AuditEvent, id string, recordedAt time.Time) bson.M {
	return bson.M{
		"_id":         id,
		"action":      string(event.Action),
		"resource":    resourceOf(event.Action),
		"resource_id": event.ResourceID,
		"actor_id":    event.ActorID,
		"occurred_at": event.OccurredAt.UTC(),
		"recorded_at": recordedAt,
	}
}

// resourceOf returns "user" for "user.created".
func resourceOf(action domain.AuditAction) string {
	resource, _, _ := strings.Cut(string(action), ".")
	return resource
}

package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// AuditRepository stores audit entries. It only inserts and reads.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditLogs)}
}

type mongoAuditLog struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Action      string              `bson:"action"`
	Entity      string              `bson:"entity"`
	EntityID    *primitive.ObjectID `bson:"entityId"`
	PerformedBy primitive.ObjectID  `bson:"performedBy"`
	Role        string              `bson:"role"`
	Timestamp   time.Time           `bson:"timestamp"`
	Metadata    bson.M              `bson:"metadata"`
	Performer   *struct {
		ID    primitive.ObjectID `bson:"_id"`
		Name  string             `bson:"name"`
		Email string             `bson:"email"`
	} `bson:"performer,omitempty"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditLogEntry) error {
	performer, err := primitive.ObjectIDFromHex(entry.PerformedBy)
	if err != nil {
		return fmt.Errorf("insert audit log: performer id %q: %w", entry.PerformedBy, err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuditLog{
		Action:      string(entry.Action),
		Entity:      string(entry.Entity),
		EntityID:    optionalID(entry.EntityID),
		PerformedBy: performer,
		Role:        string(entry.PerformerRole),
		Timestamp:   entry.Timestamp,
		Metadata:    bson.M(entry.Metadata),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

// List returns entries newest first with the performer's name and email.
func (r *AuditRepository) List(ctx context.Context, filter ports.AuditFilter) ([]domain.AuditLogView, error) {
	match := bson.M{}
	if filter.Action != "" {
		match["action"] = filter.Action
	}
	if filter.Entity != "" {
		match["entity"] = filter.Entity
	}
	if filter.PerformedBy != "" {
		oid, err := primitive.ObjectIDFromHex(filter.PerformedBy)
		if err != nil {
			return []domain.AuditLogView{}, nil
		}
		match["performedBy"] = oid
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		pipeline = append(pipeline,
			bson.D{{Key: "$skip", Value: int64((page - 1) * filter.Limit)}},
			bson.D{{Key: "$limit", Value: int64(filter.Limit)}},
		)
	}
	pipeline = append(pipeline,
		lookupStage(collectionUsers, "performedBy", "performer"),
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$performer", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$project", Value: bson.M{"performer.password": 0, "performer.refreshToken": 0}}},
	)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate audit logs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoAuditLog
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit logs: %w", err)
	}

	out := make([]domain.AuditLogView, 0, len(docs))
	for _, d := range docs {
		view := domain.AuditLogView{AuditLogEntry: domain.AuditLogEntry{
			ID:            d.ID.Hex(),
			Action:        domain.AuditAction(d.Action),
			Entity:        domain.AuditEntity(d.Entity),
			PerformedBy:   hexOrEmpty(d.PerformedBy),
			PerformerRole: domain.Role(d.Role),
			Timestamp:     d.Timestamp.UTC(),
			Metadata:      map[string]any(d.Metadata),
		}}
		if d.EntityID != nil {
			id := d.EntityID.Hex()
			view.EntityID = &id
		}
		if view.Metadata == nil {
			view.Metadata = map[string]any{}
		}
		if p := d.Performer; p != nil {
			view.Performer = &domain.UserSummary{ID: p.ID.Hex(), Name: p.Name, Email: p.Email}
		}
		out = append(out, view)
	}
	return out, nil
}

// EnsureIndexes creates the indexes backing the newest-first listing.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "performedBy", Value: 1}, {Key: "timestamp", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("audit log indexes: %w", err)
	}
	return nil
}

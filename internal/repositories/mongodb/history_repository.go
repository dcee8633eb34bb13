package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure HistoryRepository implements the interface
var _ repositories.HistoryRepository = (*HistoryRepository)(nil)

// HistoryRepository handles MongoDB operations for HistoryRecord
type HistoryRepository struct {
	collection *mongo.Collection
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{
		collection: db.Collection("volunteer_history"),
	}
}

// EnsureIndexes creates the (userId, eventId) lookup index. The index is
// non-unique; at-most-one semantics come from the Upsert below.
func (r *HistoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "eventId", Value: 1}},
	})
	return err
}

// Upsert inserts a history record for the pair unless one already exists.
// $setOnInsert keeps an existing record untouched, so completion is
// idempotent.
func (r *HistoryRepository) Upsert(ctx context.Context, record *models.HistoryRecord) error {
	now := time.Now()
	filter := bson.M{"userId": record.UserID, "eventId": record.EventID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"userId":            record.UserID,
			"eventId":           record.EventID,
			"participationDate": record.ParticipationDate,
			"createdAt":         now,
			"updatedAt":         now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByPair finds the history record for a (userId, eventId) pair
func (r *HistoryRepository) FindByPair(ctx context.Context, userID, eventID primitive.ObjectID) (*models.HistoryRecord, error) {
	var record models.HistoryRecord
	filter := bson.M{"userId": userID, "eventId": eventID}
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByUserID retrieves a volunteer's history, most recent participation first
func (r *HistoryRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.HistoryRecord, error) {
	var records []*models.HistoryRecord
	opts := options.Find().SetSort(bson.D{{Key: "participationDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.HistoryRecord{}
	}
	return records, nil
}

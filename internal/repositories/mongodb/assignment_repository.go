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

// Compile-time check to ensure AssignmentRepository implements the interface
var _ repositories.AssignmentRepository = (*AssignmentRepository)(nil)

// AssignmentRepository handles MongoDB operations for Assignment
type AssignmentRepository struct {
	collection *mongo.Collection
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{
		collection: db.Collection("assignments"),
	}
}

// EnsureIndexes creates the unique (userId, eventId) index. Uniqueness on
// the pair is enforced here, not by an application pre-check, so two
// concurrent creates surface as a duplicate rather than a double write.
func (r *AssignmentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "eventId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new assignment
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	assignment.ID = primitive.NewObjectID()
	if assignment.AssignedDate.IsZero() {
		assignment.AssignedDate = time.Now()
	}
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, assignment)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrDuplicateAssignment
	}
	return err
}

// FindByID finds an assignment by ID
func (r *AssignmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindByUserID retrieves a volunteer's assignments, newest first
func (r *AssignmentRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	opts := options.Find().SetSort(bson.D{{Key: "assignedDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []*models.Assignment{}
	}
	return assignments, nil
}

// FindAll retrieves assignments, optionally filtered by status, newest first
func (r *AssignmentRepository) FindAll(ctx context.Context, status models.AssignmentStatus) ([]*models.Assignment, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	var assignments []*models.Assignment
	opts := options.Find().SetSort(bson.D{{Key: "assignedDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []*models.Assignment{}
	}
	return assignments, nil
}

// UpdateStatus sets the status of an assignment and returns the updated record
func (r *AssignmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AssignmentStatus) (*models.Assignment, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var assignment models.Assignment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&assignment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Delete removes an assignment. The ledger only uses this to roll back an
// insert that lost the capacity race.
func (r *AssignmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

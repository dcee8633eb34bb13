package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repositories.HistoryRepository = (*HistoryRepository)(nil)

// HistoryRepository is an in-memory HistoryRepository
type HistoryRepository struct {
	mu      sync.RWMutex
	records map[pairKey]models.HistoryRecord
}

// NewHistoryRepository creates an empty in-memory history store
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{records: make(map[pairKey]models.HistoryRecord)}
}

// Upsert inserts unless a record for the pair already exists
func (r *HistoryRepository) Upsert(ctx context.Context, record *models.HistoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{record.UserID, record.EventID}
	if _, exists := r.records[key]; exists {
		return nil
	}
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	r.records[key] = *record
	return nil
}

func (r *HistoryRepository) FindByPair(ctx context.Context, userID, eventID primitive.ObjectID) (*models.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[pairKey{userID, eventID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &rec, nil
}

func (r *HistoryRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := []*models.HistoryRecord{}
	for key, rec := range r.records {
		if key.userID == userID {
			record := rec
			records = append(records, &record)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ParticipationDate.After(records[j].ParticipationDate)
	})
	return records, nil
}

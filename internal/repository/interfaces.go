package repository

import (
	"context"
	"errors"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

// ErrRecordNotFound is returned when a lookup by id finds nothing
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicate is returned when Create or Append is given an id the store
// already holds. Stored records are never overwritten.
var ErrDuplicate = errors.New("record already exists")

// ObservationRepository defines the interface for emotion observation data access.
// Observations are append-only; Delete removes a record without touching links
// that reference it.
type ObservationRepository interface {
	Create(ctx context.Context, obs *models.EmotionObservation) (*models.EmotionObservation, error)
	GetByID(ctx context.Context, id string) (*models.EmotionObservation, error)
	List(ctx context.Context) ([]models.EmotionObservation, error)
	ListByUserID(ctx context.Context, userID string) ([]models.EmotionObservation, error)
	Delete(ctx context.Context, id string) error
}

// ActivityResultRepository defines the interface for activity result data access
type ActivityResultRepository interface {
	Create(ctx context.Context, result *models.ActivityResult) (*models.ActivityResult, error)
	GetByID(ctx context.Context, id string) (*models.ActivityResult, error)
	List(ctx context.Context) ([]models.ActivityResult, error)
	ListByUserID(ctx context.Context, userID string) ([]models.ActivityResult, error)
	Delete(ctx context.Context, id string) error
}

// LinkRepository defines the interface for emotion-activity link data access.
// Links can only be appended and read in bulk.
type LinkRepository interface {
	Append(ctx context.Context, link *models.EmotionActivityLink) (*models.EmotionActivityLink, error)
	List(ctx context.Context) ([]models.EmotionActivityLink, error)
}

// RecommendationRepository defines the interface for recommendation data access.
// UpdateOutcome is the only mutation allowed after creation.
type RecommendationRepository interface {
	BulkCreate(ctx context.Context, recs []models.Recommendation) error
	GetByID(ctx context.Context, id string) (*models.Recommendation, error)
	ListByUserID(ctx context.Context, userID string) ([]models.Recommendation, error)
	UpdateOutcome(ctx context.Context, id string, applied bool, outcome *string) (*models.Recommendation, error)
}

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// Get retrieves an existing idempotency record, or nil if none exists
	Get(ctx context.Context, key, route, userID string) (*models.IdempotencyRecord, error)
	// Store saves a new idempotency record
	Store(ctx context.Context, record *models.IdempotencyRecord) error
}

// Store bundles the repositories backing one storage driver.
//
// None of the drivers provide a transaction spanning several repositories:
// a link is validated against the observation and activity stores and then
// appended in a separate step, so a concurrent delete can leave a dangling
// link and concurrent appends are not ordered. Readers treat dangling
// references as noise.
type Store struct {
	Observations    ObservationRepository
	Activities      ActivityResultRepository
	Links           LinkRepository
	Recommendations RecommendationRepository

	closeFn func() error
}

// Close releases the resources held by the underlying driver
func (s *Store) Close() error {
	if s == nil || s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

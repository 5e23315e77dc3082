package repository

import (
	"context"
	"sync"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

// arena is an id-keyed collection that remembers insertion order.
// The mutex only protects the map itself; it does not make multi-step
// operations across arenas atomic.
type arena[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

func newArena[T any]() *arena[T] {
	return &arena[T]{items: make(map[string]T)}
}

// insert adds v under id, refusing to replace an existing record
func (a *arena[T]) insert(id string, v T) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.items[id]; exists {
		return ErrDuplicate
	}
	a.items[id] = v
	a.order = append(a.order, id)
	return nil
}

func (a *arena[T]) put(id string, v T) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.items[id]; !exists {
		a.order = append(a.order, id)
	}
	a.items[id] = v
}

func (a *arena[T]) get(id string) (T, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.items[id]
	return v, ok
}

func (a *arena[T]) remove(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.items[id]; !ok {
		return false
	}
	delete(a.items, id)
	for i, existing := range a.order {
		if existing == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

func (a *arena[T]) all(keep func(T) bool) []T {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]T, 0, len(a.order))
	for _, id := range a.order {
		v := a.items[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// NewMemoryStore creates a Store backed by in-process arenas. Data is lost
// when the process exits.
func NewMemoryStore() *Store {
	return &Store{
		Observations:    &memoryObservationRepository{arena: newArena[models.EmotionObservation]()},
		Activities:      &memoryActivityRepository{arena: newArena[models.ActivityResult]()},
		Links:           &memoryLinkRepository{arena: newArena[models.EmotionActivityLink]()},
		Recommendations: &memoryRecommendationRepository{arena: newArena[models.Recommendation]()},
	}
}

type memoryObservationRepository struct {
	arena *arena[models.EmotionObservation]
}

func (r *memoryObservationRepository) Create(ctx context.Context, obs *models.EmotionObservation) (*models.EmotionObservation, error) {
	if err := r.arena.insert(obs.ID, *obs); err != nil {
		return nil, err
	}
	created := *obs
	return &created, nil
}

func (r *memoryObservationRepository) GetByID(ctx context.Context, id string) (*models.EmotionObservation, error) {
	obs, ok := r.arena.get(id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &obs, nil
}

func (r *memoryObservationRepository) List(ctx context.Context) ([]models.EmotionObservation, error) {
	return r.arena.all(nil), nil
}

func (r *memoryObservationRepository) ListByUserID(ctx context.Context, userID string) ([]models.EmotionObservation, error) {
	return r.arena.all(func(o models.EmotionObservation) bool { return o.UserID == userID }), nil
}

func (r *memoryObservationRepository) Delete(ctx context.Context, id string) error {
	if !r.arena.remove(id) {
		return ErrRecordNotFound
	}
	return nil
}

type memoryActivityRepository struct {
	arena *arena[models.ActivityResult]
}

func (r *memoryActivityRepository) Create(ctx context.Context, result *models.ActivityResult) (*models.ActivityResult, error) {
	if err := r.arena.insert(result.ID, *result); err != nil {
		return nil, err
	}
	created := *result
	return &created, nil
}

func (r *memoryActivityRepository) GetByID(ctx context.Context, id string) (*models.ActivityResult, error) {
	result, ok := r.arena.get(id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &result, nil
}

func (r *memoryActivityRepository) List(ctx context.Context) ([]models.ActivityResult, error) {
	return r.arena.all(nil), nil
}

func (r *memoryActivityRepository) ListByUserID(ctx context.Context, userID string) ([]models.ActivityResult, error) {
	return r.arena.all(func(a models.ActivityResult) bool { return a.UserID == userID }), nil
}

func (r *memoryActivityRepository) Delete(ctx context.Context, id string) error {
	if !r.arena.remove(id) {
		return ErrRecordNotFound
	}
	return nil
}

type memoryLinkRepository struct {
	arena *arena[models.EmotionActivityLink]
}

func (r *memoryLinkRepository) Append(ctx context.Context, link *models.EmotionActivityLink) (*models.EmotionActivityLink, error) {
	if err := r.arena.insert(link.ID, *link); err != nil {
		return nil, err
	}
	created := *link
	return &created, nil
}

func (r *memoryLinkRepository) List(ctx context.Context) ([]models.EmotionActivityLink, error) {
	return r.arena.all(nil), nil
}

type memoryRecommendationRepository struct {
	arena *arena[models.Recommendation]
	// serializes read-modify-write in UpdateOutcome
	updateMu sync.Mutex
}

func (r *memoryRecommendationRepository) BulkCreate(ctx context.Context, recs []models.Recommendation) error {
	for _, rec := range recs {
		r.arena.put(rec.ID, rec)
	}
	return nil
}

func (r *memoryRecommendationRepository) GetByID(ctx context.Context, id string) (*models.Recommendation, error) {
	rec, ok := r.arena.get(id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &rec, nil
}

func (r *memoryRecommendationRepository) ListByUserID(ctx context.Context, userID string) ([]models.Recommendation, error) {
	return r.arena.all(func(rec models.Recommendation) bool { return rec.UserID == userID }), nil
}

func (r *memoryRecommendationRepository) UpdateOutcome(ctx context.Context, id string, applied bool, outcome *string) (*models.Recommendation, error) {
	r.updateMu.Lock()
	defer r.updateMu.Unlock()

	rec, ok := r.arena.get(id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	rec.Applied = applied
	rec.Outcome = outcome
	r.arena.put(id, rec)
	return &rec, nil
}

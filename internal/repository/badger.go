package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

// Key prefixes for each collection. Records are stored as JSON documents
// under <prefix><id>; with UUIDv7 ids the key order is creation order.
const (
	prefixObservation    byte = 0x01
	prefixActivity       byte = 0x02
	prefixLink           byte = 0x03
	prefixRecommendation byte = 0x04
)

// BadgerOptions configures the badger-backed store
type BadgerOptions struct {
	// Dir is the data directory. Ignored when InMemory is set.
	Dir string
	// InMemory keeps all data in RAM; used by tests.
	InMemory bool
	// SyncWrites forces an fsync after every write.
	SyncWrites bool
}

// NewBadgerStore opens (or creates) a badger database and returns a Store
// whose repositories share it.
func NewBadgerStore(opts BadgerOptions) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Dir).
		WithLogger(nil).
		WithSyncWrites(opts.SyncWrites)
	if opts.InMemory {
		badgerOpts = badgerOpts.WithDir("").WithValueDir("").WithInMemory(true)
	} else {
		badgerOpts = badgerOpts.
			WithMemTableSize(16 << 20).
			WithValueLogFileSize(64 << 20).
			WithNumMemtables(2).
			WithBlockCacheSize(32 << 20)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &Store{
		Observations:    &badgerObservationRepository{db: db},
		Activities:      &badgerActivityRepository{db: db},
		Links:           &badgerLinkRepository{db: db},
		Recommendations: &badgerRecommendationRepository{db: db},
		closeFn:         db.Close,
	}, nil
}

func recordKey(prefix byte, id string) []byte {
	return append([]byte{prefix}, []byte(id)...)
}

// insertRecord stores v under <prefix><id> unless the key already exists
func insertRecord[T any](db *badger.DB, prefix byte, id string, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", id, err)
	}
	return db.Update(func(txn *badger.Txn) error {
		key := recordKey(prefix, id)
		_, err := txn.Get(key)
		if err == nil {
			return ErrDuplicate
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, data)
	})
}

func getRecord[T any](txn *badger.Txn, prefix byte, id string) (*T, error) {
	item, err := txn.Get(recordKey(prefix, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &v)
	}); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	return &v, nil
}

func viewRecord[T any](db *badger.DB, prefix byte, id string) (*T, error) {
	var out *T
	err := db.View(func(txn *badger.Txn) error {
		v, err := getRecord[T](txn, prefix, id)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// scanRecords iterates every record under prefix. A record that fails to
// decode aborts the scan.
func scanRecords[T any](db *badger.DB, prefix byte, keep func(*T) bool) ([]T, error) {
	out := make([]T, 0)
	err := db.View(func(txn *badger.Txn) error {
		p := []byte{prefix}
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			var v T
			item := it.Item()
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &v)
			}); err != nil {
				return fmt.Errorf("failed to decode record %s: %w", item.Key()[1:], err)
			}
			if keep == nil || keep(&v) {
				out = append(out, v)
			}
		}
		return nil
	})
	return out, err
}

func deleteRecord(db *badger.DB, prefix byte, id string) error {
	return db.Update(func(txn *badger.Txn) error {
		key := recordKey(prefix, id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

type badgerObservationRepository struct {
	db *badger.DB
}

func (r *badgerObservationRepository) Create(ctx context.Context, obs *models.EmotionObservation) (*models.EmotionObservation, error) {
	if err := insertRecord(r.db, prefixObservation, obs.ID, obs); err != nil {
		return nil, fmt.Errorf("failed to create observation: %w", err)
	}
	created := *obs
	return &created, nil
}

func (r *badgerObservationRepository) GetByID(ctx context.Context, id string) (*models.EmotionObservation, error) {
	return viewRecord[models.EmotionObservation](r.db, prefixObservation, id)
}

func (r *badgerObservationRepository) List(ctx context.Context) ([]models.EmotionObservation, error) {
	return scanRecords[models.EmotionObservation](r.db, prefixObservation, nil)
}

func (r *badgerObservationRepository) ListByUserID(ctx context.Context, userID string) ([]models.EmotionObservation, error) {
	return scanRecords(r.db, prefixObservation, func(o *models.EmotionObservation) bool {
		return o.UserID == userID
	})
}

func (r *badgerObservationRepository) Delete(ctx context.Context, id string) error {
	return deleteRecord(r.db, prefixObservation, id)
}

type badgerActivityRepository struct {
	db *badger.DB
}

func (r *badgerActivityRepository) Create(ctx context.Context, result *models.ActivityResult) (*models.ActivityResult, error) {
	if err := insertRecord(r.db, prefixActivity, result.ID, result); err != nil {
		return nil, fmt.Errorf("failed to create activity result: %w", err)
	}
	created := *result
	return &created, nil
}

func (r *badgerActivityRepository) GetByID(ctx context.Context, id string) (*models.ActivityResult, error) {
	return viewRecord[models.ActivityResult](r.db, prefixActivity, id)
}

func (r *badgerActivityRepository) List(ctx context.Context) ([]models.ActivityResult, error) {
	return scanRecords[models.ActivityResult](r.db, prefixActivity, nil)
}

func (r *badgerActivityRepository) ListByUserID(ctx context.Context, userID string) ([]models.ActivityResult, error) {
	return scanRecords(r.db, prefixActivity, func(a *models.ActivityResult) bool {
		return a.UserID == userID
	})
}

func (r *badgerActivityRepository) Delete(ctx context.Context, id string) error {
	return deleteRecord(r.db, prefixActivity, id)
}

type badgerLinkRepository struct {
	db *badger.DB
}

func (r *badgerLinkRepository) Append(ctx context.Context, link *models.EmotionActivityLink) (*models.EmotionActivityLink, error) {
	if err := insertRecord(r.db, prefixLink, link.ID, link); err != nil {
		return nil, fmt.Errorf("failed to append link: %w", err)
	}
	created := *link
	return &created, nil
}

func (r *badgerLinkRepository) List(ctx context.Context) ([]models.EmotionActivityLink, error) {
	return scanRecords[models.EmotionActivityLink](r.db, prefixLink, nil)
}

type badgerRecommendationRepository struct {
	db *badger.DB
}

func (r *badgerRecommendationRepository) BulkCreate(ctx context.Context, recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	wb := r.db.NewWriteBatch()
	defer wb.Cancel()

	for i := range recs {
		data, err := json.Marshal(&recs[i])
		if err != nil {
			return fmt.Errorf("failed to encode recommendation %s: %w", recs[i].ID, err)
		}
		if err := wb.Set(recordKey(prefixRecommendation, recs[i].ID), data); err != nil {
			return fmt.Errorf("failed to bulk create recommendations: %w", err)
		}
	}
	return wb.Flush()
}

func (r *badgerRecommendationRepository) GetByID(ctx context.Context, id string) (*models.Recommendation, error) {
	return viewRecord[models.Recommendation](r.db, prefixRecommendation, id)
}

func (r *badgerRecommendationRepository) ListByUserID(ctx context.Context, userID string) ([]models.Recommendation, error) {
	return scanRecords(r.db, prefixRecommendation, func(rec *models.Recommendation) bool {
		return rec.UserID == userID
	})
}

func (r *badgerRecommendationRepository) UpdateOutcome(ctx context.Context, id string, applied bool, outcome *string) (*models.Recommendation, error) {
	var updated *models.Recommendation
	err := r.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord[models.Recommendation](txn, prefixRecommendation, id)
		if err != nil {
			return err
		}
		rec.Applied = applied
		rec.Outcome = outcome

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := txn.Set(recordKey(prefixRecommendation, id), data); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

// OpenGorm opens a relational database. driver is "postgres" or "sqlite";
// for sqlite the dsn is a file path or ":memory:".
func OpenGorm(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// a single connection keeps ":memory:" databases shared
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// NewGormStore migrates the schema and returns a Store backed by db
func NewGormStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&observationRow{}, &activityRow{}, &linkRow{}, &recommendationRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{
		Observations:    &gormObservationRepository{db: db},
		Activities:      &gormActivityRepository{db: db},
		Links:           &gormLinkRepository{db: db},
		Recommendations: &gormRecommendationRepository{db: db},
		closeFn: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

func translateGormError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

type gormObservationRepository struct {
	db *gorm.DB
}

func (r *gormObservationRepository) Create(ctx context.Context, obs *models.EmotionObservation) (*models.EmotionObservation, error) {
	row := observationToRow(obs)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create observation: %w", translateGormError(err))
	}
	created := row.toModel()
	return &created, nil
}

func (r *gormObservationRepository) GetByID(ctx context.Context, id string) (*models.EmotionObservation, error) {
	var row observationRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err)
	}
	obs := row.toModel()
	return &obs, nil
}

func (r *gormObservationRepository) List(ctx context.Context) ([]models.EmotionObservation, error) {
	return r.find(ctx, r.db.WithContext(ctx))
}

func (r *gormObservationRepository) ListByUserID(ctx context.Context, userID string) ([]models.EmotionObservation, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *gormObservationRepository) find(ctx context.Context, q *gorm.DB) ([]models.EmotionObservation, error) {
	var rows []observationRow
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	out := make([]models.EmotionObservation, len(rows))
	for i := range rows {
		out[i] = rows[i].toModel()
	}
	return out, nil
}

func (r *gormObservationRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&observationRow{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete observation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

type gormActivityRepository struct {
	db *gorm.DB
}

func (r *gormActivityRepository) Create(ctx context.Context, result *models.ActivityResult) (*models.ActivityResult, error) {
	row := activityToRow(result)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create activity result: %w", translateGormError(err))
	}
	created := row.toModel()
	return &created, nil
}

func (r *gormActivityRepository) GetByID(ctx context.Context, id string) (*models.ActivityResult, error) {
	var row activityRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err)
	}
	result := row.toModel()
	return &result, nil
}

func (r *gormActivityRepository) List(ctx context.Context) ([]models.ActivityResult, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *gormActivityRepository) ListByUserID(ctx context.Context, userID string) ([]models.ActivityResult, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *gormActivityRepository) find(q *gorm.DB) ([]models.ActivityResult, error) {
	var rows []activityRow
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity results: %w", err)
	}
	out := make([]models.ActivityResult, len(rows))
	for i := range rows {
		out[i] = rows[i].toModel()
	}
	return out, nil
}

func (r *gormActivityRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&activityRow{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete activity result: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

type gormLinkRepository struct {
	db *gorm.DB
}

func (r *gormLinkRepository) Append(ctx context.Context, link *models.EmotionActivityLink) (*models.EmotionActivityLink, error) {
	row := linkToRow(link)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to append link: %w", translateGormError(err))
	}
	created := row.toModel()
	return &created, nil
}

func (r *gormLinkRepository) List(ctx context.Context) ([]models.EmotionActivityLink, error) {
	var rows []linkRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	out := make([]models.EmotionActivityLink, len(rows))
	for i := range rows {
		out[i] = rows[i].toModel()
	}
	return out, nil
}

type gormRecommendationRepository struct {
	db *gorm.DB
}

func (r *gormRecommendationRepository) BulkCreate(ctx context.Context, recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	rows := make([]*recommendationRow, len(recs))
	for i := range recs {
		rows[i] = recommendationToRow(&recs[i])
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to bulk create recommendations: %w", err)
	}
	return nil
}

func (r *gormRecommendationRepository) GetByID(ctx context.Context, id string) (*models.Recommendation, error) {
	var row recommendationRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err)
	}
	rec := row.toModel()
	return &rec, nil
}

func (r *gormRecommendationRepository) ListByUserID(ctx context.Context, userID string) ([]models.Recommendation, error) {
	var rows []recommendationRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	out := make([]models.Recommendation, len(rows))
	for i := range rows {
		out[i] = rows[i].toModel()
	}
	return out, nil
}

func (r *gormRecommendationRepository) UpdateOutcome(ctx context.Context, id string, applied bool, outcome *string) (*models.Recommendation, error) {
	var row recommendationRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return translateGormError(err)
		}
		row.Applied = applied
		row.Outcome = outcome
		return tx.Model(&recommendationRow{}).Where("id = ?", id).
			Select("applied", "outcome").
			Updates(map[string]any{"applied": applied, "outcome": outcome}).Error
	})
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update recommendation: %w", err)
	}
	rec := row.toModel()
	return &rec, nil
}

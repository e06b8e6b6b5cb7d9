package postgres

import (
	"context"

	"creditrisk/domain"

	"gorm.io/gorm"
)

type PredictionRepository struct {
	DB *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) (*PredictionRepository, error) {
	if err := db.AutoMigrate(&domain.PredictionEvent{}); err != nil {
		return nil, err
	}

	return &PredictionRepository{
		DB: db,
	}, nil
}

func (r *PredictionRepository) SaveEvent(ctx context.Context, event domain.PredictionEvent) error {
	return r.DB.WithContext(ctx).Create(&event).Error
}

func (r *PredictionRepository) RecentEvents(ctx context.Context, limit int) ([]domain.PredictionEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	var events []domain.PredictionEvent
	err := r.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"myTourGuide/domain"

	"gorm.io/gorm"
)

type CollectionRepository struct {
	DB *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{
		DB: db,
	}
}

func (r *CollectionRepository) Create(ctx context.Context, collection *domain.ScenicCollection) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(collection).Error; err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

func (r *CollectionRepository) FindByUserAndScenic(ctx context.Context, userID uint, scenicID uint64) (domain.ScenicCollection, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScenicCollection{}, fmt.Errorf("context error: %w", err)
	}

	var collection domain.ScenicCollection

	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND scenic_id = ?", userID, scenicID).
		First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ScenicCollection{}, errors.New("collection not found")
		}
		return domain.ScenicCollection{}, fmt.Errorf("failed to find collection: %w", err)
	}

	return collection, nil
}

func (r *CollectionRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.ScenicCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var collections []domain.ScenicCollection
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&collections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find collections: %w", err)
	}

	return collections, nil
}

func (r *CollectionRepository) FindAll(ctx context.Context) ([]domain.ScenicCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var collections []domain.ScenicCollection
	err := r.DB.WithContext(ctx).Find(&collections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find collections: %w", err)
	}

	return collections, nil
}

func (r *CollectionRepository) Delete(ctx context.Context, userID uint, scenicID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Where("user_id = ? AND scenic_id = ?", userID, scenicID).
		Delete(&domain.ScenicCollection{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete collection: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("collection not found")
	}

	return nil
}

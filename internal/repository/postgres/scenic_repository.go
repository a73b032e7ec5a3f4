package postgres

import (
	"context"
	"errors"
	"fmt"
	"myTourGuide/business/scenic"
	"myTourGuide/domain"

	"gorm.io/gorm"
)

type ScenicRepository struct {
	DB *gorm.DB
}

func NewScenicRepository(db *gorm.DB) *ScenicRepository {
	return &ScenicRepository{
		DB: db,
	}
}

func (r *ScenicRepository) Create(ctx context.Context, spot *domain.ScenicSpot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(spot).Error; err != nil {
		return fmt.Errorf("failed to create scenic spot: %w", err)
	}

	return nil
}

func (r *ScenicRepository) FindByID(ctx context.Context, id uint64) (domain.ScenicSpot, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScenicSpot{}, fmt.Errorf("context error: %w", err)
	}

	var spot domain.ScenicSpot

	err := r.DB.WithContext(ctx).First(&spot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ScenicSpot{}, errors.New("scenic spot not found")
		}
		return domain.ScenicSpot{}, fmt.Errorf("failed to find scenic spot: %w", err)
	}

	return spot, nil
}

func (r *ScenicRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.ScenicSpot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(ids) == 0 {
		return []domain.ScenicSpot{}, nil
	}

	var spots []domain.ScenicSpot
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&spots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find scenic spots: %w", err)
	}

	return spots, nil
}

func (r *ScenicRepository) FindAll(ctx context.Context) ([]domain.ScenicSpot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var spots []domain.ScenicSpot
	err := r.DB.WithContext(ctx).Find(&spots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find scenic spots: %w", err)
	}

	return spots, nil
}

// Search applies keyword, location and category filters with pagination.
func (r *ScenicRepository) Search(ctx context.Context, filter scenic.SearchFilter) ([]domain.ScenicSpot, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.ScenicSpot{})

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("name ILIKE ? OR location ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count scenic spots: %w", err)
	}

	switch filter.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var spots []domain.ScenicSpot
	err := query.
		Offset((filter.Page - 1) * filter.Size).
		Limit(filter.Size).
		Find(&spots).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search scenic spots: %w", err)
	}

	return spots, total, nil
}

func (r *ScenicRepository) Update(ctx context.Context, spot *domain.ScenicSpot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var existing domain.ScenicSpot
	if err := r.DB.WithContext(ctx).First(&existing, spot.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("scenic spot not found")
		}
		return fmt.Errorf("failed to find scenic spot: %w", err)
	}

	updates := map[string]any{
		"name":          spot.Name,
		"category_id":   spot.CategoryID,
		"location":      spot.Location,
		"description":   spot.Description,
		"image_url":     spot.ImageUrl,
		"price":         spot.Price,
		"opening_hours": spot.OpeningHours,
	}

	if err := r.DB.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update scenic spot: %w", err)
	}

	return nil
}

func (r *ScenicRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.ScenicSpot{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete scenic spot: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("scenic spot not found")
	}

	return nil
}

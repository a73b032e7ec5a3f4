package postgres

import (
	"context"
	"errors"
	"fmt"
	"myTourGuide/business/accommodation"
	"myTourGuide/domain"

	"gorm.io/gorm"
)

type AccommodationRepository struct {
	DB *gorm.DB
}

func NewAccommodationRepository(db *gorm.DB) *AccommodationRepository {
	return &AccommodationRepository{
		DB: db,
	}
}

func (r *AccommodationRepository) Create(ctx context.Context, accommodation *domain.Accommodation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(accommodation).Error; err != nil {
		return fmt.Errorf("failed to create accommodation: %w", err)
	}

	return nil
}

func (r *AccommodationRepository) FindByID(ctx context.Context, id uint64) (domain.Accommodation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Accommodation{}, fmt.Errorf("context error: %w", err)
	}

	var accommodation domain.Accommodation

	err := r.DB.WithContext(ctx).First(&accommodation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Accommodation{}, errors.New("accommodation not found")
		}
		return domain.Accommodation{}, fmt.Errorf("failed to find accommodation: %w", err)
	}

	return accommodation, nil
}

// Search applies keyword, scenic, type and star filters with pagination.
// Price sorts order on the numeric lower bound of the price_range string.
func (r *AccommodationRepository) Search(ctx context.Context, filter accommodation.SearchFilter) ([]domain.Accommodation, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Accommodation{})

	if filter.Keyword != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Keyword+"%")
	}

	if filter.ScenicID != 0 {
		query = query.Where("scenic_id = ?", filter.ScenicID)
	}

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if filter.MinStar > 0 {
		query = query.Where("star_level >= ?", filter.MinStar)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count accommodations: %w", err)
	}

	switch filter.SortBy {
	case "price_asc":
		query = query.Order("NULLIF(split_part(price_range, '-', 1), '')::numeric ASC NULLS LAST")
	case "price_desc":
		query = query.Order("NULLIF(split_part(price_range, '-', 1), '')::numeric DESC NULLS LAST")
	default:
		query = query.Order("star_level DESC")
	}

	var accommodations []domain.Accommodation
	err := query.
		Offset((filter.Page - 1) * filter.Size).
		Limit(filter.Size).
		Find(&accommodations).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search accommodations: %w", err)
	}

	return accommodations, total, nil
}

func (r *AccommodationRepository) Update(ctx context.Context, accommodation *domain.Accommodation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.Accommodation{}).
		Where("id = ?", accommodation.ID).
		Updates(map[string]any{
			"name":          accommodation.Name,
			"type":          accommodation.Type,
			"address":       accommodation.Address,
			"scenic_id":     accommodation.ScenicID,
			"description":   accommodation.Description,
			"contact_phone": accommodation.ContactPhone,
			"price_range":   accommodation.PriceRange,
			"star_level":    accommodation.StarLevel,
			"image_url":     accommodation.ImageUrl,
			"features":      accommodation.Features,
			"distance":      accommodation.Distance,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update accommodation: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("accommodation not found")
	}

	return nil
}

func (r *AccommodationRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Accommodation{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete accommodation: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("accommodation not found")
	}

	return nil
}

// Types lists the distinct accommodation types in the catalog.
func (r *AccommodationRepository) Types(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var types []string
	err := r.DB.WithContext(ctx).
		Model(&domain.Accommodation{}).
		Where("type <> ''").
		Distinct().
		Order("type ASC").
		Pluck("type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accommodation types: %w", err)
	}

	return types, nil
}

package accommodation

import (
	"context"
	"errors"
	"fmt"

	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
)

// SearchFilter narrows and orders the accommodation listing. Keyword
// matches the name; SortBy is one of price_asc, price_desc, star_desc
// (highest star level first is the default).
type SearchFilter struct {
	Keyword  string
	ScenicID uint64
	Type     string
	MinStar  float64
	SortBy   string
	Page     int
	Size     int
}

// AccommodationRepository contract interface
type AccommodationRepository interface {
	Create(ctx context.Context, accommodation *domain.Accommodation) error
	FindByID(ctx context.Context, id uint64) (domain.Accommodation, error)
	Search(ctx context.Context, filter SearchFilter) ([]domain.Accommodation, int64, error)
	Update(ctx context.Context, accommodation *domain.Accommodation) error
	Delete(ctx context.Context, id uint64) error
	Types(ctx context.Context) ([]string, error)
}

// ScenicChecker resolves the spot an accommodation is attached to.
type ScenicChecker interface {
	FindByID(ctx context.Context, id uint64) (domain.ScenicSpot, error)
}

type accommodationService struct {
	accommodationRepo AccommodationRepository
	scenicRepo        ScenicChecker
}

func NewAccommodationService(accommodationRepo AccommodationRepository, scenicRepo ScenicChecker) *accommodationService {
	return &accommodationService{
		accommodationRepo: accommodationRepo,
		scenicRepo:        scenicRepo,
	}
}

type AccommodationPage struct {
	Records []domain.Accommodation `json:"records"`
	Total   int64                  `json:"total"`
	Page    int                    `json:"page"`
	Size    int                    `json:"size"`
}

func (s *accommodationService) GetAccommodations(ctx context.Context, filter SearchFilter) (AccommodationPage, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing accommodations")
		return AccommodationPage{}, fmt.Errorf("context error: %w", err)
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Size <= 0 {
		filter.Size = 10
	}

	accommodations, total, err := s.accommodationRepo.Search(ctx, filter)
	if err != nil {
		logger.Error("Failed to search accommodations", err)
		return AccommodationPage{}, err
	}

	s.fillScenicNames(ctx, accommodations)

	return AccommodationPage{Records: accommodations, Total: total, Page: filter.Page, Size: filter.Size}, nil
}

func (s *accommodationService) GetAccommodationByID(ctx context.Context, id uint64) (*domain.Accommodation, error) {
	if id == 0 {
		logger.Error("invalid accommodation id")
		return nil, errors.New("invalid accommodation id")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	accommodation, err := s.accommodationRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find accommodation by id", err)
		return nil, err
	}

	records := []domain.Accommodation{accommodation}
	s.fillScenicNames(ctx, records)

	return &records[0], nil
}

// fillScenicNames is best effort; a missing spot leaves the name blank.
func (s *accommodationService) fillScenicNames(ctx context.Context, accommodations []domain.Accommodation) {
	names := make(map[uint64]string)
	for i := range accommodations {
		scenicID := accommodations[i].ScenicID
		if scenicID == 0 {
			continue
		}
		name, ok := names[scenicID]
		if !ok {
			spot, err := s.scenicRepo.FindByID(ctx, scenicID)
			if err == nil {
				name = spot.Name
			}
			names[scenicID] = name
		}
		accommodations[i].ScenicName = name
	}
}

func (s *accommodationService) GetAccommodationTypes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	types, err := s.accommodationRepo.Types(ctx)
	if err != nil {
		logger.Error("failed to list accommodation types", err)
		return nil, err
	}

	return types, nil
}

func (s *accommodationService) CreateAccommodation(ctx context.Context, accommodation *domain.Accommodation) (*domain.Accommodation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if accommodation.Name == "" {
		logger.Error("Invalid accommodation data: name is required")
		return nil, errors.New("accommodation name is required")
	}

	if accommodation.StarLevel < 0 || accommodation.StarLevel > 5 {
		logger.Error("Invalid accommodation data: star level out of range")
		return nil, errors.New("star level must be between 0 and 5")
	}

	if accommodation.ScenicID != 0 {
		if _, err := s.scenicRepo.FindByID(ctx, accommodation.ScenicID); err != nil {
			logger.Error("scenic spot not found", err)
			return nil, errors.New("scenic spot not found")
		}
	}

	if err := s.accommodationRepo.Create(ctx, accommodation); err != nil {
		logger.Error("failed to create accommodation", err)
		return nil, fmt.Errorf("failed to create accommodation: %w", err)
	}

	logger.Info("accommodation created successfully")

	return accommodation, nil
}

func (s *accommodationService) UpdateAccommodation(ctx context.Context, accommodation *domain.Accommodation) (*domain.Accommodation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if accommodation.ID == 0 {
		logger.Error("Invalid accommodation data: ID is required")
		return nil, errors.New("accommodation ID is required")
	}

	if accommodation.Name == "" {
		logger.Error("Invalid accommodation data: name is required")
		return nil, errors.New("accommodation name is required")
	}

	if accommodation.StarLevel < 0 || accommodation.StarLevel > 5 {
		logger.Error("Invalid accommodation data: star level out of range")
		return nil, errors.New("star level must be between 0 and 5")
	}

	// Verify accommodation exists
	if _, err := s.accommodationRepo.FindByID(ctx, accommodation.ID); err != nil {
		logger.Error("accommodation not found", err)
		return nil, errors.New("accommodation not found")
	}

	if accommodation.ScenicID != 0 {
		if _, err := s.scenicRepo.FindByID(ctx, accommodation.ScenicID); err != nil {
			logger.Error("scenic spot not found", err)
			return nil, errors.New("scenic spot not found")
		}
	}

	if err := s.accommodationRepo.Update(ctx, accommodation); err != nil {
		logger.Error("failed to update accommodation", err)
		return nil, fmt.Errorf("failed to update accommodation: %w", err)
	}

	updated, err := s.accommodationRepo.FindByID(ctx, accommodation.ID)
	if err != nil {
		logger.Error("failed to fetch updated accommodation", err)
		return nil, fmt.Errorf("failed to fetch updated accommodation: %w", err)
	}

	logger.Info("accommodation updated successfully")

	return &updated, nil
}

func (s *accommodationService) DeleteAccommodation(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid accommodation id when deleting")
		return errors.New("invalid accommodation id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.accommodationRepo.FindByID(ctx, id); err != nil {
		logger.Error("accommodation not found", err)
		return errors.New("accommodation not found")
	}

	if err := s.accommodationRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete accommodation", err)
		return fmt.Errorf("failed to delete accommodation: %w", err)
	}

	logger.Info("accommodation deleted successfully")

	return nil
}

package scenic

import (
	"context"
	"errors"
	"fmt"

	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
)

// SearchFilter narrows and orders the catalog listing. Keyword matches
// name, location and description; SortBy is one of price_asc, price_desc,
// create_time_desc (newest first is the default).
type SearchFilter struct {
	Keyword    string
	Location   string
	CategoryID uint64
	SortBy     string
	Page       int
	Size       int
}

type RatingStats struct {
	Average float64
	Count   int
}

// ScenicRepository contract interface
type ScenicRepository interface {
	Create(ctx context.Context, spot *domain.ScenicSpot) error
	FindByID(ctx context.Context, id uint64) (domain.ScenicSpot, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.ScenicSpot, error)
	FindAll(ctx context.Context) ([]domain.ScenicSpot, error)
	Search(ctx context.Context, filter SearchFilter) ([]domain.ScenicSpot, int64, error)
	Update(ctx context.Context, spot *domain.ScenicSpot) error
	Delete(ctx context.Context, id uint64) error
}

// CategoryRepository is the subset of the category store this service needs.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.ScenicCategory, error)
}

// RatingStatsRepository aggregates comment ratings per scenic spot.
type RatingStatsRepository interface {
	RatingStats(ctx context.Context, scenicIDs []uint64) (map[uint64]RatingStats, error)
}

type scenicService struct {
	scenicRepo   ScenicRepository
	categoryRepo CategoryRepository
	statsRepo    RatingStatsRepository
}

func NewScenicService(
	scenicRepo ScenicRepository,
	categoryRepo CategoryRepository,
	statsRepo RatingStatsRepository,
) *scenicService {
	return &scenicService{
		scenicRepo:   scenicRepo,
		categoryRepo: categoryRepo,
		statsRepo:    statsRepo,
	}
}

type SpotPage struct {
	Records []domain.ScenicSpot `json:"records"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	Size    int                 `json:"size"`
}

func (s *scenicService) GetScenicSpots(ctx context.Context, filter SearchFilter) (SpotPage, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing scenic spots")
		return SpotPage{}, fmt.Errorf("context error: %w", err)
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Size <= 0 {
		filter.Size = 10
	}

	spots, total, err := s.scenicRepo.Search(ctx, filter)
	if err != nil {
		logger.Error("Failed to search scenic spots", err)
		return SpotPage{}, err
	}

	if err := s.FillRatings(ctx, spots); err != nil {
		logger.Warn("Failed to fill rating stats", err)
	}

	return SpotPage{Records: spots, Total: total, Page: filter.Page, Size: filter.Size}, nil
}

func (s *scenicService) GetScenicSpotByID(ctx context.Context, id uint64) (*domain.ScenicSpot, error) {
	if id == 0 {
		logger.Error("invalid scenic spot id")
		return nil, errors.New("invalid scenic spot id")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	spot, err := s.scenicRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find scenic spot by id", err)
		return nil, err
	}

	spots := []domain.ScenicSpot{spot}
	if err := s.FillRatings(ctx, spots); err != nil {
		logger.Warn("Failed to fill rating stats", err)
	}

	return &spots[0], nil
}

// GetScenicSpotsByIDs preserves the order of ids; unknown IDs are skipped.
// Used to enrich ranked recommendation lists.
func (s *scenicService) GetScenicSpotsByIDs(ctx context.Context, ids []uint64) ([]domain.ScenicSpot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.ScenicSpot{}, nil
	}

	spots, err := s.scenicRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Error("failed to find scenic spots by ids", err)
		return nil, err
	}

	byID := make(map[uint64]domain.ScenicSpot, len(spots))
	for _, spot := range spots {
		byID[spot.ID] = spot
	}

	ordered := make([]domain.ScenicSpot, 0, len(ids))
	for _, id := range ids {
		if spot, ok := byID[id]; ok {
			ordered = append(ordered, spot)
		}
	}

	if err := s.FillRatings(ctx, ordered); err != nil {
		logger.Warn("Failed to fill rating stats", err)
	}

	return ordered, nil
}

// FillRatings computes average rating and comment count from the comments
// table; spots without comments keep zero values.
func (s *scenicService) FillRatings(ctx context.Context, spots []domain.ScenicSpot) error {
	if len(spots) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(spots))
	for _, spot := range spots {
		ids = append(ids, spot.ID)
	}

	stats, err := s.statsRepo.RatingStats(ctx, ids)
	if err != nil {
		return err
	}

	for i := range spots {
		if st, ok := stats[spots[i].ID]; ok {
			spots[i].Rating = st.Average
			spots[i].CommentCount = st.Count
		}
	}

	return nil
}

func (s *scenicService) CreateScenicSpot(ctx context.Context, spot *domain.ScenicSpot) (*domain.ScenicSpot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if spot.Name == "" {
		logger.Error("Invalid scenic spot data: name is required")
		return nil, errors.New("scenic spot name is required")
	}

	if spot.Price < 0 {
		logger.Error("Invalid scenic spot data: price cannot be negative")
		return nil, errors.New("price cannot be negative")
	}

	if spot.CategoryID != 0 {
		if _, err := s.categoryRepo.FindByID(ctx, spot.CategoryID); err != nil {
			logger.Error("scenic category not found", err)
			return nil, errors.New("scenic category not found")
		}
	}

	if err := s.scenicRepo.Create(ctx, spot); err != nil {
		logger.Error("failed to create scenic spot", err)
		return nil, fmt.Errorf("failed to create scenic spot: %w", err)
	}

	logger.Info("scenic spot created successfully")

	return spot, nil
}

func (s *scenicService) UpdateScenicSpot(ctx context.Context, spot *domain.ScenicSpot) (*domain.ScenicSpot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if spot.ID == 0 {
		logger.Error("Invalid scenic spot data: ID is required")
		return nil, errors.New("scenic spot ID is required")
	}

	if spot.Name == "" {
		logger.Error("Invalid scenic spot data: name is required")
		return nil, errors.New("scenic spot name is required")
	}

	// Verify spot exists
	if _, err := s.scenicRepo.FindByID(ctx, spot.ID); err != nil {
		logger.Error("scenic spot not found", err)
		return nil, errors.New("scenic spot not found")
	}

	if spot.CategoryID != 0 {
		if _, err := s.categoryRepo.FindByID(ctx, spot.CategoryID); err != nil {
			logger.Error("scenic category not found", err)
			return nil, errors.New("scenic category not found")
		}
	}

	if err := s.scenicRepo.Update(ctx, spot); err != nil {
		logger.Error("failed to update scenic spot", err)
		return nil, fmt.Errorf("failed to update scenic spot: %w", err)
	}

	updated, err := s.scenicRepo.FindByID(ctx, spot.ID)
	if err != nil {
		logger.Error("failed to fetch updated scenic spot", err)
		return nil, fmt.Errorf("failed to fetch updated scenic spot: %w", err)
	}

	logger.Info("scenic spot updated successfully")

	return &updated, nil
}

func (s *scenicService) DeleteScenicSpot(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid scenic spot id when deleting")
		return errors.New("invalid scenic spot id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.scenicRepo.FindByID(ctx, id); err != nil {
		logger.Error("scenic spot not found", err)
		return errors.New("scenic spot not found")
	}

	if err := s.scenicRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete scenic spot", err)
		return fmt.Errorf("failed to delete scenic spot: %w", err)
	}

	logger.Info("scenic spot deleted successfully")

	return nil
}

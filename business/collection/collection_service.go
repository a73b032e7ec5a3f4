package collection

import (
	"context"
	"errors"
	"fmt"

	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
)

// CollectionRepository contract interface
type CollectionRepository interface {
	Create(ctx context.Context, collection *domain.ScenicCollection) error
	FindByUserAndScenic(ctx context.Context, userID uint, scenicID uint64) (domain.ScenicCollection, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.ScenicCollection, error)
	Delete(ctx context.Context, userID uint, scenicID uint64) error
}

// ScenicChecker verifies the bookmarked spot exists.
type ScenicChecker interface {
	FindByID(ctx context.Context, id uint64) (domain.ScenicSpot, error)
}

type collectionService struct {
	collectionRepo CollectionRepository
	scenicRepo     ScenicChecker
}

func NewCollectionService(collectionRepo CollectionRepository, scenicRepo ScenicChecker) *collectionService {
	return &collectionService{
		collectionRepo: collectionRepo,
		scenicRepo:     scenicRepo,
	}
}

func (s *collectionService) AddCollection(ctx context.Context, userID uint, scenicID uint64) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when adding collection")
		return fmt.Errorf("context error: %w", err)
	}

	if userID == 0 || scenicID == 0 {
		logger.Error("Invalid collection data: user ID and scenic ID are required")
		return errors.New("user ID and scenic ID are required")
	}

	if _, err := s.scenicRepo.FindByID(ctx, scenicID); err != nil {
		logger.Error("scenic spot not found", err)
		return errors.New("scenic spot not found")
	}

	// Adding an already bookmarked spot is a no-op.
	if _, err := s.collectionRepo.FindByUserAndScenic(ctx, userID, scenicID); err == nil {
		return nil
	}

	collection := domain.ScenicCollection{UserID: userID, ScenicID: scenicID}
	if err := s.collectionRepo.Create(ctx, &collection); err != nil {
		logger.Error("failed to create collection", err)
		return fmt.Errorf("failed to create collection: %w", err)
	}

	logger.Info("collection added successfully", "scenicID", scenicID)

	return nil
}

func (s *collectionService) RemoveCollection(ctx context.Context, userID uint, scenicID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if userID == 0 || scenicID == 0 {
		logger.Error("Invalid collection data: user ID and scenic ID are required")
		return errors.New("user ID and scenic ID are required")
	}

	if _, err := s.collectionRepo.FindByUserAndScenic(ctx, userID, scenicID); err != nil {
		logger.Error("collection not found", err)
		return errors.New("collection not found")
	}

	if err := s.collectionRepo.Delete(ctx, userID, scenicID); err != nil {
		logger.Error("failed to delete collection", err)
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	logger.Info("collection removed successfully", "scenicID", scenicID)

	return nil
}

func (s *collectionService) GetUserCollections(ctx context.Context, userID uint) ([]domain.ScenicCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if userID == 0 {
		logger.Error("invalid user id when listing collections")
		return nil, errors.New("invalid user id")
	}

	collections, err := s.collectionRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to find collections by user id", err)
		return nil, err
	}

	return collections, nil
}

func (s *collectionService) IsCollected(ctx context.Context, userID uint, scenicID uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.collectionRepo.FindByUserAndScenic(ctx, userID, scenicID); err != nil {
		return false, nil
	}

	return true, nil
}

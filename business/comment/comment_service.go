package comment

import (
	"context"
	"errors"
	"fmt"

	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
)

// CommentRepository contract interface
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uint64) (domain.Comment, error)
	FindByScenicID(ctx context.Context, scenicID uint64) ([]domain.Comment, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Comment, error)
	Delete(ctx context.Context, id uint64) error
}

// ScenicChecker verifies the commented spot exists.
type ScenicChecker interface {
	FindByID(ctx context.Context, id uint64) (domain.ScenicSpot, error)
}

type commentService struct {
	commentRepo CommentRepository
	scenicRepo  ScenicChecker
}

func NewCommentService(commentRepo CommentRepository, scenicRepo ScenicChecker) *commentService {
	return &commentService{
		commentRepo: commentRepo,
		scenicRepo:  scenicRepo,
	}
}

func (s *commentService) CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating comment")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if comment.UserID == 0 {
		logger.Error("Invalid comment data: user ID is required")
		return nil, errors.New("user ID is required")
	}

	if comment.ScenicID == 0 {
		logger.Error("Invalid comment data: scenic ID is required")
		return nil, errors.New("scenic ID is required")
	}

	if comment.Rating < 1 || comment.Rating > 5 {
		logger.Error("Invalid comment data: rating must be between 1 and 5")
		return nil, errors.New("rating must be between 1 and 5")
	}

	if _, err := s.scenicRepo.FindByID(ctx, comment.ScenicID); err != nil {
		logger.Error("scenic spot not found", err)
		return nil, errors.New("scenic spot not found")
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		logger.Error("failed to create comment", err)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	logger.Info("comment created successfully", "scenicID", comment.ScenicID)

	return comment, nil
}

func (s *commentService) GetCommentsByScenicID(ctx context.Context, scenicID uint64) ([]domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if scenicID == 0 {
		logger.Error("invalid scenic id when listing comments")
		return nil, errors.New("invalid scenic id")
	}

	comments, err := s.commentRepo.FindByScenicID(ctx, scenicID)
	if err != nil {
		logger.Error("failed to find comments by scenic id", err)
		return nil, err
	}

	return comments, nil
}

func (s *commentService) GetCommentsByUserID(ctx context.Context, userID uint) ([]domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if userID == 0 {
		logger.Error("invalid user id when listing comments")
		return nil, errors.New("invalid user id")
	}

	comments, err := s.commentRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to find comments by user id", err)
		return nil, err
	}

	return comments, nil
}

// DeleteComment removes a comment; only its author may delete it.
func (s *commentService) DeleteComment(ctx context.Context, id uint64, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("invalid comment id when deleting")
		return errors.New("invalid comment id")
	}

	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("comment not found", err)
		return errors.New("comment not found")
	}

	if comment.UserID != userID {
		logger.Error("user does not own comment", "commentID", id)
		return errors.New("comment does not belong to user")
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete comment", err)
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	logger.Info("comment deleted successfully")

	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"myTourGuide/business/scenic"
	"myTourGuide/domain"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{
		DB: db,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Comment{}, fmt.Errorf("context error: %w", err)
	}

	var comment domain.Comment

	err := r.DB.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Comment{}, errors.New("comment not found")
		}
		return domain.Comment{}, fmt.Errorf("failed to find comment: %w", err)
	}

	return comment, nil
}

func (r *CommentRepository) FindAll(ctx context.Context) ([]domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var comments []domain.Comment
	err := r.DB.WithContext(ctx).Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	return comments, nil
}

func (r *CommentRepository) FindByScenicID(ctx context.Context, scenicID uint64) ([]domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var comments []domain.Comment
	err := r.DB.WithContext(ctx).
		Where("scenic_id = ?", scenicID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	return comments, nil
}

func (r *CommentRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var comments []domain.Comment
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	return comments, nil
}

// RatingStats aggregates average rating and comment count per scenic spot
// in one query.
func (r *CommentRepository) RatingStats(ctx context.Context, scenicIDs []uint64) (map[uint64]scenic.RatingStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(scenicIDs) == 0 {
		return map[uint64]scenic.RatingStats{}, nil
	}

	var rows []struct {
		ScenicID uint64
		Average  float64
		Count    int
	}

	err := r.DB.WithContext(ctx).
		Model(&domain.Comment{}).
		Select("scenic_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("scenic_id IN ?", scenicIDs).
		Group("scenic_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rating stats: %w", err)
	}

	stats := make(map[uint64]scenic.RatingStats, len(rows))
	for _, row := range rows {
		stats[row.ScenicID] = scenic.RatingStats{Average: row.Average, Count: row.Count}
	}

	return stats, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Comment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("comment not found")
	}

	return nil
}

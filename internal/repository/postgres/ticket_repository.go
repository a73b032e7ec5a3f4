package postgres

import (
	"context"
	"errors"
	"fmt"
	"myTourGuide/domain"

	"gorm.io/gorm"
)

type TicketRepository struct {
	DB *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		DB: db,
	}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(ticket).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint64) (domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return domain.Ticket{}, fmt.Errorf("context error: %w", err)
	}

	var ticket domain.Ticket

	err := r.DB.WithContext(ctx).First(&ticket, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ticket{}, errors.New("ticket not found")
		}
		return domain.Ticket{}, fmt.Errorf("failed to find ticket: %w", err)
	}

	return ticket, nil
}

func (r *TicketRepository) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var tickets []domain.Ticket
	err := r.DB.WithContext(ctx).Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tickets: %w", err)
	}

	return tickets, nil
}

func (r *TicketRepository) FindByScenicID(ctx context.Context, scenicID uint64) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var tickets []domain.Ticket
	err := r.DB.WithContext(ctx).
		Where("scenic_id = ?", scenicID).
		Order("price ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tickets: %w", err)
	}

	return tickets, nil
}

func (r *TicketRepository) FindHot(ctx context.Context, limit int) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var tickets []domain.Ticket
	err := r.DB.WithContext(ctx).
		Where("is_hot = ? AND bookable = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find hot tickets: %w", err)
	}

	return tickets, nil
}

func (r *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var existing domain.Ticket
	if err := r.DB.WithContext(ctx).First(&existing, ticket.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("ticket not found")
		}
		return fmt.Errorf("failed to find ticket: %w", err)
	}

	updates := map[string]any{
		"ticket_name":  ticket.TicketName,
		"ticket_type":  ticket.TicketType,
		"price":        ticket.Price,
		"stock":        ticket.Stock,
		"valid_period": ticket.ValidPeriod,
		"description":  ticket.Description,
		"is_hot":       ticket.IsHot,
		"bookable":     ticket.Bookable,
	}

	if err := r.DB.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	return nil
}

// AdjustStock changes ticket stock atomically; negative delta reserves,
// positive returns. Reservation fails when stock would go negative.
func (r *TicketRepository) AdjustStock(ctx context.Context, id uint64, delta int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ?", id)
	if delta < 0 {
		query = query.Where("stock >= ?", -delta)
	}

	result := query.Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust ticket stock: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("insufficient ticket stock")
	}

	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Ticket{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ticket: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("ticket not found")
	}

	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"myTourGuide/domain"

	"gorm.io/gorm"
)

type TicketOrderRepository struct {
	DB *gorm.DB
}

func NewTicketOrderRepository(db *gorm.DB) *TicketOrderRepository {
	return &TicketOrderRepository{
		DB: db,
	}
}

func (r *TicketOrderRepository) Create(ctx context.Context, order *domain.TicketOrder) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *TicketOrderRepository) FindByID(ctx context.Context, id uint64) (domain.TicketOrder, error) {
	if err := ctx.Err(); err != nil {
		return domain.TicketOrder{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.TicketOrder

	err := r.DB.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TicketOrder{}, errors.New("order not found")
		}
		return domain.TicketOrder{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

func (r *TicketOrderRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.TicketOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.TicketOrder
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

func (r *TicketOrderRepository) FindAll(ctx context.Context) ([]domain.TicketOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.TicketOrder
	err := r.DB.WithContext(ctx).Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

func (r *TicketOrderRepository) UpdateStatus(ctx context.Context, id uint64, status int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.TicketOrder{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("order not found")
	}

	return nil
}

// SalesCountByTicketIDs sums sold quantities per ticket over paid and
// completed orders.
func (r *TicketOrderRepository) SalesCountByTicketIDs(ctx context.Context, ticketIDs []uint64) (map[uint64]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(ticketIDs) == 0 {
		return map[uint64]int{}, nil
	}

	var rows []struct {
		TicketID uint64
		Sales    int
	}

	err := r.DB.WithContext(ctx).
		Model(&domain.TicketOrder{}).
		Select("ticket_id, SUM(quantity) AS sales").
		Where("ticket_id IN ? AND status IN ?", ticketIDs,
			[]int{domain.OrderStatusPaid, domain.OrderStatusCompleted}).
		Group("ticket_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ticket sales: %w", err)
	}

	sales := make(map[uint64]int, len(rows))
	for _, row := range rows {
		sales[row.TicketID] = row.Sales
	}

	return sales, nil
}

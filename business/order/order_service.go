package order

import (
	"context"
	"errors"
	"fmt"

	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
)

// OrderRepository contract interface
type OrderRepository interface {
	Create(ctx context.Context, order *domain.TicketOrder) error
	FindByID(ctx context.Context, id uint64) (domain.TicketOrder, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.TicketOrder, error)
	UpdateStatus(ctx context.Context, id uint64, status int) error
}

// TicketStore is the subset of the ticket store the order flow needs.
type TicketStore interface {
	FindByID(ctx context.Context, id uint64) (domain.Ticket, error)
	AdjustStock(ctx context.Context, id uint64, delta int) error
}

type orderService struct {
	orderRepo  OrderRepository
	ticketRepo TicketStore
}

func NewOrderService(orderRepo OrderRepository, ticketRepo TicketStore) *orderService {
	return &orderService{
		orderRepo:  orderRepo,
		ticketRepo: ticketRepo,
	}
}

// CreateOrder reserves stock and records a pending order. The total price
// is always computed server side from the ticket price.
func (s *orderService) CreateOrder(ctx context.Context, order *domain.TicketOrder) (*domain.TicketOrder, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating order")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if order.UserID == 0 {
		logger.Error("Invalid order data: user ID is required")
		return nil, errors.New("user ID is required")
	}

	if order.TicketID == 0 {
		logger.Error("Invalid order data: ticket ID is required")
		return nil, errors.New("ticket ID is required")
	}

	if order.Quantity <= 0 {
		logger.Error("Invalid order data: quantity must be positive")
		return nil, errors.New("quantity must be positive")
	}

	ticket, err := s.ticketRepo.FindByID(ctx, order.TicketID)
	if err != nil {
		logger.Error("ticket not found", err)
		return nil, errors.New("ticket not found")
	}

	if !ticket.Bookable {
		logger.Error("ticket is not bookable", "ticketID", ticket.ID)
		return nil, errors.New("ticket is not bookable")
	}

	if ticket.Stock < order.Quantity {
		logger.Error("insufficient ticket stock", "ticketID", ticket.ID)
		return nil, errors.New("insufficient ticket stock")
	}

	if err := s.ticketRepo.AdjustStock(ctx, ticket.ID, -order.Quantity); err != nil {
		logger.Error("failed to reserve ticket stock", err)
		return nil, fmt.Errorf("failed to reserve ticket stock: %w", err)
	}

	order.TotalPrice = ticket.Price * float64(order.Quantity)
	order.Status = domain.OrderStatusPending

	if err := s.orderRepo.Create(ctx, order); err != nil {
		logger.Error("failed to create order", err)
		// return the reserved stock, best effort
		if restockErr := s.ticketRepo.AdjustStock(ctx, ticket.ID, order.Quantity); restockErr != nil {
			logger.Error("failed to restock ticket after order failure", restockErr)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logger.Info("order created successfully", "orderID", order.ID)

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uint64, userID uint) (domain.TicketOrder, error) {
	if err := ctx.Err(); err != nil {
		return domain.TicketOrder{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("invalid order id")
		return domain.TicketOrder{}, errors.New("invalid order id")
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find order by id", err)
		return domain.TicketOrder{}, err
	}

	if order.UserID != userID {
		logger.Error("user does not own order", "orderID", id)
		return domain.TicketOrder{}, errors.New("order does not belong to user")
	}

	return order, nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID uint) ([]domain.TicketOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if userID == 0 {
		logger.Error("invalid user id when listing orders")
		return nil, errors.New("invalid user id")
	}

	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to find orders by user id", err)
		return nil, err
	}

	return orders, nil
}

// PayOrder moves a pending order to paid.
func (s *orderService) PayOrder(ctx context.Context, id uint64, userID uint) error {
	return s.transition(ctx, id, userID, []int{domain.OrderStatusPending}, domain.OrderStatusPaid, "paid")
}

// CancelOrder cancels a pending or paid order and returns its stock.
func (s *orderService) CancelOrder(ctx context.Context, id uint64, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("order not found", err)
		return errors.New("order not found")
	}

	if order.UserID != userID {
		logger.Error("user does not own order", "orderID", id)
		return errors.New("order does not belong to user")
	}

	if order.Status != domain.OrderStatusPending && order.Status != domain.OrderStatusPaid {
		logger.Error("order cannot be cancelled in its current status", "orderID", id)
		return errors.New("order cannot be cancelled")
	}

	target := domain.OrderStatusCancelled
	if order.Status == domain.OrderStatusPaid {
		target = domain.OrderStatusRefunded
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, target); err != nil {
		logger.Error("failed to update order status", err)
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if err := s.ticketRepo.AdjustStock(ctx, order.TicketID, order.Quantity); err != nil {
		logger.Error("failed to restock cancelled order", err)
	}

	logger.Info("order cancelled successfully", "orderID", id)

	return nil
}

// CompleteOrder moves a paid order to completed after the visit.
func (s *orderService) CompleteOrder(ctx context.Context, id uint64, userID uint) error {
	return s.transition(ctx, id, userID, []int{domain.OrderStatusPaid}, domain.OrderStatusCompleted, "completed")
}

func (s *orderService) transition(ctx context.Context, id uint64, userID uint, from []int, to int, verb string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("order not found", err)
		return errors.New("order not found")
	}

	if order.UserID != userID {
		logger.Error("user does not own order", "orderID", id)
		return errors.New("order does not belong to user")
	}

	allowed := false
	for _, status := range from {
		if order.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		logger.Error("invalid order status transition", "orderID", id)
		return fmt.Errorf("order cannot be %s in its current status", verb)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, to); err != nil {
		logger.Error("failed to update order status", err)
		return fmt.Errorf("failed to update order status: %w", err)
	}

	logger.Info("order "+verb+" successfully", "orderID", id)

	return nil
}

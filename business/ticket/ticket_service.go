package ticket

import (
	"context"
	"errors"
	"fmt"

	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
)

// TicketRepository contract interface
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	FindByID(ctx context.Context, id uint64) (domain.Ticket, error)
	FindByScenicID(ctx context.Context, scenicID uint64) ([]domain.Ticket, error)
	FindHot(ctx context.Context, limit int) ([]domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id uint64) error
}

// ScenicChecker resolves the spot a ticket belongs to.
type ScenicChecker interface {
	FindByID(ctx context.Context, id uint64) (domain.ScenicSpot, error)
}

// SalesCounter aggregates sold quantities per ticket over paid and
// completed orders.
type SalesCounter interface {
	SalesCountByTicketIDs(ctx context.Context, ticketIDs []uint64) (map[uint64]int, error)
}

type ticketService struct {
	ticketRepo TicketRepository
	scenicRepo ScenicChecker
	salesRepo  SalesCounter
}

func NewTicketService(ticketRepo TicketRepository, scenicRepo ScenicChecker, salesRepo SalesCounter) *ticketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		scenicRepo: scenicRepo,
		salesRepo:  salesRepo,
	}
}

func (s *ticketService) GetTicketsByScenicID(ctx context.Context, scenicID uint64) ([]domain.TicketDetail, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing tickets")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if scenicID == 0 {
		logger.Error("invalid scenic id when listing tickets")
		return nil, errors.New("invalid scenic id")
	}

	tickets, err := s.ticketRepo.FindByScenicID(ctx, scenicID)
	if err != nil {
		logger.Error("failed to find tickets by scenic id", err)
		return nil, err
	}

	return s.toDetails(ctx, tickets)
}

func (s *ticketService) GetTicketByID(ctx context.Context, id uint64) (*domain.TicketDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("invalid ticket id")
		return nil, errors.New("invalid ticket id")
	}

	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find ticket by id", err)
		return nil, err
	}

	details, err := s.toDetails(ctx, []domain.Ticket{ticket})
	if err != nil {
		return nil, err
	}

	return &details[0], nil
}

func (s *ticketService) GetHotTickets(ctx context.Context, limit int) ([]domain.TicketDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}

	tickets, err := s.ticketRepo.FindHot(ctx, limit)
	if err != nil {
		logger.Error("failed to find hot tickets", err)
		return nil, err
	}

	return s.toDetails(ctx, tickets)
}

// toDetails decorates tickets with the scenic spot name and the sales
// count over paid and completed orders.
func (s *ticketService) toDetails(ctx context.Context, tickets []domain.Ticket) ([]domain.TicketDetail, error) {
	if len(tickets) == 0 {
		return []domain.TicketDetail{}, nil
	}

	ids := make([]uint64, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.ID)
	}

	sales, err := s.salesRepo.SalesCountByTicketIDs(ctx, ids)
	if err != nil {
		logger.Warn("failed to aggregate ticket sales", err)
		sales = map[uint64]int{}
	}

	scenicNames := make(map[uint64]string)
	details := make([]domain.TicketDetail, 0, len(tickets))
	for _, t := range tickets {
		name, ok := scenicNames[t.ScenicID]
		if !ok {
			spot, err := s.scenicRepo.FindByID(ctx, t.ScenicID)
			if err == nil {
				name = spot.Name
			}
			scenicNames[t.ScenicID] = name
		}
		details = append(details, domain.TicketDetail{
			Ticket:     t,
			ScenicName: name,
			SalesCount: sales[t.ID],
		})
	}

	return details, nil
}

func (s *ticketService) CreateTicket(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if ticket.TicketName == "" {
		logger.Error("Invalid ticket data: name is required")
		return nil, errors.New("ticket name is required")
	}

	if ticket.ScenicID == 0 {
		logger.Error("Invalid ticket data: scenic ID is required")
		return nil, errors.New("scenic ID is required")
	}

	if ticket.Price < 0 {
		logger.Error("Invalid ticket data: price cannot be negative")
		return nil, errors.New("price cannot be negative")
	}

	if ticket.Stock < 0 {
		logger.Error("Invalid ticket data: stock cannot be negative")
		return nil, errors.New("stock cannot be negative")
	}

	if _, err := s.scenicRepo.FindByID(ctx, ticket.ScenicID); err != nil {
		logger.Error("scenic spot not found", err)
		return nil, errors.New("scenic spot not found")
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		logger.Error("failed to create ticket", err)
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	logger.Info("ticket created successfully")

	return ticket, nil
}

func (s *ticketService) UpdateTicket(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if ticket.ID == 0 {
		logger.Error("Invalid ticket data: ID is required")
		return nil, errors.New("ticket ID is required")
	}

	if ticket.TicketName == "" {
		logger.Error("Invalid ticket data: name is required")
		return nil, errors.New("ticket name is required")
	}

	// Verify ticket exists
	if _, err := s.ticketRepo.FindByID(ctx, ticket.ID); err != nil {
		logger.Error("ticket not found", err)
		return nil, errors.New("ticket not found")
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		logger.Error("failed to update ticket", err)
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	updated, err := s.ticketRepo.FindByID(ctx, ticket.ID)
	if err != nil {
		logger.Error("failed to fetch updated ticket", err)
		return nil, fmt.Errorf("failed to fetch updated ticket: %w", err)
	}

	logger.Info("ticket updated successfully")

	return &updated, nil
}

func (s *ticketService) DeleteTicket(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid ticket id when deleting")
		return errors.New("invalid ticket id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.ticketRepo.FindByID(ctx, id); err != nil {
		logger.Error("ticket not found", err)
		return errors.New("ticket not found")
	}

	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete ticket", err)
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	logger.Info("ticket deleted successfully")

	return nil
}

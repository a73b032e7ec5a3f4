package rest

import (
	"context"
	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type TicketService interface {
	GetTicketsByScenicID(ctx context.Context, scenicID uint64) ([]domain.TicketDetail, error)
	GetTicketByID(ctx context.Context, id uint64) (*domain.TicketDetail, error)
	GetHotTickets(ctx context.Context, limit int) ([]domain.TicketDetail, error)
	CreateTicket(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	UpdateTicket(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	DeleteTicket(ctx context.Context, id uint64) error
}

type TicketHandler struct {
	ticketService TicketService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewTicketHandler(ticketService TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type TicketRequest struct {
	ScenicID    uint64  `json:"scenic_id" validate:"required"`
	TicketName  string  `json:"ticket_name" validate:"required"`
	TicketType  string  `json:"ticket_type"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ValidPeriod string  `json:"valid_period"`
	Description string  `json:"description"`
	IsHot       bool    `json:"is_hot"`
	Bookable    bool    `json:"bookable"`
}

func (h *TicketHandler) GetTicketsByScenicID(c echo.Context) error {
	scenicIDStr := c.Param("id")

	scenicID, err := strconv.ParseUint(scenicIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid scenic spot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tickets, err := h.ticketService.GetTicketsByScenicID(ctx, scenicID)
	if err != nil {
		logger.Error("Failed to find tickets", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get tickets",
		"tickets": tickets,
	})
}

func (h *TicketHandler) GetTicketByID(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid ticket id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ticket, err := h.ticketService.GetTicketByID(ctx, id)
	if err != nil {
		if err.Error() == "ticket not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find ticket by id",
		"ticket":  ticket,
	})
}

func (h *TicketHandler) GetHotTickets(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tickets, err := h.ticketService.GetHotTickets(ctx, limit)
	if err != nil {
		logger.Error("Failed to find hot tickets", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get hot tickets",
		"tickets": tickets,
	})
}

func (h *TicketHandler) CreateTicket(c echo.Context) error {
	var req TicketRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate ticket request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ticket := &domain.Ticket{
		ScenicID:    req.ScenicID,
		TicketName:  req.TicketName,
		TicketType:  req.TicketType,
		Price:       req.Price,
		Stock:       req.Stock,
		ValidPeriod: req.ValidPeriod,
		Description: req.Description,
		IsHot:       req.IsHot,
		Bookable:    req.Bookable,
	}

	newTicket, err := h.ticketService.CreateTicket(ctx, ticket)
	if err != nil {
		logger.Error("Failed to create ticket", err)
		if err.Error() == "ticket name is required" ||
			err.Error() == "scenic ID is required" ||
			err.Error() == "price cannot be negative" ||
			err.Error() == "stock cannot be negative" ||
			err.Error() == "scenic spot not found" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "ticket successfully created",
		"ticket":  newTicket,
	})
}

func (h *TicketHandler) UpdateTicket(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid ticket id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req TicketRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate ticket request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ticket := &domain.Ticket{
		ID:          id,
		ScenicID:    req.ScenicID,
		TicketName:  req.TicketName,
		TicketType:  req.TicketType,
		Price:       req.Price,
		Stock:       req.Stock,
		ValidPeriod: req.ValidPeriod,
		Description: req.Description,
		IsHot:       req.IsHot,
		Bookable:    req.Bookable,
	}

	updatedTicket, err := h.ticketService.UpdateTicket(ctx, ticket)
	if err != nil {
		logger.Error("Failed to update ticket", err)
		if err.Error() == "ticket not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "ticket ID is required" || err.Error() == "ticket name is required" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update ticket",
		"ticket":  updatedTicket,
	})
}

func (h *TicketHandler) DeleteTicket(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid ticket id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.ticketService.DeleteTicket(ctx, id)
	if err != nil {
		logger.Error("Failed to delete ticket", err)
		if err.Error() == "ticket not found" || err.Error() == "invalid ticket id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "ticket successfully deleted",
		"ticket_id": id,
	})
}

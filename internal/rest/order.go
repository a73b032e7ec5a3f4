package rest

import (
	"context"
	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type OrderService interface {
	CreateOrder(ctx context.Context, order *domain.TicketOrder) (*domain.TicketOrder, error)
	GetOrderByID(ctx context.Context, id uint64, userID uint) (domain.TicketOrder, error)
	GetUserOrders(ctx context.Context, userID uint) ([]domain.TicketOrder, error)
	PayOrder(ctx context.Context, id uint64, userID uint) error
	CancelOrder(ctx context.Context, id uint64, userID uint) error
	CompleteOrder(ctx context.Context, id uint64, userID uint) error
}

type OrderHandler struct {
	orderService OrderService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type CreateOrderRequest struct {
	TicketID  uint64 `json:"ticket_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	VisitDate string `json:"visit_date" validate:"required"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate order request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	visitDate, err := time.Parse("2006-01-02", req.VisitDate)
	if err != nil {
		logger.Error("Invalid visit date", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "visit_date must be formatted as YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order := &domain.TicketOrder{
		UserID:    userID,
		TicketID:  req.TicketID,
		Quantity:  req.Quantity,
		VisitDate: visitDate,
	}

	newOrder, err := h.orderService.CreateOrder(ctx, order)
	if err != nil {
		logger.Error("Failed to create order", err)
		if err.Error() == "ticket not found" ||
			err.Error() == "ticket is not bookable" ||
			err.Error() == "insufficient ticket stock" ||
			err.Error() == "quantity must be positive" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newOrder))
}

func (h *OrderHandler) GetOrderByID(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid order id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.orderService.GetOrderByID(ctx, id, userID)
	if err != nil {
		if err.Error() == "order not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "order does not belong to user" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orders, err := h.orderService.GetUserOrders(ctx, userID)
	if err != nil {
		logger.Error("Failed to find orders", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

func (h *OrderHandler) PayOrder(c echo.Context) error {
	return h.transition(c, h.orderService.PayOrder, "order successfully paid")
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	return h.transition(c, h.orderService.CancelOrder, "order successfully cancelled")
}

func (h *OrderHandler) CompleteOrder(c echo.Context) error {
	return h.transition(c, h.orderService.CompleteOrder, "order successfully completed")
}

func (h *OrderHandler) transition(c echo.Context, fn func(context.Context, uint64, uint) error, message string) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid order id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := fn(ctx, id, userID); err != nil {
		logger.Error("Failed to update order", err)
		if err.Error() == "order not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "order does not belong to user" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(message))
}

package rest

import (
	"context"
	"myTourGuide/business/scenic"
	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ScenicService interface {
	GetScenicSpots(ctx context.Context, filter scenic.SearchFilter) (scenic.SpotPage, error)
	GetScenicSpotByID(ctx context.Context, id uint64) (*domain.ScenicSpot, error)
	CreateScenicSpot(ctx context.Context, spot *domain.ScenicSpot) (*domain.ScenicSpot, error)
	UpdateScenicSpot(ctx context.Context, spot *domain.ScenicSpot) (*domain.ScenicSpot, error)
	DeleteScenicSpot(ctx context.Context, id uint64) error
}

type ScenicHandler struct {
	scenicService ScenicService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewScenicHandler(scenicService ScenicService) *ScenicHandler {
	return &ScenicHandler{
		scenicService: scenicService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type ScenicSpotRequest struct {
	Name         string  `json:"name" validate:"required"`
	CategoryID   uint64  `json:"category_id"`
	Location     string  `json:"location"`
	Description  string  `json:"description"`
	ImageUrl     string  `json:"image_url" validate:"omitempty,url"`
	Price        float64 `json:"price" validate:"gte=0"`
	OpeningHours string  `json:"opening_hours"`
}

func (h *ScenicHandler) GetScenicSpots(c echo.Context) error {
	filter := scenic.SearchFilter{
		Keyword:  c.QueryParam("keyword"),
		Location: c.QueryParam("location"),
		SortBy:   c.QueryParam("sort_by"),
	}

	if categoryStr := c.QueryParam("category_id"); categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 64)
		if err != nil {
			logger.Error("Invalid category id", err)
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid category id"})
		}
		filter.CategoryID = categoryID
	}

	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Size, _ = strconv.Atoi(c.QueryParam("size"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.scenicService.GetScenicSpots(ctx, filter)
	if err != nil {
		logger.Error("Failed to find scenic spots", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get scenic spots",
		"spots":   page,
	})
}

func (h *ScenicHandler) GetScenicSpotByID(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid scenic spot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	spot, err := h.scenicService.GetScenicSpotByID(ctx, id)
	if err != nil {
		if err.Error() == "scenic spot not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find scenic spot by id",
		"spot":    spot,
	})
}

func (h *ScenicHandler) CreateScenicSpot(c echo.Context) error {
	var req ScenicSpotRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate scenic spot request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	spot := &domain.ScenicSpot{
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		Location:     req.Location,
		Description:  req.Description,
		ImageUrl:     req.ImageUrl,
		Price:        req.Price,
		OpeningHours: req.OpeningHours,
	}

	newSpot, err := h.scenicService.CreateScenicSpot(ctx, spot)
	if err != nil {
		logger.Error("Failed to create scenic spot", err)
		if err.Error() == "scenic spot name is required" ||
			err.Error() == "price cannot be negative" ||
			err.Error() == "scenic category not found" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "scenic spot successfully created",
		"spot":    newSpot,
	})
}

func (h *ScenicHandler) UpdateScenicSpot(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid scenic spot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req ScenicSpotRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate scenic spot request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	spot := &domain.ScenicSpot{
		ID:           id,
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		Location:     req.Location,
		Description:  req.Description,
		ImageUrl:     req.ImageUrl,
		Price:        req.Price,
		OpeningHours: req.OpeningHours,
	}

	updatedSpot, err := h.scenicService.UpdateScenicSpot(ctx, spot)
	if err != nil {
		logger.Error("Failed to update scenic spot", err)
		if err.Error() == "scenic spot not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "scenic spot ID is required" ||
			err.Error() == "scenic spot name is required" ||
			err.Error() == "scenic category not found" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update scenic spot",
		"spot":    updatedSpot,
	})
}

func (h *ScenicHandler) DeleteScenicSpot(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid scenic spot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.scenicService.DeleteScenicSpot(ctx, id)
	if err != nil {
		logger.Error("Failed to delete scenic spot", err)
		if err.Error() == "scenic spot not found" || err.Error() == "invalid scenic spot id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "scenic spot successfully deleted",
		"spot_id": id,
	})
}

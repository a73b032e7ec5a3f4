package rest

import (
	"context"
	"myTourGuide/business/accommodation"
	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AccommodationService interface {
	GetAccommodations(ctx context.Context, filter accommodation.SearchFilter) (accommodation.AccommodationPage, error)
	GetAccommodationByID(ctx context.Context, id uint64) (*domain.Accommodation, error)
	GetAccommodationTypes(ctx context.Context) ([]string, error)
	CreateAccommodation(ctx context.Context, acc *domain.Accommodation) (*domain.Accommodation, error)
	UpdateAccommodation(ctx context.Context, acc *domain.Accommodation) (*domain.Accommodation, error)
	DeleteAccommodation(ctx context.Context, id uint64) error
}

type AccommodationHandler struct {
	accommodationService AccommodationService
	validator            *validator.Validate
	timeout              time.Duration
}

func NewAccommodationHandler(accommodationService AccommodationService) *AccommodationHandler {
	return &AccommodationHandler{
		accommodationService: accommodationService,
		validator:            validator.New(),
		timeout:              10 * time.Second,
	}
}

type AccommodationRequest struct {
	Name         string  `json:"name" validate:"required"`
	Type         string  `json:"type"`
	Address      string  `json:"address"`
	ScenicID     uint64  `json:"scenic_id"`
	Description  string  `json:"description"`
	ContactPhone string  `json:"contact_phone"`
	PriceRange   string  `json:"price_range"`
	StarLevel    float64 `json:"star_level" validate:"gte=0,lte=5"`
	ImageUrl     string  `json:"image_url" validate:"omitempty,url"`
	Features     string  `json:"features"`
	Distance     string  `json:"distance"`
}

func (h *AccommodationHandler) GetAccommodations(c echo.Context) error {
	filter := accommodation.SearchFilter{
		Keyword: c.QueryParam("keyword"),
		Type:    c.QueryParam("type"),
		SortBy:  c.QueryParam("sort_by"),
	}

	if scenicStr := c.QueryParam("scenic_id"); scenicStr != "" {
		scenicID, err := strconv.ParseUint(scenicStr, 10, 64)
		if err != nil {
			logger.Error("Invalid scenic id", err)
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid scenic id"})
		}
		filter.ScenicID = scenicID
	}

	if starStr := c.QueryParam("min_star"); starStr != "" {
		minStar, err := strconv.ParseFloat(starStr, 64)
		if err != nil {
			logger.Error("Invalid minimum star level", err)
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid minimum star level"})
		}
		filter.MinStar = minStar
	}

	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Size, _ = strconv.Atoi(c.QueryParam("size"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.accommodationService.GetAccommodations(ctx, filter)
	if err != nil {
		logger.Error("Failed to find accommodations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":        "successfully get accommodations",
		"accommodations": page,
	})
}

func (h *AccommodationHandler) GetAccommodationByID(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid accommodation id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	acc, err := h.accommodationService.GetAccommodationByID(ctx, id)
	if err != nil {
		if err.Error() == "accommodation not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       "successfully find accommodation by id",
		"accommodation": acc,
	})
}

func (h *AccommodationHandler) GetAccommodationTypes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	types, err := h.accommodationService.GetAccommodationTypes(ctx)
	if err != nil {
		logger.Error("Failed to list accommodation types", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get accommodation types",
		"types":   types,
	})
}

func (h *AccommodationHandler) CreateAccommodation(c echo.Context) error {
	var req AccommodationRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate accommodation request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	acc := &domain.Accommodation{
		Name:         req.Name,
		Type:         req.Type,
		Address:      req.Address,
		ScenicID:     req.ScenicID,
		Description:  req.Description,
		ContactPhone: req.ContactPhone,
		PriceRange:   req.PriceRange,
		StarLevel:    req.StarLevel,
		ImageUrl:     req.ImageUrl,
		Features:     req.Features,
		Distance:     req.Distance,
	}

	newAcc, err := h.accommodationService.CreateAccommodation(ctx, acc)
	if err != nil {
		logger.Error("Failed to create accommodation", err)
		if err.Error() == "accommodation name is required" ||
			err.Error() == "star level must be between 0 and 5" ||
			err.Error() == "scenic spot not found" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":       "accommodation successfully created",
		"accommodation": newAcc,
	})
}

func (h *AccommodationHandler) UpdateAccommodation(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid accommodation id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req AccommodationRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate accommodation request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	acc := &domain.Accommodation{
		ID:           id,
		Name:         req.Name,
		Type:         req.Type,
		Address:      req.Address,
		ScenicID:     req.ScenicID,
		Description:  req.Description,
		ContactPhone: req.ContactPhone,
		PriceRange:   req.PriceRange,
		StarLevel:    req.StarLevel,
		ImageUrl:     req.ImageUrl,
		Features:     req.Features,
		Distance:     req.Distance,
	}

	updatedAcc, err := h.accommodationService.UpdateAccommodation(ctx, acc)
	if err != nil {
		logger.Error("Failed to update accommodation", err)
		if err.Error() == "accommodation not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "accommodation ID is required" ||
			err.Error() == "accommodation name is required" ||
			err.Error() == "star level must be between 0 and 5" ||
			err.Error() == "scenic spot not found" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       "successfully update accommodation",
		"accommodation": updatedAcc,
	})
}

func (h *AccommodationHandler) DeleteAccommodation(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid accommodation id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.accommodationService.DeleteAccommodation(ctx, id)
	if err != nil {
		logger.Error("Failed to delete accommodation", err)
		if err.Error() == "accommodation not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":          "accommodation successfully deleted",
		"accommodation_id": id,
	})
}

package rest

import (
	"context"
	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

type CollectionService interface {
	AddCollection(ctx context.Context, userID uint, scenicID uint64) error
	RemoveCollection(ctx context.Context, userID uint, scenicID uint64) error
	GetUserCollections(ctx context.Context, userID uint) ([]domain.ScenicCollection, error)
	IsCollected(ctx context.Context, userID uint, scenicID uint64) (bool, error)
}

type CollectionHandler struct {
	collectionService CollectionService
	timeout           time.Duration
}

func NewCollectionHandler(collectionService CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		timeout:           10 * time.Second,
	}
}

func (h *CollectionHandler) AddCollection(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	scenicIDStr := c.Param("id")
	scenicID, err := strconv.ParseUint(scenicIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid scenic spot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.collectionService.AddCollection(ctx, userID, scenicID)
	if err != nil {
		logger.Error("Failed to add collection", err)
		if err.Error() == "scenic spot not found" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "scenic spot successfully bookmarked",
		"scenic_id": scenicID,
	})
}

func (h *CollectionHandler) RemoveCollection(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	scenicIDStr := c.Param("id")
	scenicID, err := strconv.ParseUint(scenicIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid scenic spot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.collectionService.RemoveCollection(ctx, userID, scenicID)
	if err != nil {
		logger.Error("Failed to remove collection", err)
		if err.Error() == "collection not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "bookmark successfully removed",
		"scenic_id": scenicID,
	})
}

func (h *CollectionHandler) GetMyCollections(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	collections, err := h.collectionService.GetUserCollections(ctx, userID)
	if err != nil {
		logger.Error("Failed to find collections", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "successfully get collections",
		"collections": collections,
	})
}

func (h *CollectionHandler) IsCollected(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	scenicIDStr := c.Param("id")
	scenicID, err := strconv.ParseUint(scenicIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid scenic spot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	collected, err := h.collectionService.IsCollected(ctx, userID, scenicID)
	if err != nil {
		logger.Error("Failed to check collection", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully check bookmark",
		"scenic_id": scenicID,
		"collected": collected,
	})
}

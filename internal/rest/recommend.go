package rest

import (
	"context"
	"myTourGuide/business/recommend"
	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
	"myTourGuide/pkg/metrics"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type RecommendService interface {
	Recommend(ctx context.Context, userID uint, topN int) ([]uint64, error)
}

// SpotEnricher turns ranked IDs into catalog records, preserving order.
type SpotEnricher interface {
	GetScenicSpotsByIDs(ctx context.Context, ids []uint64) ([]domain.ScenicSpot, error)
}

// RecommendCache is the short-lived per-user result cache.
type RecommendCache interface {
	Get(ctx context.Context, userID uint, topN int) ([]uint64, bool, error)
	Set(ctx context.Context, userID uint, topN int, ids []uint64) error
}

type RecommendHandler struct {
	recommendService RecommendService
	enricher         SpotEnricher
	cache            RecommendCache
	timeout          time.Duration
}

func NewRecommendHandler(recommendService RecommendService, enricher SpotEnricher, cache RecommendCache) *RecommendHandler {
	return &RecommendHandler{
		recommendService: recommendService,
		enricher:         enricher,
		cache:            cache,
		timeout:          15 * time.Second,
	}
}

// GetRecommendations serves the enriched recommendation feed. Failures
// degrade to an empty list so the home page never breaks on a
// recommendation outage.
func (h *RecommendHandler) GetRecommendations(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.RecommendLatency)
	defer timer.ObserveDuration()
	metrics.RecommendRequests.Inc()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	topN := h.topN(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, recommend.TraceIDKey, uuid.NewString())

	ids := h.rankedIDs(ctx, userID, topN)

	spots, err := h.enricher.GetScenicSpotsByIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to enrich recommendations", err)
		spots = []domain.ScenicSpot{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get recommendations",
		"spots":   spots,
	})
}

// GetRecommendationIDs serves the bare ranked ID list.
func (h *RecommendHandler) GetRecommendationIDs(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.RecommendLatency)
	defer timer.ObserveDuration()
	metrics.RecommendRequests.Inc()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	topN := h.topN(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, recommend.TraceIDKey, uuid.NewString())

	ids := h.rankedIDs(ctx, userID, topN)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully get recommendation ids",
		"scenic_ids": ids,
	})
}

// rankedIDs resolves the ranking through the cache. Errors are logged and
// produce an empty list, never a failed response.
func (h *RecommendHandler) rankedIDs(ctx context.Context, userID uint, topN int) []uint64 {
	if cached, hit, err := h.cache.Get(ctx, userID, topN); err == nil && hit {
		metrics.RecommendCacheHits.WithLabelValues("hit").Inc()
		return cached
	} else if err != nil {
		logger.Warn("Recommend cache read failed", err)
	}
	metrics.RecommendCacheHits.WithLabelValues("miss").Inc()

	ids, err := h.recommendService.Recommend(ctx, userID, topN)
	if err != nil {
		logger.Error("Failed to compute recommendations", err)
		return []uint64{}
	}

	if err := h.cache.Set(ctx, userID, topN, ids); err != nil {
		logger.Warn("Recommend cache write failed", err)
	}

	return ids
}

func (h *RecommendHandler) topN(c echo.Context) int {
	topN, err := strconv.Atoi(c.QueryParam("top_n"))
	if err != nil || topN <= 0 {
		return 10
	}
	return topN
}

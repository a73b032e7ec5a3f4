package recommend

import (
	"context"
	"fmt"

	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
)

// ---- Repository interfaces ----
//
// The engine only needs the raw interaction logs, retrievable in full as
// flat lists. Any repository failure is total data-source unavailability
// and propagates; it is never retried here.

type CommentRepository interface {
	FindAll(ctx context.Context) ([]domain.Comment, error)
}

type CollectionRepository interface {
	FindAll(ctx context.Context) ([]domain.ScenicCollection, error)
}

type TicketOrderRepository interface {
	FindAll(ctx context.Context) ([]domain.TicketOrder, error)
}

type TicketRepository interface {
	FindAll(ctx context.Context) ([]domain.Ticket, error)
}

// ---- Usecase / Service ----

// RecommendService is the hybrid collaborative-filtering engine. Every call
// re-reads all interaction logs and recomputes from scratch; nothing is
// cached between invocations, so there is no shared mutable state.
type RecommendService struct {
	commentRepo    CommentRepository
	collectionRepo CollectionRepository
	orderRepo      TicketOrderRepository
	ticketRepo     TicketRepository
	cfg            Config
}

func NewRecommendService(
	commentRepo CommentRepository,
	collectionRepo CollectionRepository,
	orderRepo TicketOrderRepository,
	ticketRepo TicketRepository,
	cfg Config,
) *RecommendService {
	return &RecommendService{
		commentRepo:    commentRepo,
		collectionRepo: collectionRepo,
		orderRepo:      orderRepo,
		ticketRepo:     ticketRepo,
		cfg:            cfg,
	}
}

// Recommend returns up to topN scenic spot IDs for the user, best first.
//
// Personalized path: behavior matrix -> user-based + item-based scores ->
// 0.6/0.4 fusion -> novelty-first ranking with familiar backfill.
// A user with no behavior at all gets the global popularity ranking
// instead; that is a distinct, cheaper path, not an error.
func (s *RecommendService) Recommend(ctx context.Context, userID uint, topN int) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if topN <= 0 {
		topN = 10
	}

	comments, err := s.commentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	collections, err := s.collectionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collections: %w", err)
	}
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ticket orders: %w", err)
	}
	ticketToScenic, err := s.loadTicketToScenicMap(ctx)
	if err != nil {
		return nil, err
	}

	matrix := BuildBehaviorMatrix(comments, collections, orders, ticketToScenic, s.cfg)

	tid := TraceIDFromContext(ctx)
	logger.Debug("recommend_input",
		"trace_id", tid,
		"user_id", userID,
		"comments", len(comments),
		"collections", len(collections),
		"orders", len(orders),
		"matrix_users", len(matrix),
	)

	// cold start: no behavior row for this user at all
	if len(matrix[userID]) == 0 {
		logger.Info("recommend_cold_start", "trace_id", tid, "user_id", userID)
		RecommendServedTotal.WithLabelValues(modePopularity).Inc()
		return popularityRanking(comments, collections, orders, ticketToScenic, topN, s.cfg), nil
	}

	userBased := userBasedScores(userID, matrix, s.cfg)
	itemBased := itemBasedScores(userID, matrix, s.cfg)
	finalScores := mergeScores(userBased, itemBased, s.cfg)

	recommendations := rankNovelFirst(finalScores, matrix[userID], topN)

	logger.Debug("recommend_result",
		"trace_id", tid,
		"user_id", userID,
		"user_based_candidates", len(userBased),
		"item_based_candidates", len(itemBased),
		"returned", len(recommendations),
	)

	RecommendServedTotal.WithLabelValues(modePersonalized).Inc()
	return recommendations, nil
}

func (s *RecommendService) loadTicketToScenicMap(ctx context.Context) (map[uint64]uint64, error) {
	tickets, err := s.ticketRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}

	out := make(map[uint64]uint64, len(tickets))
	for _, t := range tickets {
		out[t.ID] = t.ScenicID
	}
	return out, nil
}

package recommend

import (
	"testing"

	"myTourGuide/domain"
)

func TestBuildBehaviorMatrix_SumsAcrossSources(t *testing.T) {
	cfg := DefaultConfig()

	comments := []domain.Comment{}
	collections := []domain.ScenicCollection{
		{UserID: 1, ScenicID: 10},
	}
	orders := []domain.TicketOrder{
		{UserID: 1, TicketID: 100, Status: domain.OrderStatusCompleted},
	}
	ticketToScenic := map[uint64]uint64{100: 10}

	matrix := BuildBehaviorMatrix(comments, collections, orders, ticketToScenic, cfg)

	got := matrix[1][10]
	if got != 7.0 {
		t.Fatalf("bookmark + completed order should accumulate 3.0 + 4.0 = 7.0, got %v", got)
	}
}

func TestBuildBehaviorMatrix_RatingFilter(t *testing.T) {
	cfg := DefaultConfig()

	comments := []domain.Comment{
		{UserID: 1, ScenicID: 10, Rating: 0},
		{UserID: 1, ScenicID: 11, Rating: -1},
		{UserID: 2, ScenicID: 10, Rating: 5},
	}

	matrix := BuildBehaviorMatrix(comments, nil, nil, nil, cfg)

	if _, ok := matrix[1]; ok {
		t.Fatalf("zero and negative ratings must contribute nothing, got row %v", matrix[1])
	}
	if matrix[2][10] != 5.0 {
		t.Fatalf("valid rating should contribute its value, got %v", matrix[2][10])
	}
}

func TestBuildBehaviorMatrix_OrderStatusFilter(t *testing.T) {
	cfg := DefaultConfig()

	orders := []domain.TicketOrder{
		{UserID: 1, TicketID: 100, Status: domain.OrderStatusPending},
		{UserID: 1, TicketID: 100, Status: domain.OrderStatusCancelled},
		{UserID: 1, TicketID: 100, Status: domain.OrderStatusRefunded},
		{UserID: 2, TicketID: 100, Status: domain.OrderStatusPaid},
	}
	ticketToScenic := map[uint64]uint64{100: 10}

	matrix := BuildBehaviorMatrix(nil, nil, orders, ticketToScenic, cfg)

	if _, ok := matrix[1]; ok {
		t.Fatalf("non-purchase statuses must contribute nothing, got row %v", matrix[1])
	}
	if matrix[2][10] != cfg.OrderWeight {
		t.Fatalf("paid order should contribute %v, got %v", cfg.OrderWeight, matrix[2][10])
	}
}

func TestBuildBehaviorMatrix_UnresolvableTicketDropped(t *testing.T) {
	cfg := DefaultConfig()

	orders := []domain.TicketOrder{
		{UserID: 1, TicketID: 999, Status: domain.OrderStatusPaid},
	}

	matrix := BuildBehaviorMatrix(nil, nil, orders, map[uint64]uint64{}, cfg)

	if len(matrix) != 0 {
		t.Fatalf("order with unresolvable ticket must be dropped, got %v", matrix)
	}
}

func TestBuildBehaviorMatrix_RatingPlusBookmarkPlusOrder(t *testing.T) {
	cfg := DefaultConfig()

	comments := []domain.Comment{{UserID: 7, ScenicID: 3, Rating: 5}}
	collections := []domain.ScenicCollection{{UserID: 7, ScenicID: 3}}
	orders := []domain.TicketOrder{{UserID: 7, TicketID: 30, Status: domain.OrderStatusPaid}}
	ticketToScenic := map[uint64]uint64{30: 3}

	matrix := BuildBehaviorMatrix(comments, collections, orders, ticketToScenic, cfg)

	if got := matrix[7][3]; got != 12.0 {
		t.Fatalf("5 + 3 + 4 should accumulate to 12, got %v", got)
	}
}

func TestTranspose(t *testing.T) {
	matrix := BehaviorMatrix{
		1: {10: 3.0, 11: 4.0},
		2: {10: 5.0},
	}

	itemUsers := transpose(matrix)

	if len(itemUsers) != 2 {
		t.Fatalf("expected 2 items, got %d", len(itemUsers))
	}
	if itemUsers[10][1] != 3.0 || itemUsers[10][2] != 5.0 {
		t.Fatalf("unexpected transposed column for item 10: %v", itemUsers[10])
	}
	if len(itemUsers[11]) != 1 || itemUsers[11][1] != 4.0 {
		t.Fatalf("unexpected transposed column for item 11: %v", itemUsers[11])
	}
}

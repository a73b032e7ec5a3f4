package recommend

import (
	"testing"

	"myTourGuide/domain"
)

func TestMergeScores_FusionWeights(t *testing.T) {
	cfg := DefaultConfig()

	userBased := map[uint64]float64{1: 10}
	itemBased := map[uint64]float64{1: 5}

	merged := mergeScores(userBased, itemBased, cfg)

	if got := merged[1]; got != 8.0 {
		t.Fatalf("0.6*10 + 0.4*5 must equal 8.0 exactly, got %v", got)
	}
}

func TestMergeScores_UnionOfKeys(t *testing.T) {
	cfg := DefaultConfig()

	merged := mergeScores(
		map[uint64]float64{1: 10},
		map[uint64]float64{2: 10},
		cfg,
	)

	if len(merged) != 2 {
		t.Fatalf("merge must cover the union of keys, got %v", merged)
	}
	if merged[1] != 6.0 || merged[2] != 4.0 {
		t.Fatalf("missing side must default to 0: got %v", merged)
	}
}

func TestRankNovelFirst_PrefersNovel(t *testing.T) {
	finalScores := map[uint64]float64{
		1: 100, 2: 90, // familiar, higher scores
		3: 50, 4: 40, 5: 30, 6: 20, 7: 10, // novel
	}
	seen := map[uint64]float64{1: 7, 2: 7}

	got := rankNovelFirst(finalScores, seen, 3)

	want := []uint64{3, 4, 5}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("novel candidates must win regardless of familiar scores: want %v, got %v", want, got)
		}
	}
}

func TestRankNovelFirst_Backfill(t *testing.T) {
	finalScores := map[uint64]float64{
		1: 5,                       // novel
		2: 90, 3: 80, 4: 70, 5: 60, // familiar
	}
	seen := map[uint64]float64{2: 7, 3: 7, 4: 7, 5: 7}

	got := rankNovelFirst(finalScores, seen, 5)

	want := []uint64{1, 2, 3, 4, 5}
	if len(got) != 5 {
		t.Fatalf("expected 5 results, got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("backfill must follow familiar scores descending: want %v, got %v", want, got)
		}
	}
}

func TestRankNovelFirst_ExhaustedPools(t *testing.T) {
	finalScores := map[uint64]float64{1: 5, 2: 4}
	seen := map[uint64]float64{2: 3}

	got := rankNovelFirst(finalScores, seen, 10)

	if len(got) != 2 {
		t.Fatalf("both pools exhausted should return what exists, got %v", got)
	}
}

func TestSortCandidates_DeterministicTies(t *testing.T) {
	list := []candidate{
		{scenicID: 9, score: 1.0},
		{scenicID: 3, score: 1.0},
		{scenicID: 5, score: 2.0},
	}

	sortCandidates(list)

	if list[0].scenicID != 5 || list[1].scenicID != 3 || list[2].scenicID != 9 {
		t.Fatalf("ties must break by ascending ID after descending score, got %v", list)
	}
}

func TestPopularityRanking(t *testing.T) {
	cfg := DefaultConfig()

	comments := []domain.Comment{
		{UserID: 1, ScenicID: 10, Rating: 5},
		{UserID: 2, ScenicID: 10, Rating: 4},
		{UserID: 3, ScenicID: 11, Rating: 3}, // below threshold, ignored
	}
	collections := []domain.ScenicCollection{
		{UserID: 1, ScenicID: 11},
		{UserID: 2, ScenicID: 11},
	}
	orders := []domain.TicketOrder{
		{UserID: 1, TicketID: 100, Status: domain.OrderStatusPaid},
		{UserID: 2, TicketID: 100, Status: domain.OrderStatusPending}, // ignored
	}
	ticketToScenic := map[uint64]uint64{100: 12}

	got := popularityRanking(comments, collections, orders, ticketToScenic, 10, cfg)

	// spot 10: 5+4 = 9; spot 11: 3+3 = 6; spot 12: 4
	want := []uint64{10, 11, 12}
	if len(got) != 3 {
		t.Fatalf("expected 3 spots, got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestPopularityRanking_TopNCut(t *testing.T) {
	cfg := DefaultConfig()

	collections := []domain.ScenicCollection{
		{UserID: 1, ScenicID: 1},
		{UserID: 1, ScenicID: 2},
		{UserID: 1, ScenicID: 3},
	}

	got := popularityRanking(nil, collections, nil, nil, 2, cfg)

	if len(got) != 2 {
		t.Fatalf("expected topN cut to 2, got %v", got)
	}
}

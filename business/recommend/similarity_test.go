package recommend

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestUserSimilarity_Symmetry(t *testing.T) {
	a := map[uint64]float64{1: 5, 2: 3, 3: 4}
	b := map[uint64]float64{1: 4, 2: 5, 4: 2}

	ab := userSimilarity(a, b, 2)
	ba := userSimilarity(b, a, 2)

	if !almostEqual(ab, ba) {
		t.Fatalf("user similarity must be symmetric: %v vs %v", ab, ba)
	}
}

func TestUserSimilarity_InsufficientOverlap(t *testing.T) {
	a := map[uint64]float64{1: 5, 2: 3}
	b := map[uint64]float64{1: 5, 3: 3}

	if got := userSimilarity(a, b, 2); got != 0 {
		t.Fatalf("single shared item must give similarity 0, got %v", got)
	}

	if got := userSimilarity(map[uint64]float64{}, b, 2); got != 0 {
		t.Fatalf("empty map must give similarity 0, got %v", got)
	}
}

func TestUserSimilarity_ZeroVariance(t *testing.T) {
	// user a deviates identically on both common items relative to its
	// own mean of 4, so its deviation sum is nonzero, but user b's
	// common weights both sit exactly on b's mean
	a := map[uint64]float64{1: 5, 2: 3}
	b := map[uint64]float64{1: 4, 2: 4}

	if got := userSimilarity(a, b, 2); got != 0 {
		t.Fatalf("zero variance on one side must give 0, got %v", got)
	}
}

func TestUserSimilarity_Bounds(t *testing.T) {
	// perfectly correlated deviations -> r = 1 -> rescaled 1.0
	a := map[uint64]float64{1: 5, 2: 3}
	b := map[uint64]float64{1: 7, 2: 1}

	if got := userSimilarity(a, b, 2); !almostEqual(got, 1.0) {
		t.Fatalf("perfect positive correlation should rescale to 1, got %v", got)
	}

	// perfectly anti-correlated -> r = -1 -> rescaled 0.0
	c := map[uint64]float64{1: 3, 2: 5}
	if got := userSimilarity(a, c, 2); !almostEqual(got, 0.0) {
		t.Fatalf("perfect negative correlation should rescale to 0, got %v", got)
	}
}

func TestUserSimilarity_MeanOverFullMap(t *testing.T) {
	// a's mean over the full map (5+3+1)/3 = 3 differs from its mean
	// over just the common items (5+3)/2 = 4; the full-map mean is what
	// the formula uses, so deviations on item 1 and 2 are +2 and 0
	a := map[uint64]float64{1: 5, 2: 3, 3: 1}
	b := map[uint64]float64{1: 6, 2: 2}

	got := userSimilarity(a, b, 2)

	// with full-map means: a devs {+2, 0}, b devs {+2, -2};
	// r = 4 / (2 * sqrt(8)) = 1/sqrt(2); rescaled (r+1)/2
	want := (1/math.Sqrt2 + 1) / 2
	if !almostEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestItemSimilarity_Symmetry(t *testing.T) {
	a := map[uint]float64{1: 3, 2: 4, 3: 7}
	b := map[uint]float64{1: 4, 2: 3, 4: 5}

	ab := itemSimilarity(a, b, 2)
	ba := itemSimilarity(b, a, 2)

	if !almostEqual(ab, ba) {
		t.Fatalf("item similarity must be symmetric: %v vs %v", ab, ba)
	}
}

func TestItemSimilarity_InsufficientOverlap(t *testing.T) {
	a := map[uint]float64{1: 3, 2: 4}
	b := map[uint]float64{2: 4, 3: 3}

	if got := itemSimilarity(a, b, 2); got != 0 {
		t.Fatalf("single shared user must give similarity 0, got %v", got)
	}
}

func TestItemSimilarity_CommonSubsetOnly(t *testing.T) {
	// cosine runs only over common users; the extra user on b must not
	// drag the similarity down via zero-padding
	a := map[uint]float64{1: 3, 2: 4}
	b := map[uint]float64{1: 3, 2: 4, 3: 100}

	if got := itemSimilarity(a, b, 2); !almostEqual(got, 1.0) {
		t.Fatalf("identical common coordinates should give cosine 1, got %v", got)
	}
}

func TestItemSimilarity_KnownValue(t *testing.T) {
	a := map[uint]float64{1: 1, 2: 0.001}
	b := map[uint]float64{1: 0.001, 2: 1}

	got := itemSimilarity(a, b, 2)
	want := (1*0.001 + 0.001*1) / (math.Sqrt(1+0.001*0.001) * math.Sqrt(0.001*0.001+1))
	if !almostEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got < 0 || got > 1 {
		t.Fatalf("cosine of non-negative vectors must be within [0,1], got %v", got)
	}
}

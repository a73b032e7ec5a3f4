package recommend

import "math"

// userSimilarity is the Pearson correlation of two users' behavior maps,
// rescaled from [-1,1] to [0,1] so downstream scoring never applies a
// negative multiplier.
//
// Means are taken over each user's full behavior map; the correlation
// itself runs only over the co-occurring items. Fewer than minOverlap
// common items, or zero variance on either side, gives 0.
func userSimilarity(a, b map[uint64]float64, minOverlap int) float64 {
	common := make([]uint64, 0, len(a))
	for itemID := range a {
		if _, ok := b[itemID]; ok {
			common = append(common, itemID)
		}
	}
	if len(common) < minOverlap {
		return 0
	}

	avgA := meanWeight(a)
	avgB := meanWeight(b)

	var numerator, denomA, denomB float64
	for _, itemID := range common {
		diffA := a[itemID] - avgA
		diffB := b[itemID] - avgB

		numerator += diffA * diffB
		denomA += diffA * diffA
		denomB += diffB * diffB
	}

	if denomA == 0 || denomB == 0 {
		return 0
	}

	correlation := numerator / math.Sqrt(denomA*denomB)
	return (correlation + 1) / 2
}

// itemSimilarity is the cosine of two items' user-weight vectors, computed
// strictly over the users common to both; vectors are not zero-padded.
func itemSimilarity(a, b map[uint]float64, minOverlap int) float64 {
	common := make([]uint, 0, len(a))
	for userID := range a {
		if _, ok := b[userID]; ok {
			common = append(common, userID)
		}
	}
	if len(common) < minOverlap {
		return 0
	}

	var dotProduct, normA, normB float64
	for _, userID := range common {
		weightA := a[userID]
		weightB := b[userID]

		dotProduct += weightA * weightB
		normA += weightA * weightA
		normB += weightB * weightB
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

func meanWeight[K comparable](m map[K]float64) float64 {
	if len(m) == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range m {
		sum += w
	}
	return sum / float64(len(m))
}

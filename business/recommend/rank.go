package recommend

import (
	"sort"

	"myTourGuide/domain"
)

type candidate struct {
	scenicID uint64
	score    float64
}

// sortCandidates orders by score descending; exact ties fall back to
// ascending scenic ID so identical inputs always produce identical lists.
func sortCandidates(list []candidate) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].scenicID < list[j].scenicID
	})
}

// mergeScores fuses the two score maps over the union of their keys.
func mergeScores(userBased, itemBased map[uint64]float64, cfg Config) map[uint64]float64 {
	merged := make(map[uint64]float64, len(userBased)+len(itemBased))
	for scenicID, score := range userBased {
		merged[scenicID] += cfg.UserBasedWeight * score
	}
	for scenicID, score := range itemBased {
		merged[scenicID] += cfg.ItemBasedWeight * score
	}
	return merged
}

// rankNovelFirst prefers spots the user has no prior behavior on; when
// those run out before topN, familiar spots backfill in score order.
func rankNovelFirst(finalScores map[uint64]float64, seen map[uint64]float64, topN int) []uint64 {
	novel := make([]candidate, 0, len(finalScores))
	familiar := make([]candidate, 0)

	for scenicID, score := range finalScores {
		if _, ok := seen[scenicID]; ok {
			familiar = append(familiar, candidate{scenicID: scenicID, score: score})
		} else {
			novel = append(novel, candidate{scenicID: scenicID, score: score})
		}
	}

	sortCandidates(novel)
	sortCandidates(familiar)

	out := make([]uint64, 0, topN)
	for _, c := range novel {
		if len(out) == topN {
			return out
		}
		out = append(out, c.scenicID)
	}
	for _, c := range familiar {
		if len(out) == topN {
			return out
		}
		out = append(out, c.scenicID)
	}

	return out
}

// popularityRanking scores every spot by aggregate community signal:
// ratings at or above MinPopularRating contribute their value, bookmarks
// contribute BookmarkWeight, paid/completed orders contribute OrderWeight.
// Used when the target user has no behavior at all; this path never runs
// any similarity computation.
func popularityRanking(
	comments []domain.Comment,
	collections []domain.ScenicCollection,
	orders []domain.TicketOrder,
	ticketToScenic map[uint64]uint64,
	topN int,
	cfg Config,
) []uint64 {
	scores := make(map[uint64]float64)

	for _, c := range comments {
		if c.ScenicID != 0 && c.Rating >= cfg.MinPopularRating {
			scores[c.ScenicID] += float64(c.Rating)
		}
	}

	for _, col := range collections {
		if col.ScenicID != 0 {
			scores[col.ScenicID] += cfg.BookmarkWeight
		}
	}

	for _, o := range orders {
		if !isPurchaseStatus(o.Status) {
			continue
		}
		// unresolved tickets were already counted during aggregation
		scenicID, ok := ticketToScenic[o.TicketID]
		if !ok {
			continue
		}
		scores[scenicID] += cfg.OrderWeight
	}

	ranked := make([]candidate, 0, len(scores))
	for scenicID, score := range scores {
		ranked = append(ranked, candidate{scenicID: scenicID, score: score})
	}
	sortCandidates(ranked)

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	out := make([]uint64, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, c.scenicID)
	}
	return out
}

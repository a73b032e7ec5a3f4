package recommend

// userBasedScores finds users similar to the target and distributes their
// behaviors into a score accumulator: score[item] += similarity * weight.
// Only behaviors at bookmark tier or stronger (>= MinSignalWeight)
// contribute, which filters out weak implicit signals.
func userBasedScores(userID uint, matrix BehaviorMatrix, cfg Config) map[uint64]float64 {
	scores := make(map[uint64]float64)
	target := matrix[userID]

	for otherID, otherBehaviors := range matrix {
		if otherID == userID {
			continue
		}

		similarity := userSimilarity(target, otherBehaviors, cfg.MinOverlap)
		if similarity <= 0 {
			continue
		}

		for scenicID, weight := range otherBehaviors {
			if weight >= cfg.MinSignalWeight {
				scores[scenicID] += similarity * weight
			}
		}
	}

	return scores
}

// itemBasedScores walks every item the target user has a behavior on, finds
// similar items, and accumulates score[similar] += similarity * ownWeight,
// where ownWeight is the target user's weight for the originating item.
func itemBasedScores(userID uint, matrix BehaviorMatrix, cfg Config) map[uint64]float64 {
	scores := make(map[uint64]float64)
	target := matrix[userID]
	itemUsers := transpose(matrix)

	for scenicID, ownWeight := range target {
		vec := itemUsers[scenicID]

		for otherScenicID, otherVec := range itemUsers {
			if otherScenicID == scenicID {
				continue
			}

			similarity := itemSimilarity(vec, otherVec, cfg.MinOverlap)
			if similarity <= 0 {
				continue
			}

			scores[otherScenicID] += similarity * ownWeight
		}
	}

	return scores
}

package recommend

import "myTourGuide/domain"

// BehaviorMatrix maps userID -> scenicID -> aggregated behavior weight.
// Absence of an entry means "no signal", never zero; every stored weight is
// strictly positive. Built fresh per request, never persisted.
type BehaviorMatrix map[uint]map[uint64]float64

// itemUserMatrix is the transposed view: scenicID -> userID -> weight.
type itemUserMatrix map[uint64]map[uint]float64

func (m BehaviorMatrix) add(userID uint, scenicID uint64, weight float64) {
	row, ok := m[userID]
	if !ok {
		row = make(map[uint64]float64)
		m[userID] = row
	}
	row[scenicID] += weight
}

// BuildBehaviorMatrix fuses the three interaction logs into one weighted
// matrix. Source order doesn't matter: same-pair contributions sum.
//
// Weights: rating value (only when > 0), bookmark 3.0, order 4.0 for paid
// or completed orders resolved through the ticket -> scenic lookup.
// Malformed records and orders whose ticket has no scenic mapping are
// dropped silently, but counted so data quality stays observable.
func BuildBehaviorMatrix(
	comments []domain.Comment,
	collections []domain.ScenicCollection,
	orders []domain.TicketOrder,
	ticketToScenic map[uint64]uint64,
	cfg Config,
) BehaviorMatrix {
	matrix := make(BehaviorMatrix)

	for _, c := range comments {
		if c.UserID == 0 || c.ScenicID == 0 {
			DroppedRecordsTotal.WithLabelValues(sourceRating, dropMissingField).Inc()
			continue
		}
		if c.Rating <= 0 {
			continue
		}
		matrix.add(c.UserID, c.ScenicID, float64(c.Rating))
	}

	for _, col := range collections {
		if col.UserID == 0 || col.ScenicID == 0 {
			DroppedRecordsTotal.WithLabelValues(sourceBookmark, dropMissingField).Inc()
			continue
		}
		matrix.add(col.UserID, col.ScenicID, cfg.BookmarkWeight)
	}

	for _, o := range orders {
		if o.UserID == 0 || o.TicketID == 0 {
			DroppedRecordsTotal.WithLabelValues(sourceOrder, dropMissingField).Inc()
			continue
		}
		if !isPurchaseStatus(o.Status) {
			continue
		}
		scenicID, ok := ticketToScenic[o.TicketID]
		if !ok {
			DroppedRecordsTotal.WithLabelValues(sourceOrder, dropUnresolvedTicket).Inc()
			continue
		}
		matrix.add(o.UserID, scenicID, cfg.OrderWeight)
	}

	return matrix
}

func isPurchaseStatus(status int) bool {
	return status == domain.OrderStatusPaid || status == domain.OrderStatusCompleted
}

// transpose builds the item -> user view used by item similarity.
func transpose(matrix BehaviorMatrix) itemUserMatrix {
	out := make(itemUserMatrix)
	for userID, behaviors := range matrix {
		for scenicID, weight := range behaviors {
			col, ok := out[scenicID]
			if !ok {
				col = make(map[uint]float64)
				out[scenicID] = col
			}
			col[userID] = weight
		}
	}
	return out
}

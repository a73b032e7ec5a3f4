package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	sourceRating   = "rating"
	sourceBookmark = "bookmark"
	sourceOrder    = "order"

	dropMissingField     = "missing_field"
	dropUnresolvedTicket = "unresolved_ticket"

	modePersonalized = "personalized"
	modePopularity   = "popularity"
)

var (
	RecommendServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_served_total",
			Help: "Count of recommendation lists served, by mode (personalized or popularity fallback).",
		},
		[]string{"mode"},
	)

	// Malformed and unresolvable interaction records are dropped silently
	// during aggregation; this keeps the drop volume observable.
	DroppedRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_dropped_records_total",
			Help: "Count of interaction records dropped during behavior aggregation, by source and reason.",
		},
		[]string{"source", "reason"},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendServedTotal,
		DroppedRecordsTotal,
	)
}

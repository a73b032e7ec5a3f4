package recommend

const (
	defaultUserBasedWeight  = 0.6
	defaultItemBasedWeight  = 0.4
	defaultBookmarkWeight   = 3.0
	defaultOrderWeight      = 4.0
	defaultMinSignalWeight  = 3.0
	defaultMinPopularRating = 4
	defaultMinOverlap       = 2
)

// Config holds the ranking policy knobs. These are tunable business policy,
// not algorithmic necessities, so they live here instead of as literals.
type Config struct {
	// fusion weights for the two score maps
	UserBasedWeight float64
	ItemBasedWeight float64

	// behavior weights for implicit signals
	BookmarkWeight float64
	OrderWeight    float64

	// neighbor behaviors below this weight don't contribute to
	// user-based prediction (keeps only bookmark-tier or stronger)
	MinSignalWeight float64

	// popularity fallback counts ratings at or above this value
	MinPopularRating int

	// co-occurring keys required before a similarity is trusted
	MinOverlap int
}

func DefaultConfig() Config {
	return Config{
		UserBasedWeight:  defaultUserBasedWeight,
		ItemBasedWeight:  defaultItemBasedWeight,
		BookmarkWeight:   defaultBookmarkWeight,
		OrderWeight:      defaultOrderWeight,
		MinSignalWeight:  defaultMinSignalWeight,
		MinPopularRating: defaultMinPopularRating,
		MinOverlap:       defaultMinOverlap,
	}
}

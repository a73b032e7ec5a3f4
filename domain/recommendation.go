package domain

// SpotRecommendation pairs a scenic spot ID with the score the assistant or
// ranking pipeline attached to it. Scores are an internal ranking artifact;
// the public recommend contract returns bare IDs.
type SpotRecommendation struct {
	ScenicID uint64  `json:"scenic_id"`
	Score    float64 `json:"score"`
}

// AssistantRecommendation is one structured pick returned by the
// conversational assistant, validated against the catalog before serving.
type AssistantRecommendation struct {
	ScenicID uint64 `json:"scenic_id"`
	Reason   string `json:"reason"`
}

// EnrichedRecommendation carries the catalog fields the frontend renders
// without a follow-up request.
type EnrichedRecommendation struct {
	ScenicID     uint64  `json:"scenic_id"`
	Name         string  `json:"name"`
	ImageUrl     string  `json:"image_url"`
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	CategoryName string  `json:"category_name"`
	Rating       float64 `json:"rating"`
	CommentCount int     `json:"comment_count"`
	Reason       string  `json:"reason"`
}

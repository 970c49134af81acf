// Package recommend produces job-title recommendations for extracted resume
// text, either through a remote chat-completion client or a deterministic
// keyword heuristic.
package recommend

// Result is the recommendation payload returned to callers. ConfidenceScores
// keys always match RecommendedTitles exactly.
type Result struct {
	RecommendedTitles []string           `json:"recommended_titles"`
	ConfidenceScores  map[string]float64 `json:"confidence_scores"`
	Highlights        []string           `json:"highlights"`
	Explanation       string             `json:"explanation"`
}

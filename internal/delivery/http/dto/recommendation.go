package dto

// RecommendationRequest is the candidate profile as submitted by the
// frontend. UseML is a pointer so an omitted field defaults to true.
type RecommendationRequest struct {
	Education   string   `json:"education"`
	Skills      []string `json:"skills"`
	Sector      string   `json:"sector"`
	Location    string   `json:"preferred_location"`
	Description string   `json:"description"`
	UseML       *bool    `json:"use_ml"`
}

func (r RecommendationRequest) MLEnabled() bool {
	if r.UseML == nil {
		return true
	}
	return *r.UseML
}

type ScoringDetailsResponse struct {
	MLUsed     bool    `json:"ml_used"`
	Method     string  `json:"method"`
	RuleScore  float64 `json:"rule_score"`
	MLScore    float64 `json:"ml_score"`
	ModelReady bool    `json:"model_ready"`
}

type RecommendationResponse struct {
	ID             int64                  `json:"id"`
	Title          string                 `json:"title"`
	CompanyName    string                 `json:"company_name"`
	Sector         string                 `json:"sector"`
	Location       string                 `json:"location"`
	Skills         string                 `json:"skills"`
	Duration       string                 `json:"duration"`
	Description    string                 `json:"description"`
	MatchScore     float64                `json:"match_score"`
	ScoringDetails ScoringDetailsResponse `json:"scoring_details"`
}

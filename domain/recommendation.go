package domain

type RecommendationRequest struct {
	FinancialProfile
	Country     string `json:"country"`
	University  string `json:"university"`
	UserMessage string `json:"userMessage,omitempty"`
}

type RecommendationResult struct {
	Recommendations []string         `json:"recommendations"`
	Metrics         FinancialMetrics `json:"metrics"`
	Source          string           `json:"source"` // "ai" or "fallback"
}

// PeerLoan is one observation from the peer loan dataset.
type PeerLoan struct {
	LoanAmount    float64 `yaml:"loan_amount"`
	DefaultStatus int     `yaml:"default_status"`
}

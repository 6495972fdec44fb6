package domain

const (
	PreferenceMinimizeFee     = "minimize_fee"
	PreferenceMinimizePayment = "minimize_payment"
	PreferenceBalanced        = "balanced"
)

type TermRecommendationInput struct {
	Amount            float64 `json:"amount"`
	MinTermMonths     int     `json:"min_term"`    // 0 = table minimum
	MaxTermMonths     int     `json:"max_term"`    // 0 = table maximum
	MaxMonthlyPayment float64 `json:"max_payment"` // 0 = no limit
	Preference        string  `json:"preference"`  // "minimize_fee", "minimize_payment", "balanced"
}

type TermRecommendation struct {
	TermMonths     int     `json:"term"`
	Fee            float64 `json:"fee"`
	MonthlyPayment float64 `json:"payment"`
	TotalRepayable float64 `json:"total"`
	Interpolated   bool    `json:"interpolated"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
}

type TermRecommendationResult struct {
	RecommendedTerm int                  `json:"recommended_term"`
	Recommendations []TermRecommendation `json:"recommendations"`
}

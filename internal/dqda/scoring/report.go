package scoring

import (
	"time"

	"github.com/google/uuid"

	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
)

// SubReport holds one scoring dimension: its 0-100 score, the evidence
// signals that contributed, and a one-line summary.
type SubReport struct {
	Score   int      `json:"score"`
	Signals []string `json:"signals"`
	Summary string   `json:"summary"`
}

// InvestorFit is the weighted composite verdict.
type InvestorFit struct {
	Score     int    `json:"score"`
	Rating    string `json:"rating"`
	Rationale string `json:"rationale"`
}

// Report is the consolidated due-diligence dashboard for one run. It
// is read-only after the engine returns it.
type Report struct {
	RunID        uuid.UUID                   `json:"run_id"`
	StartupName  string                      `json:"startup_name"`
	Keywords     []string                    `json:"keywords"`
	GeneratedAt  time.Time                   `json:"generated_at"`
	FounderScore int                         `json:"founder_score"`
	Market       SubReport                   `json:"market_analysis"`
	Competition  SubReport                   `json:"competition"`
	TokenUtility SubReport                   `json:"token_utility"`
	Weaknesses   []string                    `json:"weaknesses"`
	InvestorFit  InvestorFit                 `json:"investor_fit"`
	Records      map[string][]collect.Record `json:"data_points"`
}

package contracts

import (
	"Planora/internal/domain/report"
)

type MonthlySummaryResponse struct {
	Summary *report.MonthlySummary `json:"summary"`
}

type CategoryTrendResponse struct {
	Trend *report.CategoryTrend `json:"trend"`
}

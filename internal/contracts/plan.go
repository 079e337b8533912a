package contracts

import (
	"time"

	"Planora/internal/domain/planning"
)

type PlanCreateRequest struct {
	Name                  string    `json:"name" binding:"required,max=100"`
	StartDate             time.Time `json:"start_date" binding:"required"`
	DurationInMonths      int       `json:"duration_in_months" binding:"required,gt=0"`
	MonthlyIncome         float64   `json:"monthly_income" binding:"required,gt=0"`
	ManualMonthlyExpenses float64   `json:"manual_monthly_expenses" binding:"gte=0"`
	UseAppExpenseData     bool      `json:"use_app_expense_data"`
	IsInflationApplied    bool      `json:"is_inflation_applied"`
	InflationRate         float64   `json:"inflation_rate" binding:"gte=-50,lte=100"`
	IsInterestApplied     bool      `json:"is_interest_applied"`
	InterestRate          float64   `json:"interest_rate" binding:"gte=0,lte=100"`
	InterestType          string    `json:"interest_type" binding:"omitempty,oneof=SIMPLE COMPOUND"`
	DefaultCurrency       string    `json:"default_currency" binding:"required,len=3"`
}

type PlanUpdateRequest struct {
	Name                  string    `json:"name" binding:"required,max=100"`
	StartDate             time.Time `json:"start_date" binding:"required"`
	DurationInMonths      int       `json:"duration_in_months" binding:"required,gt=0"`
	MonthlyIncome         float64   `json:"monthly_income" binding:"required,gt=0"`
	ManualMonthlyExpenses float64   `json:"manual_monthly_expenses" binding:"gte=0"`
	UseAppExpenseData     bool      `json:"use_app_expense_data"`
	IsInflationApplied    bool      `json:"is_inflation_applied"`
	InflationRate         float64   `json:"inflation_rate" binding:"gte=-50,lte=100"`
	IsInterestApplied     bool      `json:"is_interest_applied"`
	InterestRate          float64   `json:"interest_rate" binding:"gte=0,lte=100"`
	InterestType          string    `json:"interest_type" binding:"omitempty,oneof=SIMPLE COMPOUND"`
	DefaultCurrency       string    `json:"default_currency" binding:"required,len=3"`
}

type BreakdownUpdateRequest struct {
	ProjectedIncome        *float64 `json:"projected_income" binding:"omitempty,gte=0"`
	TotalProjectedExpenses *float64 `json:"total_projected_expenses" binding:"omitempty,gte=0"`
}

type PlanResponse struct {
	Plan *planning.FinancialPlan `json:"plan"`
}

type PlanWithBreakdownsResponse struct {
	Plan       *planning.FinancialPlan          `json:"plan"`
	Breakdowns []*planning.PlanMonthlyBreakdown `json:"breakdowns"`
}

type BreakdownResponse struct {
	Breakdown *planning.PlanMonthlyBreakdown `json:"breakdown"`
}

type PlanPositionResponse struct {
	Position *planning.PlanCurrentPosition `json:"position"`
}

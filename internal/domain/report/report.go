package report

import (
	"github.com/oklog/ulid/v2"
)

// MonthlySummary é o resumo de despesas de um mês-calendário
type MonthlySummary struct {
	Month          int              `json:"month"`
	Year           int              `json:"year"`
	TotalExpenses  float64          `json:"totalExpenses"`
	RecurringTotal float64          `json:"recurringTotal"`
	OneTimeTotal   float64          `json:"oneTimeTotal"`
	ByCategory     []CategoryAmount `json:"byCategory"`
}

type CategoryAmount struct {
	CategoryId   ulid.ULID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Amount       float64   `json:"amount"`
	Percentage   float64   `json:"percentage"`
	Count        int       `json:"count"`
}

type CategoryTrend struct {
	CategoryId   ulid.ULID     `json:"categoryId"`
	CategoryName string        `json:"categoryName"`
	TotalAmount  float64       `json:"totalAmount"`
	Count        int           `json:"count"`
	Average      float64       `json:"average"`
	MonthlyTrend []MonthAmount `json:"monthlyTrend"`
}

type MonthAmount struct {
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

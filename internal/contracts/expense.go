package contracts

import (
	"time"

	"Planora/internal/domain/expense"
)

type ExpenseCreateRequest struct {
	CategoryID     string     `json:"category_id" binding:"required"`
	SubCategoryID  *string    `json:"sub_category_id"`
	Amount         float64    `json:"amount" binding:"required,gt=0"`
	Currency       string     `json:"currency" binding:"required,len=3"`
	ExchangeRate   *float64   `json:"exchange_rate" binding:"omitempty,gt=0"`
	Note           string     `json:"note" binding:"omitempty,max=255"`
	Date           time.Time  `json:"date" binding:"required"`
	RecurrenceType string     `json:"recurrence_type" binding:"omitempty,oneof=NONE DAILY WEEKDAYS WEEKLY MONTHLY"`
	EndDate        *time.Time `json:"end_date"`
}

type ExpenseUpdateRequest struct {
	CategoryID     *string    `json:"category_id"`
	SubCategoryID  *string    `json:"sub_category_id"`
	Amount         *float64   `json:"amount" binding:"omitempty,gt=0"`
	Currency       *string    `json:"currency" binding:"omitempty,len=3"`
	ExchangeRate   *float64   `json:"exchange_rate" binding:"omitempty,gt=0"`
	Note           *string    `json:"note" binding:"omitempty,max=255"`
	Date           *time.Time `json:"date"`
	RecurrenceType *string    `json:"recurrence_type" binding:"omitempty,oneof=NONE DAILY WEEKDAYS WEEKLY MONTHLY"`
	EndDate        *time.Time `json:"end_date"`
}

type ExpenseResponse struct {
	Expense *expense.Expense `json:"expense"`
}

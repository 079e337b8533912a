package expense

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type RecurrenceType string

const (
	RecurrenceNone     RecurrenceType = "NONE"
	RecurrenceDaily    RecurrenceType = "DAILY"
	RecurrenceWeekdays RecurrenceType = "WEEKDAYS"
	RecurrenceWeekly   RecurrenceType = "WEEKLY"
	RecurrenceMonthly  RecurrenceType = "MONTHLY"
)

func (r RecurrenceType) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekdays, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// IsRecurring indica se a despesa repete ao longo do tempo
func (r RecurrenceType) IsRecurring() bool {
	return r.IsValid() && r != RecurrenceNone
}

// Expense é uma transação registrada pelo usuário
type Expense struct {
	Id             ulid.ULID      `gorm:"type:varchar(26);primaryKey" json:"id"`
	CategoryId     ulid.ULID      `gorm:"type:varchar(26);index:idx_expenses_category_id;not null" json:"categoryId"`
	SubCategoryId  *ulid.ULID     `gorm:"type:varchar(26);index:idx_expenses_subcategory_id" json:"subCategoryId"`
	Amount         float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency       string         `gorm:"type:varchar(3);not null" json:"currency"`
	ExchangeRate   *float64       `gorm:"type:decimal(15,6)" json:"exchangeRate"`
	Note           string         `gorm:"type:varchar(255)" json:"note"`
	Date           time.Time      `gorm:"type:date;not null;index:idx_expenses_date" json:"date"`
	RecurrenceType RecurrenceType `gorm:"type:varchar(10);not null;default:'NONE';index:idx_expenses_recurrence" json:"recurrenceType"`
	EndDate        *time.Time     `gorm:"type:date" json:"endDate"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Expense) TableName() string {
	return "expenses"
}

// AmountInDefaultCurrency converte o valor para a moeda padrão informada.
// A decisão sobre taxa ausente fica concentrada aqui: despesa em moeda
// estrangeira sem taxa registrada não entra na agregação.
func (e *Expense) AmountInDefaultCurrency(defaultCurrency string) float64 {
	if e.Currency == defaultCurrency {
		return e.Amount
	}
	if e.ExchangeRate == nil || *e.ExchangeRate <= 0 {
		return 0
	}
	return e.Amount * *e.ExchangeRate
}

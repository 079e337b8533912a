package planning

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type InterestType string

const (
	InterestSimple   InterestType = "SIMPLE"
	InterestCompound InterestType = "COMPOUND"
)

func (t InterestType) IsValid() bool {
	switch t {
	case InterestSimple, InterestCompound:
		return true
	}
	return false
}

// FinancialPlan representa um cenário de poupança/gastos definido pelo usuário
type FinancialPlan struct {
	Id                    ulid.ULID    `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name                  string       `gorm:"type:varchar(100);not null" json:"name"`
	StartDate             time.Time    `gorm:"type:date;not null" json:"startDate"`
	DurationInMonths      int          `gorm:"not null" json:"durationInMonths"`
	MonthlyIncome         float64      `gorm:"type:decimal(15,2);not null" json:"monthlyIncome"`
	ManualMonthlyExpenses float64      `gorm:"type:decimal(15,2);not null;default:0" json:"manualMonthlyExpenses"`
	UseAppExpenseData     bool         `gorm:"not null;default:false" json:"useAppExpenseData"`
	IsInflationApplied    bool         `gorm:"not null;default:false" json:"isInflationApplied"`
	InflationRate         float64      `gorm:"type:decimal(8,4);not null;default:0" json:"inflationRate"`
	IsInterestApplied     bool         `gorm:"not null;default:false" json:"isInterestApplied"`
	InterestRate          float64      `gorm:"type:decimal(8,4);not null;default:0" json:"interestRate"`
	InterestType          InterestType `gorm:"type:varchar(10);not null;default:'SIMPLE'" json:"interestType"`
	DefaultCurrency       string       `gorm:"type:varchar(3);not null" json:"defaultCurrency"`
	CreatedAt             time.Time    `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt             time.Time    `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (FinancialPlan) TableName() string {
	return "financial_plans"
}

func (p *FinancialPlan) EndDate() time.Time {
	return p.StartDate.AddDate(0, p.DurationInMonths, 0)
}

func (p *FinancialPlan) IsActive(now time.Time) bool {
	return !now.Before(p.StartDate) && !now.After(p.EndDate())
}

// MonthsElapsed retorna os meses completos entre o início do plano e o instante
// informado, limitado ao intervalo [0, DurationInMonths]
func (p *FinancialPlan) MonthsElapsed(now time.Time) int {
	months := (now.Year()-p.StartDate.Year())*12 + int(now.Month()) - int(p.StartDate.Month())
	if now.Day() < p.StartDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	if months > p.DurationInMonths {
		return p.DurationInMonths
	}
	return months
}

// MonthlyIncomeAtMonth é o ponto único de extensão para regras de crescimento
// de renda. Hoje a renda é constante ao longo do plano.
func (p *FinancialPlan) MonthlyIncomeAtMonth(monthIndex int) float64 {
	return p.MonthlyIncome
}

// MonthStart retorna o primeiro dia do mês-calendário projetado em monthIndex.
// O cálculo parte do primeiro dia do mês inicial para evitar a normalização
// do AddDate em meses mais curtos.
func (p *FinancialPlan) MonthStart(monthIndex int) time.Time {
	base := time.Date(p.StartDate.Year(), p.StartDate.Month(), 1, 0, 0, 0, 0, p.StartDate.Location())
	return base.AddDate(0, monthIndex, 0)
}

package planning

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// PlanMonthlyBreakdown é uma linha de previsão de um único mês do plano
type PlanMonthlyBreakdown struct {
	Id                     ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	PlanId                 ulid.ULID `gorm:"type:varchar(26);index:idx_breakdowns_plan_id;not null" json:"planId"`
	MonthIndex             int       `gorm:"not null" json:"monthIndex"`
	ProjectedIncome        float64   `gorm:"type:decimal(15,2);not null" json:"projectedIncome"`
	FixedExpenses          float64   `gorm:"type:decimal(15,2);not null;default:0" json:"fixedExpenses"`
	AverageExpenses        float64   `gorm:"type:decimal(15,2);not null;default:0" json:"averageExpenses"`
	TotalProjectedExpenses float64   `gorm:"type:decimal(15,2);not null" json:"totalProjectedExpenses"`
	NetAmount              float64   `gorm:"type:decimal(15,2);not null" json:"netAmount"`
	InterestEarned         float64   `gorm:"type:decimal(15,2);not null;default:0" json:"interestEarned"`
	CumulativeNet          float64   `gorm:"type:decimal(15,2);not null" json:"cumulativeNet"`
	CreatedAt              time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (PlanMonthlyBreakdown) TableName() string {
	return "plan_monthly_breakdowns"
}

// PlanWithBreakdowns é o composto de leitura: plano + linhas ordenadas por MonthIndex.
// Montado na leitura, nunca persistido como unidade.
type PlanWithBreakdowns struct {
	Plan       *FinancialPlan          `json:"plan"`
	Breakdowns []*PlanMonthlyBreakdown `json:"breakdowns"`
}

// PlanCurrentPosition é o relatório efêmero de posição atual do plano
type PlanCurrentPosition struct {
	PlanId                ulid.ULID `json:"planId"`
	MonthsElapsed         int       `json:"monthsElapsed"`
	ExpectedCumulativeNet float64   `json:"expectedCumulativeNet"`
	ActualCumulativeNet   float64   `json:"actualCumulativeNet"`
	Variance              float64   `json:"variance"`
	IsOnTrack             bool      `json:"isOnTrack"`
}

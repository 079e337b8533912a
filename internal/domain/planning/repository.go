package planning

import (
	"context"
	"time"

	"Planora/internal/domain/expense"
	"Planora/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, plan *FinancialPlan) error
	Update(ctx context.Context, plan *FinancialPlan) error
	Delete(ctx context.Context, id ulid.ULID) error
	GetById(ctx context.Context, id ulid.ULID) (*FinancialPlan, error)
	List(ctx context.Context, pagination *pkg.PaginationParams) ([]*FinancialPlan, int64, error)
	GetActive(ctx context.Context, now time.Time) ([]*FinancialPlan, error)

	GetBreakdowns(ctx context.Context, planID ulid.ULID) ([]*PlanMonthlyBreakdown, error)
	GetBreakdownById(ctx context.Context, id ulid.ULID) (*PlanMonthlyBreakdown, error)
	CreateBreakdowns(ctx context.Context, rows []*PlanMonthlyBreakdown) error
	UpdateBreakdown(ctx context.Context, row *PlanMonthlyBreakdown) error
	DeleteBreakdownsByPlan(ctx context.Context, planID ulid.ULID) error
	// ReplaceBreakdowns apaga todas as linhas do plano e insere o conjunto
	// informado em uma única transação
	ReplaceBreakdowns(ctx context.Context, planID ulid.ULID, rows []*PlanMonthlyBreakdown) error
}

// ExpenseLedger é a visão somente-leitura do livro de despesas que o motor
// de projeção consome. O filtro por janela e recorrência é feito em memória.
type ExpenseLedger interface {
	ListAll(ctx context.Context) ([]*expense.Expense, error)
}

package planning

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"Planora/internal/domain/expense"
	appErrors "Planora/internal/errors"
	"Planora/internal/logger"
	"Planora/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type CreatePlanRequest struct {
	Name                  string
	StartDate             time.Time
	DurationInMonths      int
	MonthlyIncome         float64
	ManualMonthlyExpenses float64
	UseAppExpenseData     bool
	IsInflationApplied    bool
	InflationRate         float64
	IsInterestApplied     bool
	InterestRate          float64
	InterestType          InterestType
	DefaultCurrency       string
}

type UpdatePlanRequest struct {
	Id                    ulid.ULID
	Name                  string
	StartDate             time.Time
	DurationInMonths      int
	MonthlyIncome         float64
	ManualMonthlyExpenses float64
	UseAppExpenseData     bool
	IsInflationApplied    bool
	InflationRate         float64
	IsInterestApplied     bool
	InterestRate          float64
	InterestType          InterestType
	DefaultCurrency       string
}

type UpdateBreakdownRequest struct {
	Id                     ulid.ULID
	ProjectedIncome        *float64
	TotalProjectedExpenses *float64
}

// Service orquestra o ciclo de vida dos planos e mantém as linhas de
// detalhamento consistentes com edições de parâmetros e passagem do tempo.
// Operações sobre o mesmo plano são serializadas por um mutex por planId;
// planos distintos podem ser processados em paralelo.
type Service struct {
	Repository Repository
	Ledger     ExpenseLedger
	Now        func() time.Time

	planLocks sync.Map
}

func NewService(repo Repository, ledger ExpenseLedger) *Service {
	return &Service{
		Repository: repo,
		Ledger:     ledger,
		Now:        time.Now,
	}
}

func (s *Service) lockPlan(id ulid.ULID) func() {
	value, _ := s.planLocks.LoadOrStore(id, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreatePlan persiste o plano e gera sincronamente todas as linhas de
// detalhamento. Falha na inserção das linhas desfaz a inserção do plano
// para não deixar um plano órfão sem previsão.
func (s *Service) CreatePlan(ctx context.Context, req *CreatePlanRequest) (*FinancialPlan, error) {
	now := s.Now()
	plan := &FinancialPlan{
		Id:                    pkg.GenerateULIDObject(),
		Name:                  strings.TrimSpace(req.Name),
		StartDate:             req.StartDate,
		DurationInMonths:      req.DurationInMonths,
		MonthlyIncome:         req.MonthlyIncome,
		ManualMonthlyExpenses: req.ManualMonthlyExpenses,
		UseAppExpenseData:     req.UseAppExpenseData,
		IsInflationApplied:    req.IsInflationApplied,
		InflationRate:         req.InflationRate,
		IsInterestApplied:     req.IsInterestApplied,
		InterestRate:          req.InterestRate,
		InterestType:          req.InterestType,
		DefaultCurrency:       strings.ToUpper(strings.TrimSpace(req.DefaultCurrency)),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if plan.InterestType == "" {
		plan.InterestType = InterestSimple
	}

	if result := ValidatePlan(plan); !result.IsValid {
		return nil, appErrors.NewPlanValidationError(result.Errors)
	}

	unlock := s.lockPlan(plan.Id)
	defer unlock()

	if err := s.Repository.Create(ctx, plan); err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, plan)
	if err != nil {
		_ = s.Repository.Delete(ctx, plan.Id)
		return nil, err
	}

	rows := GenerateBreakdowns(plan, history, now)
	if err := s.Repository.CreateBreakdowns(ctx, rows); err != nil {
		_ = s.Repository.Delete(ctx, plan.Id)
		return nil, err
	}

	logger.Info().
		Str("plan_id", plan.Id.String()).
		Int("months", plan.DurationInMonths).
		Msg("Plano criado com previsão completa")

	return plan, nil
}

// UpdatePlan persiste os novos parâmetros e regenera a previsão inteira.
// Editar qualquer parâmetro invalida todo o detalhamento existente.
func (s *Service) UpdatePlan(ctx context.Context, req *UpdatePlanRequest) (*FinancialPlan, error) {
	unlock := s.lockPlan(req.Id)
	defer unlock()

	plan, err := s.Repository.GetById(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	plan.Name = strings.TrimSpace(req.Name)
	plan.StartDate = req.StartDate
	plan.DurationInMonths = req.DurationInMonths
	plan.MonthlyIncome = req.MonthlyIncome
	plan.ManualMonthlyExpenses = req.ManualMonthlyExpenses
	plan.UseAppExpenseData = req.UseAppExpenseData
	plan.IsInflationApplied = req.IsInflationApplied
	plan.InflationRate = req.InflationRate
	plan.IsInterestApplied = req.IsInterestApplied
	plan.InterestRate = req.InterestRate
	plan.InterestType = req.InterestType
	plan.DefaultCurrency = strings.ToUpper(strings.TrimSpace(req.DefaultCurrency))
	plan.UpdatedAt = now

	if result := ValidatePlan(plan); !result.IsValid {
		return nil, appErrors.NewPlanValidationError(result.Errors)
	}

	if err := s.Repository.Update(ctx, plan); err != nil {
		return nil, err
	}

	if err := s.regenerate(ctx, plan, now); err != nil {
		return nil, err
	}

	return plan, nil
}

// DeletePlan remove o plano e todas as suas linhas de detalhamento
func (s *Service) DeletePlan(ctx context.Context, planID ulid.ULID) error {
	unlock := s.lockPlan(planID)
	defer unlock()

	if err := s.Repository.DeleteBreakdownsByPlan(ctx, planID); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, planID)
}

// RegeneratePlanBreakdowns força a regeneração completa sem alterar os
// parâmetros do plano. Plano inexistente é tratado como ausência, não erro.
func (s *Service) RegeneratePlanBreakdowns(ctx context.Context, planID ulid.ULID) error {
	unlock := s.lockPlan(planID)
	defer unlock()

	plan, err := s.Repository.GetById(ctx, planID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	return s.regenerate(ctx, plan, s.Now())
}

func (s *Service) regenerate(ctx context.Context, plan *FinancialPlan, now time.Time) error {
	history, err := s.loadHistory(ctx, plan)
	if err != nil {
		return err
	}

	rows := GenerateBreakdowns(plan, history, now)
	return s.Repository.ReplaceBreakdowns(ctx, plan.Id, rows)
}

// UpdateExpenseData é o caminho de regeneração parcial: meses já decorridos
// são preservados byte a byte e apenas o mês corrente e os futuros são
// recalculados com o histórico de despesas atual, continuando o acumulado
// de onde o último mês preservado parou.
func (s *Service) UpdateExpenseData(ctx context.Context, planID ulid.ULID) error {
	unlock := s.lockPlan(planID)
	defer unlock()

	plan, err := s.Repository.GetById(ctx, planID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	if !plan.UseAppExpenseData {
		return nil
	}

	now := s.Now()
	currentMonthIndex := plan.MonthsElapsed(now)

	existing, err := s.Repository.GetBreakdowns(ctx, planID)
	if err != nil {
		return err
	}
	sort.Slice(existing, func(i, j int) bool {
		return existing[i].MonthIndex < existing[j].MonthIndex
	})

	preserved := make([]*PlanMonthlyBreakdown, 0, currentMonthIndex)
	cumulative := 0.0
	for _, row := range existing {
		if row.MonthIndex >= currentMonthIndex {
			break
		}
		preserved = append(preserved, row)
		cumulative = row.CumulativeNet
	}

	history, err := s.Ledger.ListAll(ctx)
	if err != nil {
		return err
	}

	avgOneTime := AverageOneTimeExpenses(history, plan.DefaultCurrency, now)

	merged := preserved
	for monthIndex := currentMonthIndex; monthIndex < plan.DurationInMonths; monthIndex++ {
		row, next := ProjectMonth(plan, history, monthIndex, avgOneTime, cumulative)
		merged = append(merged, row)
		cumulative = next
	}

	if err := s.Repository.ReplaceBreakdowns(ctx, planID, merged); err != nil {
		return err
	}

	// updatedAt é tocado mesmo sem mudança de parâmetros, sinalizando
	// "previsão atualizada"
	plan.UpdatedAt = now
	return s.Repository.Update(ctx, plan)
}

// UpdateBreakdown aplica uma sobreposição manual em uma única linha,
// recalculando apenas o netAmount da própria linha. O acumulado das demais
// linhas NÃO é tocado; quem precisar da consistência do acumulado deve
// chamar RecalculateCumulativeAmounts em seguida.
func (s *Service) UpdateBreakdown(ctx context.Context, req *UpdateBreakdownRequest) (*PlanMonthlyBreakdown, error) {
	row, err := s.Repository.GetBreakdownById(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	unlock := s.lockPlan(row.PlanId)
	defer unlock()

	if req.ProjectedIncome != nil {
		row.ProjectedIncome = *req.ProjectedIncome
	}
	if req.TotalProjectedExpenses != nil {
		row.TotalProjectedExpenses = *req.TotalProjectedExpenses
		if row.AverageExpenses > 0 && row.FixedExpenses == 0 {
			row.AverageExpenses = *req.TotalProjectedExpenses
		} else {
			row.FixedExpenses = *req.TotalProjectedExpenses
			row.AverageExpenses = 0
		}
	}

	row.NetAmount = row.ProjectedIncome - row.TotalProjectedExpenses
	row.UpdatedAt = s.Now()

	if err := s.Repository.UpdateBreakdown(ctx, row); err != nil {
		return nil, err
	}

	return row, nil
}

// RecalculateCumulativeAmounts rederiva o acumulado de todas as linhas do
// plano do zero, em ordem de MonthIndex
func (s *Service) RecalculateCumulativeAmounts(ctx context.Context, planID ulid.ULID) error {
	unlock := s.lockPlan(planID)
	defer unlock()

	rows, err := s.Repository.GetBreakdowns(ctx, planID)
	if err != nil {
		return err
	}

	RecalculateCumulative(rows)

	for _, row := range rows {
		row.UpdatedAt = s.Now()
		if err := s.Repository.UpdateBreakdown(ctx, row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) GetPlan(ctx context.Context, planID ulid.ULID) (*FinancialPlan, error) {
	return s.Repository.GetById(ctx, planID)
}

func (s *Service) GetPlanWithBreakdowns(ctx context.Context, planID ulid.ULID) (*PlanWithBreakdowns, error) {
	plan, err := s.Repository.GetById(ctx, planID)
	if err != nil {
		return nil, err
	}

	rows, err := s.Repository.GetBreakdowns(ctx, planID)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].MonthIndex < rows[j].MonthIndex
	})

	return &PlanWithBreakdowns{Plan: plan, Breakdowns: rows}, nil
}

func (s *Service) ListPlans(ctx context.Context, pagination *pkg.PaginationParams) ([]*FinancialPlan, int64, error) {
	return s.Repository.List(ctx, pagination)
}

// RefreshActivePlans atualiza a previsão de todos os planos vigentes com o
// histórico de despesas corrente. Chamado pelo agendador noturno; falha em
// um plano não interrompe os demais.
func (s *Service) RefreshActivePlans(ctx context.Context) error {
	plans, err := s.Repository.GetActive(ctx, s.Now())
	if err != nil {
		return err
	}

	for _, plan := range plans {
		if err := s.UpdateExpenseData(ctx, plan.Id); err != nil {
			logger.Error().
				Err(err).
				Str("plan_id", plan.Id.String()).
				Msg("Falha ao atualizar previsão do plano")
		}
	}

	return nil
}

func (s *Service) loadHistory(ctx context.Context, plan *FinancialPlan) ([]*expense.Expense, error) {
	if !plan.UseAppExpenseData {
		return nil, nil
	}
	return s.Ledger.ListAll(ctx)
}

func isNotFound(err error) bool {
	appErr, ok := appErrors.AsAppError(err)
	return ok && appErr.StatusCode == http.StatusNotFound
}

package planning_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Planora/internal/domain/expense"
	"Planora/internal/domain/planning"
	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakePlanRepository struct {
	createFn                 func(ctx context.Context, plan *planning.FinancialPlan) error
	updateFn                 func(ctx context.Context, plan *planning.FinancialPlan) error
	deleteFn                 func(ctx context.Context, id ulid.ULID) error
	getByIDFn                func(ctx context.Context, id ulid.ULID) (*planning.FinancialPlan, error)
	listFn                   func(ctx context.Context, pagination *pkg.PaginationParams) ([]*planning.FinancialPlan, int64, error)
	getActiveFn              func(ctx context.Context, now time.Time) ([]*planning.FinancialPlan, error)
	getBreakdownsFn          func(ctx context.Context, planID ulid.ULID) ([]*planning.PlanMonthlyBreakdown, error)
	getBreakdownByIDFn       func(ctx context.Context, id ulid.ULID) (*planning.PlanMonthlyBreakdown, error)
	createBreakdownsFn       func(ctx context.Context, rows []*planning.PlanMonthlyBreakdown) error
	updateBreakdownFn        func(ctx context.Context, row *planning.PlanMonthlyBreakdown) error
	deleteBreakdownsByPlanFn func(ctx context.Context, planID ulid.ULID) error
	replaceBreakdownsFn      func(ctx context.Context, planID ulid.ULID, rows []*planning.PlanMonthlyBreakdown) error
}

func (f *fakePlanRepository) Create(ctx context.Context, plan *planning.FinancialPlan) error {
	if f.createFn != nil {
		return f.createFn(ctx, plan)
	}
	return nil
}

func (f *fakePlanRepository) Update(ctx context.Context, plan *planning.FinancialPlan) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, plan)
	}
	return nil
}

func (f *fakePlanRepository) Delete(ctx context.Context, id ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakePlanRepository) GetById(ctx context.Context, id ulid.ULID) (*planning.FinancialPlan, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, appErrors.ErrPlanNotFound
}

func (f *fakePlanRepository) List(ctx context.Context, pagination *pkg.PaginationParams) ([]*planning.FinancialPlan, int64, error) {
	if f.listFn != nil {
		return f.listFn(ctx, pagination)
	}
	return nil, 0, nil
}

func (f *fakePlanRepository) GetActive(ctx context.Context, now time.Time) ([]*planning.FinancialPlan, error) {
	if f.getActiveFn != nil {
		return f.getActiveFn(ctx, now)
	}
	return nil, nil
}

func (f *fakePlanRepository) GetBreakdowns(ctx context.Context, planID ulid.ULID) ([]*planning.PlanMonthlyBreakdown, error) {
	if f.getBreakdownsFn != nil {
		return f.getBreakdownsFn(ctx, planID)
	}
	return nil, nil
}

func (f *fakePlanRepository) GetBreakdownById(ctx context.Context, id ulid.ULID) (*planning.PlanMonthlyBreakdown, error) {
	if f.getBreakdownByIDFn != nil {
		return f.getBreakdownByIDFn(ctx, id)
	}
	return nil, appErrors.ErrBreakdownNotFound
}

func (f *fakePlanRepository) CreateBreakdowns(ctx context.Context, rows []*planning.PlanMonthlyBreakdown) error {
	if f.createBreakdownsFn != nil {
		return f.createBreakdownsFn(ctx, rows)
	}
	return nil
}

func (f *fakePlanRepository) UpdateBreakdown(ctx context.Context, row *planning.PlanMonthlyBreakdown) error {
	if f.updateBreakdownFn != nil {
		return f.updateBreakdownFn(ctx, row)
	}
	return nil
}

func (f *fakePlanRepository) DeleteBreakdownsByPlan(ctx context.Context, planID ulid.ULID) error {
	if f.deleteBreakdownsByPlanFn != nil {
		return f.deleteBreakdownsByPlanFn(ctx, planID)
	}
	return nil
}

func (f *fakePlanRepository) ReplaceBreakdowns(ctx context.Context, planID ulid.ULID, rows []*planning.PlanMonthlyBreakdown) error {
	if f.replaceBreakdownsFn != nil {
		return f.replaceBreakdownsFn(ctx, planID, rows)
	}
	return nil
}

type fakeLedger struct {
	listAllFn func(ctx context.Context) ([]*expense.Expense, error)
}

func (f *fakeLedger) ListAll(ctx context.Context) ([]*expense.Expense, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx)
	}
	return nil, nil
}

func newTestService(repo *fakePlanRepository, ledger *fakeLedger, now time.Time) *planning.Service {
	svc := planning.NewService(repo, ledger)
	svc.Now = func() time.Time { return now }
	return svc
}

func validCreateRequest() *planning.CreatePlanRequest {
	return &planning.CreatePlanRequest{
		Name:                  "Reserva de emergência",
		StartDate:             time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationInMonths:      6,
		MonthlyIncome:         5000,
		ManualMonthlyExpenses: 3000,
		InterestType:          planning.InterestSimple,
		DefaultCurrency:       "BRL",
	}
}

func TestCreatePlanGeneratesFullBreakdown(t *testing.T) {
	t.Parallel()

	var created []*planning.PlanMonthlyBreakdown
	repo := &fakePlanRepository{
		createBreakdownsFn: func(ctx context.Context, rows []*planning.PlanMonthlyBreakdown) error {
			created = rows
			return nil
		},
	}

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeLedger{}, now)

	plan, err := svc.CreatePlan(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan == nil || pkg.IsEmptyULID(plan.Id) {
		t.Fatalf("expected plan with generated id, got %+v", plan)
	}
	if len(created) != 6 {
		t.Fatalf("expected 6 breakdown rows, got %d", len(created))
	}
	if !almostEqual(created[5].CumulativeNet, 12000) {
		t.Fatalf("expected final cumulative 12000, got %f", created[5].CumulativeNet)
	}
}

func TestCreatePlanValidationError(t *testing.T) {
	t.Parallel()

	createCalled := false
	repo := &fakePlanRepository{
		createFn: func(ctx context.Context, plan *planning.FinancialPlan) error {
			createCalled = true
			return nil
		},
	}

	svc := newTestService(repo, &fakeLedger{}, time.Now())

	req := validCreateRequest()
	req.MonthlyIncome = 0

	_, err := svc.CreatePlan(context.Background(), req)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if createCalled {
		t.Fatalf("invalid plan must not be persisted")
	}
}

func TestCreatePlanRollsBackWhenBreakdownsFail(t *testing.T) {
	t.Parallel()

	var deletedID ulid.ULID
	repo := &fakePlanRepository{
		createBreakdownsFn: func(ctx context.Context, rows []*planning.PlanMonthlyBreakdown) error {
			return appErrors.NewDatabaseError(errors.New("insert failed"))
		},
		deleteFn: func(ctx context.Context, id ulid.ULID) error {
			deletedID = id
			return nil
		},
	}

	svc := newTestService(repo, &fakeLedger{}, time.Now())

	_, err := svc.CreatePlan(context.Background(), validCreateRequest())
	if err == nil {
		t.Fatalf("expected error")
	}
	if pkg.IsEmptyULID(deletedID) {
		t.Fatalf("expected the orphan plan to be deleted on rollback")
	}
}

func TestUpdatePlanRegeneratesBreakdowns(t *testing.T) {
	t.Parallel()

	planID := ulid.Make()
	stored := &planning.FinancialPlan{
		Id:                    planID,
		Name:                  "Antigo",
		StartDate:             time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationInMonths:      6,
		MonthlyIncome:         5000,
		ManualMonthlyExpenses: 3000,
		InterestType:          planning.InterestSimple,
		DefaultCurrency:       "BRL",
	}

	var replaced []*planning.PlanMonthlyBreakdown
	repo := &fakePlanRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*planning.FinancialPlan, error) {
			return stored, nil
		},
		replaceBreakdownsFn: func(ctx context.Context, id ulid.ULID, rows []*planning.PlanMonthlyBreakdown) error {
			replaced = rows
			return nil
		},
	}

	svc := newTestService(repo, &fakeLedger{}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	req := &planning.UpdatePlanRequest{
		Id:                    planID,
		Name:                  "Novo nome",
		StartDate:             stored.StartDate,
		DurationInMonths:      12,
		MonthlyIncome:         6000,
		ManualMonthlyExpenses: 3000,
		InterestType:          planning.InterestSimple,
		DefaultCurrency:       "BRL",
	}

	plan, err := svc.UpdatePlan(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Name != "Novo nome" {
		t.Fatalf("expected updated name, got %q", plan.Name)
	}
	if len(replaced) != 12 {
		t.Fatalf("expected regeneration with 12 rows, got %d", len(replaced))
	}
}

func TestUpdatePlanNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakePlanRepository{}, &fakeLedger{}, time.Now())

	req := &planning.UpdatePlanRequest{
		Id:               ulid.Make(),
		Name:             "Qualquer",
		StartDate:        time.Now(),
		DurationInMonths: 6,
		MonthlyIncome:    5000,
		InterestType:     planning.InterestSimple,
		DefaultCurrency:  "BRL",
	}

	_, err := svc.UpdatePlan(context.Background(), req)
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrPlanNotFound.Code {
		t.Fatalf("expected PLAN_NOT_FOUND, got %v", err)
	}
}

func TestDeletePlanRemovesBreakdownsFirst(t *testing.T) {
	t.Parallel()

	planID := ulid.Make()
	var order []string
	repo := &fakePlanRepository{
		deleteBreakdownsByPlanFn: func(ctx context.Context, id ulid.ULID) error {
			order = append(order, "breakdowns")
			return nil
		},
		deleteFn: func(ctx context.Context, id ulid.ULID) error {
			order = append(order, "plan")
			return nil
		},
	}

	svc := newTestService(repo, &fakeLedger{}, time.Now())

	if err := svc.DeletePlan(context.Background(), planID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "breakdowns" || order[1] != "plan" {
		t.Fatalf("expected breakdowns removed before plan, got %v", order)
	}
}

func TestRegenerateMissingPlanIsNoOp(t *testing.T) {
	t.Parallel()

	replaceCalled := false
	repo := &fakePlanRepository{
		replaceBreakdownsFn: func(ctx context.Context, id ulid.ULID, rows []*planning.PlanMonthlyBreakdown) error {
			replaceCalled = true
			return nil
		},
	}

	svc := newTestService(repo, &fakeLedger{}, time.Now())

	if err := svc.RegeneratePlanBreakdowns(context.Background(), ulid.Make()); err != nil {
		t.Fatalf("missing plan should be silent, got %v", err)
	}
	if replaceCalled {
		t.Fatalf("nothing should be replaced for a missing plan")
	}
}

func TestUpdateExpenseDataPreservesElapsedMonths(t *testing.T) {
	t.Parallel()

	planID := ulid.Make()
	stored := &planning.FinancialPlan{
		Id:                planID,
		Name:              "Com histórico",
		StartDate:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationInMonths:  6,
		MonthlyIncome:     5000,
		UseAppExpenseData: true,
		InterestType:      planning.InterestSimple,
		DefaultCurrency:   "BRL",
	}

	// dois meses completos decorridos: linhas 0 e 1 devem sobreviver intactas
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	existing := make([]*planning.PlanMonthlyBreakdown, 0, 6)
	cumulative := 0.0
	for i := 0; i < 6; i++ {
		cumulative += 1000
		existing = append(existing, &planning.PlanMonthlyBreakdown{
			Id:                     ulid.Make(),
			PlanId:                 planID,
			MonthIndex:             i,
			ProjectedIncome:        5000,
			TotalProjectedExpenses: 4000,
			NetAmount:              1000,
			CumulativeNet:          cumulative,
		})
	}

	var replaced []*planning.PlanMonthlyBreakdown
	repo := &fakePlanRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*planning.FinancialPlan, error) {
			return stored, nil
		},
		getBreakdownsFn: func(ctx context.Context, id ulid.ULID) ([]*planning.PlanMonthlyBreakdown, error) {
			return existing, nil
		},
		replaceBreakdownsFn: func(ctx context.Context, id ulid.ULID, rows []*planning.PlanMonthlyBreakdown) error {
			replaced = rows
			return nil
		},
	}

	ledger := &fakeLedger{
		listAllFn: func(ctx context.Context) ([]*expense.Expense, error) {
			return []*expense.Expense{
				{
					Id:             ulid.Make(),
					Amount:         2500,
					Currency:       "BRL",
					Date:           time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
					RecurrenceType: expense.RecurrenceMonthly,
				},
			}, nil
		},
	}

	svc := newTestService(repo, ledger, now)

	if err := svc.UpdateExpenseData(context.Background(), planID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(replaced) != 6 {
		t.Fatalf("expected 6 rows after merge, got %d", len(replaced))
	}

	// meses decorridos preservados byte a byte
	for i := 0; i < 2; i++ {
		if replaced[i] != existing[i] {
			t.Fatalf("row %d should be the preserved original", i)
		}
	}

	// o recálculo continua do acumulado do último mês preservado
	month2 := replaced[2]
	if month2.MonthIndex != 2 {
		t.Fatalf("expected monthIndex 2, got %d", month2.MonthIndex)
	}
	// recorrente de 2500 na janela do mês 2, sem avulsas
	if !almostEqual(month2.TotalProjectedExpenses, 2500) {
		t.Fatalf("expected recomputed expenses 2500, got %f", month2.TotalProjectedExpenses)
	}
	if !almostEqual(month2.CumulativeNet, 2000+2500) {
		t.Fatalf("expected cumulative to continue from 2000, got %f", month2.CumulativeNet)
	}
}

func TestUpdateExpenseDataMissingPlanIsSilent(t *testing.T) {
	t.Parallel()

	replaceCalled := false
	repo := &fakePlanRepository{
		replaceBreakdownsFn: func(ctx context.Context, id ulid.ULID, rows []*planning.PlanMonthlyBreakdown) error {
			replaceCalled = true
			return nil
		},
	}

	svc := newTestService(repo, &fakeLedger{}, time.Now())

	if err := svc.UpdateExpenseData(context.Background(), ulid.Make()); err != nil {
		t.Fatalf("missing plan should be silent, got %v", err)
	}
	if replaceCalled {
		t.Fatalf("nothing should be replaced for a missing plan")
	}
}

func TestUpdateExpenseDataManualPlanIsNoOp(t *testing.T) {
	t.Parallel()

	planID := ulid.Make()
	stored := &planning.FinancialPlan{
		Id:                    planID,
		Name:                  "Manual",
		StartDate:             time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationInMonths:      6,
		MonthlyIncome:         5000,
		ManualMonthlyExpenses: 3000,
		UseAppExpenseData:     false,
		InterestType:          planning.InterestSimple,
		DefaultCurrency:       "BRL",
	}

	replaceCalled := false
	repo := &fakePlanRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*planning.FinancialPlan, error) {
			return stored, nil
		},
		replaceBreakdownsFn: func(ctx context.Context, id ulid.ULID, rows []*planning.PlanMonthlyBreakdown) error {
			replaceCalled = true
			return nil
		},
	}

	svc := newTestService(repo, &fakeLedger{}, time.Now())

	if err := svc.UpdateExpenseData(context.Background(), planID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if replaceCalled {
		t.Fatalf("manual plans must not be touched by expense data refresh")
	}
}

func TestUpdateBreakdownRecalculatesOwnNetOnly(t *testing.T) {
	t.Parallel()

	rowID := ulid.Make()
	stored := &planning.PlanMonthlyBreakdown{
		Id:                     rowID,
		PlanId:                 ulid.Make(),
		MonthIndex:             3,
		ProjectedIncome:        5000,
		FixedExpenses:          3000,
		TotalProjectedExpenses: 3000,
		NetAmount:              2000,
		CumulativeNet:          8000,
	}

	var updated *planning.PlanMonthlyBreakdown
	replaceCalled := false
	repo := &fakePlanRepository{
		getBreakdownByIDFn: func(ctx context.Context, id ulid.ULID) (*planning.PlanMonthlyBreakdown, error) {
			return stored, nil
		},
		updateBreakdownFn: func(ctx context.Context, row *planning.PlanMonthlyBreakdown) error {
			updated = row
			return nil
		},
		replaceBreakdownsFn: func(ctx context.Context, id ulid.ULID, rows []*planning.PlanMonthlyBreakdown) error {
			replaceCalled = true
			return nil
		},
	}

	svc := newTestService(repo, &fakeLedger{}, time.Now())

	newExpenses := 3500.0
	row, err := svc.UpdateBreakdown(context.Background(), &planning.UpdateBreakdownRequest{
		Id:                     rowID,
		TotalProjectedExpenses: &newExpenses,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(row.NetAmount, 1500) {
		t.Fatalf("expected net recomputed to 1500, got %f", row.NetAmount)
	}
	if !almostEqual(row.FixedExpenses, 3500) || row.AverageExpenses != 0 {
		t.Fatalf("override should stay in the fixed bucket, got fixed=%f average=%f",
			row.FixedExpenses, row.AverageExpenses)
	}
	// o acumulado permanece desatualizado até RecalculateCumulativeAmounts
	if !almostEqual(row.CumulativeNet, 8000) {
		t.Fatalf("cumulative must not be recomputed here, got %f", row.CumulativeNet)
	}
	if updated == nil {
		t.Fatalf("expected the row to be persisted")
	}
	if replaceCalled {
		t.Fatalf("other rows must not be rewritten")
	}
}

func TestRecalculateCumulativeAmountsPersistsAllRows(t *testing.T) {
	t.Parallel()

	planID := ulid.Make()
	rows := []*planning.PlanMonthlyBreakdown{
		{Id: ulid.Make(), PlanId: planID, MonthIndex: 1, NetAmount: -500, CumulativeNet: 0},
		{Id: ulid.Make(), PlanId: planID, MonthIndex: 0, NetAmount: 2000, CumulativeNet: 0},
	}

	var persisted []*planning.PlanMonthlyBreakdown
	repo := &fakePlanRepository{
		getBreakdownsFn: func(ctx context.Context, id ulid.ULID) ([]*planning.PlanMonthlyBreakdown, error) {
			return rows, nil
		},
		updateBreakdownFn: func(ctx context.Context, row *planning.PlanMonthlyBreakdown) error {
			persisted = append(persisted, row)
			return nil
		},
	}

	svc := newTestService(repo, &fakeLedger{}, time.Now())

	if err := svc.RecalculateCumulativeAmounts(context.Background(), planID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(persisted) != 2 {
		t.Fatalf("expected both rows persisted, got %d", len(persisted))
	}
	if !almostEqual(persisted[0].CumulativeNet, 2000) || !almostEqual(persisted[1].CumulativeNet, 1500) {
		t.Fatalf("expected cumulative 2000 and 1500, got %f and %f",
			persisted[0].CumulativeNet, persisted[1].CumulativeNet)
	}
}

func TestRefreshActivePlansContinuesOnFailure(t *testing.T) {
	t.Parallel()

	goodID := ulid.Make()
	badID := ulid.Make()
	active := []*planning.FinancialPlan{
		{Id: badID, UseAppExpenseData: true},
		{Id: goodID, UseAppExpenseData: true},
	}

	var refreshed []ulid.ULID
	repo := &fakePlanRepository{
		getActiveFn: func(ctx context.Context, now time.Time) ([]*planning.FinancialPlan, error) {
			return active, nil
		},
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*planning.FinancialPlan, error) {
			if id == badID {
				return nil, appErrors.NewDatabaseError(errors.New("read failed"))
			}
			return &planning.FinancialPlan{
				Id:                id,
				Name:              "Ativo",
				StartDate:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				DurationInMonths:  6,
				MonthlyIncome:     5000,
				UseAppExpenseData: true,
				InterestType:      planning.InterestSimple,
				DefaultCurrency:   "BRL",
			}, nil
		},
		replaceBreakdownsFn: func(ctx context.Context, id ulid.ULID, rows []*planning.PlanMonthlyBreakdown) error {
			refreshed = append(refreshed, id)
			return nil
		},
	}

	svc := newTestService(repo, &fakeLedger{}, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	if err := svc.RefreshActivePlans(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refreshed) != 1 || refreshed[0] != goodID {
		t.Fatalf("expected only the healthy plan to be refreshed, got %v", refreshed)
	}
}

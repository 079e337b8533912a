package infrastructure

import (
	"context"
	"errors"
	"time"

	"Planora/internal/domain/planning"
	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type PlanRepository struct {
	DB *gorm.DB
}

type planDB struct {
	Id                    string                `gorm:"type:varchar(26);primaryKey"`
	Name                  string                `gorm:"not null"`
	StartDate             time.Time             `gorm:"not null"`
	DurationInMonths      int                   `gorm:"not null"`
	MonthlyIncome         float64               `gorm:"not null"`
	ManualMonthlyExpenses float64               `gorm:"not null"`
	UseAppExpenseData     bool                  `gorm:"not null"`
	IsInflationApplied    bool                  `gorm:"not null"`
	InflationRate         float64               `gorm:"not null"`
	IsInterestApplied     bool                  `gorm:"not null"`
	InterestRate          float64               `gorm:"not null"`
	InterestType          planning.InterestType `gorm:"not null"`
	DefaultCurrency       string                `gorm:"not null"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type breakdownDB struct {
	Id                     string `gorm:"type:varchar(26);primaryKey"`
	PlanId                 string `gorm:"type:varchar(26);index;not null"`
	MonthIndex             int    `gorm:"not null"`
	ProjectedIncome        float64
	FixedExpenses          float64
	AverageExpenses        float64
	TotalProjectedExpenses float64
	NetAmount              float64
	InterestEarned         float64
	CumulativeNet          float64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func toDomainPlan(pdb *planDB) (*planning.FinancialPlan, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &planning.FinancialPlan{
		Id:                    id,
		Name:                  pdb.Name,
		StartDate:             pdb.StartDate,
		DurationInMonths:      pdb.DurationInMonths,
		MonthlyIncome:         pdb.MonthlyIncome,
		ManualMonthlyExpenses: pdb.ManualMonthlyExpenses,
		UseAppExpenseData:     pdb.UseAppExpenseData,
		IsInflationApplied:    pdb.IsInflationApplied,
		InflationRate:         pdb.InflationRate,
		IsInterestApplied:     pdb.IsInterestApplied,
		InterestRate:          pdb.InterestRate,
		InterestType:          pdb.InterestType,
		DefaultCurrency:       pdb.DefaultCurrency,
		CreatedAt:             pdb.CreatedAt,
		UpdatedAt:             pdb.UpdatedAt,
	}, nil
}

func toDBPlan(p *planning.FinancialPlan) *planDB {
	return &planDB{
		Id:                    p.Id.String(),
		Name:                  p.Name,
		StartDate:             p.StartDate,
		DurationInMonths:      p.DurationInMonths,
		MonthlyIncome:         p.MonthlyIncome,
		ManualMonthlyExpenses: p.ManualMonthlyExpenses,
		UseAppExpenseData:     p.UseAppExpenseData,
		IsInflationApplied:    p.IsInflationApplied,
		InflationRate:         p.InflationRate,
		IsInterestApplied:     p.IsInterestApplied,
		InterestRate:          p.InterestRate,
		InterestType:          p.InterestType,
		DefaultCurrency:       p.DefaultCurrency,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func toDomainBreakdown(bdb *breakdownDB) (*planning.PlanMonthlyBreakdown, error) {
	id, err := pkg.ParseULID(bdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	planID, err := pkg.ParseULID(bdb.PlanId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &planning.PlanMonthlyBreakdown{
		Id:                     id,
		PlanId:                 planID,
		MonthIndex:             bdb.MonthIndex,
		ProjectedIncome:        bdb.ProjectedIncome,
		FixedExpenses:          bdb.FixedExpenses,
		AverageExpenses:        bdb.AverageExpenses,
		TotalProjectedExpenses: bdb.TotalProjectedExpenses,
		NetAmount:              bdb.NetAmount,
		InterestEarned:         bdb.InterestEarned,
		CumulativeNet:          bdb.CumulativeNet,
		CreatedAt:              bdb.CreatedAt,
		UpdatedAt:              bdb.UpdatedAt,
	}, nil
}

func toDBBreakdown(b *planning.PlanMonthlyBreakdown) *breakdownDB {
	return &breakdownDB{
		Id:                     b.Id.String(),
		PlanId:                 b.PlanId.String(),
		MonthIndex:             b.MonthIndex,
		ProjectedIncome:        b.ProjectedIncome,
		FixedExpenses:          b.FixedExpenses,
		AverageExpenses:        b.AverageExpenses,
		TotalProjectedExpenses: b.TotalProjectedExpenses,
		NetAmount:              b.NetAmount,
		InterestEarned:         b.InterestEarned,
		CumulativeNet:          b.CumulativeNet,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}
}

func (r *PlanRepository) Create(ctx context.Context, p *planning.FinancialPlan) error {
	pdb := toDBPlan(p)
	if err := r.DB.WithContext(ctx).Table("financial_plans").Create(&pdb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *PlanRepository) Update(ctx context.Context, p *planning.FinancialPlan) error {
	pdb := toDBPlan(p)
	// Select("*") força a escrita também dos campos com valor zero
	result := r.DB.WithContext(ctx).Table("financial_plans").Where("id = ?", pdb.Id).Select("*").Updates(pdb)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Table("financial_plans").Where("id = ?", id.String()).Delete(&planDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) GetById(ctx context.Context, id ulid.ULID) (*planning.FinancialPlan, error) {
	var pdb planDB
	if err := r.DB.WithContext(ctx).Table("financial_plans").Where("id = ?", id.String()).First(&pdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrPlanNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainPlan(&pdb)
}

func (r *PlanRepository) List(ctx context.Context, pagination *pkg.PaginationParams) ([]*planning.FinancialPlan, int64, error) {
	query := r.DB.WithContext(ctx).Table("financial_plans")

	plans, total, err := pkg.Paginate(query, pagination, "created_at DESC", toDomainPlan)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return plans, total, nil
}

func (r *PlanRepository) GetActive(ctx context.Context, now time.Time) ([]*planning.FinancialPlan, error) {
	var rows []planDB
	err := r.DB.WithContext(ctx).Table("financial_plans").
		Where("start_date <= ?", now).
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	// O fim da vigência é derivado (startDate + duração), então o corte
	// final é aplicado em memória
	plans := make([]*planning.FinancialPlan, 0, len(rows))
	for i := range rows {
		plan, err := toDomainPlan(&rows[i])
		if err != nil {
			return nil, err
		}
		if plan.IsActive(now) {
			plans = append(plans, plan)
		}
	}
	return plans, nil
}

func (r *PlanRepository) GetBreakdowns(ctx context.Context, planID ulid.ULID) ([]*planning.PlanMonthlyBreakdown, error) {
	var rows []breakdownDB
	err := r.DB.WithContext(ctx).Table("plan_monthly_breakdowns").
		Where("plan_id = ?", planID.String()).
		Order("month_index ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	breakdowns := make([]*planning.PlanMonthlyBreakdown, 0, len(rows))
	for i := range rows {
		b, err := toDomainBreakdown(&rows[i])
		if err != nil {
			return nil, err
		}
		breakdowns = append(breakdowns, b)
	}
	return breakdowns, nil
}

func (r *PlanRepository) GetBreakdownById(ctx context.Context, id ulid.ULID) (*planning.PlanMonthlyBreakdown, error) {
	var bdb breakdownDB
	if err := r.DB.WithContext(ctx).Table("plan_monthly_breakdowns").Where("id = ?", id.String()).First(&bdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrBreakdownNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainBreakdown(&bdb)
}

func (r *PlanRepository) CreateBreakdowns(ctx context.Context, rows []*planning.PlanMonthlyBreakdown) error {
	if len(rows) == 0 {
		return nil
	}

	dbRows := make([]*breakdownDB, 0, len(rows))
	for _, b := range rows {
		dbRows = append(dbRows, toDBBreakdown(b))
	}

	if err := r.DB.WithContext(ctx).Table("plan_monthly_breakdowns").Create(&dbRows).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *PlanRepository) UpdateBreakdown(ctx context.Context, b *planning.PlanMonthlyBreakdown) error {
	bdb := toDBBreakdown(b)
	result := r.DB.WithContext(ctx).Table("plan_monthly_breakdowns").Where("id = ?", bdb.Id).Select("*").Updates(bdb)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrBreakdownNotFound
	}
	return nil
}

func (r *PlanRepository) DeleteBreakdownsByPlan(ctx context.Context, planID ulid.ULID) error {
	err := r.DB.WithContext(ctx).Table("plan_monthly_breakdowns").
		Where("plan_id = ?", planID.String()).
		Delete(&breakdownDB{}).Error
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *PlanRepository) ReplaceBreakdowns(ctx context.Context, planID ulid.ULID, rows []*planning.PlanMonthlyBreakdown) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("plan_monthly_breakdowns").
			Where("plan_id = ?", planID.String()).
			Delete(&breakdownDB{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		dbRows := make([]*breakdownDB, 0, len(rows))
		for _, b := range rows {
			dbRows = append(dbRows, toDBBreakdown(b))
		}
		return tx.Table("plan_monthly_breakdowns").Create(&dbRows).Error
	})
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

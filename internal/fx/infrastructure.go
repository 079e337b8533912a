package fx

import (
	"Planora/config"
	"Planora/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newPlanRepository,
		newExpenseRepository,
		newCategoryRepository,
		newReportRepository,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newPlanRepository(db *gorm.DB) *infrastructure.PlanRepository {
	return &infrastructure.PlanRepository{DB: db}
}

func newExpenseRepository(db *gorm.DB) *infrastructure.ExpenseRepository {
	return &infrastructure.ExpenseRepository{DB: db}
}

func newCategoryRepository(db *gorm.DB) *infrastructure.CategoryRepository {
	return &infrastructure.CategoryRepository{DB: db}
}

func newReportRepository(db *gorm.DB) *infrastructure.ReportRepository {
	return &infrastructure.ReportRepository{DB: db}
}

package fx

import (
	"Planora/internal/domain/category"
	"Planora/internal/domain/expense"
	"Planora/internal/domain/planning"
	"Planora/internal/domain/report"
	"Planora/internal/infrastructure"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newCategoryService,
		newExpenseService,
		newPlanningService,
		newReportService,
	),
)

func newCategoryService(repo *infrastructure.CategoryRepository) *category.Service {
	return category.NewService(repo)
}

func newExpenseService(
	repo *infrastructure.ExpenseRepository,
	categorySvc *category.Service,
) *expense.Service {
	return expense.NewService(repo, categorySvc)
}

func newPlanningService(
	repo *infrastructure.PlanRepository,
	expenseRepo *infrastructure.ExpenseRepository,
) *planning.Service {
	return planning.NewService(repo, expenseRepo)
}

func newReportService(repo *infrastructure.ReportRepository) *report.Service {
	return report.NewService(repo)
}

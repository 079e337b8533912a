package fx

import (
	"time"

	"Planora/internal/domain/category"
	"Planora/internal/domain/expense"
	"Planora/internal/domain/planning"
	"Planora/internal/domain/report"
	"Planora/internal/middleware"
	"Planora/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece o handler e o rate limiter
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newRateLimiter,
	),
)

func newHandler(
	planningSvc *planning.Service,
	expenseSvc *expense.Service,
	categorySvc *category.Service,
	reportSvc *report.Service,
) *routes.Handler {
	return &routes.Handler{
		PlanningService: planningSvc,
		ExpenseService:  expenseSvc,
		CategoryService: categorySvc,
		ReportService:   reportSvc,
	}
}

func newRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}

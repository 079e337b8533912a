package report

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	GetMonthlySummary(ctx context.Context, month, year int, defaultCurrency string) (*MonthlySummary, error)
	GetCategoryTrend(ctx context.Context, categoryID ulid.ULID, startDate, endDate time.Time, defaultCurrency string) (*CategoryTrend, error)
}

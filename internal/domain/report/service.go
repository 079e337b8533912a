package report

import (
	"context"
	"time"

	appErrors "Planora/internal/errors"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) GetMonthlySummary(ctx context.Context, month, year int, defaultCurrency string) (*MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}
	if year < 2000 || year > 2100 {
		return nil, appErrors.NewValidationError("year", "ano inválido")
	}

	return s.Repository.GetMonthlySummary(ctx, month, year, defaultCurrency)
}

func (s *Service) GetCategoryTrend(ctx context.Context, categoryID ulid.ULID, startDate, endDate time.Time, defaultCurrency string) (*CategoryTrend, error) {
	if endDate.Before(startDate) {
		return nil, appErrors.NewValidationError("end_date", "deve ser posterior à data inicial")
	}

	return s.Repository.GetCategoryTrend(ctx, categoryID, startDate, endDate, defaultCurrency)
}

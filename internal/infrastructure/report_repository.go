package infrastructure

import (
	"context"
	"time"

	"Planora/internal/domain/expense"
	"Planora/internal/domain/report"
	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

// Expressão de conversão para a moeda padrão: mesma moeda usa o valor
// direto, moeda estrangeira sem taxa registrada fica de fora da soma
const convertedAmountExpr = `CASE
	WHEN expenses.currency = ? THEN expenses.amount
	WHEN expenses.exchange_rate IS NOT NULL AND expenses.exchange_rate > 0 THEN expenses.amount * expenses.exchange_rate
	ELSE 0
END`

type categoryAmountRow struct {
	CategoryId   string
	CategoryName string
	Amount       float64
	Count        int
}

func (r *ReportRepository) GetMonthlySummary(ctx context.Context, month, year int, defaultCurrency string) (*report.MonthlySummary, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	base := func() *gorm.DB {
		return r.DB.WithContext(ctx).Table("expenses").
			Where("expenses.date >= ? AND expenses.date < ?", monthStart, monthEnd)
	}

	var total float64
	err := base().
		Select("COALESCE(SUM("+convertedAmountExpr+"), 0)", defaultCurrency).
		Scan(&total).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	var recurringTotal float64
	err = base().
		Where("expenses.recurrence_type <> ?", expense.RecurrenceNone).
		Select("COALESCE(SUM("+convertedAmountExpr+"), 0)", defaultCurrency).
		Scan(&recurringTotal).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	var rows []categoryAmountRow
	err = base().
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Select("expenses.category_id AS category_id, categories.name AS category_name, SUM("+convertedAmountExpr+") AS amount, COUNT(*) AS count", defaultCurrency).
		Group("expenses.category_id, categories.name").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	byCategory := make([]report.CategoryAmount, 0, len(rows))
	for _, row := range rows {
		categoryID, err := pkg.ParseULID(row.CategoryId)
		if err != nil {
			return nil, appErrors.ErrInternalServer.WithError(err)
		}
		percentage := 0.0
		if total > 0 {
			percentage = (row.Amount / total) * 100
		}
		byCategory = append(byCategory, report.CategoryAmount{
			CategoryId:   categoryID,
			CategoryName: row.CategoryName,
			Amount:       row.Amount,
			Percentage:   percentage,
			Count:        row.Count,
		})
	}

	return &report.MonthlySummary{
		Month:          month,
		Year:           year,
		TotalExpenses:  total,
		RecurringTotal: recurringTotal,
		OneTimeTotal:   total - recurringTotal,
		ByCategory:     byCategory,
	}, nil
}

type monthAmountRow struct {
	Month  int
	Year   int
	Amount float64
}

func (r *ReportRepository) GetCategoryTrend(ctx context.Context, categoryID ulid.ULID, startDate, endDate time.Time, defaultCurrency string) (*report.CategoryTrend, error) {
	var categoryName string
	err := r.DB.WithContext(ctx).Table("categories").
		Where("id = ?", categoryID.String()).
		Select("name").
		Scan(&categoryName).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if categoryName == "" {
		return nil, appErrors.ErrCategoryNotFound
	}

	type totalsRow struct {
		Total float64
		Count int
	}
	var totals totalsRow
	err = r.DB.WithContext(ctx).Table("expenses").
		Where("expenses.category_id = ? AND expenses.date >= ? AND expenses.date <= ?", categoryID.String(), startDate, endDate).
		Select("COALESCE(SUM("+convertedAmountExpr+"), 0) AS total, COUNT(*) AS count", defaultCurrency).
		Scan(&totals).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	var monthly []monthAmountRow
	err = r.DB.WithContext(ctx).Table("expenses").
		Where("expenses.category_id = ? AND expenses.date >= ? AND expenses.date <= ?", categoryID.String(), startDate, endDate).
		Select("EXTRACT(MONTH FROM expenses.date)::int AS month, EXTRACT(YEAR FROM expenses.date)::int AS year, SUM("+convertedAmountExpr+") AS amount", defaultCurrency).
		Group("year, month").
		Order("year ASC, month ASC").
		Scan(&monthly).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	trend := make([]report.MonthAmount, 0, len(monthly))
	for _, row := range monthly {
		trend = append(trend, report.MonthAmount{
			Month:  row.Month,
			Year:   row.Year,
			Amount: row.Amount,
		})
	}

	average := 0.0
	if totals.Count > 0 {
		average = totals.Total / float64(totals.Count)
	}

	return &report.CategoryTrend{
		CategoryId:   categoryID,
		CategoryName: categoryName,
		TotalAmount:  totals.Total,
		Count:        totals.Count,
		Average:      average,
		MonthlyTrend: trend,
	}, nil
}

package infrastructure

import (
	"context"
	"errors"
	"time"

	"Planora/internal/domain/expense"
	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ExpenseRepository struct {
	DB *gorm.DB
}

type expenseDB struct {
	Id             string  `gorm:"type:varchar(26);primaryKey"`
	CategoryId     string  `gorm:"type:varchar(26);index;not null"`
	SubCategoryId  *string `gorm:"type:varchar(26)"`
	Amount         float64 `gorm:"not null"`
	Currency       string  `gorm:"not null"`
	ExchangeRate   *float64
	Note           string
	Date           time.Time              `gorm:"not null"`
	RecurrenceType expense.RecurrenceType `gorm:"not null"`
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func toDomainExpense(edb *expenseDB) (*expense.Expense, error) {
	id, err := pkg.ParseULID(edb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	categoryID, err := pkg.ParseULID(edb.CategoryId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	subCategoryID, err := pkg.ParseULIDPtr(edb.SubCategoryId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &expense.Expense{
		Id:             id,
		CategoryId:     categoryID,
		SubCategoryId:  subCategoryID,
		Amount:         edb.Amount,
		Currency:       edb.Currency,
		ExchangeRate:   edb.ExchangeRate,
		Note:           edb.Note,
		Date:           edb.Date,
		RecurrenceType: edb.RecurrenceType,
		EndDate:        edb.EndDate,
		CreatedAt:      edb.CreatedAt,
		UpdatedAt:      edb.UpdatedAt,
	}, nil
}

func toDBExpense(e *expense.Expense) *expenseDB {
	var subCategoryID *string
	if e.SubCategoryId != nil {
		s := e.SubCategoryId.String()
		subCategoryID = &s
	}
	return &expenseDB{
		Id:             e.Id.String(),
		CategoryId:     e.CategoryId.String(),
		SubCategoryId:  subCategoryID,
		Amount:         e.Amount,
		Currency:       e.Currency,
		ExchangeRate:   e.ExchangeRate,
		Note:           e.Note,
		Date:           e.Date,
		RecurrenceType: e.RecurrenceType,
		EndDate:        e.EndDate,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	edb := toDBExpense(e)
	if err := r.DB.WithContext(ctx).Table("expenses").Create(&edb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *ExpenseRepository) Update(ctx context.Context, e *expense.Expense) error {
	edb := toDBExpense(e)
	result := r.DB.WithContext(ctx).Table("expenses").Where("id = ?", edb.Id).Select("*").Updates(edb)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Table("expenses").Where("id = ?", id.String()).Delete(&expenseDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) GetById(ctx context.Context, id ulid.ULID) (*expense.Expense, error) {
	var edb expenseDB
	if err := r.DB.WithContext(ctx).Table("expenses").Where("id = ?", id.String()).First(&edb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrExpenseNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainExpense(&edb)
}

func (r *ExpenseRepository) List(ctx context.Context, filters *expense.Filters, pagination *pkg.PaginationParams) ([]*expense.Expense, int64, error) {
	query := r.DB.WithContext(ctx).Table("expenses")

	if filters != nil {
		if filters.CategoryId != nil {
			query = query.Where("category_id = ?", filters.CategoryId.String())
		}
		if filters.RecurrenceOnly {
			query = query.Where("recurrence_type <> ?", expense.RecurrenceNone)
		}
		if filters.From != nil {
			query = query.Where("date >= ?", *filters.From)
		}
		if filters.To != nil {
			query = query.Where("date <= ?", *filters.To)
		}
	}

	expenses, total, err := pkg.Paginate(query, pagination, "date DESC", toDomainExpense)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return expenses, total, nil
}

func (r *ExpenseRepository) ListAll(ctx context.Context) ([]*expense.Expense, error) {
	var rows []expenseDB
	if err := r.DB.WithContext(ctx).Table("expenses").Order("date ASC").Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	expenses := make([]*expense.Expense, 0, len(rows))
	for i := range rows {
		e, err := toDomainExpense(&rows[i])
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

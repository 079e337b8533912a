package expense_test

import (
	"context"
	"testing"
	"time"

	"Planora/internal/domain/category"
	"Planora/internal/domain/expense"
	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakeExpenseRepository struct {
	createFn  func(ctx context.Context, e *expense.Expense) error
	updateFn  func(ctx context.Context, e *expense.Expense) error
	deleteFn  func(ctx context.Context, id ulid.ULID) error
	getByIDFn func(ctx context.Context, id ulid.ULID) (*expense.Expense, error)
	listFn    func(ctx context.Context, filters *expense.Filters, pagination *pkg.PaginationParams) ([]*expense.Expense, int64, error)
	listAllFn func(ctx context.Context) ([]*expense.Expense, error)
}

func (f *fakeExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeExpenseRepository) Update(ctx context.Context, e *expense.Expense) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeExpenseRepository) Delete(ctx context.Context, id ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeExpenseRepository) GetById(ctx context.Context, id ulid.ULID) (*expense.Expense, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, appErrors.ErrExpenseNotFound
}

func (f *fakeExpenseRepository) List(ctx context.Context, filters *expense.Filters, pagination *pkg.PaginationParams) ([]*expense.Expense, int64, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filters, pagination)
	}
	return nil, 0, nil
}

func (f *fakeExpenseRepository) ListAll(ctx context.Context) ([]*expense.Expense, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx)
	}
	return nil, nil
}

type fakeCategoryRepository struct {
	getByIDFn func(ctx context.Context, id ulid.ULID) (*category.Category, error)
}

func (f *fakeCategoryRepository) Create(ctx context.Context, c *category.Category) error { return nil }
func (f *fakeCategoryRepository) Update(ctx context.Context, c *category.Category) error { return nil }
func (f *fakeCategoryRepository) Delete(ctx context.Context, id ulid.ULID) error         { return nil }
func (f *fakeCategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepository) CreateSubCategory(ctx context.Context, sc *category.SubCategory) error {
	return nil
}
func (f *fakeCategoryRepository) DeleteSubCategory(ctx context.Context, id ulid.ULID) error {
	return nil
}
func (f *fakeCategoryRepository) GetSubCategoriesByCategory(ctx context.Context, categoryID ulid.ULID) ([]*category.SubCategory, error) {
	return nil, nil
}
func (f *fakeCategoryRepository) GetById(ctx context.Context, id ulid.ULID) (*category.Category, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return &category.Category{Id: id, Name: "Mercado"}, nil
}

func newExpenseService(repo *fakeExpenseRepository) *expense.Service {
	return expense.NewService(repo, category.NewService(&fakeCategoryRepository{}))
}

func validCreateRequest() *expense.CreateExpenseRequest {
	return &expense.CreateExpenseRequest{
		CategoryId:     ulid.Make(),
		Amount:         150,
		Currency:       "brl",
		Date:           time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		RecurrenceType: expense.RecurrenceNone,
	}
}

func TestCreateExpenseValidations(t *testing.T) {
	t.Parallel()

	badRate := -1.0
	earlyEnd := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(req *expense.CreateExpenseRequest)
	}{
		{
			name:   "zero amount",
			mutate: func(req *expense.CreateExpenseRequest) { req.Amount = 0 },
		},
		{
			name:   "empty currency",
			mutate: func(req *expense.CreateExpenseRequest) { req.Currency = "  " },
		},
		{
			name:   "zero date",
			mutate: func(req *expense.CreateExpenseRequest) { req.Date = time.Time{} },
		},
		{
			name:   "invalid recurrence",
			mutate: func(req *expense.CreateExpenseRequest) { req.RecurrenceType = "YEARLY" },
		},
		{
			name:   "end date before date",
			mutate: func(req *expense.CreateExpenseRequest) { req.EndDate = &earlyEnd },
		},
		{
			name:   "non positive exchange rate",
			mutate: func(req *expense.CreateExpenseRequest) { req.ExchangeRate = &badRate },
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			createCalled := false
			svc := newExpenseService(&fakeExpenseRepository{
				createFn: func(ctx context.Context, e *expense.Expense) error {
					createCalled = true
					return nil
				},
			})

			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.CreateExpense(ctx, req)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			appErr, ok := appErrors.AsAppError(err)
			if !ok || appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
			if createCalled {
				t.Fatalf("invalid expense must not be persisted")
			}
		})
	}
}

func TestCreateExpenseNormalizesFields(t *testing.T) {
	t.Parallel()

	var created *expense.Expense
	svc := newExpenseService(&fakeExpenseRepository{
		createFn: func(ctx context.Context, e *expense.Expense) error {
			created = e
			return nil
		},
	})

	req := validCreateRequest()
	req.Currency = " usd "
	req.Note = "  almoço  "
	req.RecurrenceType = ""

	entity, err := svc.CreateExpense(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatalf("expected persisted expense")
	}
	if entity.Currency != "USD" {
		t.Fatalf("expected uppercased currency, got %q", entity.Currency)
	}
	if entity.Note != "almoço" {
		t.Fatalf("expected trimmed note, got %q", entity.Note)
	}
	if entity.RecurrenceType != expense.RecurrenceNone {
		t.Fatalf("empty recurrence should default to NONE, got %q", entity.RecurrenceType)
	}
	if pkg.IsEmptyULID(entity.Id) {
		t.Fatalf("expected generated id")
	}
}

func TestCreateExpenseUnknownCategory(t *testing.T) {
	t.Parallel()

	svc := expense.NewService(
		&fakeExpenseRepository{},
		category.NewService(&fakeCategoryRepository{
			getByIDFn: func(ctx context.Context, id ulid.ULID) (*category.Category, error) {
				return nil, appErrors.ErrCategoryNotFound
			},
		}),
	)

	_, err := svc.CreateExpense(context.Background(), validCreateRequest())
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrCategoryNotFound.Code {
		t.Fatalf("expected CATEGORY_NOT_FOUND, got %v", err)
	}
}

func TestUpdateExpensePartialPatch(t *testing.T) {
	t.Parallel()

	stored := &expense.Expense{
		Id:             ulid.Make(),
		CategoryId:     ulid.Make(),
		Amount:         100,
		Currency:       "BRL",
		Note:           "original",
		Date:           time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		RecurrenceType: expense.RecurrenceNone,
	}

	var updated *expense.Expense
	svc := newExpenseService(&fakeExpenseRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*expense.Expense, error) {
			copy := *stored
			return &copy, nil
		},
		updateFn: func(ctx context.Context, e *expense.Expense) error {
			updated = e
			return nil
		},
	})

	newAmount := 250.0
	entity, err := svc.UpdateExpense(context.Background(), &expense.UpdateExpenseRequest{
		Id:     stored.Id,
		Amount: &newAmount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entity.Amount != 250 {
		t.Fatalf("expected amount updated, got %f", entity.Amount)
	}
	if entity.Note != "original" || entity.Currency != "BRL" {
		t.Fatalf("untouched fields must be preserved, got %+v", entity)
	}
	if updated == nil {
		t.Fatalf("expected persistence call")
	}
}

func TestUpdateExpenseRejectsEndDateBeforeDate(t *testing.T) {
	t.Parallel()

	stored := &expense.Expense{
		Id:             ulid.Make(),
		CategoryId:     ulid.Make(),
		Amount:         100,
		Currency:       "BRL",
		Date:           time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		RecurrenceType: expense.RecurrenceMonthly,
	}

	svc := newExpenseService(&fakeExpenseRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*expense.Expense, error) {
			copy := *stored
			return &copy, nil
		},
	})

	earlyEnd := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.UpdateExpense(context.Background(), &expense.UpdateExpenseRequest{
		Id:      stored.Id,
		EndDate: &earlyEnd,
	})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestDeleteExpenseNotFound(t *testing.T) {
	t.Parallel()

	svc := newExpenseService(&fakeExpenseRepository{})

	err := svc.DeleteExpense(context.Background(), ulid.Make())
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrExpenseNotFound.Code {
		t.Fatalf("expected EXPENSE_NOT_FOUND, got %v", err)
	}
}

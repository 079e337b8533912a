package expense

import (
	"context"
	"strings"
	"time"

	"Planora/internal/domain/category"
	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type CreateExpenseRequest struct {
	CategoryId     ulid.ULID
	SubCategoryId  *ulid.ULID
	Amount         float64
	Currency       string
	ExchangeRate   *float64
	Note           string
	Date           time.Time
	RecurrenceType RecurrenceType
	EndDate        *time.Time
}

type UpdateExpenseRequest struct {
	Id             ulid.ULID
	CategoryId     *ulid.ULID
	SubCategoryId  *ulid.ULID
	Amount         *float64
	Currency       *string
	ExchangeRate   *float64
	Note           *string
	Date           *time.Time
	RecurrenceType *RecurrenceType
	EndDate        *time.Time
}

type Service struct {
	Repository      Repository
	CategoryService *category.Service
}

func NewService(repo Repository, categorySvc *category.Service) *Service {
	return &Service{
		Repository:      repo,
		CategoryService: categorySvc,
	}
}

func (s *Service) CreateExpense(ctx context.Context, req *CreateExpenseRequest) (*Expense, error) {
	if err := s.validateCreateRequest(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now()
	recurrence := req.RecurrenceType
	if recurrence == "" {
		recurrence = RecurrenceNone
	}

	entity := &Expense{
		Id:             pkg.GenerateULIDObject(),
		CategoryId:     req.CategoryId,
		SubCategoryId:  req.SubCategoryId,
		Amount:         req.Amount,
		Currency:       strings.ToUpper(strings.TrimSpace(req.Currency)),
		ExchangeRate:   req.ExchangeRate,
		Note:           strings.TrimSpace(req.Note),
		Date:           req.Date,
		RecurrenceType: recurrence,
		EndDate:        req.EndDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *Service) UpdateExpense(ctx context.Context, req *UpdateExpenseRequest) (*Expense, error) {
	entity, err := s.Repository.GetById(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	if req.CategoryId != nil {
		if _, err := s.CategoryService.GetCategoryByID(ctx, *req.CategoryId); err != nil {
			return nil, err
		}
		entity.CategoryId = *req.CategoryId
	}
	if req.SubCategoryId != nil {
		entity.SubCategoryId = req.SubCategoryId
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
		entity.Amount = *req.Amount
	}
	if req.Currency != nil {
		entity.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.ExchangeRate != nil {
		entity.ExchangeRate = req.ExchangeRate
	}
	if req.Note != nil {
		entity.Note = strings.TrimSpace(*req.Note)
	}
	if req.Date != nil {
		entity.Date = *req.Date
	}
	if req.RecurrenceType != nil {
		if !req.RecurrenceType.IsValid() {
			return nil, appErrors.NewValidationError("recurrence_type", "tipo de recorrência inválido")
		}
		entity.RecurrenceType = *req.RecurrenceType
	}
	if req.EndDate != nil {
		entity.EndDate = req.EndDate
	}

	if entity.EndDate != nil && entity.EndDate.Before(entity.Date) {
		return nil, appErrors.NewValidationError("end_date", "deve ser posterior à data da despesa")
	}

	entity.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id ulid.ULID) error {
	if _, err := s.Repository.GetById(ctx, id); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, id)
}

func (s *Service) GetExpenseByID(ctx context.Context, id ulid.ULID) (*Expense, error) {
	return s.Repository.GetById(ctx, id)
}

func (s *Service) ListExpenses(ctx context.Context, filters *Filters, pagination *pkg.PaginationParams) ([]*Expense, int64, error) {
	return s.Repository.List(ctx, filters, pagination)
}

// ListAll expõe o livro completo para o motor de projeção
func (s *Service) ListAll(ctx context.Context) ([]*Expense, error) {
	return s.Repository.ListAll(ctx)
}

func (s *Service) validateCreateRequest(ctx context.Context, req *CreateExpenseRequest) error {
	if req.Amount <= 0 {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}
	if strings.TrimSpace(req.Currency) == "" {
		return appErrors.NewValidationError("currency", "é obrigatória")
	}
	if req.Date.IsZero() {
		return appErrors.NewValidationError("date", "é obrigatória")
	}
	if req.RecurrenceType != "" && !req.RecurrenceType.IsValid() {
		return appErrors.NewValidationError("recurrence_type", "tipo de recorrência inválido")
	}
	if req.EndDate != nil && req.EndDate.Before(req.Date) {
		return appErrors.NewValidationError("end_date", "deve ser posterior à data da despesa")
	}
	if req.ExchangeRate != nil && *req.ExchangeRate <= 0 {
		return appErrors.NewValidationError("exchange_rate", "deve ser maior que zero")
	}

	if _, err := s.CategoryService.GetCategoryByID(ctx, req.CategoryId); err != nil {
		return err
	}

	return nil
}

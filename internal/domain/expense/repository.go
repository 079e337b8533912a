package expense

import (
	"context"
	"time"

	"Planora/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Filters struct {
	CategoryId     *ulid.ULID
	RecurrenceOnly bool
	From           *time.Time
	To             *time.Time
}

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id ulid.ULID) error
	GetById(ctx context.Context, id ulid.ULID) (*Expense, error)
	List(ctx context.Context, filters *Filters, pagination *pkg.PaginationParams) ([]*Expense, int64, error)
	// ListAll devolve o livro completo; o motor de projeção filtra em memória
	ListAll(ctx context.Context) ([]*Expense, error)
}

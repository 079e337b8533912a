package category

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id ulid.ULID) error
	GetById(ctx context.Context, id ulid.ULID) (*Category, error)
	List(ctx context.Context) ([]*Category, error)

	CreateSubCategory(ctx context.Context, sc *SubCategory) error
	DeleteSubCategory(ctx context.Context, id ulid.ULID) error
	GetSubCategoriesByCategory(ctx context.Context, categoryID ulid.ULID) ([]*SubCategory, error)
}

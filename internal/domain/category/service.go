package category

import (
	"context"
	"strings"
	"time"

	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type CreateCategoryRequest struct {
	Name  string
	Icon  string
	Color string
}

type UpdateCategoryRequest struct {
	Id    ulid.ULID
	Name  *string
	Icon  *string
	Color *string
}

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	now := time.Now()
	entity := &Category{
		Id:        pkg.GenerateULIDObject(),
		Name:      strings.TrimSpace(req.Name),
		Icon:      req.Icon,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *Service) UpdateCategory(ctx context.Context, req *UpdateCategoryRequest) (*Category, error) {
	entity, err := s.Repository.GetById(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, appErrors.NewValidationError("name", "é obrigatório")
		}
		entity.Name = strings.TrimSpace(*req.Name)
	}
	if req.Icon != nil {
		entity.Icon = *req.Icon
	}
	if req.Color != nil {
		entity.Color = *req.Color
	}

	entity.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id ulid.ULID) error {
	if _, err := s.Repository.GetById(ctx, id); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, id)
}

func (s *Service) GetCategoryByID(ctx context.Context, id ulid.ULID) (*Category, error) {
	return s.Repository.GetById(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.Repository.List(ctx)
}

func (s *Service) CreateSubCategory(ctx context.Context, categoryID ulid.ULID, name string) (*SubCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	if _, err := s.Repository.GetById(ctx, categoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	entity := &SubCategory{
		Id:         pkg.GenerateULIDObject(),
		CategoryId: categoryID,
		Name:       strings.TrimSpace(name),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.Repository.CreateSubCategory(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *Service) DeleteSubCategory(ctx context.Context, id ulid.ULID) error {
	return s.Repository.DeleteSubCategory(ctx, id)
}

func (s *Service) ListSubCategories(ctx context.Context, categoryID ulid.ULID) ([]*SubCategory, error) {
	if _, err := s.Repository.GetById(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.Repository.GetSubCategoriesByCategory(ctx, categoryID)
}

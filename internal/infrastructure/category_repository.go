package infrastructure

import (
	"context"
	"errors"
	"time"

	"Planora/internal/domain/category"
	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

type categoryDB struct {
	Id        string `gorm:"type:varchar(26);primaryKey"`
	Name      string `gorm:"not null"`
	Icon      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type subCategoryDB struct {
	Id         string `gorm:"type:varchar(26);primaryKey"`
	CategoryId string `gorm:"type:varchar(26);index;not null"`
	Name       string `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func toDomainCategory(cdb *categoryDB) (*category.Category, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &category.Category{
		Id:        id,
		Name:      cdb.Name,
		Icon:      cdb.Icon,
		Color:     cdb.Color,
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDomainSubCategory(sdb *subCategoryDB) (*category.SubCategory, error) {
	id, err := pkg.ParseULID(sdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	categoryID, err := pkg.ParseULID(sdb.CategoryId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &category.SubCategory{
		Id:         id,
		CategoryId: categoryID,
		Name:       sdb.Name,
		CreatedAt:  sdb.CreatedAt,
		UpdatedAt:  sdb.UpdatedAt,
	}, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	cdb := &categoryDB{
		Id:        c.Id.String(),
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if err := r.DB.WithContext(ctx).Table("categories").Create(&cdb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	result := r.DB.WithContext(ctx).Table("categories").Where("id = ?", c.Id.String()).Updates(map[string]interface{}{
		"name":       c.Name,
		"icon":       c.Icon,
		"color":      c.Color,
		"updated_at": c.UpdatedAt,
	})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Table("categories").Where("id = ?", id.String()).Delete(&categoryDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) GetById(ctx context.Context, id ulid.ULID) (*category.Category, error) {
	var cdb categoryDB
	if err := r.DB.WithContext(ctx).Table("categories").Where("id = ?", id.String()).First(&cdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrCategoryNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainCategory(&cdb)
}

func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	var rows []categoryDB
	if err := r.DB.WithContext(ctx).Table("categories").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	categories := make([]*category.Category, 0, len(rows))
	for i := range rows {
		c, err := toDomainCategory(&rows[i])
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *CategoryRepository) CreateSubCategory(ctx context.Context, sc *category.SubCategory) error {
	sdb := &subCategoryDB{
		Id:         sc.Id.String(),
		CategoryId: sc.CategoryId.String(),
		Name:       sc.Name,
		CreatedAt:  sc.CreatedAt,
		UpdatedAt:  sc.UpdatedAt,
	}
	if err := r.DB.WithContext(ctx).Table("sub_categories").Create(&sdb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *CategoryRepository) DeleteSubCategory(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Table("sub_categories").Where("id = ?", id.String()).Delete(&subCategoryDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) GetSubCategoriesByCategory(ctx context.Context, categoryID ulid.ULID) ([]*category.SubCategory, error) {
	var rows []subCategoryDB
	err := r.DB.WithContext(ctx).Table("sub_categories").
		Where("category_id = ?", categoryID.String()).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	subCategories := make([]*category.SubCategory, 0, len(rows))
	for i := range rows {
		sc, err := toDomainSubCategory(&rows[i])
		if err != nil {
			return nil, err
		}
		subCategories = append(subCategories, sc)
	}
	return subCategories, nil
}

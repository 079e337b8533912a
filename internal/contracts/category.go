package contracts

import (
	"Planora/internal/domain/category"
)

type CategoryCreateRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Icon  string `json:"icon" binding:"omitempty,max=50"`
	Color string `json:"color" binding:"omitempty,max=9"`
}

type CategoryUpdateRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Icon  *string `json:"icon" binding:"omitempty,max=50"`
	Color *string `json:"color" binding:"omitempty,max=9"`
}

type SubCategoryCreateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CategoryResponse struct {
	Category *category.Category `json:"category"`
}

type CategoryListResponse struct {
	Categories []*category.Category `json:"categories"`
	Total      int                  `json:"total"`
}

type SubCategoryResponse struct {
	SubCategory *category.SubCategory `json:"subCategory"`
}

type SubCategoryListResponse struct {
	SubCategories []*category.SubCategory `json:"subCategories"`
	Total         int                     `json:"total"`
}

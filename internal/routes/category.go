package routes

import (
	"net/http"

	"Planora/internal/contracts"
	"Planora/internal/domain/category"
	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCategory(c *gin.Context) {
	var body contracts.CategoryCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := category.CreateCategoryRequest{
		Name:  body.Name,
		Icon:  body.Icon,
		Color: body.Color,
	}

	ctx := c.Request.Context()
	entity, err := h.CategoryService.CreateCategory(ctx, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CategoryResponse{Category: entity})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := category.UpdateCategoryRequest{
		Id:    categoryID,
		Name:  body.Name,
		Icon:  body.Icon,
		Color: body.Color,
	}

	ctx := c.Request.Context()
	entity, err := h.CategoryService.UpdateCategory(ctx, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategoryResponse{Category: entity})
}

func (h *Handler) ListCategories(c *gin.Context) {
	ctx := c.Request.Context()
	categories, err := h.CategoryService.ListCategories(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

func (h *Handler) GetCategory(c *gin.Context) {
	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	entity, err := h.CategoryService.GetCategoryByID(ctx, categoryID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategoryResponse{Category: entity})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.CategoryService.DeleteCategory(ctx, categoryID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Categoria removida com sucesso"})
}

func (h *Handler) CreateSubCategory(c *gin.Context) {
	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.SubCategoryCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	entity, err := h.CategoryService.CreateSubCategory(ctx, categoryID, body.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.SubCategoryResponse{SubCategory: entity})
}

func (h *Handler) ListSubCategories(c *gin.Context) {
	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	subCategories, err := h.CategoryService.ListSubCategories(ctx, categoryID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.SubCategoryListResponse{
		SubCategories: subCategories,
		Total:         len(subCategories),
	})
}

func (h *Handler) DeleteSubCategory(c *gin.Context) {
	subCategoryID, err := pkg.ParseULID(c.Param("sub_id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("sub_id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.CategoryService.DeleteSubCategory(ctx, subCategoryID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Subcategoria removida com sucesso"})
}

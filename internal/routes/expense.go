package routes

import (
	"net/http"
	"time"

	"Planora/internal/contracts"
	"Planora/internal/domain/expense"
	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateExpense(c *gin.Context) {
	var body contracts.ExpenseCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	categoryID, err := pkg.ParseULID(body.CategoryID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return
	}

	subCategoryID, err := pkg.ParseULIDPtr(body.SubCategoryID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("sub_category_id", "formato inválido"))
		return
	}

	req := expense.CreateExpenseRequest{
		CategoryId:     categoryID,
		SubCategoryId:  subCategoryID,
		Amount:         body.Amount,
		Currency:       body.Currency,
		ExchangeRate:   body.ExchangeRate,
		Note:           body.Note,
		Date:           body.Date,
		RecurrenceType: expense.RecurrenceType(body.RecurrenceType),
		EndDate:        body.EndDate,
	}

	ctx := c.Request.Context()
	entity, err := h.ExpenseService.CreateExpense(ctx, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.ExpenseResponse{Expense: entity})
}

func (h *Handler) UpdateExpense(c *gin.Context) {
	expenseID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.ExpenseUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	categoryID, err := pkg.ParseULIDPtr(body.CategoryID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return
	}

	subCategoryID, err := pkg.ParseULIDPtr(body.SubCategoryID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("sub_category_id", "formato inválido"))
		return
	}

	var recurrence *expense.RecurrenceType
	if body.RecurrenceType != nil {
		r := expense.RecurrenceType(*body.RecurrenceType)
		recurrence = &r
	}

	req := expense.UpdateExpenseRequest{
		Id:             expenseID,
		CategoryId:     categoryID,
		SubCategoryId:  subCategoryID,
		Amount:         body.Amount,
		Currency:       body.Currency,
		ExchangeRate:   body.ExchangeRate,
		Note:           body.Note,
		Date:           body.Date,
		RecurrenceType: recurrence,
		EndDate:        body.EndDate,
	}

	ctx := c.Request.Context()
	entity, err := h.ExpenseService.UpdateExpense(ctx, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ExpenseResponse{Expense: entity})
}

func (h *Handler) ListExpenses(c *gin.Context) {
	pagination := h.parsePagination(c)

	filters := &expense.Filters{}
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		categoryID, err := pkg.ParseULID(categoryStr)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
			return
		}
		filters.CategoryId = &categoryID
	}
	if c.Query("recurring") == "true" {
		filters.RecurrenceOnly = true
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("from", "deve estar no formato AAAA-MM-DD"))
			return
		}
		filters.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("to", "deve estar no formato AAAA-MM-DD"))
			return
		}
		filters.To = &to
	}

	ctx := c.Request.Context()
	expenses, total, err := h.ExpenseService.ListExpenses(ctx, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(expenses, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetExpense(c *gin.Context) {
	expenseID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	entity, err := h.ExpenseService.GetExpenseByID(ctx, expenseID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ExpenseResponse{Expense: entity})
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	expenseID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.ExpenseService.DeleteExpense(ctx, expenseID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Despesa removida com sucesso"})
}

package routes

import (
	"net/http"

	"Planora/internal/contracts"
	"Planora/internal/domain/planning"
	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func (h *Handler) parsePlanID(c *gin.Context) (ulid.ULID, bool) {
	id := c.Param("id")
	if id == "" {
		h.respondError(c, appErrors.NewValidationError("id", "é obrigatório"))
		return ulid.ULID{}, false
	}

	planID, err := pkg.ParseULID(id)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return ulid.ULID{}, false
	}
	return planID, true
}

func (h *Handler) CreatePlan(c *gin.Context) {
	var body contracts.PlanCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := planning.CreatePlanRequest{
		Name:                  body.Name,
		StartDate:             body.StartDate,
		DurationInMonths:      body.DurationInMonths,
		MonthlyIncome:         body.MonthlyIncome,
		ManualMonthlyExpenses: body.ManualMonthlyExpenses,
		UseAppExpenseData:     body.UseAppExpenseData,
		IsInflationApplied:    body.IsInflationApplied,
		InflationRate:         body.InflationRate,
		IsInterestApplied:     body.IsInterestApplied,
		InterestRate:          body.InterestRate,
		InterestType:          planning.InterestType(body.InterestType),
		DefaultCurrency:       body.DefaultCurrency,
	}

	ctx := c.Request.Context()
	plan, err := h.PlanningService.CreatePlan(ctx, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.PlanResponse{Plan: plan})
}

func (h *Handler) UpdatePlan(c *gin.Context) {
	planID, ok := h.parsePlanID(c)
	if !ok {
		return
	}

	var body contracts.PlanUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := planning.UpdatePlanRequest{
		Id:                    planID,
		Name:                  body.Name,
		StartDate:             body.StartDate,
		DurationInMonths:      body.DurationInMonths,
		MonthlyIncome:         body.MonthlyIncome,
		ManualMonthlyExpenses: body.ManualMonthlyExpenses,
		UseAppExpenseData:     body.UseAppExpenseData,
		IsInflationApplied:    body.IsInflationApplied,
		InflationRate:         body.InflationRate,
		IsInterestApplied:     body.IsInterestApplied,
		InterestRate:          body.InterestRate,
		InterestType:          planning.InterestType(body.InterestType),
		DefaultCurrency:       body.DefaultCurrency,
	}

	ctx := c.Request.Context()
	plan, err := h.PlanningService.UpdatePlan(ctx, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PlanResponse{Plan: plan})
}

func (h *Handler) ListPlans(c *gin.Context) {
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	plans, total, err := h.PlanningService.ListPlans(ctx, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(plans, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetPlan(c *gin.Context) {
	planID, ok := h.parsePlanID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := h.PlanningService.GetPlanWithBreakdowns(ctx, planID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PlanWithBreakdownsResponse{
		Plan:       result.Plan,
		Breakdowns: result.Breakdowns,
	})
}

func (h *Handler) DeletePlan(c *gin.Context) {
	planID, ok := h.parsePlanID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.PlanningService.DeletePlan(ctx, planID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Plano removido com sucesso"})
}

func (h *Handler) RegeneratePlan(c *gin.Context) {
	planID, ok := h.parsePlanID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.PlanningService.RegeneratePlanBreakdowns(ctx, planID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Previsão regenerada com sucesso"})
}

func (h *Handler) RefreshPlanExpenseData(c *gin.Context) {
	planID, ok := h.parsePlanID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.PlanningService.UpdateExpenseData(ctx, planID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Previsão atualizada com o histórico de despesas"})
}

func (h *Handler) GetPlanPosition(c *gin.Context) {
	planID, ok := h.parsePlanID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	position, err := h.PlanningService.GetCurrentFinancialPosition(ctx, planID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if position == nil {
		c.JSON(http.StatusOK, contracts.PlanPositionResponse{Position: nil})
		return
	}

	c.JSON(http.StatusOK, contracts.PlanPositionResponse{Position: position})
}

func (h *Handler) UpdateBreakdown(c *gin.Context) {
	id := c.Param("breakdown_id")
	breakdownID, err := pkg.ParseULID(id)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("breakdown_id", "formato inválido"))
		return
	}

	var body contracts.BreakdownUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := planning.UpdateBreakdownRequest{
		Id:                     breakdownID,
		ProjectedIncome:        body.ProjectedIncome,
		TotalProjectedExpenses: body.TotalProjectedExpenses,
	}

	ctx := c.Request.Context()
	row, err := h.PlanningService.UpdateBreakdown(ctx, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BreakdownResponse{Breakdown: row})
}

func (h *Handler) RecalculatePlan(c *gin.Context) {
	planID, ok := h.parsePlanID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.PlanningService.RecalculateCumulativeAmounts(ctx, planID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Acumulados recalculados com sucesso"})
}

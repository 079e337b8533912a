package routes

import (
	"net/http"
	"time"

	"Planora/internal/contracts"
	appErrors "Planora/internal/errors"
	"Planora/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetMonthlySummary(c *gin.Context) {
	month, err := pkg.ParseInt(c.Query("month"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("month", "deve ser um número"))
		return
	}

	year, err := pkg.ParseInt(c.Query("year"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("year", "deve ser um número"))
		return
	}

	currency := c.DefaultQuery("currency", "BRL")

	ctx := c.Request.Context()
	summary, err := h.ReportService.GetMonthlySummary(ctx, month, year, currency)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MonthlySummaryResponse{Summary: summary})
}

func (h *Handler) GetCategoryTrend(c *gin.Context) {
	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	startDate, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("start_date", "deve estar no formato AAAA-MM-DD"))
		return
	}

	endDate, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("end_date", "deve estar no formato AAAA-MM-DD"))
		return
	}

	currency := c.DefaultQuery("currency", "BRL")

	ctx := c.Request.Context()
	trend, err := h.ReportService.GetCategoryTrend(ctx, categoryID, startDate, endDate, currency)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategoryTrendResponse{Trend: trend})
}

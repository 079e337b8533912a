package fx

import (
	"context"

	"Planora/config"
	"Planora/internal/logger"
	"Planora/internal/middleware"
	"Planora/internal/routes"

	docs "Planora/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	rateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORS())

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.Use(middleware.RateLimit(rateLimiter))
	{
		plans := api.Group("/plans")
		{
			plans.POST("", handler.CreatePlan)
			plans.GET("", handler.ListPlans)
			plans.GET("/:id", handler.GetPlan)
			plans.PATCH("/:id", handler.UpdatePlan)
			plans.DELETE("/:id", handler.DeletePlan)
			plans.POST("/:id/regenerate", handler.RegeneratePlan)
			plans.POST("/:id/refresh-expenses", handler.RefreshPlanExpenseData)
			plans.POST("/:id/recalculate", handler.RecalculatePlan)
			plans.GET("/:id/position", handler.GetPlanPosition)
			plans.PATCH("/:id/breakdowns/:breakdown_id", handler.UpdateBreakdown)
		}

		expenses := api.Group("/expenses")
		{
			expenses.POST("", handler.CreateExpense)
			expenses.GET("", handler.ListExpenses)
			expenses.GET("/:id", handler.GetExpense)
			expenses.PATCH("/:id", handler.UpdateExpense)
			expenses.DELETE("/:id", handler.DeleteExpense)
		}

		categories := api.Group("/categories")
		{
			categories.POST("", handler.CreateCategory)
			categories.GET("", handler.ListCategories)
			categories.GET("/:id", handler.GetCategory)
			categories.PATCH("/:id", handler.UpdateCategory)
			categories.DELETE("/:id", handler.DeleteCategory)
			categories.POST("/:id/subcategories", handler.CreateSubCategory)
			categories.GET("/:id/subcategories", handler.ListSubCategories)
			categories.DELETE("/:id/subcategories/:sub_id", handler.DeleteSubCategory)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/monthly", handler.GetMonthlySummary)
			reports.GET("/category/:id/trend", handler.GetCategoryTrend)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}

package fx

import (
	"context"

	"Planora/config"
	"Planora/internal/domain/planning"
	"Planora/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// SchedulerModule agenda a atualização noturna das previsões dos planos vigentes
var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		newCron,
	),
	fx.Invoke(
		registerScheduledJobs,
	),
)

func newCron() *cron.Cron {
	return cron.New()
}

func registerScheduledJobs(
	lc fx.Lifecycle,
	cfg *config.Config,
	c *cron.Cron,
	planningSvc *planning.Service,
) error {
	if !cfg.Scheduler.Enabled {
		logger.Info().Msg("Agendador desabilitado (SCHEDULER_ENABLED != true)")
		return nil
	}

	_, err := c.AddFunc(cfg.Scheduler.RefreshCron, func() {
		ctx := context.Background()
		logger.Info().Msg("Atualização agendada das previsões iniciada")
		if err := planningSvc.RefreshActivePlans(ctx); err != nil {
			logger.Error().Err(err).Msg("Falha na atualização agendada das previsões")
			return
		}
		logger.Info().Msg("Atualização agendada das previsões concluída")
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			c.Start()
			logger.Info().
				Str("cron", cfg.Scheduler.RefreshCron).
				Msg("Agendador iniciado")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx := c.Stop()
			select {
			case <-stopCtx.Done():
			case <-ctx.Done():
			}
			logger.Info().Msg("Agendador parado")
			return nil
		},
	})

	return nil
}

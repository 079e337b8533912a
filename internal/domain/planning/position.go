package planning

import (
	"context"

	"github.com/oklog/ulid/v2"
)

const onTrackTolerance = 0.9

// GetCurrentFinancialPosition compara a posição acumulada esperada do plano
// em "agora" com o fluxo de caixa efetivamente registrado. Plano inexistente
// ou fora do período de vigência resulta em ausência de posição (nil, nil).
func (s *Service) GetCurrentFinancialPosition(ctx context.Context, planID ulid.ULID) (*PlanCurrentPosition, error) {
	plan, err := s.Repository.GetById(ctx, planID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	now := s.Now()
	if !plan.IsActive(now) {
		return nil, nil
	}

	monthsElapsed := plan.MonthsElapsed(now)

	expected := 0.0
	if monthsElapsed > 0 {
		rows, err := s.Repository.GetBreakdowns(ctx, planID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if row.MonthIndex == monthsElapsed-1 {
				expected = row.CumulativeNet
				break
			}
		}
	}

	history, err := s.Ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// Janela estritamente entre o início do plano e o fim do último mês
	// completo decorrido
	elapsedEnd := plan.StartDate.AddDate(0, monthsElapsed, 0)
	actualExpenses := 0.0
	for _, e := range history {
		if !e.Date.After(plan.StartDate) || !e.Date.Before(elapsedEnd) {
			continue
		}
		actualExpenses += e.AmountInDefaultCurrency(plan.DefaultCurrency)
	}

	// Renda real usa a taxa plana do plano, sem a regra de crescimento da
	// projeção
	actualIncome := plan.MonthlyIncome * float64(monthsElapsed)
	actualNet := actualIncome - actualExpenses
	variance := actualNet - expected

	return &PlanCurrentPosition{
		PlanId:                planID,
		MonthsElapsed:         monthsElapsed,
		ExpectedCumulativeNet: expected,
		ActualCumulativeNet:   actualNet,
		Variance:              variance,
		IsOnTrack:             actualNet >= expected*onTrackTolerance,
	}, nil
}

package planning

import (
	"math"
	"sort"
	"time"

	"Planora/internal/domain/expense"
	"Planora/internal/pkg"
)

const oneTimeAverageWindowMonths = 3

// GenerateBreakdowns produz a previsão mês a mês completa de um plano.
// O acumulado líquido é o único estado carregado entre as iterações e é
// propagado explicitamente por ProjectMonth.
func GenerateBreakdowns(plan *FinancialPlan, history []*expense.Expense, now time.Time) []*PlanMonthlyBreakdown {
	if plan.DurationInMonths <= 0 {
		return nil
	}

	avgOneTime := AverageOneTimeExpenses(history, plan.DefaultCurrency, now)

	rows := make([]*PlanMonthlyBreakdown, 0, plan.DurationInMonths)
	cumulative := 0.0
	for monthIndex := 0; monthIndex < plan.DurationInMonths; monthIndex++ {
		row, next := ProjectMonth(plan, history, monthIndex, avgOneTime, cumulative)
		rows = append(rows, row)
		cumulative = next
	}

	return rows
}

// ProjectMonth calcula a linha de um único mês a partir do acumulado anterior
// e devolve o novo acumulado. avgOneTime é a média de despesas avulsas
// calculada uma única vez a partir do presente e reutilizada em todos os meses.
func ProjectMonth(
	plan *FinancialPlan,
	history []*expense.Expense,
	monthIndex int,
	avgOneTime float64,
	cumulativeSoFar float64,
) (*PlanMonthlyBreakdown, float64) {
	income := plan.MonthlyIncomeAtMonth(monthIndex)

	base := plan.ManualMonthlyExpenses
	if plan.UseAppExpenseData {
		base = RecurringExpensesForMonth(history, plan.DefaultCurrency, plan.MonthStart(monthIndex)) + avgOneTime
	}

	adjusted := base
	if plan.IsInflationApplied && plan.InflationRate > 0 {
		monthlyRate := plan.InflationRate / 12 / 100
		adjusted = base * math.Pow(1+monthlyRate, float64(monthIndex))
	}

	net := income - adjusted

	// Juros incidem apenas sobre saldo acumulado positivo do mês anterior
	interest := 0.0
	if plan.IsInterestApplied && plan.InterestRate > 0 && cumulativeSoFar > 0 {
		switch plan.InterestType {
		case InterestSimple:
			interest = cumulativeSoFar * (plan.InterestRate / 100 / 12)
		case InterestCompound:
			interest = cumulativeSoFar * (math.Pow(1+plan.InterestRate/100, 1.0/12) - 1)
		}
	}

	next := cumulativeSoFar + net + interest

	// Divisão fixo/médio apenas para exibição: despesa manual vai para a
	// coluna de média, despesa derivada do histórico vai para a coluna fixa
	fixed, average := adjusted, 0.0
	if plan.ManualMonthlyExpenses > 0 {
		fixed, average = 0.0, adjusted
	}

	row := &PlanMonthlyBreakdown{
		Id:                     pkg.GenerateULIDObject(),
		PlanId:                 plan.Id,
		MonthIndex:             monthIndex,
		ProjectedIncome:        income,
		FixedExpenses:          fixed,
		AverageExpenses:        average,
		TotalProjectedExpenses: adjusted,
		NetAmount:              net,
		InterestEarned:         interest,
		CumulativeNet:          next,
	}

	return row, next
}

// RecurringExpensesForMonth soma, na moeda padrão, as despesas recorrentes
// cuja data cai na janela de um mês que termina no fim do mês-alvo. É uma
// aproximação de "recorrências ativas no mês" sem expandir a recorrência.
func RecurringExpensesForMonth(history []*expense.Expense, defaultCurrency string, monthStart time.Time) float64 {
	windowStart := monthStart.AddDate(0, -1, 0)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	total := 0.0
	for _, e := range history {
		if !e.RecurrenceType.IsRecurring() {
			continue
		}
		if e.Date.Before(windowStart) || !e.Date.Before(nextMonthStart) {
			continue
		}
		total += e.AmountInDefaultCurrency(defaultCurrency)
	}
	return total
}

// AverageOneTimeExpenses calcula a média mensal das despesas avulsas dos
// últimos três meses contados a partir de now. Sem despesas na janela a
// média é zero.
func AverageOneTimeExpenses(history []*expense.Expense, defaultCurrency string, now time.Time) float64 {
	windowStart := now.AddDate(0, -oneTimeAverageWindowMonths, 0)

	total := 0.0
	for _, e := range history {
		if e.RecurrenceType.IsRecurring() {
			continue
		}
		if e.Date.Before(windowStart) || e.Date.After(now) {
			continue
		}
		total += e.AmountInDefaultCurrency(defaultCurrency)
	}
	return total / oneTimeAverageWindowMonths
}

// RecalculateCumulative rederiva o acumulado de todas as linhas somando
// netAmount + interestEarned do zero, em ordem de MonthIndex
func RecalculateCumulative(rows []*PlanMonthlyBreakdown) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].MonthIndex < rows[j].MonthIndex
	})

	cumulative := 0.0
	for _, row := range rows {
		cumulative += row.NetAmount + row.InterestEarned
		row.CumulativeNet = cumulative
	}
}

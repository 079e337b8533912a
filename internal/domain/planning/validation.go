package planning

import "strings"

const (
	minInflationRate = -50.0
	maxInflationRate = 100.0
	maxInterestRate  = 100.0
)

// ValidationResult agrega as mensagens de validação de um plano
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// ValidatePlan verifica os parâmetros do plano antes de qualquer projeção.
// As mensagens são legíveis para o usuário; nenhuma validação interrompe
// o cálculo no meio.
func ValidatePlan(plan *FinancialPlan) ValidationResult {
	var errs []string

	if strings.TrimSpace(plan.Name) == "" {
		errs = append(errs, "nome do plano é obrigatório")
	}
	if plan.DurationInMonths <= 0 {
		errs = append(errs, "duração deve ser de pelo menos 1 mês")
	}
	if plan.MonthlyIncome <= 0 {
		errs = append(errs, "renda mensal deve ser maior que zero")
	}
	if !plan.UseAppExpenseData && plan.ManualMonthlyExpenses < 0 {
		errs = append(errs, "despesas mensais manuais não podem ser negativas")
	}
	if plan.IsInflationApplied && (plan.InflationRate < minInflationRate || plan.InflationRate > maxInflationRate) {
		errs = append(errs, "taxa de inflação deve estar entre -50% e 100%")
	}
	if plan.IsInterestApplied {
		if plan.InterestRate < 0 || plan.InterestRate > maxInterestRate {
			errs = append(errs, "taxa de juros deve estar entre 0% e 100%")
		}
		if !plan.InterestType.IsValid() {
			errs = append(errs, "tipo de juros deve ser SIMPLE ou COMPOUND")
		}
	}
	if strings.TrimSpace(plan.DefaultCurrency) == "" {
		errs = append(errs, "moeda padrão é obrigatória")
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

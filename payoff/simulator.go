package payoff

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"card-payoff/domain"
)

// Simulator runs payoff scenarios month by month under one Policy.
type Simulator struct {
	policy Policy
}

func NewSimulator(policy Policy) *Simulator {
	return &Simulator{policy: policy.withDefaults()}
}

func (s *Simulator) Policy() Policy {
	return s.policy
}

// Run simulates one scenario until every balance is zero or the policy's
// month bound is hit. In the second case the result is marked aborted and
// its final monthly record carries a warning.
//
// accounts is copied before the first month; the caller's slice is never
// touched.
func (s *Simulator) Run(accounts []domain.Account, req domain.ScenarioRequest) domain.ScenarioResult {
	working := cloneAccounts(accounts)

	history := []domain.MonthlyRecord{}
	totalInterest := decimal.Zero
	totalPrincipal := decimal.Zero
	outcome := domain.OutcomePaidOff
	month := 0

	for hasOpenBalance(working) {
		if month >= s.policy.MaxMonths {
			outcome = domain.OutcomeAborted
			if n := len(history); n > 0 {
				history[n-1].Warning = fmt.Sprintf(
					"balances not paid off after %d months at %s/month",
					s.policy.MaxMonths, req.TotalMonthlyPayment.StringFixed(2),
				)
			}
			break
		}
		month++

		record := s.step(month, working, req.TotalMonthlyPayment)
		totalInterest = totalInterest.Add(record.TotalInterest)
		totalPrincipal = totalPrincipal.Add(record.TotalPrincipal)
		history = append(history, record)
	}

	return domain.ScenarioResult{
		ScenarioID:          req.ID,
		Label:               req.Label,
		TotalMonthlyPayment: req.TotalMonthlyPayment,
		Outcome:             outcome,
		MonthsToPayOff:      month,
		TotalInterestPaid:   totalInterest.Round(2),
		TotalPrincipalPaid:  totalPrincipal.Round(2),
		MonthlyBreakdown:    history,
	}
}

// RunAll runs every scenario against the same starting accounts. Scenarios
// run concurrently, each on its own copy; results come back in request order.
func (s *Simulator) RunAll(accounts []domain.Account, requests []domain.ScenarioRequest) []domain.ScenarioResult {
	results := make([]domain.ScenarioResult, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.Run(accounts, req)
		}()
	}
	wg.Wait()

	return results
}

// step advances working by one month and returns the record for it.
func (s *Simulator) step(month int, working []domain.Account, budget decimal.Decimal) domain.MonthlyRecord {
	allocations := AllocateAvalanche(working, budget, s.policy)

	record := domain.MonthlyRecord{
		Month:    month,
		Accounts: make([]domain.AccountSnapshot, 0, len(working)),
	}
	payment := decimal.Zero
	interest := decimal.Zero
	principal := decimal.Zero
	ending := decimal.Zero

	for i := range working {
		a := &working[i]
		if a.IsSettled() {
			record.Accounts = append(record.Accounts, settledSnapshot(a.ID))
			continue
		}

		amount := decimal.Min(allocations[i].Amount, payoffAmount(*a))
		settlement := Settle(*a, amount)

		record.Accounts = append(record.Accounts, domain.AccountSnapshot{
			AccountID:       a.ID,
			StartingBalance: a.Balance,
			Payment:         amount,
			Interest:        settlement.InterestPaid,
			Principal:       settlement.PrincipalPaid,
			EndingBalance:   settlement.NewBalance,
		})
		a.Balance = settlement.NewBalance

		payment = payment.Add(amount)
		interest = interest.Add(settlement.InterestPaid)
		principal = principal.Add(settlement.PrincipalPaid)
		ending = ending.Add(settlement.NewBalance)
	}

	record.TotalPayment = payment.Round(2)
	record.TotalInterest = interest.Round(2)
	record.TotalPrincipal = principal.Round(2)
	record.EndingBalance = ending.Round(2)
	return record
}

func settledSnapshot(id string) domain.AccountSnapshot {
	return domain.AccountSnapshot{
		AccountID:       id,
		StartingBalance: decimal.Zero,
		Payment:         decimal.Zero,
		Interest:        decimal.Zero,
		Principal:       decimal.Zero,
		EndingBalance:   decimal.Zero,
	}
}

// cloneAccounts copies the account values. decimal.Decimal is immutable, so
// a shallow copy of each struct is enough to isolate the working set.
func cloneAccounts(accounts []domain.Account) []domain.Account {
	out := make([]domain.Account, len(accounts))
	copy(out, accounts)
	return out
}

func hasOpenBalance(accounts []domain.Account) bool {
	for _, a := range accounts {
		if !a.IsSettled() {
			return true
		}
	}
	return false
}

package payoff

import (
	"sort"

	"github.com/shopspring/decimal"

	"card-payoff/domain"
)

// MinimumPayment is the payment an open account requires this month: the
// larger of the policy floor and its balance fraction, never more than the
// full payoff amount. Settled accounts require nothing.
func MinimumPayment(a domain.Account, policy Policy) decimal.Decimal {
	if a.IsSettled() {
		return decimal.Zero
	}
	minimum := decimal.Max(policy.MinimumPaymentFloor, a.Balance.Mul(a.MinPaymentFraction)).Round(2)
	return decimal.Min(minimum, payoffAmount(a))
}

// CombinedMinimumPayment sums MinimumPayment over all open accounts. It is
// the smallest budget that keeps every account current.
func CombinedMinimumPayment(accounts []domain.Account, policy Policy) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(MinimumPayment(a, policy))
	}
	return total.Round(2)
}

// AllocateAvalanche splits budget across accounts. The result has one entry
// per account, in input order.
//
// Minimums are paid first in input order until the budget runs out. Any
// surplus then goes to open accounts by monthly rate, highest first, with
// input order breaking ties; extra principal on an account is capped at its
// balance. Finally each allocation is capped at the account's payoff amount.
// Budget trimmed by that cap is dropped, not handed to the next account.
func AllocateAvalanche(accounts []domain.Account, budget decimal.Decimal, policy Policy) []domain.PaymentAllocation {
	amounts := make([]decimal.Decimal, len(accounts))
	remaining := budget

	for i, a := range accounts {
		amounts[i] = decimal.Zero
		if a.IsSettled() {
			continue
		}
		minimum := decimal.Min(MinimumPayment(a, policy), remaining)
		if minimum.IsNegative() {
			minimum = decimal.Zero
		}
		amounts[i] = minimum
		remaining = remaining.Sub(minimum)
	}

	if remaining.IsPositive() {
		order := make([]int, 0, len(accounts))
		for i, a := range accounts {
			if !a.IsSettled() {
				order = append(order, i)
			}
		}
		sort.SliceStable(order, func(x, y int) bool {
			return accounts[order[x]].MonthlyRate.GreaterThan(accounts[order[y]].MonthlyRate)
		})

		for _, i := range order {
			if !remaining.IsPositive() {
				break
			}
			extra := decimal.Min(remaining, accounts[i].Balance)
			amounts[i] = amounts[i].Add(extra)
			remaining = remaining.Sub(extra)
		}
	}

	allocations := make([]domain.PaymentAllocation, len(accounts))
	for i, a := range accounts {
		amount := decimal.Zero
		if !a.IsSettled() {
			amount = decimal.Min(amounts[i], payoffAmount(a))
		}
		allocations[i] = domain.PaymentAllocation{
			AccountID: a.ID,
			Amount:    amount.Round(2),
		}
	}
	return allocations
}

package payoff

import (
	"github.com/shopspring/decimal"

	"card-payoff/domain"
)

// Settle applies one month's payment to a single account. Interest accrues
// first; the rest of the payment reduces principal. A payment smaller than
// the interest pays no principal and the uncovered interest is added to the
// balance.
//
// The account itself is not modified; callers commit NewBalance.
func Settle(account domain.Account, payment decimal.Decimal) domain.Settlement {
	interest := Interest(account.Balance, account.MonthlyRate)

	principal := payment.Sub(interest)
	if principal.IsNegative() {
		principal = decimal.Zero
	}
	if maxPrincipal := decimal.Max(account.Balance, decimal.Zero); principal.GreaterThan(maxPrincipal) {
		principal = maxPrincipal
	}

	var newBalance decimal.Decimal
	if payment.LessThan(interest) {
		newBalance = account.Balance.Add(interest.Sub(payment))
	} else {
		newBalance = account.Balance.Add(interest).Sub(payment)
		if newBalance.IsNegative() {
			newBalance = decimal.Zero
		}
	}

	return domain.Settlement{
		NewBalance:    newBalance.Round(2),
		InterestPaid:  interest,
		PrincipalPaid: principal.Round(2),
	}
}

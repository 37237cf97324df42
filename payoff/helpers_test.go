package payoff

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"card-payoff/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func account(id, balance, rate, minFraction string) domain.Account {
	return domain.Account{
		ID:                 id,
		Balance:            dec(balance),
		MonthlyRate:        dec(rate),
		MinPaymentFraction: dec(minFraction),
	}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, dec(want).StringFixed(2), got.StringFixed(2), msgAndArgs...)
}

func amountsByID(allocations []domain.PaymentAllocation) map[string]string {
	out := make(map[string]string, len(allocations))
	for _, a := range allocations {
		out[a.AccountID] = a.Amount.StringFixed(2)
	}
	return out
}

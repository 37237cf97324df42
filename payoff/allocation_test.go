package payoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-payoff/domain"
)

// Minimums: c1 20, c2 20, c3 15. c2 has the highest rate.
func threeCards() []domain.Account {
	return []domain.Account{
		account("c1", "1000", "0.015", "0.02"),
		account("c2", "2000", "0.020", "0.01"),
		account("c3", "500", "0.010", "0.03"),
	}
}

func TestAllocateAvalanche(t *testing.T) {
	tests := []struct {
		name   string
		cards  []domain.Account
		budget string
		want   map[string]string
	}{
		{
			name:   "budget below minimums fills in input order",
			cards:  threeCards(),
			budget: "50",
			want:   map[string]string{"c1": "20.00", "c2": "20.00", "c3": "10.00"},
		},
		{
			name:   "budget equals minimums",
			cards:  threeCards(),
			budget: "55",
			want:   map[string]string{"c1": "20.00", "c2": "20.00", "c3": "15.00"},
		},
		{
			name:   "surplus goes to highest rate",
			cards:  threeCards(),
			budget: "100",
			want:   map[string]string{"c1": "20.00", "c2": "65.00", "c3": "15.00"},
		},
		{
			name:   "surplus spills to next rate once balance is covered",
			cards:  threeCards(),
			budget: "2500",
			want:   map[string]string{"c1": "465.00", "c2": "2020.00", "c3": "15.00"},
		},
		{
			name:   "single card takes whole budget",
			cards:  []domain.Account{account("c1", "1000", "0.015", "0.02")},
			budget: "100",
			want:   map[string]string{"c1": "100.00"},
		},
		{
			name: "zero balance card gets nothing",
			cards: []domain.Account{
				account("c1", "1000", "0.015", "0.02"),
				account("c2", "0", "0.020", "0.01"),
				account("c3", "500", "0.010", "0.03"),
			},
			budget: "100",
			want:   map[string]string{"c1": "85.00", "c2": "0.00", "c3": "15.00"},
		},
		{
			name:   "floor applies to small balances",
			cards:  []domain.Account{account("c1", "200", "0.01", "0.02")},
			budget: "10",
			want:   map[string]string{"c1": "10.00"},
		},
		{
			name:   "minimum capped at payoff amount",
			cards:  []domain.Account{account("c1", "5", "0.02", "0.02"), account("c2", "100", "0.01", "0.5")},
			budget: "20",
			want:   map[string]string{"c1": "5.10", "c2": "14.90"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllocateAvalanche(tt.cards, dec(tt.budget), DefaultPolicy())
			require.Len(t, got, len(tt.cards))
			assert.Equal(t, tt.want, amountsByID(got))
		})
	}
}

func TestAllocateAvalanche_PreservesInputOrder(t *testing.T) {
	got := AllocateAvalanche(threeCards(), dec("100"), DefaultPolicy())

	ids := make([]string, 0, len(got))
	for _, a := range got {
		ids = append(ids, a.AccountID)
	}
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids)
}

func TestAllocateAvalanche_TiesKeepInputOrder(t *testing.T) {
	cards := []domain.Account{
		account("low", "300", "0.010", "0.02"),
		account("first", "300", "0.020", "0.02"),
		account("second", "300", "0.020", "0.02"),
	}

	got := AllocateAvalanche(cards, dec("100"), DefaultPolicy())

	// minimums 10 each, surplus 70 all to the first of the tied pair
	assert.Equal(t, map[string]string{"low": "10.00", "first": "80.00", "second": "10.00"}, amountsByID(got))
}

func TestAllocateAvalanche_MinimumFloorWhenBudgetSuffices(t *testing.T) {
	cards := threeCards()
	policy := DefaultPolicy()
	budget := CombinedMinimumPayment(cards, policy).Add(dec("12.34"))

	got := AllocateAvalanche(cards, budget, policy)

	for i, a := range got {
		minimum := MinimumPayment(cards[i], policy)
		assert.True(t, a.Amount.GreaterThanOrEqual(minimum), "%s got %s, minimum %s", a.AccountID, a.Amount, minimum)
	}
}

func TestAllocateAvalanche_NeverExceedsBudget(t *testing.T) {
	for _, budget := range []string{"0", "10", "54.99", "100", "777.77", "10000"} {
		got := AllocateAvalanche(threeCards(), dec(budget), DefaultPolicy())

		total := dec("0")
		for _, a := range got {
			assert.False(t, a.Amount.IsNegative())
			total = total.Add(a.Amount)
		}
		assert.True(t, total.LessThanOrEqual(dec(budget)), "budget %s allocated %s", budget, total)
	}
}

func TestAllocateAvalanche_ExcessBeyondPayoffIsDropped(t *testing.T) {
	cards := []domain.Account{
		account("small", "50", "0.03", "0.02"),
		account("big", "1000", "0.01", "0.02"),
	}

	got := AllocateAvalanche(cards, dec("1100"), DefaultPolicy())

	// small: min 10 + extra 50 = 60, capped at 51.50; the 8.50 is not redistributed.
	// big: min 20 + extra 1000 = 1020, capped at 1010.
	assert.Equal(t, map[string]string{"small": "51.50", "big": "1010.00"}, amountsByID(got))
}

func TestAllocateAvalanche_ConfigurableFloor(t *testing.T) {
	policy := Policy{MinimumPaymentFloor: dec("25"), MaxMonths: 12}

	got := AllocateAvalanche([]domain.Account{
		account("a", "100", "0.01", "0.02"),
		account("b", "100", "0.02", "0.02"),
	}, dec("50"), policy)

	assert.Equal(t, map[string]string{"a": "25.00", "b": "25.00"}, amountsByID(got))
}

func TestMinimumPayment(t *testing.T) {
	policy := DefaultPolicy()

	assertAmount(t, "20", MinimumPayment(account("a", "1000", "0.015", "0.02"), policy))
	assertAmount(t, "10", MinimumPayment(account("a", "100", "0.015", "0.02"), policy))
	assertAmount(t, "8.16", MinimumPayment(account("a", "8", "0.02", "0.02"), policy))
	assertAmount(t, "0", MinimumPayment(account("a", "0", "0.015", "0.02"), policy))
}

func TestCombinedMinimumPayment(t *testing.T) {
	assertAmount(t, "55", CombinedMinimumPayment(threeCards(), DefaultPolicy()))
	assertAmount(t, "0", CombinedMinimumPayment(nil, DefaultPolicy()))
}

package payoff

import "github.com/shopspring/decimal"

const (
	// DefaultMinimumPaymentFloor is the smallest minimum payment any open
	// account requires, whatever its balance fraction works out to.
	DefaultMinimumPaymentFloor = 10

	// DefaultMaxMonths bounds a simulation at 100 years.
	DefaultMaxMonths = 1200
)

// Policy holds the tunable rules of a simulation. A zero
// MinimumPaymentFloor means no floor: minimums are the balance fraction alone.
type Policy struct {
	MinimumPaymentFloor decimal.Decimal
	MaxMonths           int
}

// DefaultPolicy returns a $10 minimum payment floor and a 1200 month bound.
func DefaultPolicy() Policy {
	return Policy{
		MinimumPaymentFloor: decimal.NewFromInt(DefaultMinimumPaymentFloor),
		MaxMonths:           DefaultMaxMonths,
	}
}

// withDefaults fills a non-positive MaxMonths from DefaultPolicy and clamps a
// negative floor to zero. A zero floor is kept: it disables the floor.
func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()
	if p.MaxMonths <= 0 {
		p.MaxMonths = def.MaxMonths
	}
	if p.MinimumPaymentFloor.IsNegative() {
		p.MinimumPaymentFloor = decimal.Zero
	}
	return p
}

package service

const (
	MaxAccountsPerRequest  = 50
	MaxScenariosPerRequest = 20
	MaxAccountBalance      = 100_000_000
	MaxMonthlyPayment      = 10_000_000

	// DefaultRunListLimit is how many run records ListRuns returns when the
	// caller does not ask for a number.
	DefaultRunListLimit = 50
	MaxRunListLimit     = 500
)

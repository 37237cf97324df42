// Package payoff simulates paying down several interest-bearing balances
// from one fixed monthly budget using the avalanche rule: every account
// gets its minimum payment, then whatever is left goes to the account with
// the highest monthly rate.
//
// All amounts are decimal and rounded to cents at the points where a real
// statement would round them. The package holds no state between calls and
// never mutates the accounts it is given.
package payoff

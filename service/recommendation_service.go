package service

import (
	"context"

	"github.com/shopspring/decimal"

	"card-payoff/domain"
)

type RecommendationService struct {
	insights *InsightService
}

func NewRecommendationService(insights *InsightService) *RecommendationService {
	return &RecommendationService{insights: insights}
}

// Recommend picks the best paid-off scenario for the given priority and
// measures it against the worst other paid-off scenario. Aborted scenarios
// are never recommended. It returns nil when no scenario paid off.
func (s *RecommendationService) Recommend(
	ctx context.Context,
	results []domain.ScenarioResult,
	priority domain.Priority,
) *domain.Recommendation {
	best, ok := SelectOptimal(results, priority)
	if !ok {
		return nil
	}

	rec := &domain.Recommendation{
		ScenarioID:    best.ScenarioID,
		Priority:      priority,
		InterestSaved: decimal.Zero,
	}

	var cmp *Comparison
	if worst, ok := selectWorst(results, best, priority); ok {
		cmp = &Comparison{
			Worst:         worst,
			InterestSaved: decimal.Max(decimal.Zero, worst.TotalInterestPaid.Sub(best.TotalInterestPaid)).Round(2),
			MonthsSooner:  max(0, worst.MonthsToPayOff-best.MonthsToPayOff),
		}
		rec.InterestSaved = cmp.InterestSaved
		rec.MonthsSooner = cmp.MonthsSooner
	}

	rec.Insight = s.insights.Explain(ctx, best, cmp)
	return rec
}

// SelectOptimal returns the paid-off scenario with the least total interest
// (PriorityLowestInterest) or the fewest months (PriorityFastestPayoff).
// The earliest scenario wins a tie.
func SelectOptimal(results []domain.ScenarioResult, priority domain.Priority) (domain.ScenarioResult, bool) {
	var best domain.ScenarioResult
	found := false
	for _, r := range results {
		if !r.PaidOff() {
			continue
		}
		if !found || better(r, best, priority) {
			best = r
			found = true
		}
	}
	return best, found
}

// selectWorst returns the paid-off scenario, other than best, that scores
// lowest for priority. The earliest scenario wins a tie.
func selectWorst(results []domain.ScenarioResult, best domain.ScenarioResult, priority domain.Priority) (domain.ScenarioResult, bool) {
	var worst domain.ScenarioResult
	found := false
	for _, r := range results {
		if !r.PaidOff() || r.ScenarioID == best.ScenarioID {
			continue
		}
		if !found || better(worst, r, priority) {
			worst = r
			found = true
		}
	}
	return worst, found
}

// better reports whether a strictly beats b under priority.
func better(a, b domain.ScenarioResult, priority domain.Priority) bool {
	if priority == domain.PriorityFastestPayoff {
		return a.MonthsToPayOff < b.MonthsToPayOff
	}
	return a.TotalInterestPaid.LessThan(b.TotalInterestPaid)
}

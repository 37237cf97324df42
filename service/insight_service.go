package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"card-payoff/domain"
)

const DefaultInsightAPIURL = "https://api.openai.com/v1/chat/completions"

// InsightService turns a recommended scenario into a short plain-language
// summary. With an API key it asks an OpenAI-compatible chat endpoint;
// without one, or when the call fails, it uses fixed wording.
type InsightService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewInsightService creates an InsightService. An empty apiKey disables the
// remote call.
func NewInsightService(apiKey, apiURL, model string, timeout time.Duration) *InsightService {
	if apiURL == "" {
		apiURL = DefaultInsightAPIURL
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &InsightService{
		apiKey:  apiKey,
		apiURL:  apiURL,
		model:   model,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Comparison describes how the recommended scenario beats the worst
// alternative. A nil Comparison means there was nothing to compare against.
type Comparison struct {
	Worst         domain.ScenarioResult
	InterestSaved decimal.Decimal
	MonthsSooner  int
}

// Explain summarises the recommended scenario.
func (s *InsightService) Explain(ctx context.Context, best domain.ScenarioResult, cmp *Comparison) string {
	if !s.enabled {
		return fallbackInsight(best, cmp)
	}

	explanation, err := s.callLLM(ctx, insightPrompt(best, cmp))
	if err != nil {
		slog.Warn("insight request failed, using fallback text", "scenario", best.ScenarioID, "error", err)
		return fallbackInsight(best, cmp)
	}
	return explanation
}

func insightPrompt(best domain.ScenarioResult, cmp *Comparison) string {
	var b strings.Builder
	b.WriteString("A borrower is paying down several credit cards with the debt avalanche method " +
		"(minimum payments on every card, everything extra to the highest-interest card).\n\n")
	fmt.Fprintf(&b, "RECOMMENDED PLAN: %s\n", best.Label)
	fmt.Fprintf(&b, "- Monthly payment: $%s\n", best.TotalMonthlyPayment.StringFixed(2))
	fmt.Fprintf(&b, "- Time to debt-free: %s\n", formatDuration(best.MonthsToPayOff))
	fmt.Fprintf(&b, "- Total interest: $%s\n", best.TotalInterestPaid.StringFixed(2))
	fmt.Fprintf(&b, "- Total principal: $%s\n", best.TotalPrincipalPaid.StringFixed(2))
	if cmp != nil {
		fmt.Fprintf(&b, "\nCOMPARED WITH %s ($%s/month):\n", cmp.Worst.Label, cmp.Worst.TotalMonthlyPayment.StringFixed(2))
		fmt.Fprintf(&b, "- Interest saved: $%s\n", cmp.InterestSaved.StringFixed(2))
		fmt.Fprintf(&b, "- Debt-free %s sooner\n", formatDuration(cmp.MonthsSooner))
	}
	b.WriteString("\nIn 2-3 encouraging but realistic sentences, explain why this plan is the best choice. Use the exact figures above.")
	return b.String()
}

func (s *InsightService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a plain-spoken personal finance coach. You explain credit card repayment plans clearly and never invent numbers.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 200,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty response from insight API")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func fallbackInsight(best domain.ScenarioResult, cmp *Comparison) string {
	lead := fmt.Sprintf("With the recommended plan (paying $%s/month), you could ", best.TotalMonthlyPayment.StringFixed(2))

	if cmp != nil {
		switch {
		case cmp.MonthsSooner > 0:
			return lead + fmt.Sprintf("be debt-free %s sooner and save $%s in interest!",
				formatDuration(cmp.MonthsSooner), cmp.InterestSaved.StringFixed(2))
		case cmp.InterestSaved.IsPositive():
			return lead + fmt.Sprintf("save $%s in interest!", cmp.InterestSaved.StringFixed(2))
		}
	}

	return lead + fmt.Sprintf("pay a total of $%s in interest and be debt-free in %s.",
		best.TotalInterestPaid.StringFixed(2), formatDuration(best.MonthsToPayOff))
}

// formatDuration renders a month count as "2 years and 3 months".
func formatDuration(months int) string {
	if months <= 0 {
		return "less than a month"
	}
	years, rest := months/12, months%12

	parts := make([]string, 0, 2)
	if years > 0 {
		parts = append(parts, pluralize(years, "year"))
	}
	if rest > 0 {
		parts = append(parts, pluralize(rest, "month"))
	}
	return strings.Join(parts, " and ")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-payoff/config"
	"card-payoff/domain"
	httpLayer "card-payoff/http"
	"card-payoff/payoff"
	"card-payoff/repository"
	"card-payoff/service"
)

func newTestServer(t *testing.T, requestsPerMinute int) *httptest.Server {
	t.Helper()

	svc := service.NewScenarioService(
		payoff.NewSimulator(payoff.DefaultPolicy()),
		repository.NewMemoryCache(16, time.Hour),
		repository.NewRunRepositoryMemory(),
		service.NewRecommendationService(service.NewInsightService("", "", "", 0)),
	)
	limiter := httpLayer.NewRateLimiter(requestsPerMinute, time.Minute)
	t.Cleanup(limiter.Stop)

	server := httptest.NewServer(newRouter(
		httpLayer.NewScenarioHandler(svc),
		httpLayer.NewRunHandler(svc),
		limiter,
	))
	t.Cleanup(server.Close)
	return server
}

func TestRouter_SimulateThenListRuns(t *testing.T) {
	server := newTestServer(t, 10)

	body := `{
		"accounts": [{"id": "card", "balance": 1200, "monthly_rate": 0.0199, "min_payment_fraction": 0.025}],
		"scenarios": [{"total_monthly_payment": 100}, {"total_monthly_payment": 250}]
	}`
	resp, err := http.Post(server.URL+"/scenarios/simulate", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out domain.SimulationOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Results, 2)
	assert.Equal(t, "scenario-2", out.Recommendation.ScenarioID)

	runs, err := http.Get(server.URL + "/scenarios/runs?limit=5")
	require.NoError(t, err)
	defer runs.Body.Close()
	assert.Equal(t, http.StatusOK, runs.StatusCode)

	var list struct {
		Runs []domain.RunRecord `json:"runs"`
	}
	require.NoError(t, json.NewDecoder(runs.Body).Decode(&list))
	require.Len(t, list.Runs, 2)
	assert.Equal(t, out.RunID, list.Runs[0].RunID)
}

func TestRouter_Health(t *testing.T) {
	server := newTestServer(t, 1)

	for i := 0; i < 3; i++ {
		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "health is not rate limited")
	}
}

func TestRouter_RateLimited(t *testing.T) {
	server := newTestServer(t, 1)

	resp, err := http.Get(server.URL + "/scenarios/runs")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/scenarios/runs")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestNewRunRepository_SQLite(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "nested", "runs.db")

	repo := newRunRepository(cfg)
	defer repo.Close()

	_, ok := repo.(*repository.RunRepositorySQLite)
	assert.True(t, ok)
}

func TestNewCache_WithoutRedis(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cache, closeCache := newCache(t.Context(), cfg)
	defer closeCache()

	_, ok := cache.(*repository.MemoryCache)
	assert.True(t, ok)
}

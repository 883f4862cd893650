package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dealdesk/internal/api"
	"dealdesk/internal/config"
	"dealdesk/internal/contract"
)

func resetListFlags() {
	listFlags = struct {
		status    string
		ctype     string
		minBudget string
		maxBudget string
		from      string
		to        string
		creator   string
		brand     string
		search    string
	}{}
}

func TestBuildFilterMapsFlags(t *testing.T) {
	resetListFlags()
	defer resetListFlags()

	listFlags.status = "active"
	listFlags.ctype = "one_time"
	listFlags.minBudget = "500"
	listFlags.maxBudget = "5000"
	listFlags.from = "2026-01-01"
	listFlags.creator = "u113"
	listFlags.search = "summer"

	f, err := buildFilter()
	require.NoError(t, err)
	assert.Equal(t, contract.StatusActive, f.Status)
	assert.Equal(t, contract.TypeOneTime, f.ContractType)
	require.NotNil(t, f.MinBudget)
	assert.Equal(t, 500.0, *f.MinBudget)
	require.NotNil(t, f.MaxBudget)
	assert.Equal(t, 5000.0, *f.MaxBudget)
	require.NotNil(t, f.StartAfter)
	assert.Equal(t, "u113", f.CreatorID)
	assert.Equal(t, "summer", f.Search)
}

func TestBuildFilterRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
	}{
		{"unknown status", func() { listFlags.status = "archived" }},
		{"unknown type", func() { listFlags.ctype = "barter" }},
		{"bad min budget", func() { listFlags.minBudget = "lots" }},
		{"bad date", func() { listFlags.from = "01/02/2026" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetListFlags()
			defer resetListFlags()
			tt.setup()
			_, err := buildFilter()
			assert.Error(t, err)
		})
	}
}

func TestUserFacingMessages(t *testing.T) {
	detail := &api.APIError{Status: 500, Detail: "db down"}
	err := userFacing(fmt.Errorf("create contract: %w", detail))
	assert.EqualError(t, err, "db down")

	generic := &api.APIError{Status: 503}
	err = userFacing(fmt.Errorf("wrapped: %w", generic))
	assert.Contains(t, err.Error(), "internal error")

	unavailable := fmt.Errorf("list contracts: %w", api.ErrBackendUnavailable)
	err = userFacing(unavailable)
	assert.Contains(t, err.Error(), "backend unavailable")

	plain := errors.New("boom")
	assert.Equal(t, plain, userFacing(plain))
}

// withTestBackend points the package globals at a stub backend for the
// duration of one test.
func withTestBackend(t *testing.T, handler http.Handler) {
	t.Helper()
	server := httptest.NewServer(handler)
	cfg = config.DefaultConfig()
	logger = zap.NewNop()
	client = api.New(server.URL, 5*time.Second, logger)
	t.Cleanup(func() {
		client.Close()
		server.Close()
		cfg, logger, client = nil, nil, nil
	})
}

func TestContractsListSurfacesBackendDetail(t *testing.T) {
	resetListFlags()
	defer resetListFlags()
	withTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "contract index offline"})
	}))

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err := runContractsList(cmd, nil)
	require.Error(t, err)
	assert.EqualError(t, err, "contract index offline")
}

func TestFormatAnalysisStableOrder(t *testing.T) {
	analysis := map[string]any{
		"risk_score":   7.5,
		"budget_fit":   "high",
		"completeness": "missing payment terms",
	}

	first := formatAnalysis(analysis)
	assert.Equal(t, "**Analysis**\n- budget_fit: high\n- completeness: missing payment terms\n- risk_score: 7.5\n", first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, formatAnalysis(analysis))
	}
}

func TestChatRendererFollowsTheme(t *testing.T) {
	// Both palettes must yield a usable renderer, including after a resize
	// rebuild with a different wrap width.
	assert.NotNil(t, newChatRenderer(true, 80))
	assert.NotNil(t, newChatRenderer(false, 80))
	assert.NotNil(t, newChatRenderer(false, 40))
}

func TestDraftFromFlagsRoundTrip(t *testing.T) {
	generateFlags.creator = "u113"
	generateFlags.brand = "u114"
	generateFlags.ctype = "one_time"
	generateFlags.minBudget = "500"
	generateFlags.maxBudget = "5000"
	generateFlags.jurisdiction = "uk"
	generateFlags.dispute = "mediation"
	defer func() { generateFlags.creator, generateFlags.brand = "", "" }()

	d := draftFromFlags()
	assert.Equal(t, "u113", d.CreatorID)
	assert.Equal(t, contract.TypeOneTime, d.ContractType)
	assert.Equal(t, "uk", d.Jurisdiction)
}

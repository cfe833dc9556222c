package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/config"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/store"
	"github.com/sells-group/prospect-cli/pkg/anthropic"
)

// stubAI scripts the streaming client for chat tests.
type stubAI struct {
	deltas []string
	err    error
}

func (s *stubAI) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	return &anthropic.MessageResponse{}, s.err
}

func (s *stubAI) StreamMessage(ctx context.Context, req anthropic.MessageRequest, onDelta func(string)) (*anthropic.MessageResponse, error) {
	for _, d := range s.deltas {
		onDelta(d)
	}
	return &anthropic.MessageResponse{}, s.err
}

func (s *stubAI) Ping(ctx context.Context) error { return s.err }

func testEnv(t *testing.T) *serveEnv {
	t.Helper()
	cfg = &config.Config{}
	cfg.Leads.DefaultLimit = 25
	cfg.Anthropic.Model = "claude-sonnet-4-5-20250929"

	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.SaveInstitutions(context.Background(), []model.Institution{
		{ID: "cu-101", Name: "Lone Star FCU", Type: model.CreditUnion, State: "TX",
			TotalAssets: 2_000_000_000, Members: 120_000, ROA: 0.95, Branches: 22},
		{ID: "bank-5501", Name: "First Valley Bank", Type: model.CommunityBank, State: "ID",
			TotalAssets: 850_000_000, ROA: 1.1, Branches: 9},
		{ID: "cu-202", Name: "Prairie Community CU", Type: model.CreditUnion, State: "KS",
			TotalAssets: 45_000_000, Members: 4_100, ROA: 0.4, Branches: 2},
	}))

	return &serveEnv{
		store:     s,
		model:     cfg.Anthropic.Model,
		maxTokens: 1024,
	}
}

func TestServeHealth(t *testing.T) {
	mux := newServeMux(testEnv(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "unknown", body["ai"])
}

func TestServeInstitutions(t *testing.T) {
	env := testEnv(t)
	require.NoError(t, env.store.SaveOverlay(context.Background(), "cu-101", model.CRMOverlay{
		InstitutionID: "cu-101",
		Status:        model.StatusContacted,
	}))
	mux := newServeMux(env)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/institutions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var insts []model.Institution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insts))
	require.Len(t, insts, 3)

	for _, inst := range insts {
		if inst.ID == "cu-101" {
			assert.Equal(t, model.StatusContacted, inst.Status)
		}
	}
}

func TestServeAnalysis(t *testing.T) {
	mux := newServeMux(testEnv(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/institutions/cu-101/analysis", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var analysis model.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, "cu-101", analysis.Institution.ID)
	require.NotNil(t, analysis.Opportunity)
	assert.NotZero(t, analysis.Opportunity.Score)
	assert.NotEmpty(t, analysis.Recommendations)
	assert.NotZero(t, analysis.Pricing.AnnualPrice)
}

func TestServeAnalysisNotFound(t *testing.T) {
	mux := newServeMux(testEnv(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/institutions/nope/analysis", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeUpdateCRM(t *testing.T) {
	env := testEnv(t)
	mux := newServeMux(env)

	body := strings.NewReader(`{"status":"qualified","contact":"Dana Reyes"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/institutions/cu-101/crm", body))

	require.Equal(t, http.StatusOK, rec.Code)

	overlays, err := env.store.LoadOverlays(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StatusQualified, overlays["cu-101"].Status)
	assert.Equal(t, "Dana Reyes", overlays["cu-101"].Contact)
}

func TestServeLeads(t *testing.T) {
	mux := newServeMux(testEnv(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads?limit=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var ranked []model.HotLead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranked))
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, ranked[0].Rank)
	// The $45M credit union is below the eligibility floor and can never rank.
	assert.NotEqual(t, "cu-202", ranked[0].Institution.ID)
}

func TestServeLeadsBadLimit(t *testing.T) {
	mux := newServeMux(testEnv(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads?limit=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeChatStreams(t *testing.T) {
	env := testEnv(t)
	env.ai = &stubAI{deltas: []string{"Open with ", "their ROA trend."}}
	mux := newServeMux(env)

	body := strings.NewReader(`{"institution_id":"cu-101","question":"How should I open?"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	out := rec.Body.String()
	assert.Contains(t, out, `data: {"text":"Open with "}`)
	assert.Contains(t, out, "event: done")
	assert.NotContains(t, out, "event: error")
}

func TestServeChatErrorPreservesPartialOutput(t *testing.T) {
	env := testEnv(t)
	env.ai = &stubAI{
		deltas: []string{"partial answer"},
		err:    assert.AnError,
	}
	mux := newServeMux(env)

	body := strings.NewReader(`{"question":"hello"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", body))

	out := rec.Body.String()
	assert.Contains(t, out, "partial answer")
	assert.Contains(t, out, "event: error")
	assert.NotContains(t, out, "event: done")
}

func TestServeChatUnconfigured(t *testing.T) {
	mux := newServeMux(testEnv(t))

	body := strings.NewReader(`{"question":"hello"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", body))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeChatRequiresQuestion(t *testing.T) {
	env := testEnv(t)
	env.ai = &stubAI{}
	mux := newServeMux(env)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

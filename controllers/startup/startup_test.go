package startupController

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"venturescope/analysis"
	"venturescope/config"
	"venturescope/middleware"
	"venturescope/models"
	"venturescope/store"
	startupValidators "venturescope/validators/startup"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	result analysis.Result
	err    error
	calls  int
}

func (s *stubAnalyzer) Analyze(ctx context.Context, profile *models.StartupProfile) (analysis.Result, error) {
	s.calls++
	return s.result, s.err
}

func stubSuccess() *stubAnalyzer {
	return &stubAnalyzer{result: analysis.Result{Analysis: &models.StartupAnalysis{
		Scores:              models.AnalysisScores{MarketPotential: 8, TeamStrength: 7, ProductInnovation: 6, CompetitiveAdvantage: 5, FinancialViability: 7},
		Analysis:            models.SwotAnalysis{Strengths: []string{"team"}, Weaknesses: []string{"runway"}, Opportunities: []string{"market"}, Threats: []string{"incumbents"}},
		Recommendations:     []string{"raise"},
		RiskLevel:           models.RiskMedium,
		InvestmentPotential: models.PotentialModerate,
	}}}
}

func setupApp(t *testing.T, analyzer analysis.Analyzer) (*fiber.App, *store.Memory) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", AppBaseURL: "http://localhost:3000"}

	st := store.NewMemory()
	ctl := New(st, analyzer)

	app := fiber.New()
	app.Post("/api/startups/create", middleware.JWTMiddleware, ctl.Create)
	app.Get("/api/startups", middleware.JWTMiddleware, ctl.List)
	app.Get("/api/startups/:key", ctl.Get)
	app.Post("/api/startups/:key", startupValidators.Submit(), ctl.Submit)

	return app, st
}

func doRequest(t *testing.T, app *fiber.App, method, path, body, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func authToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateJWT(1, "tester")
	require.NoError(t, err)
	return token
}

func createSubmission(t *testing.T, app *fiber.App) string {
	t.Helper()

	status, raw := doRequest(t, app, "POST", "/api/startups/create", "", authToken(t))
	require.Equal(t, fiber.StatusOK, status)

	var body struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Key, 21)
	return body.Key
}

func TestCreateRequiresAuthentication(t *testing.T) {
	app, st := setupApp(t, stubSuccess())

	status, _ := doRequest(t, app, "POST", "/api/startups/create", "", "")
	require.Equal(t, fiber.StatusUnauthorized, status)

	// No row was created
	all, err := st.ListStartups()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCreateReturnsKey(t *testing.T) {
	app, st := setupApp(t, stubSuccess())

	key := createSubmission(t, app)

	startup, err := st.GetBySubmissionKey(key)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, startup.Status)
}

func TestGetUnknownKeyReturns404(t *testing.T) {
	app, st := setupApp(t, stubSuccess())

	status, _ := doRequest(t, app, "GET", "/api/startups/nonexistent-token", "", "")
	require.Equal(t, fiber.StatusNotFound, status)

	all, err := st.ListStartups()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestGetIsOpenToKeyHolders(t *testing.T) {
	app, _ := setupApp(t, stubSuccess())

	key := createSubmission(t, app)

	// No Authorization header: the key alone grants read access
	status, raw := doRequest(t, app, "GET", "/api/startups/"+key, "", "")
	require.Equal(t, fiber.StatusOK, status)

	var startup models.Startup
	require.NoError(t, json.Unmarshal(raw, &startup))
	require.Equal(t, key, startup.SubmissionKey)
	require.Equal(t, models.StatusPending, startup.Status)
}

func TestSubmitRunsAnalysisAndReturnsAnalyzedRow(t *testing.T) {
	stub := stubSuccess()
	app, _ := setupApp(t, stub)

	key := createSubmission(t, app)

	status, raw := doRequest(t, app, "POST", "/api/startups/"+key,
		`{"organizationName": "Acme", "industries": ["fintech"]}`, "")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, 1, stub.calls)

	var startup models.Startup
	require.NoError(t, json.Unmarshal(raw, &startup))
	require.Equal(t, models.StatusAnalyzed, startup.Status)
	require.Equal(t, "Acme", startup.OrganizationName)
	require.NotNil(t, startup.AiAnalysis)
	require.Equal(t, *stub.result.Analysis, startup.AiAnalysis.Data())
}

func TestSubmitUnknownKeyReturns404(t *testing.T) {
	stub := stubSuccess()
	app, _ := setupApp(t, stub)

	status, _ := doRequest(t, app, "POST", "/api/startups/missing-key",
		`{"organizationName": "Acme"}`, "")
	require.Equal(t, fiber.StatusNotFound, status)
	require.Zero(t, stub.calls)
}

func TestSubmitValidationFailureReturnsFieldErrors(t *testing.T) {
	stub := stubSuccess()
	app, st := setupApp(t, stub)

	key := createSubmission(t, app)

	status, raw := doRequest(t, app, "POST", "/api/startups/"+key, `{"revenue": "lots"}`, "")
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Zero(t, stub.calls)
	require.Contains(t, string(raw), "revenue")

	// Nothing was written
	startup, err := st.GetBySubmissionKey(key)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, startup.Status)
}

func TestSubmitAnalysisFailureKeepsProfile(t *testing.T) {
	stub := &stubAnalyzer{err: errors.New("completion service unavailable")}
	app, _ := setupApp(t, stub)

	key := createSubmission(t, app)

	status, raw := doRequest(t, app, "POST", "/api/startups/"+key,
		`{"organizationName": "Acme", "industries": ["fintech"]}`, "")
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Contains(t, string(raw), "Internal server error")

	// The profile update committed before the analysis call; it stays, the
	// row is marked failed, and no evaluation is attached.
	status, raw = doRequest(t, app, "GET", "/api/startups/"+key, "", "")
	require.Equal(t, fiber.StatusOK, status)

	var startup models.Startup
	require.NoError(t, json.Unmarshal(raw, &startup))
	require.Equal(t, "Acme", startup.OrganizationName)
	require.Equal(t, []string{"fintech"}, []string(startup.Industries))
	require.Equal(t, models.StatusFailed, startup.Status)
	require.Nil(t, startup.AiAnalysis)
}

func TestListRequiresAuthentication(t *testing.T) {
	app, _ := setupApp(t, stubSuccess())

	status, _ := doRequest(t, app, "GET", "/api/startups", "", "")
	require.Equal(t, fiber.StatusUnauthorized, status)
}

func TestListReturnsAllSubmissions(t *testing.T) {
	app, _ := setupApp(t, stubSuccess())

	first := createSubmission(t, app)
	second := createSubmission(t, app)

	status, raw := doRequest(t, app, "GET", "/api/startups", "", authToken(t))
	require.Equal(t, fiber.StatusOK, status)

	var startups []models.Startup
	require.NoError(t, json.Unmarshal(raw, &startups))
	require.Len(t, startups, 2)
	require.Equal(t, first, startups[0].SubmissionKey)
	require.Equal(t, second, startups[1].SubmissionKey)
}

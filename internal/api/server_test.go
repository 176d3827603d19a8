package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oliver/market-intel/internal/assessment"
	"github.com/oliver/market-intel/internal/dataset"
	"github.com/oliver/market-intel/internal/intel"
	"github.com/oliver/market-intel/internal/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	catalog, err := dataset.Load("")
	require.NoError(t, err)
	engine := intel.NewEngine(intel.DefaultProfile(), intel.DefaultCompetitors())
	sessions, err := session.NewManager(nil)
	require.NoError(t, err)
	return NewServer(catalog, engine, sessions, nil)
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echoContentType, "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

const echoContentType = "Content-Type"

func TestHealth(t *testing.T) {
	rec := doRequest(newTestServer(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestListOpportunities_Filtered(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/v1/opportunities?sector=rail", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total         int `json:"total"`
		Opportunities []struct {
			Sector string `json:"sector"`
		} `json:"opportunities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Greater(t, resp.Total, 0)
	for _, o := range resp.Opportunities {
		assert.Equal(t, "rail", o.Sector)
	}
}

func TestGetOpportunity_NotFound(t *testing.T) {
	rec := doRequest(newTestServer(t), http.MethodGet, "/api/v1/opportunities/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOpportunityIntelligence(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/v1/intelligence/opportunities/opp-001", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Intelligence struct {
			TotalScore     int `json:"total_score"`
			WinProbability int `json:"win_probability"`
		} `json:"intelligence"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Greater(t, resp.Intelligence.TotalScore, 0)
	assert.LessOrEqual(t, resp.Intelligence.WinProbability, 45)
}

func TestPipeline(t *testing.T) {
	rec := doRequest(newTestServer(t), http.MethodGet, "/api/v1/intelligence/pipeline", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total         int             `json:"total"`
		Opportunities json.RawMessage `json:"opportunities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Greater(t, resp.Total, 0)
}

func TestAssessmentCatalog(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/v1/assessments/catalog/region", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/assessments/catalog/banana", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssessmentLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/v1/assessments", `{"kind":"opportunity","subject_id":"opp-001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var sess assessment.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	require.NotEmpty(t, sess.ID)
	base := "/api/v1/assessments/" + sess.ID

	// Results are gated until the final section.
	rec = doRequest(s, http.MethodGet, base+"/result", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(s, http.MethodPost, base+"/start", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodPost, base+"/answers", `{"question_id":"client_experience","value":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodPost, base+"/answers", `{"question_id":"client_experience","value":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(s, http.MethodPost, base+"/goto", `{"section":4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, base+"/result", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var result assessment.FullResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 100, result.Score)
	require.NotNil(t, result.Opportunity)
	assert.Equal(t, "opp-001", result.Opportunity.ID)

	rec = doRequest(s, http.MethodPost, base+"/retake", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var reset assessment.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reset))
	assert.Empty(t, reset.Answers)

	rec = doRequest(s, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(s, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssessmentGoto_OutOfRange(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/v1/assessments", `{"kind":"region","subject_id":"scotland"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var sess assessment.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))

	rec = doRequest(s, http.MethodPost, "/api/v1/assessments/"+sess.ID+"/goto", `{"section":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

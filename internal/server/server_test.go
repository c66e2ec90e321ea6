package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/flowqa/caseval/internal/engine"
	"github.com/flowqa/caseval/internal/judge"
	"github.com/flowqa/caseval/internal/judge/judgetest"
)

func newTestServer(t *testing.T, stub *judgetest.Stub) *mux.Router {
	t.Helper()
	r := mux.NewRouter()
	New(engine.New(stub)).Register(r)
	return r
}

func doRequest(t *testing.T, r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"userStory": {
		"title": "Password reset",
		"description": "As a user I want to reset my password via email."
	},
	"testCases": [
		{
			"id": "tc-1",
			"name": "Reset happy path",
			"description": "Reset the password with a valid token.",
			"steps": [
				{"step": "Request a reset link", "expectedResult": "Email is sent"}
			]
		}
	]
}`

func TestHandleEvaluate_DefaultMetrics(t *testing.T) {
	stub := &judgetest.Stub{Results: map[string]judge.Result{
		"faithfulness": {Score: 0.9, Explanation: "grounded"},
		"relevancy":    {Score: 0.8, Explanation: "on topic"},
	}}
	r := newTestServer(t, stub)

	rec := doRequest(t, r, http.MethodPost, "/api/evaluate", validBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var report engine.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(report.Evaluations) != 1 {
		t.Fatalf("got %d evaluations, want 1", len(report.Evaluations))
	}

	// An omitted metrics field evaluates only the request-level defaults.
	ev := report.Evaluations[0]
	if len(ev.Metrics) != 2 {
		t.Errorf("got %d metrics, want 2: %v", len(ev.Metrics), ev.Metrics)
	}
	for _, k := range []engine.Kind{engine.KindFaithfulness, engine.KindRelevancy} {
		if _, ok := ev.Metrics[k]; !ok {
			t.Errorf("missing metric %s", k)
		}
	}
	if ev.OverallScore != 0.85 {
		t.Errorf("overallScore = %v, want 0.85", ev.OverallScore)
	}
	if ev.QualityLevel != engine.QualityHigh {
		t.Errorf("qualityLevel = %s, want high", ev.QualityLevel)
	}
	if report.Summary.HighQualityCount != 1 || report.Summary.AverageScore != 0.85 {
		t.Errorf("summary = %+v", report.Summary)
	}
}

func TestHandleEvaluate_MetricAlias(t *testing.T) {
	stub := &judgetest.Stub{Results: map[string]judge.Result{
		"relevancy": {Score: 0.8, Explanation: "on topic"},
	}}
	r := newTestServer(t, stub)

	body := strings.Replace(validBody, `"userStory"`, `"metrics": ["answer_relevancy"], "userStory"`, 1)
	rec := doRequest(t, r, http.MethodPost, "/api/evaluate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var report engine.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	metrics := report.Evaluations[0].Metrics
	if _, ok := metrics[engine.KindRelevancy]; !ok || len(metrics) != 1 {
		t.Errorf("metrics = %v, want exactly the relevancy metric", metrics)
	}
}

func TestHandleEvaluate_BadRequests(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			name:        "invalid JSON",
			body:        `{"testCases": [`,
			wantMessage: "invalid request body",
		},
		{
			name:        "unknown metric",
			body:        strings.Replace(validBody, `"userStory"`, `"metrics": ["made_up_metric"], "userStory"`, 1),
			wantMessage: `unknown metric "made_up_metric"`,
		},
		{
			name:        "empty test case list",
			body:        `{"userStory": {"title": "t", "description": "d"}, "testCases": []}`,
			wantMessage: "testCases",
		},
		{
			name:        "missing story title",
			body:        strings.Replace(validBody, `"title": "Password reset",`, "", 1),
			wantMessage: "userStory.title",
		},
		{
			name: "missing steps",
			body: strings.Replace(validBody, `"steps": [
				{"step": "Request a reset link", "expectedResult": "Email is sent"}
			]`, `"steps": null`, 1),
			wantMessage: "testCases[0].steps",
		},
	}

	stub := &judgetest.Stub{Results: map[string]judge.Result{}}
	r := newTestServer(t, stub)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodPost, "/api/evaluate", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if !strings.Contains(resp["error"], tt.wantMessage) {
				t.Errorf("error = %q, want it to mention %q", resp["error"], tt.wantMessage)
			}
		})
	}

	if got := len(stub.Calls()); got != 0 {
		t.Errorf("judge was called %d times for rejected requests", got)
	}
}

func TestHandleHealth(t *testing.T) {
	r := newTestServer(t, &judgetest.Stub{})

	rec := doRequest(t, r, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Status  string   `json:"status"`
		Service string   `json:"service"`
		Metrics []string `json:"metrics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if len(resp.Metrics) != 5 {
		t.Errorf("got %d metrics, want 5: %v", len(resp.Metrics), resp.Metrics)
	}
}

func TestHandleMetricsInfo(t *testing.T) {
	r := newTestServer(t, &judgetest.Stub{})

	rec := doRequest(t, r, http.MethodGet, "/metrics-info", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		AvailableMetrics []engine.KindInfo `json:"availableMetrics"`
		DefaultMetrics   []engine.Kind     `json:"defaultMetrics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.AvailableMetrics) != 5 {
		t.Errorf("got %d available metrics, want 5", len(resp.AvailableMetrics))
	}
	if len(resp.DefaultMetrics) != 2 {
		t.Errorf("defaultMetrics = %v, want the two request defaults", resp.DefaultMetrics)
	}
}

func TestHandleEvaluate_MethodNotAllowed(t *testing.T) {
	r := newTestServer(t, &judgetest.Stub{})

	rec := doRequest(t, r, http.MethodGet, "/api/evaluate", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

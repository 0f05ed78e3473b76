package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giygas/kegg-api/config"
	"github.com/giygas/kegg-api/data"
	"github.com/giygas/kegg-api/keggparser/entities"
	"github.com/giygas/kegg-api/logging"
)

// fakeFetcher returns one canned record for every fetch.
type fakeFetcher struct {
	text string
}

func (f *fakeFetcher) GetEntry(ctx context.Context, entryID string) (string, error) {
	return f.text, nil
}

func (f *fakeFetcher) GetPathway(ctx context.Context, pathid string) (string, error) {
	return f.text, nil
}

func (f *fakeFetcher) GetModule(ctx context.Context, mdid string) (string, error) {
	return f.text, nil
}

func (f *fakeFetcher) ListPathways(ctx context.Context, org string) (string, error) {
	return f.text, nil
}

func (f *fakeFetcher) LinkPathways(ctx context.Context, org string) (string, error) {
	return f.text, nil
}

func (f *fakeFetcher) ListOrganism(ctx context.Context, org string) (string, error) {
	return f.text, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:              "8000",
		Address:           "127.0.0.1",
		Env:               "test",
		LogLevel:          "info",
		LogRetentionWeeks: 1,
		MaxRequestBody:    1048576,
		MaxHeaderSize:     1048576,
		KeggBaseURL:       "https://rest.kegg.jp",
		Organism:          "eco",
		CacheTTLHours:     720,
		CacheMaxEntries:   64,
		HTTPTimeoutSecs:   30,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logging.InitLogger(t.TempDir())

	dc := data.NewContainer()
	dc.UpdateData(
		[]entities.PathwayRef{{ID: "eco00010", Description: "Glycolysis"}},
		map[string]string{"eco00010": "Glycolysis"},
		[]entities.GeneLink{{PathwayID: "eco00010", Gene: "eco:b0002", Description: "Glycolysis"}},
		[]entities.GeneAnnotation{{Gene: "eco:b0002", Feature: "CDS"}},
	)
	dc.SetServerStartTime(time.Now())

	fetcher := &fakeFetcher{
		text: "ENTRY       eco00190  Pathway\n" +
			"NAME        Oxidative phosphorylation\n" +
			"///\n",
	}

	return NewServer(testConfig(), dc, fetcher)
}

func TestPathwaysRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/pathways", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var pathways []entities.PathwayRef
	if err := json.Unmarshal(w.Body.Bytes(), &pathways); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if len(pathways) != 1 {
		t.Errorf("Expected 1 pathway, got %d", len(pathways))
	}
}

func TestPathwayRecordRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/pathways/eco00190", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Oxidative phosphorylation") {
		t.Errorf("Expected parsed record in body, got %s", w.Body.String())
	}
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", body["status"])
	}
}

func TestMetricsRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("Expected prometheus exposition output")
	}
}

func TestExportRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/export/pathways.tsv", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "pathid\tdescription\n") {
		t.Errorf("Expected TSV header, got %q", w.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/nonexistent", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestRateLimitHeaders(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/pathways", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Header().Get("X-RateLimit-Limit") != "1000" {
		t.Errorf("Expected rate limit header, got %q", w.Header().Get("X-RateLimit-Limit"))
	}
	if w.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("Expected remaining tokens header")
	}
}

func TestTokenCosts(t *testing.T) {
	testCases := []struct {
		path     string
		expected int64
	}{
		{"/health", 5},
		{"/metrics", 5},
		{"/pathways", 20},
		{"/pathways/eco00190", 100},
		{"/modules/M00001", 100},
		{"/entries/hsa:3043", 100},
		{"/export/pathways.tsv", 200},
		{"/genes", 20},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest("GET", tc.path, nil)
		if got := getTokenCost(req); got != tc.expected {
			t.Errorf("Expected cost %d for %s, got %d", tc.expected, tc.path, got)
		}
	}
}

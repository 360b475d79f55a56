package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"grafik/internal/chart"
)

func allocSeries() chart.Series {
	return chart.Series{Kind: chart.KindAllocation, Points: []chart.Point{
		{Label: "Makan", Value: 15000, Color: "#4F46E5"},
		{Label: "Harian", Value: 2000, Color: "#10B981"},
	}}
}

func TestBuildPromptEmbedsFormattedValues(t *testing.T) {
	p := BuildPrompt(allocSeries())
	for _, want := range []string{"Makan: Rp15.000", "Harian: Rp2.000", "Total: Rp17.000"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}

	p = BuildPrompt(chart.Series{Kind: chart.KindComparison, Points: []chart.Point{
		{Label: "Pemasukan", Value: 50000},
		{Label: "Pengeluaran", Value: 20000},
	}})
	if !strings.Contains(p, "perbandingan") {
		t.Fatalf("comparison prompt should mention perbandingan:\n%s", p)
	}
}

func TestEnabled(t *testing.T) {
	if New(Config{}).Enabled() {
		t.Fatalf("client without key must be disabled")
	}
	if !New(Config{APIKey: "sk-test"}).Enabled() {
		t.Fatalf("client with key must be enabled")
	}
}

func TestAnalyzeDisabledWithoutKey(t *testing.T) {
	_, err := New(Config{}).Analyze(context.Background(), allocSeries())
	if err != chart.ErrAnalysisDisabled {
		t.Fatalf("expected ErrAnalysisDisabled, got %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "sk-test" {
			t.Errorf("missing api key header")
		}
		var req apiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Rp15.000") {
			t.Errorf("prompt not embedded in request: %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "Pengeluaran makan dominan."}},
		})
	}))
	defer srv.Close()

	c := New(Config{APIKey: "sk-test", BaseURL: srv.URL})
	got, err := c.Analyze(context.Background(), allocSeries())
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if got != "Pengeluaran makan dominan." {
		t.Fatalf("unexpected insight %q", got)
	}
}

func TestAnalyzeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "rate_limit_error", "message": "slow down"},
		})
	}))
	defer srv.Close()

	c := New(Config{APIKey: "sk-test", BaseURL: srv.URL})
	if _, err := c.Analyze(context.Background(), allocSeries()); err == nil || !strings.Contains(err.Error(), "slow down") {
		t.Fatalf("expected API error with message, got %v", err)
	}
}

func TestAnalyzeEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	}))
	defer srv.Close()

	c := New(Config{APIKey: "sk-test", BaseURL: srv.URL})
	if _, err := c.Analyze(context.Background(), allocSeries()); err != ErrEmptyResponse {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

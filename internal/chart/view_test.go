package chart

import (
	"context"
	"errors"
	"testing"
)

type fakeAnalyzer struct {
	enabled bool
	text    string
	err     error
	// beforeStore runs between the analyzer returning and the controller
	// storing the result, to simulate a mode switch mid-request.
	beforeStore func()
	calls       int
}

func (f *fakeAnalyzer) Enabled() bool { return f.enabled }

func (f *fakeAnalyzer) Analyze(ctx context.Context, s Series) (string, error) {
	f.calls++
	if f.beforeStore != nil {
		f.beforeStore()
	}
	return f.text, f.err
}

func TestControllerInitialState(t *testing.T) {
	c := NewController(&fakeAnalyzer{enabled: true})
	st := c.State()
	if st.Mode != KindAllocation {
		t.Fatalf("initial mode should be allocation, got %s", st.Mode)
	}
	if st.Insight != "" || st.Analyzing {
		t.Fatalf("initial state should be idle, got %+v", st)
	}
}

func TestSelectModeClearsInsight(t *testing.T) {
	fa := &fakeAnalyzer{enabled: true, text: "hemat terus"}
	c := NewController(fa)
	if _, err := c.Analyze(context.Background(), Series{Kind: KindAllocation}); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if c.State().Insight == "" {
		t.Fatalf("expected insight stored")
	}

	if err := c.SelectMode(KindTrend); err != nil {
		t.Fatalf("select mode: %v", err)
	}
	st := c.State()
	if st.Mode != KindTrend {
		t.Fatalf("expected trend mode, got %s", st.Mode)
	}
	if st.Insight != "" {
		t.Fatalf("mode switch must clear the insight, got %q", st.Insight)
	}
	// no auto-trigger
	if fa.calls != 1 {
		t.Fatalf("mode switch must not trigger analysis, calls=%d", fa.calls)
	}
}

func TestSelectModeRejectsUnknownKind(t *testing.T) {
	c := NewController(nil)
	if err := c.SelectMode(Kind("pie")); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestAnalyzeDisabledWithoutKey(t *testing.T) {
	c := NewController(&fakeAnalyzer{enabled: false})
	if _, err := c.Analyze(context.Background(), Series{}); !errors.Is(err, ErrAnalysisDisabled) {
		t.Fatalf("expected ErrAnalysisDisabled, got %v", err)
	}
	c = NewController(nil)
	if _, err := c.Analyze(context.Background(), Series{}); !errors.Is(err, ErrAnalysisDisabled) {
		t.Fatalf("expected ErrAnalysisDisabled for nil analyzer, got %v", err)
	}
}

func TestAnalyzeResetsFlagOnError(t *testing.T) {
	fa := &fakeAnalyzer{enabled: true, err: errors.New("backend down")}
	c := NewController(fa)
	if _, err := c.Analyze(context.Background(), Series{}); err == nil {
		t.Fatalf("expected error from analyzer")
	}
	st := c.State()
	if st.Analyzing {
		t.Fatalf("analyzing flag must reset after failure")
	}
	if st.Insight != "" {
		t.Fatalf("no insight should be stored on failure")
	}
}

func TestAnalyzeRejectsConcurrentRequest(t *testing.T) {
	fa := &fakeAnalyzer{enabled: true, text: "ok"}
	c := NewController(fa)
	var second error
	fa.beforeStore = func() {
		// still analyzing here
		_, second = c.Analyze(context.Background(), Series{})
	}
	if _, err := c.Analyze(context.Background(), Series{}); err != nil {
		t.Fatalf("first analyze failed: %v", err)
	}
	if !errors.Is(second, ErrAnalysisInFlight) {
		t.Fatalf("expected ErrAnalysisInFlight, got %v", second)
	}
}

func TestAnalyzeDiscardsStaleResultAfterModeSwitch(t *testing.T) {
	fa := &fakeAnalyzer{enabled: true, text: "analisis alokasi"}
	c := NewController(fa)
	fa.beforeStore = func() {
		if err := c.SelectMode(KindComparison); err != nil {
			t.Fatalf("select mode: %v", err)
		}
	}
	text, err := c.Analyze(context.Background(), Series{Kind: KindAllocation})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if text != "analisis alokasi" {
		t.Fatalf("caller still gets the text, got %q", text)
	}
	st := c.State()
	if st.Insight != "" {
		t.Fatalf("stale result must not be stored, got %q", st.Insight)
	}
	if st.Analyzing {
		t.Fatalf("analyzing flag must reset")
	}
}

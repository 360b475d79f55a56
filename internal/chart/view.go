package chart

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrAnalysisDisabled means no analyzer API key is configured.
	ErrAnalysisDisabled = errors.New("analysis disabled: no API key configured")
	// ErrAnalysisInFlight rejects a second analyze while one is pending.
	ErrAnalysisInFlight = errors.New("analysis already in progress")
)

// Analyzer produces a textual insight for a series.
type Analyzer interface {
	Enabled() bool
	Analyze(ctx context.Context, s Series) (string, error)
}

// ViewState is a read-only copy of the controller state.
type ViewState struct {
	Mode      Kind   `json:"mode"`
	Insight   string `json:"insight"`
	Analyzing bool   `json:"analyzing"`
}

// Controller holds the selected chart mode and the latest insight. At most
// one analysis request is outstanding at a time; the analyzing flag is
// always reset when the request finishes, and a result arriving after the
// mode changed is not stored.
type Controller struct {
	mu        sync.Mutex
	mode      Kind
	insight   string
	analyzing bool
	analyzer  Analyzer
}

func NewController(analyzer Analyzer) *Controller {
	return &Controller{mode: KindAllocation, analyzer: analyzer}
}

func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ViewState{Mode: c.mode, Insight: c.insight, Analyzing: c.analyzing}
}

// SelectMode switches the chart view. Any previously displayed insight is
// cleared so the user re-requests one for the new view; an in-flight
// analysis is not aborted, its late result is simply discarded.
func (c *Controller) SelectMode(k Kind) error {
	if _, err := ParseKind(string(k)); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = k
	c.insight = ""
	return nil
}

// Mode returns the currently selected chart kind.
func (c *Controller) Mode() Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Analyze requests an insight for the given series, which must belong to
// the currently selected mode. The returned text is also stored on the
// controller unless the mode changed while the request was running.
func (c *Controller) Analyze(ctx context.Context, s Series) (string, error) {
	if c.analyzer == nil || !c.analyzer.Enabled() {
		return "", ErrAnalysisDisabled
	}

	c.mu.Lock()
	if c.analyzing {
		c.mu.Unlock()
		return "", ErrAnalysisInFlight
	}
	c.analyzing = true
	c.insight = ""
	requested := c.mode
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.analyzing = false
		c.mu.Unlock()
	}()

	text, err := c.analyzer.Analyze(ctx, s)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	if c.mode == requested {
		c.insight = text
	}
	c.mu.Unlock()
	return text, nil
}

package assistant

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"railcanvas/application/ports"
	"railcanvas/application/store"
	"railcanvas/pkg/observability"
)

// FallbackSource tries the live channel first and degrades invisibly to
// the rule table on any transport failure, including an open breaker.
// The user only ever sees a mode indicator, never a raw transport error.
type FallbackSource struct {
	live    ports.AdvisorySource
	rules   ports.AdvisorySource
	onRules atomic.Bool
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewFallbackSource composes the live and rule transports. A nil live
// source means the assistant runs in rules-only mode.
func NewFallbackSource(live, rules ports.AdvisorySource, logger *zap.Logger, metrics *observability.Metrics) *FallbackSource {
	f := &FallbackSource{
		live:    live,
		rules:   rules,
		logger:  logger,
		metrics: metrics,
	}
	f.onRules.Store(live == nil)
	return f
}

// Send routes the prompt to whichever transport is available
func (f *FallbackSource) Send(ctx context.Context, prompt string, snapshot store.Snapshot) (ports.Reply, error) {
	if f.live != nil {
		reply, err := f.live.Send(ctx, prompt, snapshot)
		if err == nil {
			f.onRules.Store(false)
			f.metrics.AssistantTotal.WithLabelValues("live").Inc()
			return reply, nil
		}
		f.logger.Warn("Advisory channel unavailable, using rule table", zap.Error(err))
		f.onRules.Store(true)
	}

	f.metrics.AssistantTotal.WithLabelValues("rules").Inc()
	return f.rules.Send(ctx, prompt, snapshot)
}

// Mode reports which transport answered most recently
func (f *FallbackSource) Mode() string {
	if f.onRules.Load() {
		return "rules"
	}
	return "live"
}

package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"railcanvas/application/ports"
	"railcanvas/application/store"
	"railcanvas/pkg/observability"
)

// stubSource is a scriptable advisory source for fallback tests
type stubSource struct {
	reply ports.Reply
	err   error
	calls int
}

func (s *stubSource) Send(ctx context.Context, prompt string, snapshot store.Snapshot) (ports.Reply, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubSource) Mode() string { return "stub" }

func TestFallbackSource_LiveAnswers(t *testing.T) {
	// Arrange
	live := &stubSource{reply: ports.Reply{Text: "from live"}}
	rules := &stubSource{reply: ports.Reply{Text: "from rules"}}
	source := NewFallbackSource(live, rules, zap.NewNop(), observability.NewNopMetrics())

	// Act
	reply, err := source.Send(context.Background(), "hello", store.Snapshot{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "from live", reply.Text)
	assert.Equal(t, "live", source.Mode())
	assert.Zero(t, rules.calls)
}

func TestFallbackSource_DegradesOnLiveFailure(t *testing.T) {
	// Arrange
	live := &stubSource{err: errors.New("connection refused")}
	rules := &stubSource{reply: ports.Reply{Text: "from rules"}}
	source := NewFallbackSource(live, rules, zap.NewNop(), observability.NewNopMetrics())

	// Act
	reply, err := source.Send(context.Background(), "hello", store.Snapshot{})

	// Assert: the transport error never surfaces
	require.NoError(t, err)
	assert.Equal(t, "from rules", reply.Text)
	assert.Equal(t, "rules", source.Mode())
}

func TestFallbackSource_RecoversWhenLiveReturns(t *testing.T) {
	// Arrange
	live := &stubSource{err: errors.New("breaker open")}
	rules := &stubSource{reply: ports.Reply{Text: "from rules"}}
	source := NewFallbackSource(live, rules, zap.NewNop(), observability.NewNopMetrics())
	_, _ = source.Send(context.Background(), "first", store.Snapshot{})
	require.Equal(t, "rules", source.Mode())

	// Act: the live channel comes back
	live.err = nil
	live.reply = ports.Reply{Text: "back online"}
	reply, err := source.Send(context.Background(), "second", store.Snapshot{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "back online", reply.Text)
	assert.Equal(t, "live", source.Mode())
}

func TestFallbackSource_NilLiveMeansRulesOnly(t *testing.T) {
	// Arrange
	rules := &stubSource{reply: ports.Reply{Text: "from rules"}}
	source := NewFallbackSource(nil, rules, zap.NewNop(), observability.NewNopMetrics())

	// Act
	reply, err := source.Send(context.Background(), "hello", store.Snapshot{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "from rules", reply.Text)
	assert.Equal(t, "rules", source.Mode())
}

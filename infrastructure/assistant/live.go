package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"railcanvas/application/ports"
	"railcanvas/application/store"
	"railcanvas/domain/core/entities"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 512 * 1024 // 512KB
)

// promptMessage is the outbound advisory request
type promptMessage struct {
	PromptText   string         `json:"promptText"`
	CurrentGraph store.Snapshot `json:"currentGraph"`
	SentAt       time.Time      `json:"sentAt"`
}

// replyMessage tolerates both inbound shapes: the live service answers
// with {text, graph?}, older peers with {text, changes?}.
type replyMessage struct {
	Text    string              `json:"text"`
	Graph   *entities.ChangeSet `json:"graph,omitempty"`
	Changes *entities.ChangeSet `json:"changes,omitempty"`
}

// LiveResponder talks to the remote advisory service over a WebSocket
// channel, one request/response exchange per Send. Calls run through a
// circuit breaker so a flapping service stops being dialed for a while.
type LiveResponder struct {
	endpoint string
	timeout  time.Duration
	dialer   *websocket.Dialer
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
}

// NewLiveResponder creates a responder for the given ws:// endpoint
func NewLiveResponder(endpoint string, timeout time.Duration, logger *zap.Logger) *LiveResponder {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "assistant-live",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Advisory channel state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &LiveResponder{
		endpoint: endpoint,
		timeout:  timeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: timeout,
		},
		breaker: breaker,
		logger:  logger,
	}
}

// Send performs one prompt/reply exchange with the remote service
func (l *LiveResponder) Send(ctx context.Context, prompt string, snapshot store.Snapshot) (ports.Reply, error) {
	result, err := l.breaker.Execute(func() (any, error) {
		return l.exchange(ctx, prompt, snapshot)
	})
	if err != nil {
		return ports.Reply{}, err
	}
	return result.(ports.Reply), nil
}

// Mode identifies the transport
func (l *LiveResponder) Mode() string {
	return "live"
}

func (l *LiveResponder) exchange(ctx context.Context, prompt string, snapshot store.Snapshot) (ports.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	conn, _, err := l.dialer.DialContext(ctx, l.endpoint, nil)
	if err != nil {
		return ports.Reply{}, fmt.Errorf("failed to dial advisory service: %w", err)
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	msg := promptMessage{
		PromptText:   prompt,
		CurrentGraph: snapshot,
		SentAt:       time.Now(),
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return ports.Reply{}, err
	}
	if err := conn.WriteJSON(msg); err != nil {
		return ports.Reply{}, fmt.Errorf("failed to send prompt: %w", err)
	}

	deadline := time.Now().Add(l.timeout)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return ports.Reply{}, err
	}

	var reply replyMessage
	if err := conn.ReadJSON(&reply); err != nil {
		return ports.Reply{}, fmt.Errorf("failed to read advisory reply: %w", err)
	}

	changes := reply.Graph
	if changes == nil {
		changes = reply.Changes
	}
	return ports.Reply{Text: reply.Text, Changes: changes}, nil
}

// Package assistant provides the advisory-source transports: a live
// WebSocket channel to a remote service and a local rule-table
// responder. Both normalize to the same reply shape, so the proposal
// gateway cannot tell them apart.
package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"railcanvas/application/ports"
	"railcanvas/application/store"
	"railcanvas/domain/core/entities"
	"railcanvas/domain/core/valueobjects"
)

const defaultHelpText = "I can help you with:\n" +
	"• Adding services (database, API, cache, etc.)\n" +
	"• Connecting services\n" +
	"• Organizing your architecture\n" +
	"• Best practices for system design\n\n" +
	"Try asking me to \"add database\" or \"connect services\"!"

// rule is one entry of the canned-response table. Rules are evaluated
// in declaration order, first match wins.
type rule struct {
	keyword string
	respond func(snapshot store.Snapshot) ports.Reply
}

// RuleResponder answers prompts from a fixed keyword table without any
// remote calls. It is the offline fallback for the live channel and a
// deterministic advisory source in its own right.
type RuleResponder struct {
	rules  []rule
	logger *zap.Logger
}

// NewRuleResponder builds the responder with the standard table
func NewRuleResponder(logger *zap.Logger) *RuleResponder {
	return &RuleResponder{
		logger: logger,
		rules: []rule{
			{keyword: "add database", respond: addNodeRule(
				"I'll add a PostgreSQL database to your architecture. This will provide reliable data storage for your application.",
				entities.Node{
					Kind:        entities.KindDatabase,
					Position:    valueobjects.Position{X: 100, Y: 300},
					Title:       "PostgreSQL Database",
					TechUsed:    []string{"PostgreSQL"},
					Usecase:     "Primary data storage",
					Description: "Main database for application data",
				},
			)},
			{keyword: "add api", respond: addNodeRule(
				"I'll add an API Gateway to manage your service communications. This will help with routing and load balancing.",
				entities.Node{
					Kind:        entities.KindAPI,
					Position:    valueobjects.Position{X: 400, Y: 200},
					Title:       "API Gateway",
					TechUsed:    []string{"Kong", "NGINX"},
					Usecase:     "API management",
					Description: "Central API routing and management",
				},
			)},
			{keyword: "add cache", respond: addNodeRule(
				"I'll add a Redis cache layer to improve your application performance by storing frequently accessed data.",
				entities.Node{
					Kind:        entities.KindCache,
					Position:    valueobjects.Position{X: 600, Y: 100},
					Title:       "Redis Cache",
					TechUsed:    []string{"Redis"},
					Usecase:     "Performance optimization",
					Description: "In-memory cache for fast data access",
				},
			)},
			{keyword: "connect services", respond: connectServicesRule},
		},
	}
}

// Send matches the prompt against the table. The default entry always
// answers, so Send never fails.
func (r *RuleResponder) Send(ctx context.Context, prompt string, snapshot store.Snapshot) (ports.Reply, error) {
	lower := strings.ToLower(prompt)
	for _, entry := range r.rules {
		if strings.Contains(lower, entry.keyword) {
			return entry.respond(snapshot), nil
		}
	}
	return ports.Reply{Text: defaultHelpText}, nil
}

// Mode identifies the transport
func (r *RuleResponder) Mode() string {
	return "rules"
}

// addNodeRule appends the template node (with a fresh id) to the
// current node collection; edges and sections pass through unchanged.
func addNodeRule(text string, template entities.Node) func(store.Snapshot) ports.Reply {
	return func(snapshot store.Snapshot) ports.Reply {
		node := template.Clone()
		node.ID = valueobjects.NewNodeID()
		return ports.Reply{
			Text: text,
			Changes: &entities.ChangeSet{
				Nodes:    append(snapshot.Nodes, node),
				Edges:    snapshot.Edges,
				Sections: snapshot.Sections,
			},
		}
	}
}

// connectServicesRule proposes an edge between the first two nodes
func connectServicesRule(snapshot store.Snapshot) ports.Reply {
	text := "I'll connect your services with proper API connections to show the data flow."
	if len(snapshot.Nodes) < 2 {
		return ports.Reply{Text: "Add at least two services first, then I can connect them."}
	}

	edge := entities.Edge{
		ID:           valueobjects.NewEdgeID(snapshot.Nodes[0].ID, snapshot.Nodes[1].ID),
		Source:       snapshot.Nodes[0].ID,
		Target:       snapshot.Nodes[1].ID,
		SourceHandle: "right-source",
		TargetHandle: "left",
		Label:        "REST API",
		Direction:    valueobjects.DirectionHorizontal,
		Type:         entities.DefaultEdgeShape,
		Style: entities.EdgeStyle{
			Stroke:      entities.DefaultEdgeStroke,
			StrokeWidth: entities.DefaultEdgeWidth,
			Opacity:     entities.FullEdgeOpacity,
		},
	}
	return ports.Reply{
		Text: text,
		Changes: &entities.ChangeSet{
			Nodes:    snapshot.Nodes,
			Edges:    append(snapshot.Edges, edge),
			Sections: snapshot.Sections,
		},
	}
}

package store

import (
	"math/rand"
	"strings"
	"sync"

	"go.uber.org/zap"

	"railcanvas/domain/core/entities"
	"railcanvas/domain/core/valueobjects"
	"railcanvas/domain/services"
	"railcanvas/pkg/observability"
)

// Snapshot is a deep copy of the store's three working collections
type Snapshot struct {
	Nodes    []entities.Node    `json:"nodes"`
	Edges    []entities.Edge    `json:"edges"`
	Sections []entities.Section `json:"sections"`
}

// GraphStore owns the canonical nodes, edges and sections of the
// currently open project. All operations are total functions over the
// current snapshot: mutations targeting unknown ids are silent no-ops,
// and malformed edge references are prevented by construction because
// edges only enter through the connection protocol.
//
// The editor model is single-actor; the mutex realizes that contract
// when mutations arrive from HTTP handlers and timer callbacks.
type GraphStore struct {
	mu       sync.Mutex
	nodes    []entities.Node
	edges    []entities.Edge
	sections []entities.Section

	connections *services.ConnectionService
	logger      *zap.Logger
	metrics     *observability.Metrics

	subscribers []func()
}

// NewGraphStore creates an empty graph store
func NewGraphStore(connections *services.ConnectionService, logger *zap.Logger, metrics *observability.Metrics) *GraphStore {
	return &GraphStore{
		nodes:       []entities.Node{},
		edges:       []entities.Edge{},
		sections:    []entities.Section{},
		connections: connections,
		logger:      logger,
		metrics:     metrics,
	}
}

// Subscribe registers a callback invoked after every mutation. Used by
// the project registry to restart its autosave debounce window.
// Callbacks run outside the store lock.
func (s *GraphStore) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// AddNode creates a node with defaulted metadata for the kind. A nil
// position gets the original's random placement window.
func (s *GraphStore) AddNode(kind entities.NodeKind, position *valueobjects.Position) entities.Node {
	pos := valueobjects.Position{
		X: rand.Float64()*400 + 200,
		Y: rand.Float64()*300 + 150,
	}
	if position != nil {
		pos = *position
	}
	node := entities.NewNode(kind, pos)

	s.mu.Lock()
	s.nodes = append(s.nodes, node)
	s.mu.Unlock()

	s.logger.Debug("Node added",
		zap.String("nodeID", node.ID),
		zap.String("kind", string(kind)),
	)
	s.afterMutation("add_node")
	return node
}

// DeleteNode removes the node and cascades to every edge touching it.
// Deleting a non-existent id is a no-op.
func (s *GraphStore) DeleteNode(id string) {
	s.mu.Lock()
	nodes := make([]entities.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}
	edges := make([]entities.Edge, 0, len(s.edges))
	for _, e := range s.edges {
		if !e.Touches(id) {
			edges = append(edges, e)
		}
	}
	s.nodes = nodes
	s.edges = edges
	s.mu.Unlock()

	s.afterMutation("delete_node")
}

// DuplicateNode copies the node with a fresh id and offset placement.
// No-op if the id is not found.
func (s *GraphStore) DuplicateNode(id string) (entities.Node, bool) {
	s.mu.Lock()
	var copied entities.Node
	found := false
	for _, n := range s.nodes {
		if n.ID == id {
			copied = n.Duplicate()
			s.nodes = append(s.nodes, copied)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.afterMutation("duplicate_node")
	}
	return copied, found
}

// ToggleNodeDisabled flips the disabled flag and recomputes the derived
// opacity of every edge touching a disabled endpoint.
func (s *GraphStore) ToggleNodeDisabled(id string) {
	s.mu.Lock()
	found := false
	for i, n := range s.nodes {
		if n.ID == id {
			s.nodes[i] = n.ToggleDisabled()
			found = true
			break
		}
	}
	if found {
		disabled := make(map[string]bool, len(s.nodes))
		for _, n := range s.nodes {
			if n.Disabled {
				disabled[n.ID] = true
			}
		}
		for i, e := range s.edges {
			opacity := entities.FullEdgeOpacity
			if disabled[e.Source] || disabled[e.Target] {
				opacity = entities.FadedEdgeOpacity
			}
			s.edges[i] = e.WithOpacity(opacity)
		}
	}
	s.mu.Unlock()

	if found {
		s.afterMutation("toggle_node_disabled")
	}
}

// UpdateNodeFields merges the patch into the node, last-write-wins
func (s *GraphStore) UpdateNodeFields(id string, patch entities.NodePatch) {
	s.mu.Lock()
	found := false
	for i, n := range s.nodes {
		if n.ID == id {
			s.nodes[i] = n.Merge(patch)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.afterMutation("update_node_fields")
	}
}

// MoveNode repositions the node
func (s *GraphStore) MoveNode(id string, position valueobjects.Position) {
	s.mu.Lock()
	found := false
	for i, n := range s.nodes {
		if n.ID == id {
			s.nodes[i] = n.MoveTo(position)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.afterMutation("move_node")
	}
}

// Connect runs the connection protocol against the current node
// collection and appends the resulting edge. Gestures with unresolved
// endpoints are silently ignored.
func (s *GraphStore) Connect(gesture services.ConnectionGesture) (entities.Edge, bool) {
	s.mu.Lock()
	edge, ok := s.connections.Resolve(gesture, s.nodes)
	if ok {
		s.edges = append(s.edges, edge)
	}
	s.mu.Unlock()

	if ok {
		s.afterMutation("connect")
	}
	return edge, ok
}

// UpdateEdgeLabel retargets the edge label. Empty or whitespace-only
// text leaves the label unchanged.
func (s *GraphStore) UpdateEdgeLabel(id, label string) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	found := false
	for i, e := range s.edges {
		if e.ID == id {
			s.edges[i] = e.WithLabel(trimmed)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.afterMutation("update_edge_label")
	}
}

// DeleteEdge removes the edge; unknown ids are a no-op
func (s *GraphStore) DeleteEdge(id string) {
	s.mu.Lock()
	edges := make([]entities.Edge, 0, len(s.edges))
	for _, e := range s.edges {
		if e.ID != id {
			edges = append(edges, e)
		}
	}
	s.edges = edges
	s.mu.Unlock()

	s.afterMutation("delete_edge")
}

// AddSection creates a section with defaulted fields
func (s *GraphStore) AddSection() entities.Section {
	section := entities.NewSection()

	s.mu.Lock()
	s.sections = append(s.sections, section)
	s.mu.Unlock()

	s.afterMutation("add_section")
	return section
}

// UpdateSection merges the patch into the section
func (s *GraphStore) UpdateSection(id string, patch entities.SectionPatch) {
	s.mu.Lock()
	found := false
	for i, sec := range s.sections {
		if sec.ID == id {
			s.sections[i] = sec.Merge(patch)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.afterMutation("update_section")
	}
}

// DeleteSection removes the section. Contained nodes are untouched;
// membership is spatial, not referential.
func (s *GraphStore) DeleteSection(id string) {
	s.mu.Lock()
	sections := make([]entities.Section, 0, len(s.sections))
	for _, sec := range s.sections {
		if sec.ID != id {
			sections = append(sections, sec)
		}
	}
	s.sections = sections
	s.mu.Unlock()

	s.afterMutation("delete_section")
}

// ReplaceAll bulk-sets any subset of the three collections. Nil
// arguments leave the corresponding collection untouched. Used by both
// project switching and proposal application.
func (s *GraphStore) ReplaceAll(nodes []entities.Node, edges []entities.Edge, sections []entities.Section) {
	s.mu.Lock()
	if nodes != nil {
		s.nodes = cloneNodes(nodes)
	}
	if edges != nil {
		s.edges = append([]entities.Edge{}, edges...)
	}
	if sections != nil {
		s.sections = append([]entities.Section{}, sections...)
	}
	s.mu.Unlock()

	s.afterMutation("replace_all")
}

// Snapshot returns a deep copy of the working collections
func (s *GraphStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Nodes:    cloneNodes(s.nodes),
		Edges:    append([]entities.Edge{}, s.edges...),
		Sections: append([]entities.Section{}, s.sections...),
	}
}

// afterMutation records metrics and fans out change notifications
func (s *GraphStore) afterMutation(operation string) {
	s.mu.Lock()
	subscribers := append([]func(){}, s.subscribers...)
	nodes, edges, sections := len(s.nodes), len(s.edges), len(s.sections)
	s.mu.Unlock()

	s.metrics.MutationsTotal.WithLabelValues(operation).Inc()
	s.metrics.CurrentNodes.Set(float64(nodes))
	s.metrics.CurrentEdges.Set(float64(edges))
	s.metrics.CurrentSections.Set(float64(sections))

	for _, fn := range subscribers {
		fn()
	}
}

func cloneNodes(nodes []entities.Node) []entities.Node {
	out := make([]entities.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Clone())
	}
	return out
}

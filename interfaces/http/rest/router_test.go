package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"railcanvas/application/ports"
	"railcanvas/application/proposals"
	"railcanvas/application/registry"
	"railcanvas/application/store"
	"railcanvas/domain/core/entities"
	"railcanvas/domain/services"
	"railcanvas/infrastructure/assistant"
	"railcanvas/pkg/observability"
)

// memorySnapshots satisfies ports.SnapshotStore without touching disk
type memorySnapshots struct {
	mu    sync.Mutex
	doc   ports.RegistryDocument
	found bool
}

func (m *memorySnapshots) Save(ctx context.Context, doc ports.RegistryDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = doc
	m.found = true
	return nil
}

func (m *memorySnapshots) Load(ctx context.Context) (ports.RegistryDocument, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc, m.found, nil
}

func (m *memorySnapshots) Close() error { return nil }

func newTestServer(t *testing.T) (*httptest.Server, *store.GraphStore) {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewNopMetrics()

	graphStore := store.NewGraphStore(services.NewConnectionService(logger), logger, metrics)
	reg := registry.NewRegistry(graphStore, &memorySnapshots{}, logger, metrics)
	reg.SetAutosaveDelay(time.Hour)
	reg.LoadOrDefault(context.Background())
	gateway := proposals.NewGateway(graphStore, logger, metrics)
	source := assistant.NewFallbackSource(nil, assistant.NewRuleResponder(logger), logger, metrics)

	router := NewRouter(graphStore, reg, gateway, source, nil, logger, false)
	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server, graphStore
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRouter_HealthCheck(t *testing.T) {
	// Arrange
	server, _ := newTestServer(t)

	// Act
	resp, err := http.Get(server.URL + "/health")

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_GetGraph_ReturnsStarterCanvas(t *testing.T) {
	// Arrange
	server, _ := newTestServer(t)

	// Act
	resp, err := http.Get(server.URL + "/api/v1/graph")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	snapshot := decodeBody[store.Snapshot](t, resp)
	assert.Len(t, snapshot.Nodes, 2)
}

func TestRouter_CreateNode(t *testing.T) {
	// Arrange
	server, graphStore := newTestServer(t)

	// Act
	resp := postJSON(t, server.URL+"/api/v1/nodes", map[string]any{
		"type":     "cache",
		"position": map[string]float64{"x": 300, "y": 150},
	})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	node := decodeBody[entities.Node](t, resp)
	assert.Equal(t, entities.KindCache, node.Kind)
	assert.Equal(t, "Cache Layer", node.Title)
	assert.Len(t, graphStore.Snapshot().Nodes, 3)
}

func TestRouter_CreateNode_MissingKindIsRejected(t *testing.T) {
	// Arrange
	server, _ := newTestServer(t)

	// Act
	resp := postJSON(t, server.URL+"/api/v1/nodes", map[string]any{})
	defer resp.Body.Close()

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ConnectAndRelabelEdge(t *testing.T) {
	// Arrange: starter canvas already has nodes "1" and "2"
	server, graphStore := newTestServer(t)

	// Act: connect them
	resp := postJSON(t, server.URL+"/api/v1/edges", map[string]any{
		"source": "1",
		"target": "2",
	})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	edge := decodeBody[entities.Edge](t, resp)
	assert.Equal(t, entities.DefaultEdgeLabel, edge.Label)

	// Act: relabel via PATCH
	req, err := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("%s/api/v1/edges/%s/label", server.URL, edge.ID),
		bytes.NewReader([]byte(`{"label":"gRPC"}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	patchResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer patchResp.Body.Close()

	// Assert
	assert.Equal(t, http.StatusNoContent, patchResp.StatusCode)
	assert.Equal(t, "gRPC", graphStore.Snapshot().Edges[0].Label)
}

func TestRouter_Connect_UnknownEndpointAnswersNoContent(t *testing.T) {
	// Arrange
	server, graphStore := newTestServer(t)

	// Act
	resp := postJSON(t, server.URL+"/api/v1/edges", map[string]any{
		"source": "1",
		"target": "ghost",
	})
	defer resp.Body.Close()

	// Assert: the gesture is ignored, not an error
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, graphStore.Snapshot().Edges)
}

func TestRouter_DeleteNode_CascadesOverHTTP(t *testing.T) {
	// Arrange
	server, graphStore := newTestServer(t)
	resp := postJSON(t, server.URL+"/api/v1/edges", map[string]any{"source": "1", "target": "2"})
	resp.Body.Close()
	require.Len(t, graphStore.Snapshot().Edges, 1)

	// Act
	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/v1/nodes/1", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()

	// Assert
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
	snapshot := graphStore.Snapshot()
	assert.Len(t, snapshot.Nodes, 1)
	assert.Empty(t, snapshot.Edges)
}

func TestRouter_AssistantProposeAndApply(t *testing.T) {
	// Arrange
	server, graphStore := newTestServer(t)

	// Act: prompt the rule table
	resp := postJSON(t, server.URL+"/api/v1/assistant/messages", map[string]any{
		"prompt": "add database",
	})

	// Assert: a proposal is pending, nothing applied yet
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	answer := decodeBody[struct {
		Text       string `json:"text"`
		HasChanges bool   `json:"hasChanges"`
		Mode       string `json:"mode"`
	}](t, resp)
	assert.True(t, answer.HasChanges)
	assert.Equal(t, "rules", answer.Mode)
	assert.Len(t, graphStore.Snapshot().Nodes, 2)

	// Act: confirm
	applyResp := postJSON(t, server.URL+"/api/v1/assistant/apply", nil)
	defer applyResp.Body.Close()

	// Assert: the proposed node landed
	assert.Equal(t, http.StatusNoContent, applyResp.StatusCode)
	assert.Len(t, graphStore.Snapshot().Nodes, 3)
}

func TestRouter_DeleteLastProjectAnswersConflict(t *testing.T) {
	// Arrange
	server, _ := newTestServer(t)
	listResp, err := http.Get(server.URL + "/api/v1/projects/")
	require.NoError(t, err)
	list := decodeBody[struct {
		CurrentID string `json:"currentID"`
	}](t, listResp)

	// Act
	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/v1/projects/"+list.CurrentID, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Assert
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouter_ExportImportRoundTrip(t *testing.T) {
	// Arrange
	server, graphStore := newTestServer(t)
	listResp, err := http.Get(server.URL + "/api/v1/projects/")
	require.NoError(t, err)
	list := decodeBody[struct {
		CurrentID string `json:"currentID"`
	}](t, listResp)

	// Act: export the current project
	exportResp, err := http.Get(server.URL + "/api/v1/projects/" + list.CurrentID + "/export")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, exportResp.StatusCode)
	doc := decodeBody[map[string]any](t, exportResp)

	// Act: import it back as a new project
	importResp := postJSON(t, server.URL+"/api/v1/import", doc)
	defer importResp.Body.Close()

	// Assert: the import became the current project with the same graph
	assert.Equal(t, http.StatusCreated, importResp.StatusCode)
	assert.Len(t, graphStore.Snapshot().Nodes, 2)
}

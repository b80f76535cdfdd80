package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"railcanvas/application/ports"
	"railcanvas/application/store"
	"railcanvas/domain/core/entities"
	pkgerrors "railcanvas/pkg/errors"
	"railcanvas/pkg/observability"
)

// DefaultAutosaveDelay mirrors the original editor's 2 second debounce
const DefaultAutosaveDelay = 2 * time.Second

// Registry manages the set of named projects and which one is current.
// The graph store's working collections are always a live view of the
// current project; SaveProject captures them back into a registry entry
// and persists the whole registry to the snapshot store.
//
// Autosave: every store mutation restarts a debounce timer; rapid edits
// within the window collapse into a single save. The timer is the only
// cancellable deferred operation in the editor.
type Registry struct {
	mu        sync.Mutex
	projects  []entities.Project
	currentID string

	timerMu sync.Mutex
	timer   *time.Timer
	delay   time.Duration

	store     *store.GraphStore
	snapshots ports.SnapshotStore
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// NewRegistry creates a registry bound to the graph store and snapshot
// store. It subscribes to store mutations for autosave scheduling.
func NewRegistry(graphStore *store.GraphStore, snapshots ports.SnapshotStore, logger *zap.Logger, metrics *observability.Metrics) *Registry {
	r := &Registry{
		delay:     DefaultAutosaveDelay,
		store:     graphStore,
		snapshots: snapshots,
		logger:    logger,
		metrics:   metrics,
	}
	graphStore.Subscribe(r.scheduleAutosave)
	return r
}

// SetAutosaveDelay adjusts the debounce window (runtime tunable)
func (r *Registry) SetAutosaveDelay(delay time.Duration) {
	if delay <= 0 {
		return
	}
	r.timerMu.Lock()
	r.delay = delay
	r.timerMu.Unlock()
}

// LoadOrDefault loads the persisted registry, falling back to a seeded
// default project when the slot is missing or unreadable. Never fails:
// the in-memory state stays authoritative for the session.
func (r *Registry) LoadOrDefault(ctx context.Context) {
	doc, found, err := r.snapshots.Load(ctx)
	if err != nil {
		r.logger.Warn("Failed to load persisted projects, starting fresh", zap.Error(err))
	}
	if !found || len(doc.Projects) == 0 {
		doc.Projects = []entities.Project{entities.DefaultProject()}
	}

	r.mu.Lock()
	r.projects = doc.Projects
	r.currentID = doc.Projects[0].ID
	current := doc.Projects[0]
	r.mu.Unlock()

	r.loadIntoStore(current)
	r.logger.Info("Projects loaded",
		zap.Int("count", len(doc.Projects)),
		zap.String("currentID", current.ID),
	)
}

// CreateProject adds an empty project with an auto-generated name and
// makes it current.
func (r *Registry) CreateProject() entities.Project {
	r.mu.Lock()
	project := entities.NewProject(fmt.Sprintf("Project %d", len(r.projects)+1))
	r.projects = append(r.projects, project)
	r.currentID = project.ID
	r.mu.Unlock()

	r.loadIntoStore(project)
	r.logger.Info("Project created",
		zap.String("projectID", project.ID),
		zap.String("name", project.Name),
	)
	return project
}

// ImportProject registers an externally reconstructed project (e.g.
// from an export document) and makes it current.
func (r *Registry) ImportProject(project entities.Project) entities.Project {
	r.mu.Lock()
	r.projects = append(r.projects, project)
	r.currentID = project.ID
	r.mu.Unlock()

	r.loadIntoStore(project)
	r.logger.Info("Project imported",
		zap.String("projectID", project.ID),
		zap.String("name", project.Name),
	)
	return project
}

// SelectProject swaps the graph store's working collections to the
// given project's snapshot. Missing collections default to empty.
func (r *Registry) SelectProject(id string) error {
	r.mu.Lock()
	project, ok := r.findLocked(id)
	if ok {
		r.currentID = id
	}
	r.mu.Unlock()

	if !ok {
		return pkgerrors.NewNotFound("project not found: " + id)
	}
	r.loadIntoStore(project)
	return nil
}

// DeleteProject removes the project. Deleting the last remaining
// project is refused with no state change. If the deleted project was
// current, the first remaining project becomes current.
func (r *Registry) DeleteProject(id string) error {
	r.mu.Lock()
	if len(r.projects) <= 1 {
		r.mu.Unlock()
		return pkgerrors.NewConflict("cannot delete the last project")
	}
	if _, ok := r.findLocked(id); !ok {
		r.mu.Unlock()
		return pkgerrors.NewNotFound("project not found: " + id)
	}

	remaining := make([]entities.Project, 0, len(r.projects)-1)
	for _, p := range r.projects {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	r.projects = remaining

	var replacement *entities.Project
	if r.currentID == id {
		r.currentID = remaining[0].ID
		first := remaining[0]
		replacement = &first
	}
	r.mu.Unlock()

	if replacement != nil {
		r.loadIntoStore(*replacement)
	}
	r.logger.Info("Project deleted", zap.String("projectID", id))
	return nil
}

// SaveProject captures the current working collections into the entry
// matching id and persists the whole registry. The id does not have to
// be the current project's own id; the caller names the project whose
// content is being captured.
func (r *Registry) SaveProject(ctx context.Context, id string) error {
	return r.save(ctx, id, "explicit")
}

func (r *Registry) save(ctx context.Context, id, trigger string) error {
	snapshot := r.store.Snapshot()

	r.mu.Lock()
	found := false
	for i, p := range r.projects {
		if p.ID == id {
			p.Nodes = snapshot.Nodes
			p.Edges = snapshot.Edges
			p.Sections = snapshot.Sections
			r.projects[i] = p
			found = true
			break
		}
	}
	doc := ports.RegistryDocument{Projects: append([]entities.Project{}, r.projects...)}
	r.mu.Unlock()

	if !found {
		return pkgerrors.NewNotFound("project not found: " + id)
	}

	if err := r.snapshots.Save(ctx, doc); err != nil {
		// In-memory state remains authoritative; persistence failures
		// never block the editor.
		r.metrics.SavesTotal.WithLabelValues(trigger, "failure").Inc()
		return pkgerrors.Wrap(err, "failed to persist projects")
	}
	r.metrics.SavesTotal.WithLabelValues(trigger, "success").Inc()
	return nil
}

// Projects returns a copy of the registry entries
func (r *Registry) Projects() []entities.Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Project{}, r.projects...)
}

// Current returns the current project entry
func (r *Registry) Current() entities.Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, _ := r.findLocked(r.currentID)
	return p
}

// Close stops the autosave timer and flushes a final save
func (r *Registry) Close(ctx context.Context) {
	r.timerMu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.timerMu.Unlock()

	if err := r.SaveProject(ctx, r.Current().ID); err != nil {
		r.logger.Warn("Final save failed", zap.Error(err))
	}
}

// scheduleAutosave restarts the debounce window; invoked on every store
// mutation.
func (r *Registry) scheduleAutosave() {
	r.timerMu.Lock()
	defer r.timerMu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, r.autosave)
}

// autosave runs on debounce expiry
func (r *Registry) autosave() {
	r.mu.Lock()
	id := r.currentID
	r.mu.Unlock()
	if id == "" {
		return
	}

	if err := r.save(context.Background(), id, "autosave"); err != nil {
		r.logger.Warn("Autosave failed", zap.String("projectID", id), zap.Error(err))
		return
	}
	r.logger.Debug("Autosaved", zap.String("projectID", id))
}

// loadIntoStore replaces the working set with the project's snapshot
func (r *Registry) loadIntoStore(project entities.Project) {
	nodes := project.Nodes
	if nodes == nil {
		nodes = []entities.Node{}
	}
	edges := project.Edges
	if edges == nil {
		edges = []entities.Edge{}
	}
	sections := project.Sections
	if sections == nil {
		sections = []entities.Section{}
	}
	r.store.ReplaceAll(nodes, edges, sections)
}

func (r *Registry) findLocked(id string) (entities.Project, bool) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, true
		}
	}
	return entities.Project{}, false
}

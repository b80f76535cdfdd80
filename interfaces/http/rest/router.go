package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"railcanvas/application/ports"
	"railcanvas/application/proposals"
	"railcanvas/application/registry"
	"railcanvas/application/store"
	"railcanvas/interfaces/http/rest/handlers"
	"railcanvas/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	store      *store.GraphStore
	registry   *registry.Registry
	gateway    *proposals.Gateway
	source     ports.AdvisorySource
	promReg    *prometheus.Registry
	logger     *zap.Logger
	enableCORS bool
}

// NewRouter creates a new router instance
func NewRouter(
	graphStore *store.GraphStore,
	reg *registry.Registry,
	gateway *proposals.Gateway,
	source ports.AdvisorySource,
	promReg *prometheus.Registry,
	logger *zap.Logger,
	enableCORS bool,
) *Router {
	return &Router{
		store:      graphStore,
		registry:   reg,
		gateway:    gateway,
		source:     source,
		promReg:    promReg,
		logger:     logger,
		enableCORS: enableCORS,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check and metrics
	router.Get("/health", rt.healthCheck)
	if rt.promReg != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(rt.promReg, promhttp.HandlerOpts{}))
	}

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		graphHandler := handlers.NewGraphHandler(rt.store, rt.logger)
		r.Get("/graph", graphHandler.GetGraph)

		r.Route("/nodes", func(r chi.Router) {
			r.Post("/", graphHandler.CreateNode)
			r.Patch("/{nodeID}", graphHandler.UpdateNode)
			r.Delete("/{nodeID}", graphHandler.DeleteNode)
			r.Post("/{nodeID}/duplicate", graphHandler.DuplicateNode)
			r.Post("/{nodeID}/toggle-disabled", graphHandler.ToggleNodeDisabled)
			r.Post("/{nodeID}/position", graphHandler.MoveNode)
		})

		r.Route("/edges", func(r chi.Router) {
			r.Post("/", graphHandler.Connect)
			r.Patch("/{edgeID}/label", graphHandler.UpdateEdgeLabel)
			r.Delete("/{edgeID}", graphHandler.DeleteEdge)
		})

		r.Route("/sections", func(r chi.Router) {
			r.Post("/", graphHandler.CreateSection)
			r.Patch("/{sectionID}", graphHandler.UpdateSection)
			r.Delete("/{sectionID}", graphHandler.DeleteSection)
		})

		projectHandler := handlers.NewProjectHandler(rt.registry, rt.store, rt.logger)
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.ListProjects)
			r.Post("/", projectHandler.CreateProject)
			r.Post("/{projectID}/select", projectHandler.SelectProject)
			r.Post("/{projectID}/save", projectHandler.SaveProject)
			r.Get("/{projectID}/export", projectHandler.ExportProject)
			r.Delete("/{projectID}", projectHandler.DeleteProject)
		})
		r.Post("/import", projectHandler.ImportProject)

		assistantHandler := handlers.NewAssistantHandler(rt.source, rt.gateway, rt.store, rt.logger)
		r.Route("/assistant", func(r chi.Router) {
			r.Post("/messages", assistantHandler.SendMessage)
			r.Get("/pending", assistantHandler.GetPending)
			r.Post("/apply", assistantHandler.ApplyChanges)
			r.Post("/discard", assistantHandler.DiscardChanges)
		})
	})

	return router
}

// healthCheck handles GET /health
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

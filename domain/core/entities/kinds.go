package entities

// NodeKind selects the service archetype of a node. The kind only feeds
// default display metadata at creation time; later edits to the node's
// fields are independent of it.
type NodeKind string

const (
	KindFrontend      NodeKind = "frontend"
	KindMobile        NodeKind = "mobile"
	KindCDN           NodeKind = "cdn"
	KindBackend       NodeKind = "backend"
	KindAPI           NodeKind = "api"
	KindMicroservice  NodeKind = "microservice"
	KindServerless    NodeKind = "serverless"
	KindMessageBroker NodeKind = "message-broker"
	KindDatabase      NodeKind = "database"
	KindNoSQL         NodeKind = "nosql"
	KindCache         NodeKind = "cache"
	KindSearch        NodeKind = "search"
	KindDataWarehouse NodeKind = "data-warehouse"
	KindCloud         NodeKind = "cloud"
	KindContainer     NodeKind = "container"
	KindOrchestration NodeKind = "orchestration"
	KindLoadBalancer  NodeKind = "load-balancer"
	KindStorage       NodeKind = "storage"
	KindAuth          NodeKind = "auth"
	KindSecurity      NodeKind = "security"
	KindMonitoring    NodeKind = "monitoring"
	KindLogging       NodeKind = "logging"
	KindTracing       NodeKind = "tracing"
	KindMiddleware    NodeKind = "middleware"
	KindProxy         NodeKind = "proxy"
	KindQueue         NodeKind = "queue"
	KindAnalytics     NodeKind = "analytics"
	KindGitHub        NodeKind = "github"
)

// KindDefaults holds the display metadata a kind seeds onto a new node
type KindDefaults struct {
	Title       string
	TechUsed    []string
	Usecase     string
	Description string
}

var kindCatalog = map[NodeKind]KindDefaults{
	// Frontend (client layer)
	KindFrontend: {
		Title:       "Frontend App",
		TechUsed:    []string{"React", "TypeScript"},
		Usecase:     "User interface",
		Description: "Client-side application for user interactions",
	},
	KindMobile: {
		Title:       "Mobile App",
		TechUsed:    []string{"Flutter", "React Native"},
		Usecase:     "Mobile user interface",
		Description: "Native mobile application for iOS and Android",
	},
	KindCDN: {
		Title:       "CDN",
		TechUsed:    []string{"Cloudflare", "AWS CloudFront"},
		Usecase:     "Content delivery",
		Description: "Global content delivery network for static assets",
	},

	// Backend (application layer)
	KindBackend: {
		Title:       "Backend Service",
		TechUsed:    []string{"Node.js", "Express.js"},
		Usecase:     "Business logic processing",
		Description: "Server-side application handling business logic",
	},
	KindAPI: {
		Title:       "API Gateway",
		TechUsed:    []string{"Kong", "AWS API Gateway"},
		Usecase:     "API management and routing",
		Description: "Central entry point for all API requests",
	},
	KindMicroservice: {
		Title:       "Microservice",
		TechUsed:    []string{"Node.js", "Docker"},
		Usecase:     "Specific business capability",
		Description: "Independent service handling specific business logic",
	},
	KindServerless: {
		Title:       "Serverless Function",
		TechUsed:    []string{"AWS Lambda", "Node.js"},
		Usecase:     "Event-driven processing",
		Description: "Serverless function for specific tasks",
	},
	KindMessageBroker: {
		Title:       "Message Broker",
		TechUsed:    []string{"Kafka", "RabbitMQ"},
		Usecase:     "Asynchronous messaging",
		Description: "Message queue for decoupled communication",
	},

	// Database layer
	KindDatabase: {
		Title:       "SQL Database",
		TechUsed:    []string{"PostgreSQL", "MySQL"},
		Usecase:     "Relational data storage",
		Description: "Primary database for structured data",
	},
	KindNoSQL: {
		Title:       "NoSQL Database",
		TechUsed:    []string{"MongoDB", "DynamoDB"},
		Usecase:     "Document/key-value storage",
		Description: "NoSQL database for flexible data structures",
	},
	KindCache: {
		Title:       "Cache Layer",
		TechUsed:    []string{"Redis", "Memcached"},
		Usecase:     "In-memory caching",
		Description: "High-speed data caching and session storage",
	},
	KindSearch: {
		Title:       "Search Engine",
		TechUsed:    []string{"Elasticsearch", "Solr"},
		Usecase:     "Full-text search",
		Description: "Search and indexing service for data discovery",
	},
	KindDataWarehouse: {
		Title:       "Data Warehouse",
		TechUsed:    []string{"BigQuery", "Snowflake"},
		Usecase:     "Analytics and reporting",
		Description: "Large-scale data storage for analytics",
	},

	// Cloud and infrastructure
	KindCloud: {
		Title:       "Cloud Provider",
		TechUsed:    []string{"AWS", "Google Cloud"},
		Usecase:     "Cloud infrastructure",
		Description: "Cloud platform hosting services and resources",
	},
	KindContainer: {
		Title:       "Container",
		TechUsed:    []string{"Docker", "Podman"},
		Usecase:     "Application containerization",
		Description: "Containerized application deployment",
	},
	KindOrchestration: {
		Title:       "Orchestration",
		TechUsed:    []string{"Kubernetes", "Amazon ECS"},
		Usecase:     "Container management",
		Description: "Container orchestration and scaling",
	},
	KindLoadBalancer: {
		Title:       "Load Balancer",
		TechUsed:    []string{"HAProxy", "NGINX"},
		Usecase:     "Traffic distribution",
		Description: "Distributes incoming requests across multiple servers",
	},
	KindStorage: {
		Title:       "Storage Service",
		TechUsed:    []string{"Amazon S3", "Google Cloud Storage"},
		Usecase:     "Object storage",
		Description: "Scalable cloud storage for files and objects",
	},

	// Security and authentication
	KindAuth: {
		Title:       "Authentication Service",
		TechUsed:    []string{"Auth0", "OAuth 2.0"},
		Usecase:     "User authentication",
		Description: "Identity and access management service",
	},
	KindSecurity: {
		Title:       "Security Service",
		TechUsed:    []string{"WAF", "TLS/SSL"},
		Usecase:     "Application security",
		Description: "Security layer protecting applications",
	},

	// Observability and reliability
	KindMonitoring: {
		Title:       "Monitoring",
		TechUsed:    []string{"Prometheus", "Grafana"},
		Usecase:     "System monitoring",
		Description: "Real-time monitoring and alerting",
	},
	KindLogging: {
		Title:       "Logging Service",
		TechUsed:    []string{"ELK Stack", "Splunk"},
		Usecase:     "Log aggregation",
		Description: "Centralized logging and analysis",
	},
	KindTracing: {
		Title:       "Tracing Service",
		TechUsed:    []string{"Jaeger", "Zipkin"},
		Usecase:     "Distributed tracing",
		Description: "Request tracing across microservices",
	},

	// Middleware and supporting services
	KindMiddleware: {
		Title:       "Middleware",
		TechUsed:    []string{"NGINX", "Envoy"},
		Usecase:     "Request processing",
		Description: "Middleware layer for request/response processing",
	},
	KindProxy: {
		Title:       "Proxy Server",
		TechUsed:    []string{"NGINX", "Apache HTTP"},
		Usecase:     "Request forwarding",
		Description: "Proxy server for routing and load balancing",
	},
	KindQueue: {
		Title:       "Task Queue",
		TechUsed:    []string{"Celery", "Sidekiq"},
		Usecase:     "Background processing",
		Description: "Background task processing and job queues",
	},
	KindAnalytics: {
		Title:       "Analytics Service",
		TechUsed:    []string{"Google Analytics", "Mixpanel"},
		Usecase:     "User analytics",
		Description: "User behavior tracking and analytics",
	},

	// Version control and CI/CD
	KindGitHub: {
		Title:       "GitHub Repo",
		TechUsed:    []string{"Git", "GitHub Actions"},
		Usecase:     "Version control and CI/CD",
		Description: "Source code repository with automated deployments",
	},
}

// DefaultsFor returns the seed metadata for a kind, falling back to a
// generic placeholder for kinds the catalog does not know.
func DefaultsFor(kind NodeKind) KindDefaults {
	if d, ok := kindCatalog[kind]; ok {
		return d
	}
	return KindDefaults{
		Title:       "Service",
		TechUsed:    []string{},
		Usecase:     "Not specified",
		Description: "No description provided",
	}
}

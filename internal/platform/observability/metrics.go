package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "listing_http_request_duration_seconds",
		Help:    "Duration of HTTP requests by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// Generation provider metrics
	GenerationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_generation_requests_total",
		Help: "Total number of generation requests",
	}, []string{"provider", "model", "task", "status"})

	GenerationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "listing_generation_latency_seconds",
		Help:    "Latency of generation requests by provider and task",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"provider", "model", "task"})

	GenerationFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_generation_fallbacks_total",
		Help: "Total number of provider fallback events",
	}, []string{"from_provider", "to_provider", "task"})

	GenerationTokensPrompt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_generation_tokens_prompt_total",
		Help: "Total number of prompt tokens used",
	}, []string{"provider", "model", "task"})

	GenerationTokensCompletion = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_generation_tokens_completion_total",
		Help: "Total number of completion tokens used",
	}, []string{"provider", "model", "task"})

	// Costs are counted in millicents to avoid floating point issues.
	GenerationEstimatedCost = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_generation_estimated_cost_millicents_total",
		Help: "Estimated generation cost in millicents (0.001 cents)",
	}, []string{"provider", "model", "task"})

	ProviderAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "listing_provider_available",
		Help: "Whether generation provider is currently available (0=no, 1=yes)",
	}, []string{"provider"})

	CircuitBreakerOpens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_circuit_breaker_opens_total",
		Help: "Total number of times provider circuit breaker opened",
	}, []string{"provider"})

	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "listing_circuit_breaker_state",
		Help: "Current state of provider circuit breaker (0=closed, 1=open)",
	}, []string{"provider"})

	// Compliance metrics
	ComplianceChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_compliance_checks_total",
		Help: "Total number of compliance checks",
	}, []string{"result"})

	ComplianceViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_compliance_violations_total",
		Help: "Total number of detected compliance violations by category",
	}, []string{"category"})

	// Refinement metrics
	RefinementRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_refinement_requests_total",
		Help: "Total number of content refinement requests",
	}, []string{"content_type", "status"})

	// Document processing metrics
	DocumentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_documents_processed_total",
		Help: "Total number of processed document URLs",
	}, []string{"kind", "status"})

	// Cost alert events by window (request, hour, day).
	CostAlerts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_cost_alerts_total",
		Help: "Total number of cost threshold alerts",
	}, []string{"window"})
)

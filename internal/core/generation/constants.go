package generation

import "time"

// Provider identifiers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Task names for metrics and cost tracking.
const (
	TaskPublicRemarks = "public_remarks"
	TaskFeatures      = "features"
	TaskMLS           = "mls"
)

// Request status for metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Provider health status strings.
const (
	HealthStatusHealthy  = "healthy"
	HealthStatusNoAPIKey = "no_api_key"
)

// Error message templates.
const (
	errRateLimiter          = "rate limiter: %w"
	errOpenAIChatCompletion = "openai chat completion: %w"
	errGeminiCompletion     = "gemini completion: %w"
)

// Metric gauge values.
const (
	MetricValueAvailable   = 1.0
	MetricValueUnavailable = 0.0
	MetricValueCBOpen      = 1.0
	MetricValueCBClosed    = 0.0
)

// Circuit breaker defaults.
const (
	circuitBreakerThreshold = 5
	circuitBreakerTimeout   = 1 * time.Minute
)

// Rate limiter settings.
const rateLimiterBurst = 5

// Cost conversion.
const usdToMillicents = 100000.0 // 1 USD = 100,000 millicents

// Usage storage timeout.
const usageStorageTimeout = 5 * time.Second

// Health status error truncation length.
const healthErrorMaxLen = 50

// Log field keys.
const (
	logKeyProvider = "provider"
	logKeyModel    = "model"
	logKeyTask     = "task"
)

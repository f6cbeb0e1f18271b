package generation

// Task is a single generation request, provider-agnostic. The orchestrator
// hands the same task to the primary and, when needed, the fallback provider.
type Task struct {
	SystemPrompt string
	UserPrompt   string
	PhotoURLs    []string
	Type         string
	Temperature  float32
	MaxTokens    int
}

// Result is the uniform outcome of a generation attempt. Provider identity is
// recorded for logging and cost attribution; it is not part of any client
// contract.
type Result struct {
	Success          bool   `json:"success"`
	Content          string `json:"content"`
	ProviderUsed     string `json:"provider_used"`
	ModelUsed        string `json:"model_used"`
	GenerationTimeMS int64  `json:"generation_time_ms"`
	InputTokens      int    `json:"input_tokens"`
	OutputTokens     int    `json:"output_tokens"`
	IsFallback       bool   `json:"is_fallback"`
	Error            string `json:"error,omitempty"`
}

// Per-task generation defaults. Token budgets leave headroom for formatting
// (~1.3 tokens per word plus a buffer).
const (
	remarksTemperature  float32 = 0.7
	featuresTemperature float32 = 0.3
	mlsTemperature      float32 = 0.2

	defaultMaxWords    = 250
	defaultMaxFeatures = 20

	remarksTokensPerWord = 1.5
	remarksTokenBuffer   = 200

	featuresTokensPerItem = 60
	featuresTokenBuffer   = 500
	featuresTokenCap      = 4000

	mlsMaxTokens = 2500
)

func remarksTokenBudget(maxWords int) int {
	if maxWords <= 0 {
		maxWords = defaultMaxWords
	}

	return int(float64(maxWords)*remarksTokensPerWord) + remarksTokenBuffer
}

func featuresTokenBudget(maxFeatures int) int {
	if maxFeatures <= 0 {
		maxFeatures = defaultMaxFeatures
	}

	budget := maxFeatures*featuresTokensPerItem + featuresTokenBuffer
	if budget > featuresTokenCap {
		return featuresTokenCap
	}

	return budget
}

// NewPublicRemarksTask builds a task for listing description generation.
func NewPublicRemarksTask(systemPrompt, userPrompt string, photoURLs []string, maxWords int) Task {
	return Task{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		PhotoURLs:    photoURLs,
		Type:         TaskPublicRemarks,
		Temperature:  remarksTemperature,
		MaxTokens:    remarksTokenBudget(maxWords),
	}
}

// NewFeaturesTask builds a task for property feature extraction.
func NewFeaturesTask(systemPrompt, userPrompt string, photoURLs []string, maxFeatures int) Task {
	return Task{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		PhotoURLs:    photoURLs,
		Type:         TaskFeatures,
		Temperature:  featuresTemperature,
		MaxTokens:    featuresTokenBudget(maxFeatures),
	}
}

// NewMLSDataTask builds a task for structured MLS record generation.
func NewMLSDataTask(systemPrompt, userPrompt string, photoURLs []string) Task {
	return Task{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		PhotoURLs:    photoURLs,
		Type:         TaskMLS,
		Temperature:  mlsTemperature,
		MaxTokens:    mlsMaxTokens,
	}
}

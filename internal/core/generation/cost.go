package generation

import "strings"

// Cost per 1M tokens (in USD). Approximate, update as pricing changes.
// Reference: https://openai.com/pricing, https://www.anthropic.com/pricing, https://ai.google.dev/pricing
const (
	costGPT5PromptPer1M     = 2.50
	costGPT5CompletionPer1M = 10.00
	costGPT4OMiniPrompt     = 0.15
	costGPT4OMiniComplete   = 0.60

	costGeminiFlashPrompt   = 0.10
	costGeminiFlashComplete = 0.40
	costGeminiProPrompt     = 3.50
	costGeminiProComplete   = 10.50

	costClaudeSonnetPrompt   = 3.00
	costClaudeSonnetComplete = 15.00
	costClaudeHaikuPrompt    = 1.00
	costClaudeHaikuComplete  = 5.00

	tokensPerMillion = 1000000.0
)

// EstimateCost returns the estimated request cost in USD.
func EstimateCost(provider, model string, promptTokens, completionTokens int) float64 {
	promptRate, completionRate := costRates(provider, model)

	promptUSD := float64(promptTokens) * promptRate / tokensPerMillion
	completionUSD := float64(completionTokens) * completionRate / tokensPerMillion

	return promptUSD + completionUSD
}

func costRates(provider, model string) (promptRate, completionRate float64) {
	modelLower := strings.ToLower(model)

	switch provider {
	case ProviderOpenAI:
		return openAICostRates(modelLower)
	case ProviderGemini, "google":
		return geminiCostRates(modelLower)
	case "anthropic":
		return anthropicCostRates(modelLower)
	default:
		// Conservative default
		return costGPT4OMiniPrompt, costGPT4OMiniComplete
	}
}

func openAICostRates(model string) (float64, float64) {
	switch {
	case strings.Contains(model, "gpt-5"):
		return costGPT5PromptPer1M, costGPT5CompletionPer1M
	case strings.Contains(model, "gpt-4o-mini"):
		return costGPT4OMiniPrompt, costGPT4OMiniComplete
	default:
		return costGPT5PromptPer1M, costGPT5CompletionPer1M
	}
}

func geminiCostRates(model string) (float64, float64) {
	switch {
	case strings.Contains(model, "pro"):
		return costGeminiProPrompt, costGeminiProComplete
	default:
		return costGeminiFlashPrompt, costGeminiFlashComplete
	}
}

func anthropicCostRates(model string) (float64, float64) {
	switch {
	case strings.Contains(model, "haiku"):
		return costClaudeHaikuPrompt, costClaudeHaikuComplete
	default:
		return costClaudeSonnetPrompt, costClaudeSonnetComplete
	}
}

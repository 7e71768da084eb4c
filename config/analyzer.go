package config

import (
	"time"

	"main/utils"
)

// AnalyzerConfig configures the external resource analyzer. The API is
// OpenAI-compatible, so BaseURL can point at any conforming provider.
type AnalyzerConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

func LoadAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		APIKey:  utils.GetEnvAsString("ANALYZER_API_KEY", ""),
		BaseURL: utils.GetEnvAsString("ANALYZER_BASE_URL", "https://api.openai.com/v1"),
		Model:   utils.GetEnvAsString("ANALYZER_MODEL", "gpt-4o-mini"),
		Timeout: utils.GetEnvAsDuration("ANALYZER_TIMEOUT", 120*time.Second),
	}
}

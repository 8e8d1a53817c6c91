package provider

import (
	"os"
	"time"
)

// APISettings configures the connection to a completion API. Fields left
// empty are resolved from the environment at client construction. A missing
// API key is not validated here; it surfaces later as a provider error.
type APISettings struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 60 * time.Second
)

func (s *APISettings) resolve() APISettings {
	ret := *s
	if ret.APIKey == "" {
		ret.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if ret.BaseURL == "" {
		ret.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}
	if ret.BaseURL == "" {
		ret.BaseURL = defaultBaseURL
	}
	if ret.Timeout == 0 {
		ret.Timeout = defaultTimeout
	}
	return ret
}

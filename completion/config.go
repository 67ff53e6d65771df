package completion

import (
	"fmt"
	"os"
	"time"
)

// Defaults match the GitHub Models inference endpoint.
const (
	DefaultBaseURL  = "https://models.github.ai/inference"
	DefaultModel    = "openai/gpt-5"
	DefaultTokenEnv = "GITHUB_TOKEN"
	DefaultTimeout  = 120 * time.Second
)

// Config holds completion client initialization parameters. The credential
// is sourced from the environment variable named by TokenEnv unless Token is
// set explicitly.
type Config struct {
	BaseURL        string `json:"base_url,omitempty"`
	Model          string `json:"model,omitempty"`
	Token          string `json:"token,omitempty"`
	TokenEnv       string `json:"token_env,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// DefaultConfig returns a Config targeting the default endpoint and model,
// with the credential read from DefaultTokenEnv.
func DefaultConfig() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Model:    DefaultModel,
		TokenEnv: DefaultTokenEnv,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.Token != "" {
		c.Token = source.Token
	}
	if source.TokenEnv != "" {
		c.TokenEnv = source.TokenEnv
	}
	if source.TimeoutSeconds > 0 {
		c.TimeoutSeconds = source.TimeoutSeconds
	}
}

// resolveToken returns the credential from the config, falling back to the
// configured environment variable.
func (c *Config) resolveToken() (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}
	env := c.TokenEnv
	if env == "" {
		env = DefaultTokenEnv
	}
	if token := os.Getenv(env); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("completion: no API token configured and %s is not set", env)
}

func (c *Config) timeout() time.Duration {
	if c.TimeoutSeconds > 0 {
		return time.Duration(c.TimeoutSeconds) * time.Second
	}
	return DefaultTimeout
}

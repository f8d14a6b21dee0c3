package app

import "errors"

// Config holds everything an App instance needs to turn a pipeline
// definition into a plan. Hub credentials are resolved once at startup
// (flags, environment, .env) and threaded through here explicitly; nothing
// below this struct reads ambient state.
type Config struct {
	PipelinePath string // .hcl file or directory
	OutputPath   string // plan destination, empty writes to stdout
	BasePath     string // overrides the definition's base_path when set

	LogFormat string
	LogLevel  string

	HubUser  string
	HubToken string
}

// NewConfig validates a Config value.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

// PublishEnabled reports whether the optional publish op should be appended
// to the graph. It is the single place this decision is made.
func (c *Config) PublishEnabled() bool {
	return c.HubUser != "" && c.HubToken != ""
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultPath       = "config/owlgraph.toml"
	DefaultLLMBaseURL = "https://api.openai.com/v1"
	DefaultOllamaURL  = "http://localhost:11434"
	DefaultLLMModel   = "gpt-4o-mini"
	DefaultGraphURI   = "bolt://localhost:7687"
	DefaultDatabase   = "neo4j"
	DefaultServerAddr = ":8080"
)

// LLMConfig selects the text-generation provider. A blank BaseURL means the
// provider's own default host.
type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

// Configured reports whether natural-language translation can be used.
func (c LLMConfig) Configured() bool {
	if strings.EqualFold(c.Provider, "ollama") {
		return strings.TrimSpace(c.BaseURL) != ""
	}
	return strings.TrimSpace(c.APIKey) != ""
}

type GraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

// Configured reports whether enough is set to attempt a connection.
func (c GraphConfig) Configured() bool {
	return strings.TrimSpace(c.URI) != "" &&
		strings.TrimSpace(c.User) != "" &&
		strings.TrimSpace(c.Password) != ""
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type Config struct {
	LLM    LLMConfig    `toml:"llm"`
	Graph  GraphConfig  `toml:"graph"`
	Server ServerConfig `toml:"server"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    DefaultLLMModel,
		},
		Graph: GraphConfig{
			URI:      DefaultGraphURI,
			User:     "neo4j",
			Database: DefaultDatabase,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
	}
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// Resolve loads .env, then the config file, then applies environment
// overrides. An explicit path must exist; the default path is optional.
func Resolve(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	cfg, err := Load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides fields with any non-empty environment variable.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		env   string
		field *string
	}{
		{"GRAPH_URI", &c.Graph.URI},
		{"GRAPH_USER", &c.Graph.User},
		{"GRAPH_PASSWORD", &c.Graph.Password},
		{"GRAPH_DATABASE", &c.Graph.Database},
		{"LLM_PROVIDER", &c.LLM.Provider},
		{"LLM_MODEL", &c.LLM.Model},
		{"LLM_API_KEY", &c.LLM.APIKey},
		{"LLM_BASE_URL", &c.LLM.BaseURL},
		{"SERVER_ADDR", &c.Server.Addr},
	}

	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.field = v
		}
	}
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Graph.URI) == "" {
		errs = append(errs, errors.New("graph.uri is required"))
	}
	switch strings.ToLower(c.LLM.Provider) {
	case "openai", "ollama", "claude", "gemini":
	default:
		errs = append(errs, fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider))
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		errs = append(errs, errors.New("llm.model is required"))
	}
	return errors.Join(errs...)
}

package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// OllamaConfig holds connection details for the local Ollama instance.
type OllamaConfig struct {
	URL        string `yaml:"url"`
	EmbedModel string `yaml:"embed_model"`
	ChatModel  string `yaml:"chat_model"`
}

// StoreConfig selects and configures the vector store backend.
type StoreConfig struct {
	Backend    string `yaml:"backend"` // "local" or "sqlite"
	Dir        string `yaml:"dir"`
	Collection string `yaml:"collection"`
	Dimensions int    `yaml:"dimensions"`
}

// IndexConfig configures the indexing pipeline.
type IndexConfig struct {
	WindowLines int `yaml:"window_lines"`
	Workers     int `yaml:"workers"`
}

// RetrievalConfig configures context assembly.
type RetrievalConfig struct {
	FileLimit           int      `yaml:"file_limit"`
	NonDefaultLanguages []string `yaml:"non_default_languages"`
}

// Config is the root application configuration.
type Config struct {
	Ollama    OllamaConfig    `yaml:"ollama"`
	Store     StoreConfig     `yaml:"store"`
	Index     IndexConfig     `yaml:"index"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
}

// Load reads a config from path. A missing file returns the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	applyEnv(cfg)
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Ollama: OllamaConfig{
			URL:        "http://localhost:11434",
			EmbedModel: "nomic-embed-text",
			ChatModel:  "qwen3:8b",
		},
		Store: StoreConfig{
			Backend:    "local",
			Dir:        ".coderag",
			Collection: "code_elements",
			Dimensions: 768,
		},
		Index: IndexConfig{
			WindowLines: 100,
		},
		Retrieval: RetrievalConfig{
			FileLimit: 5,
		},
	}
	applyEnv(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	def := &Config{}
	*def = *Default()
	if cfg.Ollama.URL == "" {
		cfg.Ollama.URL = def.Ollama.URL
	}
	if cfg.Ollama.EmbedModel == "" {
		cfg.Ollama.EmbedModel = def.Ollama.EmbedModel
	}
	if cfg.Ollama.ChatModel == "" {
		cfg.Ollama.ChatModel = def.Ollama.ChatModel
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = def.Store.Backend
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = def.Store.Dir
	}
	if cfg.Store.Collection == "" {
		cfg.Store.Collection = def.Store.Collection
	}
	if cfg.Store.Dimensions == 0 {
		cfg.Store.Dimensions = def.Store.Dimensions
	}
	if cfg.Index.WindowLines == 0 {
		cfg.Index.WindowLines = def.Index.WindowLines
	}
	if cfg.Retrieval.FileLimit == 0 {
		cfg.Retrieval.FileLimit = def.Retrieval.FileLimit
	}
}

// applyEnv overrides settings from the environment (a .env file, if
// present, is loaded by the CLI before this runs).
func applyEnv(cfg *Config) {
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.Ollama.URL = v
	}
	if v := os.Getenv("CODERAG_EMBED_MODEL"); v != "" {
		cfg.Ollama.EmbedModel = v
	}
	if v := os.Getenv("CODERAG_CHAT_MODEL"); v != "" {
		cfg.Ollama.ChatModel = v
	}
}

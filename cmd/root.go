package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"coderag/internal/config"
	"coderag/internal/embedder"
	"coderag/internal/lang"
	"coderag/internal/rag"
	"coderag/internal/store"
)

var (
	flagConfig    string
	flagData      string
	flagOllama    string
	flagModel     string
	flagChatModel string
	flagBackend   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "coderag",
	Short:         "Index source code and answer questions about it",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Best-effort .env loading; absence is fine.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if flagData != "" {
			cfg.Store.Dir = flagData
		}
		if flagOllama != "" {
			cfg.Ollama.URL = flagOllama
		}
		if flagModel != "" {
			cfg.Ollama.EmbedModel = flagModel
		}
		if flagChatModel != "" {
			cfg.Ollama.ChatModel = flagChatModel
		}
		if flagBackend != "" {
			cfg.Store.Backend = flagBackend
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore creates the configured vector store backend.
func openStore() (store.Store, error) {
	emb := embedder.NewOllama(cfg.Ollama.URL, cfg.Ollama.EmbedModel)
	switch cfg.Store.Backend {
	case "sqlite":
		if err := os.MkdirAll(cfg.Store.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		dbPath := filepath.Join(cfg.Store.Dir, cfg.Store.Collection+".db")
		return store.OpenSQLite(dbPath, cfg.Store.Dimensions, emb)
	case "local", "":
		return store.OpenLocal(cfg.Store.Dir, cfg.Store.Collection, emb)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// newAssembler builds a context assembler with the configured language
// priorities.
func newAssembler(st store.Store) *rag.Assembler {
	var opts []rag.AssemblerOption
	if len(cfg.Retrieval.NonDefaultLanguages) > 0 {
		ids := make([]lang.ID, 0, len(cfg.Retrieval.NonDefaultLanguages))
		for _, s := range cfg.Retrieval.NonDefaultLanguages {
			ids = append(ids, lang.ID(s))
		}
		opts = append(opts, rag.WithNonDefaultLanguages(ids))
	}
	return rag.NewAssembler(st, opts...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "coderag.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "store directory (default .coderag)")
	rootCmd.PersistentFlags().StringVar(&flagOllama, "ollama", "", "ollama base URL")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "embedding model")
	rootCmd.PersistentFlags().StringVar(&flagChatModel, "chat-model", "", "generative model")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "store", "", "vector store backend: local or sqlite")
}

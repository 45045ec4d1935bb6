package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coderag/internal/llm"
	"coderag/internal/rag"
)

var flagShowContext bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a one-shot question about the indexed code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		engine := rag.NewEngine(
			newAssembler(st),
			llm.NewOllamaChat(cfg.Ollama.URL, cfg.Ollama.ChatModel),
			cfg.Retrieval.FileLimit,
		)

		answer, context, err := engine.Ask(args[0])
		if err != nil {
			return err
		}
		fmt.Println(answer)
		if flagShowContext {
			fmt.Println("\n--- Context ---")
			fmt.Println(context)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&flagShowContext, "show-context", false, "print the context block sent to the model")
	rootCmd.AddCommand(askCmd)
}

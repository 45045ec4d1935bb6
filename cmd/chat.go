package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"coderag/internal/llm"
	"coderag/internal/rag"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about the indexed code interactively",
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

		var history []llm.Message
		scanner := bufio.NewScanner(os.Stdin)

		fmt.Println("coderag chat (type /help for commands, /exit to quit)")
		fmt.Println()

		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				continue
			}

			switch question {
			case "/exit", "/quit":
				fmt.Println("Goodbye.")
				return nil
			case "/clear":
				history = nil
				fmt.Println("Conversation cleared.")
				continue
			case "/help":
				fmt.Println("Commands:")
				fmt.Println("  /clear  - clear conversation history")
				fmt.Println("  /exit   - quit chat")
				fmt.Println("  /help   - show this help")
				continue
			}

			answer, _, err := engine.AskWithHistory(question, history)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}

			fmt.Println()
			fmt.Println(answer)
			fmt.Println()

			// Keep the last 10 turns.
			history = append(history, llm.Message{Role: "user", Content: question})
			history = append(history, llm.Message{Role: "assistant", Content: answer})
			if len(history) > 20 {
				history = history[len(history)-20:]
			}
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

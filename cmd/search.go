package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagK int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the indexed code elements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		hits, err := st.Search(args[0], flagK)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		if len(hits) == 0 {
			fmt.Println("No results.")
			return nil
		}
		for i, h := range hits {
			fmt.Printf("%2d. [%.3f] %s (%s %s, lines %s)\n",
				i+1, h.Score, h.Metadata["file_path"],
				h.Metadata["type"], h.Metadata["name"], h.Metadata["line_range"])
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&flagK, "k", 10, "number of results")
	rootCmd.AddCommand(searchCmd)
}

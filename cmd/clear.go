package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all indexed code elements",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.ClearCollection(); err != nil {
			return fmt.Errorf("clear collection: %w", err)
		}
		fmt.Println("Collection cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

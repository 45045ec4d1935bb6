package cmd

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"coderag/internal/index"
	"coderag/internal/lang"
	"coderag/internal/walker"
)

var (
	flagWorkers int
	flagOutput  string
)

var indexCmd = &cobra.Command{
	Use:   "index <path>",
	Short: "Index a codebase for search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := walker.Collect(args[0])
		if err != nil {
			return fmt.Errorf("collect files: %w", err)
		}
		fmt.Printf("Found %d files to process\n", len(paths))

		workers := flagWorkers
		if workers <= 0 {
			workers = cfg.Index.Workers
		}
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		pipeline := index.New(lang.NewDefault(),
			index.WithWindowLines(cfg.Index.WindowLines),
			index.WithWorkers(workers),
		)

		start := time.Now()
		elems, stats := pipeline.Index(paths)
		fmt.Printf("Indexed %d code elements in %s\n", len(elems), time.Since(start).Round(time.Millisecond))
		fmt.Printf("  Files: %d total, %d extracted, %d chunked, %d failed\n",
			stats.FilesTotal, stats.FilesExtracted, stats.FilesChunked, stats.FilesFailed)

		if flagOutput != "" {
			f, err := os.Create(flagOutput)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			if err := index.WriteJSON(f, elems); err != nil {
				return fmt.Errorf("write index: %w", err)
			}
			fmt.Printf("Index saved to %s\n", flagOutput)
		}

		st, err := openStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		lastModel, err := st.GetMeta("embedding_model")
		if err != nil {
			return fmt.Errorf("get meta: %w", err)
		}
		if lastModel != "" && lastModel != cfg.Ollama.EmbedModel {
			fmt.Printf("Embedding model changed from %q to %q, re-embedding everything\n",
				lastModel, cfg.Ollama.EmbedModel)
		}

		// Each run snapshots the tree; Save clears prior records first.
		if err := index.Save(st, elems, cfg.Ollama.EmbedModel); err != nil {
			return err
		}
		fmt.Printf("Stored %d code elements\n", len(elems))
		return nil
	},
}

func init() {
	indexCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "parallel workers")
	indexCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "also write the element index to a JSON file")
	rootCmd.AddCommand(indexCmd)
}

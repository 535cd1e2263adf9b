package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	indexFileID string
	indexSource string
)

var indexCmd = &cobra.Command{
	Use:   "index [collection-id] [path]",
	Short: "Index a document into a collection",
	Long: `Reads the file at path, splits it into chunks, embeds them, and stores
the vectors in the collection's namespace. Re-indexing the same file ID
replaces its previous chunks.`,
	Args: cobra.ExactArgs(2),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexFileID, "file-id", "", "stable file identifier (defaults to the file name)")
	indexCmd.Flags().StringVar(&indexSource, "source", "", "display name for citations (defaults to the file name)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if engineService == nil {
		return errors.New("engine not configured")
	}

	collectionID := args[0]
	path := args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	fileID := indexFileID
	if fileID == "" {
		fileID = filepath.Base(path)
	}
	sourceName := indexSource
	if sourceName == "" {
		sourceName = filepath.Base(path)
	}

	ctx := context.Background()
	if err := engineService.IndexDocument(ctx, collectionID, fileID, sourceName, string(data)); err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}

	cmd.Printf("Indexed %s into collection %s (file ID: %s)\n", path, collectionID, fileID)
	return nil
}

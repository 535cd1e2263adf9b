package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List configured collections",
	RunE:  runCollections,
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
}

func runCollections(cmd *cobra.Command, _ []string) error {
	if registryService == nil {
		return errors.New("collection registry not configured")
	}

	ctx := context.Background()
	collections, err := registryService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if len(collections) == 0 {
		cmd.Println("No collections configured.")
		return nil
	}

	cmd.Println("Collections:")
	cmd.Println()
	for i := range collections {
		cmd.Printf("  %s\n", collections[i].ID)
		cmd.Printf("    Namespace:       %s\n", collections[i].VectorNamespace)
		cmd.Printf("    Embedding model: %s\n", collections[i].EmbeddingModelID)
		if collections[i].Template.ModelName != "" {
			cmd.Printf("    Chat model:      %s\n", collections[i].Template.ModelName)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d collections\n", len(collections))
	return nil
}

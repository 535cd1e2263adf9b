package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [collection-id] [file-id]",
	Short: "Remove a document from a collection",
	Long:  `Deletes every chunk of the file from the collection's vector namespace.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if engineService == nil {
		return errors.New("engine not configured")
	}

	collectionID := args[0]
	fileID := args[1]

	ctx := context.Background()
	if err := engineService.RemoveDocument(ctx, collectionID, fileID); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Removed file %s from collection %s\n", fileID, collectionID)
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa/internal/core/ports/driving"
)

var (
	askTopK    int
	askSession string
	askJSON    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [collection-id] [question]",
	Short: "Ask a question against a collection",
	Long: `Embeds the question, retrieves the most similar chunks from the
collection's vector namespace, and generates a grounded answer.`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (0 uses the default)")
	askCmd.Flags().StringVar(&askSession, "session", "", "conversation session identifier")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if engineService == nil {
		return errors.New("engine not configured")
	}

	ctx := context.Background()
	answer, err := engineService.Ask(ctx, driving.AskRequest{
		CollectionID: args[0],
		Question:     args[1],
		SessionID:    askSession,
		TopK:         askTopK,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range answer.Sources {
			cmd.Printf("  - %s\n", src)
		}
	}
	if answer.IsFallback {
		cmd.Println()
		cmd.Println("Note: this is a fallback answer; the model provider was unavailable.")
	}

	return nil
}

package app

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/lumina/internal/gemini"
	"github.com/spf13/cobra"
)

func newExplainCmd() *cobra.Command {
	var flagItem string

	cmd := &cobra.Command{
		Use:   "explain <text>",
		Short: "Ask the AI to explain a passage",
		Long: `Ask for a short explanation of a passage, the same call the reader's
"Explain" action makes. Failures resolve to an apology, never an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contextText := ""
			if flagItem != "" {
				item := session.Library.ByID(flagItem)
				if item == nil {
					return fmt.Errorf("item %q not found", flagItem)
				}
				contextText = item.Content
				if len(contextText) > 1000 {
					contextText = contextText[:1000]
				}
			}
			fmt.Println(gemini.ExplainText(context.Background(), session.AI, args[0], contextText))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagItem, "item", "", "Item ID providing surrounding context")
	return cmd
}

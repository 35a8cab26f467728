package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var startersCategory string

var startersCmd = &cobra.Command{
	Use:   "starters",
	Short: "List conversation starters",
	Long: `List Krishna's conversation starters, optionally filtered by category.

Categories: purpose, relationships, grief, decisions, peace.

Examples:
  sarathi starters
  sarathi starters --category grief`,
	RunE: runStarters,
}

func init() {
	startersCmd.Flags().StringVarP(&startersCategory, "category", "c", "", "filter by category")
}

func runStarters(cmd *cobra.Command, args []string) error {
	result, err := api.Starters(context.Background(), startersCategory)
	if err != nil {
		return fmt.Errorf("fetch starters: %w", err)
	}

	fmt.Printf("Starters (%s):\n", result.Category)
	for _, s := range result.Starters {
		fmt.Printf("  • %s\n", s)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	conversationsUser   string
	conversationsLimit  int
	conversationsOffset int
)

var conversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "List past conversations",
	Long: `List past conversations, newest first.

Without --user, only anonymous conversations are shown.`,
	RunE: runConversations,
}

func init() {
	conversationsCmd.Flags().StringVarP(&conversationsUser, "user", "u", "", "filter by user id")
	conversationsCmd.Flags().IntVarP(&conversationsLimit, "limit", "n", 20, "max conversations to list")
	conversationsCmd.Flags().IntVar(&conversationsOffset, "offset", 0, "pagination offset")
}

func runConversations(cmd *cobra.Command, args []string) error {
	var userID *string
	if conversationsUser != "" {
		userID = &conversationsUser
	}

	page, err := api.Conversations(context.Background(), userID, conversationsLimit, conversationsOffset)
	if err != nil {
		return fmt.Errorf("fetch conversations: %w", err)
	}

	if len(page.Conversations) == 0 {
		fmt.Println("No conversations found.")
		return nil
	}

	for _, c := range page.Conversations {
		fmt.Printf("%s  %s  (%d messages)\n", c.ID, c.Title, c.MessageCount)
		if c.LastMessage != nil {
			fmt.Printf("    %s\n", *c.LastMessage)
		}
	}
	if page.HasMore {
		fmt.Printf("\nMore available; use --offset %d\n", conversationsOffset+conversationsLimit)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var askConversationID string

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send a single message and print the reply",
	Long: `Send one message and print Krishna's reply, without entering the
interactive chat.

A new conversation is started unless --conversation is given, so follow-up
questions can continue the same thread:

  sarathi ask "How do I deal with failure?"
  sarathi ask --conversation conversation:abc "And what about regret?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askConversationID, "conversation", "c", "", "continue an existing conversation")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	conversationID := askConversationID
	if conversationID == "" {
		started, err := api.StartConversation(ctx, nil)
		if err != nil {
			return fmt.Errorf("start conversation: %w", err)
		}
		conversationID = started.ConversationID
	}

	reply, err := api.Chat(ctx, conversationID, args[0])
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	fmt.Println(reply.Response)
	if askConversationID == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n(conversation %s; pass -c %s to continue)\n", conversationID, conversationID)
	}
	return nil
}

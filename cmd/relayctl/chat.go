package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/agentwire/relay/rpc"
)

var sessionID string

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send a chat message to the agent",
	Long: `Sends one message to the agent and prints the reply. The first call
starts a new conversation and prints its session id; pass --session with
that id on later calls to continue the same conversation.

Example:

  relayctl chat "What are the key concepts of the agent protocol?"
  relayctl chat --session <id> "Can you give an example?"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := rpc.NewClient(http.DefaultClient, serverURL)

		resp, err := client.Run(cmd.Context(), agentName, sessionID, args[0])
		if err != nil {
			return fmt.Errorf("chat failed: %w", err)
		}

		for _, msg := range resp.Output {
			fmt.Println(msg.Text())
		}
		fmt.Printf("\nsession: %s\n", resp.SessionID)
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVar(&sessionID, "session", "", "Session id to continue an existing conversation")
	rootCmd.AddCommand(chatCmd)
}

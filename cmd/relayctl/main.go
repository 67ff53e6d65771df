// Command relayctl is a sample caller for a relayd server: it submits chat
// messages over the agent-communication envelope and prints the replies.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	agentName string
)

var rootCmd = &cobra.Command{
	Use:   "relayctl",
	Short: "Client for a relayd agent server",
	Long: `relayctl talks to a relayd server over the agent-communication
envelope. Use "relayctl chat" to send a message and start or continue a
conversation.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8000", "Base URL of the relayd server")
	rootCmd.PersistentFlags().StringVar(&agentName, "agent", "", "Agent name (empty uses the server default)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package message

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Morgane2t/decent-workshop-4/pkg/client"
	"github.com/Morgane2t/decent-workshop-4/pkg/config"
	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
	"github.com/Morgane2t/decent-workshop-4/pkg/messaging"
)

var (
	sendFromID  int
	sendToID    int
	sendMessage string
)

// NewMessageCmd creates a new message command group
func NewMessageCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "message",
		Short: "Message commands",
		Long:  "Commands for sending sealed messages between nodes",
	}

	cmd.AddCommand(newSendCmd())

	return cmd
}

// newSendCmd creates a new send command
func newSendCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "send",
		Short: "Seal a message and enqueue it on the recipient's inbox",
		Long:  "Look up the recipient's published key, seal the message, and enqueue it for delivery",
		RunE:  runSend,
	}

	cmd.Flags().IntVar(&sendFromID, "from", 0, "Sender node ID (required)")
	cmd.Flags().IntVar(&sendToID, "to", 0, "Recipient node ID (required)")
	cmd.Flags().StringVarP(&sendMessage, "message", "m", "", "Message to send (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	appConfig, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(appConfig.Environment, false)

	natsConn, err := messaging.GetNATSConnection()
	if err != nil {
		return err
	}

	c, err := client.NewClient(client.Options{NatsConn: natsConn})
	if err != nil {
		return err
	}

	messageID, err := c.SendMessage(sendFromID, sendToID, sendMessage)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	fmt.Printf("Message %s enqueued for node %d\n", messageID, sendToID)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Morgane2t/decent-workshop-4/internal/node/consumer"
	"github.com/Morgane2t/decent-workshop-4/internal/node/identity"
	"github.com/Morgane2t/decent-workshop-4/pkg/client"
	"github.com/Morgane2t/decent-workshop-4/pkg/config"
	"github.com/Morgane2t/decent-workshop-4/pkg/dedup"
	"github.com/Morgane2t/decent-workshop-4/pkg/encryption"
	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
	"github.com/Morgane2t/decent-workshop-4/pkg/messaging"
	"github.com/Morgane2t/decent-workshop-4/pkg/registry"
	"github.com/Morgane2t/decent-workshop-4/pkg/types"
)

// NewStartCmd creates a new start command
func NewStartCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "start",
		Short: "Start a node",
		Long:  "Start a node with the specified configuration",
		RunE:  runNode,
	}

	cmd.Flags().IntP("id", "i", 0, "Node ID (required)")
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	cmd.Flags().BoolP("decrypt-private-key", "d", false, "Decrypt node private key")
	cmd.Flags().BoolP("prompt-credentials", "p", false, "Prompt for sensitive parameters")
	cmd.Flags().StringP("password-file", "f", "", "Path to file containing BadgerDB password")
	cmd.Flags().StringP("identity-password-file", "k", "", "Path to file containing password for decrypting .age encrypted node private key")
	cmd.Flags().Bool("debug", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runNode(cmd *cobra.Command, args []string) error {
	nodeID, _ := cmd.Flags().GetInt("id")
	configPath, _ := cmd.Flags().GetString("config")
	decryptPrivateKey, _ := cmd.Flags().GetBool("decrypt-private-key")
	usePrompts, _ := cmd.Flags().GetBool("prompt-credentials")
	passwordFile, _ := cmd.Flags().GetString("password-file")
	agePasswordFile, _ := cmd.Flags().GetString("identity-password-file")
	debug, _ := cmd.Flags().GetBool("debug")

	config.SetEnvConfigPath(configPath)
	appConfig, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(appConfig.Environment, debug)

	if passwordFile != "" {
		if err := loadPasswordFromFile(passwordFile); err != nil {
			return fmt.Errorf("failed to load password from file: %w", err)
		}
	}
	if usePrompts {
		promptForSensitiveCredentials()
	} else {
		checkRequiredConfigValues()
	}

	identityStore, err := identity.NewFileStore(appConfig.IdentityDir, nodeID, decryptPrivateKey, agePasswordFile)
	if err != nil {
		logger.Fatal("Failed to create identity store", err)
	}

	archive := NewBadgerArchive(nodeID)
	defer archive.Close()

	natsConn, err := messaging.GetNATSConnection()
	if err != nil {
		logger.Fatal("Failed to connect to NATS", err)
	}

	registryClient, err := client.NewClient(client.Options{NatsConn: natsConn})
	if err != nil {
		logger.Fatal("Failed to create registry client", err)
	}

	outcome, err := registryClient.RegisterNode(nodeID, identityStore.PublicKeyText())
	if err != nil {
		logger.Fatal("Failed to register node", err)
	}
	switch outcome {
	case registry.Registered:
		logger.Info("Node registered", "ID", nodeID)
	case registry.AlreadyRegistered:
		logger.Warn("Node already registered, continuing with existing identity", "ID", nodeID)
	}

	tracker := dedup.NewTracker(1*time.Minute, 10*time.Minute)
	go tracker.StartCleanup()
	defer tracker.Stop()

	deadLetters := consumer.NewDeadLetterConsumer(natsConn, func(envMsg types.EnvelopeMessage) {
		if err := archive.Put("deadletter/"+envMsg.ID, []byte(fmt.Sprintf("from=%d", envMsg.From))); err != nil {
			logger.Error("Failed to archive dead-lettered envelope", err, "ID", envMsg.ID)
		}
	})
	deadLetters.Run()
	defer deadLetters.Close()

	inbox, err := registryClient.Inbox(nodeID)
	if err != nil {
		logger.Fatal("Failed to open inbox", err)
	}
	defer inbox.Close()

	err = inbox.Dequeue(func(message []byte) error {
		var envMsg types.EnvelopeMessage
		if err := json.Unmarshal(message, &envMsg); err != nil {
			return fmt.Errorf("parse envelope message: %w", err)
		}

		if tracker.IsDuplicate(envMsg.ID) {
			return nil
		}

		plaintext, err := encryption.OpenEnvelope(&envMsg.Envelope, identityStore.PrivateKey())
		if err != nil {
			return fmt.Errorf("open envelope %s: %w", envMsg.ID, err)
		}

		if err := archive.Put(envMsg.ID, []byte(plaintext)); err != nil {
			return fmt.Errorf("archive message %s: %w", envMsg.ID, err)
		}

		tracker.MarkSeen(envMsg.ID)
		logger.Info("Message received", "ID", envMsg.ID, "from", envMsg.From)
		return nil
	})
	if err != nil {
		logger.Fatal("Failed to consume inbox", err)
	}

	logger.Info("Node is running", "ID", nodeID)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Warn("Shutdown signal received, draining...")
	if err := natsConn.Drain(); err != nil {
		logger.Error("Failed to drain NATS connection", err)
	}
	return nil
}

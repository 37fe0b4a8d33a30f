package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Morgane2t/decent-workshop-4/internal/server"
	"github.com/Morgane2t/decent-workshop-4/pkg/config"
	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
	"github.com/Morgane2t/decent-workshop-4/pkg/messaging"
	"github.com/Morgane2t/decent-workshop-4/pkg/registry"
)

// NewStartCmd creates a new start command
func NewStartCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "start",
		Short: "Start the registry service",
		Long:  "Start the registry service with the specified configuration",
		RunE:  runRegistry,
	}

	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	cmd.Flags().Bool("debug", false, "Enable debug logging")

	return cmd
}

func runRegistry(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	config.SetEnvConfigPath(configPath)
	appConfig, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(appConfig.Environment, debug)

	store := registry.NewStore()

	natsConn, err := messaging.GetNATSConnection()
	if err != nil {
		logger.Fatal("Failed to connect to NATS", err)
	}

	service := server.NewService(store)
	srv := server.NewServer(natsConn, service)
	if err := srv.Start(); err != nil {
		logger.Fatal("Failed to start registry server", err)
	}
	defer srv.Close()

	logger.Info("Registry service is running", "store", appConfig.RegistryStore)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Warn("Shutdown signal received, draining...")
	if err := natsConn.Drain(); err != nil {
		logger.Error("Failed to drain NATS connection", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Morgane2t/decent-workshop-4/cmd/cli/envelope"
	"github.com/Morgane2t/decent-workshop-4/cmd/cli/identity"
	"github.com/Morgane2t/decent-workshop-4/cmd/cli/message"
	"github.com/Morgane2t/decent-workshop-4/cmd/cli/registry"
	"github.com/Morgane2t/decent-workshop-4/pkg/config"
)

const (
	// Version information
	VERSION = "0.1.0"
)

var (
	configFile string
)

func main() {
	ctx := context.Background()

	rootCmd.AddCommand(identity.NewIdentityCmd(ctx))
	rootCmd.AddCommand(registry.NewRegistryCmd())
	rootCmd.AddCommand(envelope.NewEnvelopeCmd())
	rootCmd.AddCommand(message.NewMessageCmd())
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "registry-cli",
	Short: "Registry CLI",
	Long:  "CLI for node identity, registry, and envelope operations",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.SetEnvConfigPath(configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display detailed version information",
	Long:  "Display detailed version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("registry-cli version %s\n", VERSION)
	},
}

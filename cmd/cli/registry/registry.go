package registry

import (
	"github.com/spf13/cobra"

	"github.com/Morgane2t/decent-workshop-4/pkg/client"
	"github.com/Morgane2t/decent-workshop-4/pkg/config"
	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
	"github.com/Morgane2t/decent-workshop-4/pkg/messaging"
)

// NewRegistryCmd creates a new registry command group
func NewRegistryCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "registry",
		Short: "Registry commands",
		Long:  "Commands for registering nodes and inspecting the directory",
	}

	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

func newClient() (*client.Client, error) {
	appConfig, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(appConfig.Environment, false)

	natsConn, err := messaging.GetNATSConnection()
	if err != nil {
		return nil, err
	}

	return client.NewClient(client.Options{NatsConn: natsConn})
}

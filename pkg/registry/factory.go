package registry

import (
	"fmt"

	"github.com/Morgane2t/decent-workshop-4/pkg/config"
	"github.com/Morgane2t/decent-workshop-4/pkg/infra"
	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
)

// NewStore builds the registry backing configured for this deployment. The
// memory store is the default; Consul and Postgres are deployment options, not
// a durability contract.
func NewStore() Store {
	cfg := config.GetConfig()
	switch cfg.RegistryStore {
	case config.RegistryStoreMemory:
		logger.Info("Using in-memory registry store")
		return NewMemoryStore()

	case config.RegistryStoreConsul:
		consulClient := infra.GetConsulClient(cfg.Environment)
		logger.Info("Using consul registry store")
		return NewConsulStore(consulClient.KV())

	case config.RegistryStorePostgres:
		store, err := NewPostgresStore(PostgresConfig{DSN: cfg.PostgresDSN})
		if err != nil {
			logger.Fatal("Failed to create postgres registry store", err)
		}
		logger.Info("Using postgres registry store")
		return store

	default:
		logger.Fatal("Unsupported registry store configured", fmt.Errorf("registry store %q is not supported", cfg.RegistryStore))
		return nil
	}
}

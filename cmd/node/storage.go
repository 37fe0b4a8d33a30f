package main

import (
	"fmt"
	"path/filepath"

	"github.com/Morgane2t/decent-workshop-4/pkg/config"
	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
	"github.com/Morgane2t/decent-workshop-4/pkg/storage"
)

// NewBadgerArchive opens the node's encrypted message archive under the
// configured db_path.
func NewBadgerArchive(nodeID int) *storage.BadgerStore {
	basePath := config.DBPath()
	if basePath == "" {
		basePath = filepath.Join(".", "db")
	}
	dbPath := filepath.Join(basePath, fmt.Sprintf("node%d", nodeID))

	badgerConfig := storage.BadgerConfig{
		EncryptionKey: storage.DeriveEncryptionKey(config.BadgerPassword()),
		DBPath:        dbPath,
	}

	archive, err := storage.NewBadgerStore(badgerConfig)
	if err != nil {
		logger.Fatal("Failed to create badger archive", err)
	}
	logger.Info("Connected to badger archive", "path", dbPath)
	return archive
}

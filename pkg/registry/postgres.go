package registry

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresConfig holds connection settings for the Postgres-backed registry.
type PostgresConfig struct {
	DSN             string        `json:"dsn"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	MaxOpenConns    int           `json:"max_open_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
}

type nodeRecord struct {
	Seq       uint      `gorm:"column:seq;primaryKey;autoIncrement"`
	NodeID    int       `gorm:"column:node_id;uniqueIndex"`
	PubKey    string    `gorm:"column:pub_key;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (nodeRecord) TableName() string {
	return "registry_nodes"
}

// postgresStore delegates the double-uniqueness invariant to database unique
// constraints, so check-then-act is atomic across processes, not just within
// this one.
type postgresStore struct {
	db *gorm.DB
}

var _ Store = (*postgresStore)(nil)

// NewPostgresStore constructs a Postgres-backed registry and migrates its
// table.
func NewPostgresStore(cfg PostgresConfig) (Store, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("retrieve sql.DB from gorm: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.AutoMigrate(&nodeRecord{}); err != nil {
		return nil, fmt.Errorf("migrate registry table: %w", err)
	}

	return &postgresStore{db: db}, nil
}

func (s *postgresStore) Register(node Node) (Outcome, error) {
	record := nodeRecord{NodeID: node.NodeID, PubKey: node.PubKey}
	if err := s.db.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return AlreadyRegistered, nil
		}
		return "", fmt.Errorf("insert node: %w", err)
	}
	return Registered, nil
}

func (s *postgresStore) ListNodes() ([]Node, error) {
	var records []nodeRecord
	if err := s.db.Order("seq asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}

	nodes := make([]Node, 0, len(records))
	for _, record := range records {
		nodes = append(nodes, Node{NodeID: record.NodeID, PubKey: record.PubKey})
	}
	return nodes, nil
}

package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// Environment constants
	Production  = "production"
	Development = "development"

	// Registry store backends
	RegistryStoreMemory   = "memory"
	RegistryStoreConsul   = "consul"
	RegistryStorePostgres = "postgres"

	defaultRegistryStore = RegistryStoreMemory
	defaultDBPath        = "."
	defaultIdentityDir   = "identity"

	EnvConfigFile = "REGISTRY_CONFIG_FILE"
)

type Config struct {
	Consul *ConsulConfig `mapstructure:"consul"`
	NATs   *NATsConfig   `mapstructure:"nats"`

	Environment string `mapstructure:"environment"`

	// Registry store configuration
	RegistryStore string `mapstructure:"registry_store"`
	PostgresDSN   string `mapstructure:"postgres_dsn"`

	// Node keystore configuration
	BadgerPassword string `mapstructure:"badger_password"`
	DBPath         string `mapstructure:"db_path"`
	IdentityDir    string `mapstructure:"identity_dir"`
}

type ConsulConfig struct {
	Address  string `mapstructure:"address"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Token    string `mapstructure:"token"`
}

type NATsConfig struct {
	URL      string     `mapstructure:"url"`
	Username string     `mapstructure:"username"`
	Password string     `mapstructure:"password"`
	TLS      *TLSConfig `mapstructure:"tls"`
}

type TLSConfig struct {
	ClientCert string `mapstructure:"client_cert"`
	ClientKey  string `mapstructure:"client_key"`
	CACert     string `mapstructure:"ca_cert"`
}

var (
	app *Config
	mu  sync.RWMutex
)

func initConfig() error {
	// env
	viper.SetEnvPrefix("REGISTRY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("environment", Development)
	viper.SetDefault("registry_store", defaultRegistryStore)
	viper.SetDefault("db_path", defaultDBPath)
	viper.SetDefault("identity_dir", defaultIdentityDir)

	// set env config file
	configFile := os.Getenv(EnvConfigFile)
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/registry/")
		viper.AddConfigPath("$HOME/.registry/")
	}

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("viper read config: %w", err)
	}

	return nil
}

func SetEnvConfigPath(configPath string) {
	if configPath != "" {
		os.Setenv(EnvConfigFile, configPath)
	}
}

func LoadConfig() (*Config, error) {
	var cfg Config
	decoderConfig := &mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateEnvironment(cfg.Environment); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := validateRegistryStore(cfg.RegistryStore); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	setConfig(&cfg)
	return &cfg, nil
}

func Load() (*Config, error) {
	if err := initConfig(); err != nil {
		return nil, err
	}
	return LoadConfig()
}

func validateEnvironment(environment string) error {
	validEnvironments := []string{Production, Development}

	if !slices.Contains(validEnvironments, environment) {
		return fmt.Errorf("invalid environment '%s'. Must be one of: %s", environment, strings.Join(validEnvironments, ", "))
	}
	return nil
}

func validateRegistryStore(store string) error {
	validStores := []string{RegistryStoreMemory, RegistryStoreConsul, RegistryStorePostgres}

	if !slices.Contains(validStores, store) {
		return fmt.Errorf("invalid registry store '%s'. Must be one of: %s", store, strings.Join(validStores, ", "))
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = Development
	}
	if cfg.RegistryStore == "" {
		cfg.RegistryStore = defaultRegistryStore
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.IdentityDir == "" {
		cfg.IdentityDir = defaultIdentityDir
	}
}

func setConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	app = cfg
}

// These helper functions centralize access to runtime configuration data.

// GetConfig returns the in-memory application configuration.
// It panics if the configuration has not been loaded yet.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if app == nil {
		panic("configuration not loaded")
	}
	return app
}

// Update applies the provided function while holding the configuration write lock.
// It panics if the configuration has not been loaded yet.
func Update(fn func(cfg *Config)) {
	mu.Lock()
	defer mu.Unlock()
	if app == nil {
		panic("configuration not loaded")
	}
	fn(app)
}

func BadgerPassword() string {
	return GetConfig().BadgerPassword
}

func SetBadgerPassword(password string) {
	Update(func(cfg *Config) {
		cfg.BadgerPassword = password
	})
}

func RegistryStore() string {
	return GetConfig().RegistryStore
}

func PostgresDSN() string {
	return GetConfig().PostgresDSN
}

func DBPath() string {
	return GetConfig().DBPath
}

func IdentityDir() string {
	return GetConfig().IdentityDir
}

func NATs() *NATsConfig {
	return GetConfig().NATs
}

func Environment() string {
	return GetConfig().Environment
}

func IsProduction() bool {
	return strings.EqualFold(Environment(), Production)
}

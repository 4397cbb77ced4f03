package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/ward-allocator/pkg/core/allocator"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"

	// DatabaseURLEnv overrides storage.databaseURL when set
	DatabaseURLEnv = "DATABASE_URL"

	configFileBase = "ward_config"
)

// StorageConfig selects where the patient list is kept
type StorageConfig struct {
	Backend     string `yaml:"backend" validate:"required,oneof=file postgres"`
	Path        string `yaml:"path,omitempty" validate:"required_if=Backend file"`
	DatabaseURL string `yaml:"databaseURL,omitempty" validate:"required_if=Backend postgres"`
}

// PoolsConfig holds the default resource capacities used by allocate
type PoolsConfig struct {
	Beds        int `yaml:"beds" validate:"gte=0"`
	Ventilators int `yaml:"ventilators" validate:"gte=0"`
	Doctors     int `yaml:"doctors" validate:"gte=0"`
}

// ResourcePools converts the configured defaults into allocation engine pools
func (p PoolsConfig) ResourcePools() allocator.ResourcePools {
	return allocator.ResourcePools{
		TotalBeds:        p.Beds,
		TotalVentilators: p.Ventilators,
		TotalDoctors:     p.Doctors,
	}
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Storage  StorageConfig `yaml:"storage"`
	Pools    PoolsConfig   `yaml:"pools"`
	Server   ServerConfig  `yaml:"server,omitempty"`
	Language string        `yaml:"language,omitempty" validate:"omitempty,oneof=en bn"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from ward_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for the given environment.
// ward_config.<env>.yaml is preferred, falling back to ward_config.yaml.
func LoadWithEnv(env string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if url := os.Getenv(DatabaseURLEnv); url != "" {
		cfg.Storage.DatabaseURL = url
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// applyDefaults fills optional fields that were left empty
func applyDefaults(cfg *Config) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendFile
	}
	if cfg.Storage.Backend == BackendFile && cfg.Storage.Path == "" {
		cfg.Storage.Path = "patients.json"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	candidates := []string{configFileBase + ".yaml"}
	if env != "" {
		candidates = append([]string{fmt.Sprintf("%s.%s.yaml", configFileBase, env)}, candidates...)
	}

	homeDir, homeErr := os.UserHomeDir()

	for _, name := range candidates {
		// Check current directory
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}

		// Check home directory
		if homeErr != nil {
			continue
		}
		homeConfigPath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homeConfigPath); err == nil {
			return homeConfigPath, nil
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port    string `yaml:"port"     env:"PORT"     env-default:"3000"`
	AppName string `yaml:"app_name" env:"APP_NAME" env-default:"Warehouse Inventory v1.0"`
}

// DatabaseConfig selects the GORM driver backing the key-value store.
// DB_HOST and friends are only consulted for postgres when DATABASE_URL is empty.
type DatabaseConfig struct {
	Driver     string `yaml:"driver"      env:"DB_DRIVER"    env-default:"sqlite"`
	URL        string `yaml:"url"         env:"DATABASE_URL"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"  env-default:"inventory.db"`
	Host       string `yaml:"host"        env:"DB_HOST"`
	User       string `yaml:"user"        env:"DB_USER"`
	Password   string `yaml:"password"    env:"DB_PASSWORD"`
	Name       string `yaml:"name"        env:"DB_NAME"`
	Port       string `yaml:"port"        env:"DB_PORT"`
}

// SheetsConfig holds the read-only Google Sheets source settings.
// Both sheet ids may point at the same spreadsheet when it carries both tabs.
type SheetsConfig struct {
	APIKey           string        `yaml:"api_key"            env:"GOOGLE_SHEETS_API_KEY"`
	InventorySheetID string        `yaml:"inventory_sheet_id" env:"GOOGLE_SHEET_ID"`
	UsersSheetID     string        `yaml:"users_sheet_id"     env:"GOOGLE_USERS_SHEET_ID"`
	BaseURL          string        `yaml:"base_url"           env:"GOOGLE_SHEETS_BASE_URL" env-default:"https://sheets.googleapis.com/v4"`
	InventoryRange   string        `yaml:"inventory_range"    env:"INVENTORY_RANGE"        env-default:"Inventory!A2:I"`
	UsersRange       string        `yaml:"users_range"        env:"USERS_RANGE"            env-default:"Users!A2:K"`
	SyncIntervalMS   int           `yaml:"sync_interval"      env:"SYNC_INTERVAL"          env-default:"5000"`
	Timeout          time.Duration `yaml:"timeout"            env:"SHEETS_TIMEOUT"         env-default:"10s"`
	AutoStart        bool          `yaml:"autostart"          env:"SYNC_AUTOSTART"         env-default:"true"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"     env:"JWT_SECRET"     env-default:"your-super-secret-key-change-in-production"`
	TokenTTL      time.Duration `yaml:"token_ttl"      env:"TOKEN_TTL"      env-default:"24h"`
	HashPasswords bool          `yaml:"hash_passwords" env:"HASH_PASSWORDS" env-default:"false"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
}

// InventoryConfigured reports whether the inventory sheet can be polled.
func (c SheetsConfig) InventoryConfigured() bool {
	return c.APIKey != "" && c.InventorySheetID != ""
}

// UsersConfigured reports whether the users sheet can be polled.
func (c SheetsConfig) UsersConfigured() bool {
	return c.APIKey != "" && c.UsersSheetID != ""
}

// SyncInterval falls back to 5s for non-positive values, same as an unset SYNC_INTERVAL.
func (c SheetsConfig) SyncInterval() time.Duration {
	if c.SyncIntervalMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.SyncIntervalMS) * time.Millisecond
}

// Load reads .env (if present), then an optional YAML file named by CONFIG_PATH,
// then the environment. Environment values win over YAML.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}

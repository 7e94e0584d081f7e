package config

import (
	"fmt"
	"strings"
	"time"

	"nova-library/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	AppMode string `envconfig:"APP_MODE" default:"dev"`
	Port    string `envconfig:"PORT" default:"3000"`

	Server     ServerConfig
	Store      StoreConfig
	Database   DatabaseConfig
	Supabase   SupabaseConfig
	Session    SessionConfig
	Storefront StorefrontConfig
	Staff      StaffConfig
	Sweeper    SweeperConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	ReadTimeout    time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout   time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	AllowedOrigins string        `envconfig:"ALLOWED_ORIGINS" default:""`
}

// StoreConfig selects the table store backend
type StoreConfig struct {
	// mysql, postgres, sqlite or supabase
	Driver      string `envconfig:"STORE_DRIVER" default:"sqlite"`
	AutoMigrate bool   `envconfig:"STORE_AUTO_MIGRATE" default:"true"`
	SeedOnStart bool   `envconfig:"STORE_SEED_ON_START" default:"false"`
}

// DatabaseConfig holds SQL connection settings
type DatabaseConfig struct {
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       string `envconfig:"DB_PORT" default:"3306"`
	User       string `envconfig:"DB_USER" default:"root"`
	Password   string `envconfig:"DB_PASS" default:""`
	DBName     string `envconfig:"DB_NAME" default:"nova_library"`
	SSLMode    string `envconfig:"DB_SSLMODE" default:"require"`
	SQLitePath string `envconfig:"DB_SQLITE_PATH" default:"./data/nova.db"`
}

// SupabaseConfig holds the hosted table API credentials.
// The lib_inventory, lib_members and lib_rentals tables must use bigint
// identity ids; QR labels and checkout links carry the integer id.
type SupabaseConfig struct {
	URL     string        `envconfig:"SUPABASE_URL" default:""`
	Key     string        `envconfig:"SUPABASE_KEY" default:""`
	Timeout time.Duration `envconfig:"SUPABASE_TIMEOUT" default:"10s"`
}

// SessionConfig holds visitor session settings. Empty RedisAddr keeps sessions in memory.
type SessionConfig struct {
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	Expiration    time.Duration `envconfig:"SESSION_EXPIRATION" default:"24h"`
	CookieSecure  bool          `envconfig:"COOKIE_SECURE" default:"false"`
}

// StorefrontConfig holds pricing and public link settings
type StorefrontConfig struct {
	PublicBaseURL    string `envconfig:"PUBLIC_BASE_URL" default:"https://aicon-library.streamlit.app"`
	RentalPrice      int64  `envconfig:"RENTAL_PRICE" default:"1500"`
	CurrencySymbol   string `envconfig:"CURRENCY_SYMBOL" default:"₦"`
	RentalDays       int    `envconfig:"RENTAL_DAYS" default:"7"`
	PaymentLink      string `envconfig:"PAYMENT_LINK" default:"https://selar.com/d20is52cl1"`
	PlaceholderCover string `envconfig:"PLACEHOLDER_COVER" default:"https://via.placeholder.com/200x300?text=No+Cover"`
}

// StaffConfig holds admin unlock settings
type StaffConfig struct {
	AdminPIN        string `envconfig:"ADMIN_PIN" default:"NovaAdmin2026"`
	JWTSecret       string `envconfig:"JWT_SECRET" default:"default_secret"`
	AccessTokenMins int    `envconfig:"ACCESS_TOKEN_MINUTES" default:"120"`
}

// SweeperConfig controls the stale reservation job. Empty Schedule disables it.
type SweeperConfig struct {
	Schedule string        `envconfig:"SWEEPER_SCHEDULE" default:"@every 15m"`
	Hold     time.Duration `envconfig:"SWEEPER_HOLD" default:"48h"`
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	log := logger.Get()

	// .env is optional in production
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	AppConfig = &cfg

	log.Info().Str("mode", cfg.AppMode).Str("store", cfg.Store.Driver).Msg("configuration loaded")
	return &cfg, nil
}

func (c *Config) normalize() error {
	// trim spaces for Windows-edited .env files
	c.AppMode = strings.TrimSpace(c.AppMode)
	if c.AppMode != "dev" && c.AppMode != "prod" {
		return fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", c.AppMode)
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case "mysql", "postgres", "sqlite":
	case "supabase":
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required for the supabase store")
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER: '%s'", c.Store.Driver)
	}

	if c.Storefront.RentalDays < 1 {
		return fmt.Errorf("RENTAL_DAYS must be positive")
	}
	if c.Staff.AdminPIN == "" {
		c.Staff.AdminPIN = "NovaAdmin2026"
	}
	c.Storefront.PublicBaseURL = strings.TrimRight(c.Storefront.PublicBaseURL, "/")
	return nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.Server.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return c.Storefront.PublicBaseURL
	}
	return c.Server.AllowedOrigins
}

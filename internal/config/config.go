package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"cms-extensions/internal/text"
)

var (
	cfg     *APIConfig
	cfgErr  error
	once    sync.Once
	envFile = ".env"
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName        xml.Name             `xml:"API"`
	RequestDump    bool                 `xml:"REQUEST_DUMP,attr"`
	Context        ContextConfig        `xml:"CONTEXT"`
	Authentication AuthenticationConfig `xml:"AUTHENTICATION"`
	Pagination     PaginationConfig     `xml:"PAGINATION"`
	DB             DBConfig             `xml:"DB"`
	Logging        LoggingConfig        `xml:"LOGGING"`
	RateLimit      RateLimitConfig      `xml:"RATE_LIMIT"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port     int    `xml:"PORT"`
	Host     string `xml:"HOST"`
	Path     string `xml:"PATH"`
	TimeZone string `xml:"TIME_ZONE"`
}

// AuthenticationConfig holds the admin account and token settings.
type AuthenticationConfig struct {
	EnableTokenAuth   bool   `xml:"ENABLE_TOKEN_AUTH"`
	SessionTimeout    int    `xml:"SESSION_TIMEOUT"`
	AdminUser         string `xml:"ADMIN_USER"`
	AdminPasswordHash string `xml:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string `xml:"JWT_SECRET"`
}

// PaginationConfig holds pagination settings.
type PaginationConfig struct {
	PageSize int `xml:"PAGE_SIZE"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Host     string       `xml:"HOST"`
	Port     int          `xml:"PORT"`
	Driver   string       `xml:"DRIVER"`
	SSLMode  string       `xml:"SSL_MODE"`
	Name     string       `xml:"NAME"`
	Username string       `xml:"USERNAME"`
	Password DBPassword   `xml:"PASSWORD"`
	Pool     DBPoolConfig `xml:"POOL"`
}

// DBPassword holds password details. TYPE="encrypted" values are produced
// by text.Encrypt with the CMS_CONFIG_KEY passphrase and PasswordSalt.
type DBPassword struct {
	Type  string `xml:"TYPE,attr"`
	Value string `xml:",chardata"`
}

// DBPoolConfig holds database connection pooling settings.
type DBPoolConfig struct {
	MaxOpenConns    int `xml:"MAX_OPEN_CONNS"`
	MaxIdleConns    int `xml:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int `xml:"CONN_MAX_LIFETIME"`
}

// LoggingConfig controls the rotating log files.
type LoggingConfig struct {
	Dir        string `xml:"DIR"`
	MaxSizeMB  int    `xml:"MAX_SIZE_MB"`
	MaxBackups int    `xml:"MAX_BACKUPS"`
	MaxAgeDays int    `xml:"MAX_AGE_DAYS"`
}

// RateLimitConfig configures the per-process request limiter. A zero rate
// disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `xml:"REQUESTS_PER_SECOND"`
	Burst             int     `xml:"BURST"`
}

// DSN renders the postgres connection string.
func (c DBConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password.Value, c.Name, sslMode)
}

const defaultPageSize = 20

// PasswordSalt salts the key used for encrypted config values.
var PasswordSalt = []byte("cms-extensions/config")

var ErrMissingConfigKey = errors.New("config: CMS_CONFIG_KEY is required for encrypted values")

// Parse decodes an XML document, fills defaults and applies environment
// overrides.
func Parse(data []byte) (*APIConfig, error) {
	var newCfg APIConfig
	if err := xml.Unmarshal(data, &newCfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if newCfg.Pagination.PageSize <= 0 {
		newCfg.Pagination.PageSize = defaultPageSize
	}
	if newCfg.Logging.Dir == "" {
		newCfg.Logging.Dir = "logs"
	}
	loadDotEnv()
	if err := decryptPassword(&newCfg.DB.Password); err != nil {
		return nil, err
	}
	applyEnv(&newCfg)
	return &newCfg, nil
}

// loadDotEnv never overrides variables already set in the environment.
func loadDotEnv() {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "config: ignoring %s: %v\n", envFile, err)
	}
}

func decryptPassword(p *DBPassword) error {
	if !strings.EqualFold(p.Type, "encrypted") {
		return nil
	}
	key := os.Getenv("CMS_CONFIG_KEY")
	if key == "" {
		return ErrMissingConfigKey
	}
	plain, err := text.Decrypt(strings.TrimSpace(p.Value), key, PasswordSalt)
	if err != nil {
		return fmt.Errorf("config: db password: %w", err)
	}
	p.Value = plain
	return nil
}

// applyEnv lets deployment secrets stay out of config.xml.
func applyEnv(c *APIConfig) {
	if v := os.Getenv("CMS_DB_PASSWORD"); v != "" {
		c.DB.Password.Value = v
	}
	if v := os.Getenv("CMS_JWT_SECRET"); v != "" {
		c.Authentication.JWTSecret = v
	}
	if v := os.Getenv("CMS_ADMIN_PASSWORD_HASH"); v != "" {
		c.Authentication.AdminPasswordHash = v
	}
}

// LoadConfig loads and parses the XML configuration from the given file.
// The file is read once per process.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	once.Do(func() {
		data, err := os.ReadFile(xmlPath)
		if err != nil {
			cfgErr = fmt.Errorf("%w: %v", os.ErrInvalid, err)
			return
		}
		cfg, cfgErr = Parse(data)
	})
	return cfg, cfgErr
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}

package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Auth type constants
const (
	AuthTypeNone   = "none"
	AuthTypeBasic  = "basic"
	AuthTypeAPIKey = "apikey"
)

// DefaultRawHost is the raw-content host for github.com.
const DefaultRawHost = "raw.githubusercontent.com"

// DefaultScanExtensions is the default file-extension allow-list for scans.
var DefaultScanExtensions = []string{".json", ".md", ".txt", ".yaml", ".yml"}

// AuthSettings configuration for SSE transport authentication
type AuthSettings struct {
	Type    string            `mapstructure:"type"` // AuthTypeNone, AuthTypeBasic, or AuthTypeAPIKey
	Basic   BasicAuthSettings `mapstructure:"basic"`
	APIKeys []string          `mapstructure:"api_keys"`
}

// BasicAuthSettings configuration for basic auth
type BasicAuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// GitHubSettings configuration for the hosting API
type GitHubSettings struct {
	Token      string   `mapstructure:"token"`
	APIBase    string   `mapstructure:"api_base"` // empty means api.github.com
	RawHost    string   `mapstructure:"raw_host"`
	Extensions []string `mapstructure:"extensions"`
}

// SMTPSettings configuration for the email notification channel
type SMTPSettings struct {
	Enabled    bool     `mapstructure:"enabled"`
	Host       string   `mapstructure:"host"`
	Port       int      `mapstructure:"port"`
	From       string   `mapstructure:"from"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	Recipients []string `mapstructure:"recipients"`
}

// Settings application settings
type Settings struct {
	Transport string         `mapstructure:"transport"`
	Host      string         `mapstructure:"host"`
	Port      int            `mapstructure:"port"`
	Auth      AuthSettings   `mapstructure:"auth"`
	GitHub    GitHubSettings `mapstructure:"github"`
	SMTP      SMTPSettings   `mapstructure:"smtp"`
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("transport", "stdio")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("auth.type", AuthTypeNone)

	// GitHub defaults
	v.SetDefault("github.raw_host", DefaultRawHost)
	v.SetDefault("github.extensions", DefaultScanExtensions)

	// SMTP defaults
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 587)

	// Environment variables
	v.SetEnvPrefix("INCIDENT_MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific env vars for nested config
	_ = v.BindEnv("auth.type", "INCIDENT_MCP_AUTH_TYPE")
	_ = v.BindEnv("auth.basic.username", "INCIDENT_MCP_AUTH_BASIC_USERNAME")
	_ = v.BindEnv("auth.basic.password", "INCIDENT_MCP_AUTH_BASIC_PASSWORD")
	_ = v.BindEnv("auth.api_keys", "INCIDENT_MCP_AUTH_API_KEYS")

	// GitHub env var bindings
	_ = v.BindEnv("github.token", "INCIDENT_MCP_GITHUB_TOKEN")
	_ = v.BindEnv("github.api_base", "INCIDENT_MCP_GITHUB_API_BASE")
	_ = v.BindEnv("github.raw_host", "INCIDENT_MCP_GITHUB_RAW_HOST")
	_ = v.BindEnv("github.extensions", "INCIDENT_MCP_GITHUB_EXTENSIONS")

	// SMTP env var bindings
	_ = v.BindEnv("smtp.enabled", "INCIDENT_MCP_SMTP_ENABLED")
	_ = v.BindEnv("smtp.host", "INCIDENT_MCP_SMTP_HOST")
	_ = v.BindEnv("smtp.port", "INCIDENT_MCP_SMTP_PORT")
	_ = v.BindEnv("smtp.from", "INCIDENT_MCP_SMTP_FROM")
	_ = v.BindEnv("smtp.username", "INCIDENT_MCP_SMTP_USERNAME")
	_ = v.BindEnv("smtp.password", "INCIDENT_MCP_SMTP_PASSWORD")
	_ = v.BindEnv("smtp.recipients", "INCIDENT_MCP_SMTP_RECIPIENTS")

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		_ = v.BindPFlag("transport", flags.Lookup("transport"))
		_ = v.BindPFlag("host", flags.Lookup("host"))
		_ = v.BindPFlag("port", flags.Lookup("port"))
		_ = v.BindPFlag("auth.type", flags.Lookup("auth-type"))
		_ = v.BindPFlag("auth.basic.username", flags.Lookup("auth-basic-username"))
		_ = v.BindPFlag("auth.basic.password", flags.Lookup("auth-basic-password"))
		_ = v.BindPFlag("auth.api_keys", flags.Lookup("auth-api-keys"))

		// GitHub CLI flags
		_ = v.BindPFlag("github.token", flags.Lookup("github-token"))
		_ = v.BindPFlag("github.api_base", flags.Lookup("github-api-base"))
		_ = v.BindPFlag("github.raw_host", flags.Lookup("github-raw-host"))
		_ = v.BindPFlag("github.extensions", flags.Lookup("github-extensions"))

		// SMTP CLI flags
		_ = v.BindPFlag("smtp.enabled", flags.Lookup("smtp-enabled"))
		_ = v.BindPFlag("smtp.host", flags.Lookup("smtp-host"))
		_ = v.BindPFlag("smtp.port", flags.Lookup("smtp-port"))
		_ = v.BindPFlag("smtp.from", flags.Lookup("smtp-from"))
		_ = v.BindPFlag("smtp.username", flags.Lookup("smtp-username"))
		_ = v.BindPFlag("smtp.password", flags.Lookup("smtp-password"))
		_ = v.BindPFlag("smtp.recipients", flags.Lookup("smtp-recipients"))
	}

	// Helper to look for .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// Handle explicit parsing of list settings provided via env vars as
	// comma-separated strings
	settings.Auth.APIKeys = splitCommaEnv(settings.Auth.APIKeys, "INCIDENT_MCP_AUTH_API_KEYS")
	settings.GitHub.Extensions = splitCommaEnv(settings.GitHub.Extensions, "INCIDENT_MCP_GITHUB_EXTENSIONS")
	settings.SMTP.Recipients = splitCommaEnv(settings.SMTP.Recipients, "INCIDENT_MCP_SMTP_RECIPIENTS")

	return &settings, nil
}

// splitCommaEnv applies comma-splitting to a list setting when its env var
// carries a single comma-separated string, then trims entries and drops
// empties.
func splitCommaEnv(current []string, envName string) []string {
	envValue := os.Getenv(envName)
	if envValue != "" {
		if len(current) == 0 || (len(current) == 1 && strings.Contains(current[0], ",")) {
			current = strings.Split(envValue, ",")
		}
	}

	var result []string
	for _, item := range current {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// ValidateSettings checks for conflicting configurations.
// Returns an error if the settings contain mutually exclusive or incomplete config.
func ValidateSettings(s *Settings) error {
	// Validate transport type
	switch s.Transport {
	case "stdio", "sse":
		// valid
	default:
		return errors.New("transport must be 'stdio' or 'sse', got: " + s.Transport)
	}

	hasBasicCreds := s.Auth.Basic.Username != "" || s.Auth.Basic.Password != ""
	hasAPIKeys := len(s.Auth.APIKeys) > 0

	switch s.Auth.Type {
	case AuthTypeNone, "":
		if hasBasicCreds || hasAPIKeys {
			return errors.New("auth-type 'none' is incompatible with auth credentials")
		}
	case AuthTypeBasic:
		if hasAPIKeys {
			return errors.New("auth-type 'basic' is mutually exclusive with auth-api-keys")
		}
		if s.Auth.Basic.Username == "" || s.Auth.Basic.Password == "" {
			return errors.New("auth-type 'basic' requires both username and password")
		}
	case AuthTypeAPIKey:
		if hasBasicCreds {
			return errors.New("auth-type 'apikey' is mutually exclusive with basic auth credentials")
		}
		if !hasAPIKeys {
			return errors.New("auth-type 'apikey' requires at least one API key")
		}
	default:
		return errors.New("unknown auth-type: " + s.Auth.Type)
	}

	if err := validateGitHubSettings(&s.GitHub); err != nil {
		return err
	}

	return validateSMTPSettings(&s.SMTP)
}

// validateGitHubSettings validates the hosting API configuration
func validateGitHubSettings(g *GitHubSettings) error {
	if g.Token == "" {
		return errors.New("a GitHub token is required (github-token or INCIDENT_MCP_GITHUB_TOKEN)")
	}
	if g.RawHost == "" {
		return errors.New("github-raw-host cannot be empty")
	}
	return nil
}

// validateSMTPSettings validates the email channel configuration.
// When the channel is disabled the send-email tool reports it unavailable at
// call time instead of failing server startup.
func validateSMTPSettings(m *SMTPSettings) error {
	if !m.Enabled {
		return nil
	}

	if m.Host == "" {
		return errors.New("smtp-enabled requires smtp-host")
	}
	if m.Port <= 0 {
		return errors.New("smtp-port must be positive")
	}
	if m.From == "" {
		return errors.New("smtp-enabled requires a sender address (smtp-from)")
	}
	if len(m.Recipients) == 0 {
		return errors.New("smtp-enabled requires at least one default recipient (smtp-recipients)")
	}
	return nil
}

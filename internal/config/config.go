package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultPort     = "8080"
	DefaultTimeZone = "America/New_York"
	DefaultTimeout  = 10 * time.Second

	alchemyProdBaseURL    = "https://app.alchemy.cloud"
	alchemyPreprodBaseURL = "https://preprod.alchemy.cloud"
)

// Config junta todo lo que el servicio necesita para hablar con Google
// Calendar y con Alchemy. Las credenciales viven solo en memoria de proceso.
type Config struct {
	Port string `toml:"port"`

	GoogleClientID     string `toml:"google_client_id"`
	GoogleClientSecret string `toml:"google_client_secret"`
	GoogleRefreshToken string `toml:"google_refresh_token"`
	GoogleCalendarID   string `toml:"google_calendar_id"`

	AlchemyRefreshToken string `toml:"alchemy_refresh_token"`
	AlchemyTenant       string `toml:"alchemy_tenant"`
	AlchemyEnv          string `toml:"alchemy_env"`      // production | preprod
	AlchemyBaseURL      string `toml:"alchemy_base_url"` // override explícito; gana sobre AlchemyEnv

	DefaultTimeZone string `toml:"default_timezone"`

	RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
}

// Load arma la config leyendo primero un archivo TOML opcional (CONFIG_FILE)
// y pisando después con variables de entorno. Env siempre gana.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.GoogleClientID, "GOOGLE_CLIENT_ID")
	overrideString(&cfg.GoogleClientSecret, "GOOGLE_CLIENT_SECRET")
	overrideString(&cfg.GoogleRefreshToken, "GOOGLE_REFRESH_TOKEN")
	overrideString(&cfg.GoogleCalendarID, "GOOGLE_CALENDAR_ID")
	overrideString(&cfg.AlchemyRefreshToken, "ALCHEMY_REFRESH_TOKEN")
	overrideString(&cfg.AlchemyTenant, "ALCHEMY_TENANT")
	overrideString(&cfg.AlchemyEnv, "ALCHEMY_ENV")
	overrideString(&cfg.AlchemyBaseURL, "ALCHEMY_BASE_URL")
	overrideString(&cfg.DefaultTimeZone, "DEFAULT_TIMEZONE")

	if v := strings.TrimSpace(os.Getenv("REQUEST_TIMEOUT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: REQUEST_TIMEOUT must be a positive number of seconds, got %q", v)
		}
		cfg.RequestTimeoutSeconds = n
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.GoogleCalendarID == "" {
		c.GoogleCalendarID = "primary"
	}
	if c.DefaultTimeZone == "" {
		c.DefaultTimeZone = DefaultTimeZone
	}
	if c.AlchemyEnv == "" {
		c.AlchemyEnv = "production"
	}
}

// ResolvedAlchemyBaseURL devuelve el base URL efectivo del registry:
// override explícito, o el ambiente elegido (production/preprod).
func (c *Config) ResolvedAlchemyBaseURL() string {
	if strings.TrimSpace(c.AlchemyBaseURL) != "" {
		return strings.TrimRight(strings.TrimSpace(c.AlchemyBaseURL), "/")
	}
	if strings.EqualFold(strings.TrimSpace(c.AlchemyEnv), "preprod") {
		return alchemyPreprodBaseURL
	}
	return alchemyProdBaseURL
}

func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// MissingCredentials lista las credenciales que faltan. No es fatal al
// arrancar (modo dev sin upstreams reales); los requests que las necesiten
// van a fallar con error de credenciales.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if strings.TrimSpace(c.GoogleClientID) == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if strings.TrimSpace(c.GoogleClientSecret) == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}
	if strings.TrimSpace(c.GoogleRefreshToken) == "" {
		missing = append(missing, "GOOGLE_REFRESH_TOKEN")
	}
	if strings.TrimSpace(c.AlchemyRefreshToken) == "" {
		missing = append(missing, "ALCHEMY_REFRESH_TOKEN")
	}
	if strings.TrimSpace(c.AlchemyTenant) == "" {
		missing = append(missing, "ALCHEMY_TENANT")
	}
	return missing
}

func overrideString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

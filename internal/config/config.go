package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	// BaseURL is the public prefix used when building share link URLs,
	// e.g. https://links.covidactnow.org.
	BaseURL string
	DB      struct {
		Driver string
		DSN    string
	}
	OIDC struct {
		Issuer   string
		Audience string
	}
	Auth struct {
		// EmailValidation is "permissive" (default) or "strict".
		EmailValidation string
		// StaticTokens maps raw bearer tokens to subjects for local
		// development, bypassing the OIDC verifier entirely.
		StaticTokens map[string]string
	}
	Screenshot struct {
		Timeout time.Duration
	}
	Log struct {
		Level  string
		Pretty bool
	}
}

// Load reads config from environment (ANL_ prefix) and optional act-now-links.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ANL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("act-now-links")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("auth.email_validation", "permissive")
	v.SetDefault("screenshot.timeout", "15s")
	v.SetDefault("log.level", "info")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.BaseURL = strings.TrimRight(v.GetString("base_url"), "/")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.OIDC.Issuer = v.GetString("oidc.issuer")
	cfg.OIDC.Audience = v.GetString("oidc.audience")
	cfg.Auth.EmailValidation = v.GetString("auth.email_validation")
	cfg.Auth.StaticTokens = v.GetStringMapString("auth.static_tokens")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Pretty = v.GetBool("log.pretty")

	timeout, err := time.ParseDuration(v.GetString("screenshot.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANL_SCREENSHOT_TIMEOUT: %w", err)
	}
	cfg.Screenshot.Timeout = timeout

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ANL_BASE_URL is required")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("ANL_DB_DSN is required")
	}
	if cfg.OIDC.Issuer == "" && len(cfg.Auth.StaticTokens) == 0 {
		return nil, fmt.Errorf("ANL_OIDC_ISSUER is required unless static tokens are configured")
	}
	switch cfg.Auth.EmailValidation {
	case "permissive", "strict":
	default:
		return nil, fmt.Errorf("ANL_AUTH_EMAIL_VALIDATION must be permissive or strict, got %q",
			cfg.Auth.EmailValidation)
	}

	return cfg, nil
}

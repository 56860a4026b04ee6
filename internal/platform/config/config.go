package config

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/SscSPs/aud_rates_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	IsProduction    bool
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`
	Upstream        UpstreamConfig
}

// UpstreamConfig holds everything needed to talk to the rate provider.
type UpstreamConfig struct {
	BaseURL string        `mapstructure:"OXR_BASE_URL" validate:"required,url"`
	AppID   string        `mapstructure:"OXR_APP_ID" validate:"required"`
	Timeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report env keys instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("mapstructure"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// Normalized trims both values and drops a single trailing slash from the base URL.
func (u UpstreamConfig) Normalized() UpstreamConfig {
	u.BaseURL = strings.TrimSuffix(strings.TrimSpace(u.BaseURL), "/")
	u.AppID = strings.TrimSpace(u.AppID)
	return u
}

// Validate reports a wrapped apperrors.ErrConfiguration when a required value is absent or blank.
func (u UpstreamConfig) Validate() error {
	err := validate.Struct(u.Normalized())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, fe.Field()+" is not set")
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: [oxr] %s", apperrors.ErrConfiguration, strings.Join(msgs, ", "))
}

// LoadConfig loads configuration from command line flags, environment variables
// and a .env file if present, in that order of precedence.
func LoadConfig(args []string) (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("aud_rates_backend", pflag.ContinueOnError)
	flags.String("port", "", "HTTP listen port (overrides PORT)")
	flags.Bool("production", false, "run in production mode (overrides IS_PRODUCTION)")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("OXR_BASE_URL", "")
	v.SetDefault("OXR_APP_ID", "")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")
	v.AutomaticEnv()

	if err := v.BindPFlag("PORT", flags.Lookup("port")); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
	}
	if err := v.BindPFlag("IS_PRODUCTION", flags.Lookup("production")); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
	}

	cfg := &Config{}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	cfg.FrontendBaseURL = strings.TrimSuffix(strings.TrimSpace(v.GetString("FRONTEND_BASE_URL")), "/")
	if cfg.FrontendBaseURL == "" {
		log.Println("Warning: FRONTEND_BASE_URL not set. Cross-origin requests from the UI will be rejected.")
	}

	timeoutStr := v.GetString("UPSTREAM_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 15 * time.Second
		log.Printf("Warning: Invalid value for UPSTREAM_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}

	cfg.Upstream = UpstreamConfig{
		BaseURL: v.GetString("OXR_BASE_URL"),
		AppID:   v.GetString("OXR_APP_ID"),
		Timeout: timeout,
	}.Normalized()

	if err := cfg.Upstream.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

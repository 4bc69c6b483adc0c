package config

import (
	"fmt"
	"os"
	"strings"

	"goexplore/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name, e.g. EDA_CHART_DIR
const EnvPrefix = "EDA"

// Config represents the complete application configuration.
// Sections are embedded so their variables share the EDA_ prefix directly.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn" validate:"oneof=error warn info debug trace ERROR WARN INFO DEBUG TRACE"`

	ChartConfig
	StatsConfig
	DataConfig
}

// ChartConfig holds chart output settings
type ChartConfig struct {
	Dir    string  `envconfig:"CHART_DIR" default:"charts" validate:"required"`
	Open   bool    `envconfig:"CHART_OPEN" default:"true"`
	Width  float64 `envconfig:"CHART_WIDTH" default:"10" validate:"gt=0,lte=100"`
	Height float64 `envconfig:"CHART_HEIGHT" default:"6" validate:"gt=0,lte=100"`
	Bins   int     `envconfig:"HISTOGRAM_BINS" default:"0" validate:"gte=0,lte=1000"`
}

// StatsConfig holds statistical test settings
type StatsConfig struct {
	TTestEqualVar bool `envconfig:"TTEST_EQUAL_VAR" default:"true"`
}

// DataConfig holds data loading settings
type DataConfig struct {
	ExcelSheet string `envconfig:"EXCEL_SHEET"`
}

// Load reads .env (when present) and EDA_* environment variables, then validates the result
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv file. A missing file is not an
// error; variables already set in the environment win over the file.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, errors.Wrap(err, "failed to load "+envFile)
			}
		}
	}

	cfg := &Config{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

var validate = validator.New()

func validateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.ConfigInvalid(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return errors.ConfigInvalid(strings.Join(msgs, "; "))
}

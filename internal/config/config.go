package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/KiwiAmenazante/DREMO/internal/log"
)

const envPrefix = "DREMO"

// DefaultDecolectaURL is used when no fallback provider URL is configured.
const DefaultDecolectaURL = "https://api.decolecta.com/v1/reniec/dni"

// Configuration holds the project configuration
type Configuration struct {
	ServerPort    int           `mapstructure:"ServerPort" tip:"Port the HTTP API listens on"`
	Environment   string        `mapstructure:"Environment" tip:"Runtime environment (production hides internal error details)"`
	Log           Log           `mapstructure:"Log"`
	ConsultasPeru ConsultasPeru `mapstructure:"ConsultasPeru"`
	Decolecta     Decolecta     `mapstructure:"Decolecta"`
	Directory     Directory     `mapstructure:"Directory"`
}

// ConsultasPeru holds the primary identity provider settings.
type ConsultasPeru struct {
	URL   string `mapstructure:"Url" tip:"ConsultasPeru API endpoint"`
	Token string `mapstructure:"Token" tip:"ConsultasPeru API token"`
}

// Decolecta holds the fallback identity provider settings.
type Decolecta struct {
	URL   string `mapstructure:"Url" tip:"Decolecta RENIEC endpoint"`
	Token string `mapstructure:"Token" tip:"Decolecta API token"`
}

// Directory holds the Google Sheets directory coordinates. All fields are
// optional: an unconfigured directory downgrades lookups to an
// "unavailable" result instead of failing requests.
type Directory struct {
	SpreadsheetID   string `mapstructure:"SpreadsheetId" tip:"Google Sheets spreadsheet id"`
	Range           string `mapstructure:"Range" tip:"Cell range to scan, e.g. Sheet1!A:B"`
	ContactColumn   int    `mapstructure:"ContactColumn" tip:"Zero-based index of the contact column"`
	CodeColumn      int    `mapstructure:"CodeColumn" tip:"Zero-based index of the secret code column"`
	CredentialsJSON string `mapstructure:"CredentialsJson" tip:"Inline service account JSON"`
	CredentialsFile string `mapstructure:"CredentialsFile" tip:"Path to a service account key file"`
}

// Log holds runtime log configuration.
//
// Level: minimum level to log (-4: Debug, 0: Info, 4: Warning, 8: Error).
// Mode: 1 JSON, 2 text.
type Log struct {
	Level int `mapstructure:"Level" tip:"Minimum level to log: (-4:Debug, 0:Info, 4:Warning, 8:Error)"`
	Mode  int `mapstructure:"Mode" tip:"Log format (1: JSON, 2: Text)"`
}

// Sanitize performs basic checks and defaulting on the configuration.
func (c *Configuration) Sanitize() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid server port %d", c.ServerPort)
	}
	if c.Decolecta.URL == "" {
		c.Decolecta.URL = DefaultDecolectaURL
	}
	return nil
}

// Production reports whether the service runs in production mode. Internal
// error details are only echoed to callers outside production.
func (c *Configuration) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load loads the configuration from the environment, an optional .env file
// and an optional config file. Environment variables use the DREMO_ prefix
// with underscores, e.g. DREMO_CONSULTASPERU_TOKEN.
func Load(fileName string) (*Configuration, error) {
	// Harmless when the file does not exist; in managed runtimes the
	// variables are injected directly.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	if fileName == "" {
		viper.SetConfigName("config")
	} else {
		viper.SetConfigName(fileName)
	}

	bindEnv()

	config := &Configuration{
		ServerPort: 8080,
		Log: Log{
			Level: log.LevelDebug,
			Mode:  log.OutputText,
		},
	}

	ctx := context.Background()
	if err := viper.ReadInConfig(); err != nil {
		log.Debug(ctx, "no config file loaded, relying on environment", "err", err)
	}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("cannot unmarshal config: %w", err)
	}
	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return config, nil
}

// bindEnv makes every known key overridable from the environment even when it
// is absent from the config file.
func bindEnv() {
	for _, key := range []string{
		"ServerPort",
		"Environment",
		"Log.Level",
		"Log.Mode",
		"ConsultasPeru.Url",
		"ConsultasPeru.Token",
		"Decolecta.Url",
		"Decolecta.Token",
		"Directory.SpreadsheetId",
		"Directory.Range",
		"Directory.ContactColumn",
		"Directory.CodeColumn",
		"Directory.CredentialsJson",
		"Directory.CredentialsFile",
	} {
		_ = viper.BindEnv(key)
	}
}

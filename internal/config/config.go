// Package config carga la configuración desde archivo TOML, variables de
// entorno y flags, en ese orden de precedencia creciente.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix   = "PETCLINIC"
	DefaultPath = "petclinic.toml"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Auth    AuthConfig    `mapstructure:"auth"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr devuelve host:port para http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StorageConfig struct {
	// Driver vacío: postgres si hay DSN, memory si no.
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	App    string `mapstructure:"app"`
}

type AuthConfig struct {
	// Required exige usuario en las rutas de escritura.
	Required  bool          `mapstructure:"required"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// Default es la configuración sin archivo ni entorno.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:         "",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Storage: StorageConfig{AutoMigrate: true},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "petclinic",
		},
		Auth: AuthConfig{
			Issuer:   "petclinic",
			TokenTTL: time.Hour,
		},
	}
}

// legacyEnv mantiene las variables sin prefijo que ya se usaban en deploys.
var legacyEnv = map[string]string{
	"server.port": "PORT",
	"storage.dsn": "DB_DSN",
	"log.level":   "LOG_LEVEL",
	"log.format":  "LOG_FORMAT",
	"log.app":     "APP_NAME",
}

// flagKeys mapea flags de la CLI a keys de viper.
var flagKeys = map[string]string{
	"host":           "server.host",
	"port":           "server.port",
	"storage-driver": "storage.driver",
	"dsn":            "storage.dsn",
	"auto-migrate":   "storage.auto_migrate",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"auth-required":  "auth.required",
	"jwt-secret":     "auth.jwt_secret",
}

// New arma un viper con defaults y variables de entorno enlazadas.
func New() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.dsn", d.Storage.DSN)
	v.SetDefault("storage.auto_migrate", d.Storage.AutoMigrate)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.app", d.Log.App)
	v.SetDefault("auth.required", d.Auth.Required)
	v.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	v.SetDefault("auth.issuer", d.Auth.Issuer)
	v.SetDefault("auth.token_ttl", d.Auth.TokenTTL)

	for _, key := range v.AllKeys() {
		names := []string{key, envName(key)}
		if legacy, ok := legacyEnv[key]; ok {
			names = append(names, legacy)
		}
		_ = v.BindEnv(names...)
	}
	return v
}

// envName: "server.read_timeout" -> "PETCLINIC_SERVER_READ_TIMEOUT".
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// BindFlags enlaza las flags conocidas que existan en fs. Sólo pisan el
// archivo y el entorno si el usuario las pasó.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load lee path (si existe), decodifica y valida. explicit indica que el
// usuario pidió ese archivo: en ese caso que falte es un error.
func Load(v *viper.Viper, path string, explicit bool) (Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Storage.DSN = strings.TrimSpace(c.Storage.DSN)
	if c.Storage.Driver == "" {
		if c.Storage.DSN != "" {
			c.Storage.Driver = DriverPostgres
		} else {
			c.Storage.Driver = DriverMemory
		}
	}
}

func (c Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		problems = append(problems, "server timeouts must not be negative")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if c.Storage.DSN == "" {
			problems = append(problems, fmt.Sprintf("storage.dsn is required for driver %q", c.Storage.Driver))
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown storage.driver %q", c.Storage.Driver))
	}

	if c.Auth.TokenTTL < 0 {
		problems = append(problems, "auth.token_ttl must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// fileConfig es la forma en disco; las duraciones van como texto ("15s").
type fileConfig struct {
	Server struct {
		Host         string `toml:"host"`
		Port         int    `toml:"port"`
		ReadTimeout  string `toml:"read_timeout"`
		WriteTimeout string `toml:"write_timeout"`
	} `toml:"server"`
	Storage struct {
		Driver      string `toml:"driver"`
		DSN         string `toml:"dsn"`
		AutoMigrate bool   `toml:"auto_migrate"`
	} `toml:"storage"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
		App    string `toml:"app"`
	} `toml:"log"`
	Auth struct {
		Required  bool   `toml:"required"`
		JWTSecret string `toml:"jwt_secret"`
		Issuer    string `toml:"issuer"`
		TokenTTL  string `toml:"token_ttl"`
	} `toml:"auth"`
}

// Save escribe cfg como TOML. Sin force no pisa un archivo existente.
func Save(path string, cfg Config, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	fc.Server.Host = cfg.Server.Host
	fc.Server.Port = cfg.Server.Port
	fc.Server.ReadTimeout = cfg.Server.ReadTimeout.String()
	fc.Server.WriteTimeout = cfg.Server.WriteTimeout.String()
	fc.Storage.Driver = cfg.Storage.Driver
	fc.Storage.DSN = cfg.Storage.DSN
	fc.Storage.AutoMigrate = cfg.Storage.AutoMigrate
	fc.Log.Level = cfg.Log.Level
	fc.Log.Format = cfg.Log.Format
	fc.Log.App = cfg.Log.App
	fc.Auth.Required = cfg.Auth.Required
	fc.Auth.JWTSecret = cfg.Auth.JWTSecret
	fc.Auth.Issuer = cfg.Auth.Issuer
	fc.Auth.TokenTTL = cfg.Auth.TokenTTL.String()

	if err := toml.NewEncoder(f).Encode(fc); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config is the full runtime configuration of the bridge.
type Config struct {
	Discord  DiscordConfig  `mapstructure:"discord"`
	Kasa     KasaConfig     `mapstructure:"kasa"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Log      LogConfig      `mapstructure:"log"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	DB       DBConfig       `mapstructure:"db"`
}

type DiscordConfig struct {
	Token string `mapstructure:"token"`
}

// KasaConfig holds the device credentials handed to the kasa CLI.
type KasaConfig struct {
	DeviceIP string `mapstructure:"device_ip"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Dir      string `mapstructure:"dir"`
	Tool     string `mapstructure:"tool"`
}

type ScheduleConfig struct {
	// Timezone is an IANA name; empty means the process local zone.
	Timezone string `mapstructure:"timezone"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type HTTPConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Port              string        `mapstructure:"port"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
	AdminUser         string        `mapstructure:"admin_user"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// Options control where configuration is looked up.
type Options struct {
	ConfigPaths []string // directories searched for config.yml
	ConfigName  string
	EnvFile     string // dotenv file; values never override the real environment
}

// DefaultOptions mirrors the on-disk layout used in deployments.
func DefaultOptions() Options {
	return Options{
		ConfigPaths: []string{"configs", "."},
		ConfigName:  "config",
		EnvFile:     ".env",
	}
}

// InMemoryDB keeps the command log for the lifetime of the process only.
const InMemoryDB = "file:kasa_bridge?mode=memory&cache=shared"

var defaults = map[string]any{
	"discord.token":            "",
	"kasa.device_ip":           "",
	"kasa.username":            "",
	"kasa.password":            "",
	"kasa.dir":                 "",
	"kasa.tool":                "uv",
	"schedule.timezone":        "",
	"log.level":                "info",
	"http.enabled":             false,
	"http.port":                "8080",
	"http.jwt_secret":          "",
	"http.token_ttl":           time.Hour,
	"http.admin_user":          "",
	"http.admin_password_hash": "",
	"db.path":                  InMemoryDB,
}

var required = []string{
	"discord.token",
	"kasa.device_ip",
	"kasa.username",
	"kasa.password",
	"kasa.dir",
}

var requiredForHTTP = []string{
	"http.jwt_secret",
	"http.admin_user",
	"http.admin_password_hash",
}

// ErrMissing is matched by every MissingError.
var ErrMissing = errors.New("missing required configuration")

// MissingError lists every required key that had no value.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	envs := make([]string, 0, len(e.Keys))
	for _, k := range e.Keys {
		envs = append(envs, envName(k))
	}
	return fmt.Sprintf("%s: %s", ErrMissing, strings.Join(envs, ", "))
}

func (e *MissingError) Is(target error) bool { return target == ErrMissing }

// Load reads the dotenv file, the optional config file and the environment,
// in increasing order of precedence, and validates the result.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := loadEnvFile(opts.EnvFile); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigName != "" {
		v.SetConfigName(opts.ConfigName)
		v.SetConfigType("yaml")
		for _, p := range opts.ConfigPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	if err := validate(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file %q: %w", path, err)
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

func validate(v *viper.Viper) error {
	keys := required
	if v.GetBool("http.enabled") {
		keys = append(append([]string{}, required...), requiredForHTTP...)
	}
	var missing []string
	for _, k := range keys {
		if strings.TrimSpace(v.GetString(k)) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}

// Location resolves schedule.timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Schedule.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule.timezone %q: %w", c.Schedule.Timezone, err)
	}
	return loc, nil
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

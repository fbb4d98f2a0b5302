package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	Server    Server    `mapstructure:"server"`
	Storage   Storage   `mapstructure:"storage"`
	Reminders Reminders `mapstructure:"reminders"`
	Notify    Notify    `mapstructure:"notify"`
	Gemini    Gemini    `mapstructure:"gemini"`
	Log       Log       `mapstructure:"log"`
}

type Server struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"readtimeout"`
	WriteTimeout time.Duration `mapstructure:"writetimeout"`
}

type Storage struct {
	Driver   string   `mapstructure:"driver"` // memory | sqlite | postgres
	SQLite   SQLite   `mapstructure:"sqlite"`
	Postgres Postgres `mapstructure:"postgres"`
}

type SQLite struct {
	Path string `mapstructure:"path"`
}

type Postgres struct {
	DSN string `mapstructure:"dsn"`
}

type Reminders struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"` // cron spec
}

type Notify struct {
	URLs    []string      `mapstructure:"urls"` // shoutrrr; vacío => log notifier
	Icon    string        `mapstructure:"icon"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Gemini struct {
	APIKey  string        `mapstructure:"apikey"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"baseurl"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New devuelve un viper con defaults, env (PILLPAL_*) y paths de config.
// Lo usa el CLI para enlazar flags antes de Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pillpal"))
	}

	v.SetEnvPrefix("PILLPAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// compat con el cliente original: API_KEY / GEMINI_API_KEY
	_ = v.BindEnv("gemini.apikey", "PILLPAL_GEMINI_APIKEY", "GEMINI_API_KEY", "API_KEY")

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.readtimeout", 5*time.Second)
	v.SetDefault("server.writetimeout", 30*time.Second)

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite.path", "pillpal.db")
	v.SetDefault("storage.postgres.dsn", "")

	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "* * * * *")

	v.SetDefault("notify.urls", []string{})
	v.SetDefault("notify.icon", "assets/icon-192.svg")
	v.SetDefault("notify.timeout", 10*time.Second)

	v.SetDefault("gemini.apikey", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.baseurl", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.timeout", 20*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadDotEnv carga .env si existe; su ausencia no es error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load lee el archivo de config (opcional) y devuelve Settings validados.
// configFile vacío => busca config.yaml en los paths por defecto.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	if v == nil {
		v = New()
	}
	if strings.TrimSpace(configFile) != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}
	return s, nil
}

func (s *Settings) Validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Storage.Driver)) {
	case "memory":
	case "sqlite", "":
		if strings.TrimSpace(s.Storage.SQLite.Path) == "" {
			return errors.New("storage.sqlite.path is required")
		}
	case "postgres":
		if strings.TrimSpace(s.Storage.Postgres.DSN) == "" {
			return errors.New("storage.postgres.dsn is required")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", s.Storage.Driver)
	}

	if s.Reminders.Enabled && strings.TrimSpace(s.Reminders.Schedule) == "" {
		return errors.New("reminders.schedule is required when reminders are enabled")
	}
	if strings.TrimSpace(s.Gemini.Model) == "" {
		return errors.New("gemini.model is required")
	}

	s.Notify.URLs = compact(s.Notify.URLs)
	return nil
}

// compact limpia URLs vacías; con env PILLPAL_NOTIFY_URLS llegan separadas por espacios o comas.
func compact(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		for _, part := range strings.FieldsFunc(u, func(r rune) bool { return r == ',' || r == ' ' }) {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

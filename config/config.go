package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultConfigFile = "./config/config.yaml"

type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (p Postgres) ConnStr() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s", p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode)
}

type Nats struct {
	Host                string `mapstructure:"host"`
	Port                string `mapstructure:"port"`
	Stream              string `mapstructure:"stream"`
	ReservationsSubject string `mapstructure:"reservationsSubject"`
}

func (n Nats) ConnStr() string {
	return fmt.Sprintf("nats://%s:%s", n.Host, n.Port)
}

type Redis struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

type SQLite struct {
	Path string `mapstructure:"path"`
}

type Server struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORS holds the exact scheme+host origins allowed to call the API from a browser.
type CORS struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type Data struct {
	FactsPath string `mapstructure:"factsPath"`
	MenuPath  string `mapstructure:"menuPath"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Intake struct {
	Sinks     []string `mapstructure:"sinks"`
	Workers   int      `mapstructure:"workers"`
	QueueSize int      `mapstructure:"queueSize"`
}

type Recorder struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queueSize"`
}

type Config struct {
	Server   Server   `mapstructure:"server"`
	CORS     CORS     `mapstructure:"cors"`
	Data     Data     `mapstructure:"data"`
	Log      Log      `mapstructure:"log"`
	Intake   Intake   `mapstructure:"intake"`
	Nats     Nats     `mapstructure:"nats"`
	Redis    Redis    `mapstructure:"redis"`
	SQLite   SQLite   `mapstructure:"sqlite"`
	Postgres Postgres `mapstructure:"postgres"`
	Recorder Recorder `mapstructure:"recorder"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "")
	v.SetDefault("data.factsPath", "./data/facts.json")
	v.SetDefault("data.menuPath", "./data/menu.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("intake.sinks", []string{"log"})
	v.SetDefault("intake.workers", 2)
	v.SetDefault("intake.queueSize", 100)
	v.SetDefault("nats.host", "localhost")
	v.SetDefault("nats.port", "4222")
	v.SetDefault("nats.stream", "CONCIERGE")
	v.SetDefault("nats.reservationsSubject", "concierge.reservations")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.key", "concierge:reservations")
	v.SetDefault("sqlite.path", "reservations.db")
	v.SetDefault("recorder.workers", 2)
	v.SetDefault("recorder.queueSize", 100)
}

// Load reads the yaml file at path (DefaultConfigFile when empty), then applies environment
// overrides. A missing file is not an error; every key has a default. PORT overrides server.port.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONCIERGE_CONFIG")
	}
	if path == "" {
		path = DefaultConfigFile
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("server.port", "PORT", "SERVER_PORT"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// viper splits slice env values on whitespace; origins and sinks are comma separated
	if raw := os.Getenv("CORS_ALLOWEDORIGINS"); raw != "" {
		config.CORS.AllowedOrigins = splitList(raw)
	}
	if raw := os.Getenv("INTAKE_SINKS"); raw != "" {
		config.Intake.Sinks = splitList(raw)
	}

	return &config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

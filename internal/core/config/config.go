package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
}

// JWT holds the shared signing secret and token lifetime. Read once at
// startup and passed to constructors; nothing reads it ad hoc afterwards.
type JWT struct {
	Secret string
	TTLMin int
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Redis struct {
	Enable   bool   `mapstructure:"enable"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SMTP struct {
	Enable        bool
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	VerifyBaseURL string
}

// Route maps a path prefix to a backend service. Paths listed in Public pass
// the gateway without a token; everything else goes through the auth filter.
type Route struct {
	Prefix string   `mapstructure:"prefix"`
	Target string   `mapstructure:"target"`
	Public []string `mapstructure:"public"`
}

type Gateway struct {
	HTTP   HTTP    `mapstructure:"http"`
	Routes []Route `mapstructure:"routes"`
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	DB      DB
	Redis   Redis   `mapstructure:"redis"`
	SMTP    SMTP    `mapstructure:"smtp"`
	Gateway Gateway `mapstructure:"gateway"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

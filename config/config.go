package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// Load reads .env, then configPath, then environment overrides
// (SERVER_PORT -> server.port). Missing values fall back to Default().
func Load(configPath string) error {
	var err error
	once.Do(func() {
		if envErr := godotenv.Load(); envErr != nil {
			log.Printf("warning: .env not loaded: %v", envErr)
		}

		k = koanf.New(".")

		if err = k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			err = fmt.Errorf("load config file: %w", err)
			return
		}

		if envErr := k.Load(env.Provider("", ".", func(s string) string {
			return strings.Replace(strings.ToLower(s), "_", ".", -1)
		}), nil); envErr != nil {
			log.Printf("load environment: %v", envErr)
		}

		conf := &AppConfig{}
		if err = k.Unmarshal("", conf); err != nil {
			err = fmt.Errorf("parse config: %w", err)
			return
		}

		conf.Server.ReadTimeout = conf.Server.ReadTimeout * time.Second
		conf.Server.WriteTimeout = conf.Server.WriteTimeout * time.Second
		applyDefaults(conf)
		Conf = conf
	})

	return err
}

// MustLoad loads configuration or exits
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		log.Fatalf("config: %v", err)
	}
}

// Default returns a configuration usable without any file: sqlite, no
// redis, development logging.
func Default() *AppConfig {
	conf := &AppConfig{}
	applyDefaults(conf)
	return conf
}

func applyDefaults(c *AppConfig) {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	if c.Server.FrontendURL == "" {
		c.Server.FrontendURL = "http://localhost:3000"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
		if c.Database.Database == "" {
			c.Database.Database = "course_market.db"
		}
	}
	if c.Database.LogLevel == "" {
		c.Database.LogLevel = "warn"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Env == "" {
		c.Log.Env = "development"
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = "change-me"
	}
	if c.JWT.ExpireTime <= 0 {
		c.JWT.ExpireTime = 24
	}
	if c.JWT.RefreshExpireTime <= 0 {
		c.JWT.RefreshExpireTime = 24 * 7
	}
	if len(c.Course.DefaultStatus) == 0 {
		temporary := true
		c.Course.DefaultStatus = []StatusRule{
			{Role: "lecturer", Temporary: &temporary, Status: "WAITING"},
			{Role: "lecturer", Status: "NEW"},
			{Role: "admin", Status: "APPROVED"},
		}
	}
	if c.Course.PageSize <= 0 {
		c.Course.PageSize = 20
	}
	if c.Course.MaxPageSize <= 0 {
		c.Course.MaxPageSize = 100
	}
	if c.Activation.BatchSize <= 0 {
		c.Activation.BatchSize = 10
	}
	if c.Activation.RedeemLimit <= 0 {
		c.Activation.RedeemLimit = 10
	}
	if c.Activation.RedeemWindow <= 0 {
		c.Activation.RedeemWindow = 60
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = "uploads"
	}
	if c.Upload.MaxPhotoMB <= 0 {
		c.Upload.MaxPhotoMB = 5
	}
	if c.Upload.MaxVideoMB <= 0 {
		c.Upload.MaxVideoMB = 500
	}
}

// GetString reads a raw key from the loaded configuration
func GetString(key string) string {
	if k == nil {
		log.Fatal("config not loaded")
	}
	return k.String(key)
}

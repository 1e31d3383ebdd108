package config

import "time"

// AppConfig application configuration
type AppConfig struct {
	Server     ServerConfig     `koanf:"server"`
	GRPC       GRPCConfig       `koanf:"grpc"`
	Database   DatabaseConfig   `koanf:"database"`
	Redis      RedisConfig      `koanf:"redis"`
	Log        LogConfig        `koanf:"log"`
	JWT        JWTConfig        `koanf:"jwt"`
	Course     CourseConfig     `koanf:"course"`
	Activation ActivationConfig `koanf:"activation"`
	Upload     UploadConfig     `koanf:"upload"`
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Mode         string        `koanf:"mode"` // debug, release, test
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	FrontendURL  string        `koanf:"frontend_url"`
}

type GRPCConfig struct {
	Port int `koanf:"port"` // 0 disables the health server
}

type DatabaseConfig struct {
	Driver       string `koanf:"driver"` // postgres, sqlite
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"` // file path when driver is sqlite
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // seconds
}

type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, console
	Env    string `koanf:"env"`    // production, development
}

type JWTConfig struct {
	Secret            string `koanf:"secret"`
	ExpireTime        int    `koanf:"expire_time"`         // hours
	RefreshExpireTime int    `koanf:"refresh_expire_time"` // hours
}

// StatusRule picks the initial status of a course created by a role.
// Temporary nil matches both temporary and onboarded accounts.
type StatusRule struct {
	Role      string `koanf:"role"`
	Temporary *bool  `koanf:"temporary"`
	Status    string `koanf:"status"`
}

type CourseConfig struct {
	DefaultStatus []StatusRule `koanf:"default_status"`
	PageSize      int          `koanf:"page_size"`
	MaxPageSize   int          `koanf:"max_page_size"`
}

type ActivationConfig struct {
	BatchSize    int `koanf:"batch_size"`
	RedeemLimit  int `koanf:"redeem_limit"`
	RedeemWindow int `koanf:"redeem_window"` // seconds
}

type UploadConfig struct {
	Dir        string `koanf:"dir"`
	MaxPhotoMB int    `koanf:"max_photo_mb"`
	MaxVideoMB int    `koanf:"max_video_mb"`
}

// InitialStatus returns the status of the first rule matching role and
// temporary, or NEW when none does.
func (c CourseConfig) InitialStatus(role string, temporary bool) string {
	for _, rule := range c.DefaultStatus {
		if rule.Role != role {
			continue
		}
		if rule.Temporary != nil && *rule.Temporary != temporary {
			continue
		}
		if rule.Status != "" {
			return rule.Status
		}
	}
	return "NEW"
}

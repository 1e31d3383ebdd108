package database

import (
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestPostgresConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  PostgresConfig
		want string
	}{
		{
			name: "ssl disabled",
			cfg:  PostgresConfig{Host: "db", Port: 5432, Username: "u", Password: "p", Database: "courses"},
			want: "host=db user=u password=p dbname=courses port=5432 sslmode=disable",
		},
		{
			name: "ssl required",
			cfg:  PostgresConfig{Host: "db", Port: 6543, Username: "u", Password: "p", Database: "courses", SSLMode: true},
			want: "host=db user=u password=p dbname=courses port=6543 sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestPostgresConfig_WithDefaults(t *testing.T) {
	cfg := PostgresConfig{}.withDefaults()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 100, cfg.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.ConnMaxLifetime)

	kept := PostgresConfig{Host: "db", MaxOpenConns: 5}.withDefaults()
	assert.Equal(t, "db", kept.Host)
	assert.Equal(t, 5, kept.MaxOpenConns)
}

func TestRedisConfig_Options(t *testing.T) {
	opts := RedisConfig{}.options()
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 10, opts.PoolSize)

	opts = RedisConfig{Host: "cache", Port: 6380, PoolSize: 3, DB: 2}.options()
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 3, opts.PoolSize)
	assert.Equal(t, 2, opts.DB)
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, gormLevel("silent"))
	assert.Equal(t, gormlogger.Error, gormLevel("error"))
	assert.Equal(t, gormlogger.Info, gormLevel("info"))
	assert.Equal(t, gormlogger.Warn, gormLevel("warn"))
	assert.Equal(t, gormlogger.Warn, gormLevel(""))
}

func TestInitSQLite_LogsThroughZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	db, err := InitSQLite(&SQLiteConfig{Path: "file::memory:", LogLevel: "silent", Logger: zap.New(core)})
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
	assert.Equal(t, 1, logs.FilterMessage("sqlite opened").Len())
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	core, logs := observer.New(zap.InfoLevel)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := InitRedis(&RedisConfig{Host: mr.Host(), Port: port, Logger: zap.New(core)})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 1, logs.FilterMessage("redis connected").Len())
}

func TestInit_NilConfig(t *testing.T) {
	_, err := InitPostgres(nil)
	assert.Error(t, err)

	_, err = InitSQLite(nil)
	assert.Error(t, err)

	_, err = InitRedis(nil)
	assert.Error(t, err)
}

package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// 环境标签，决定默认的跨域来源与可信主机
const (
	EnvLocal  = "local"
	EnvServer = "server"
)

var (
	globalConfig Config
	once         sync.Once
)

// Config 扁平化配置结构体
type Config struct {
	// 环境配置（local / server）
	Env string `mapstructure:"env"`

	// 服务器配置
	ServerHost         string        `mapstructure:"server_host"`
	ServerPort         int           `mapstructure:"server_port"`
	ServerDomain       string        `mapstructure:"server_domain"`
	ServerReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	ServerWriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	ServerIdleTimeout  time.Duration `mapstructure:"server_idle_timeout"`

	// 跨域与可信主机（逗号分隔；留空时按 Env 选择默认值）
	AllowedOrigins string `mapstructure:"allowed_origins"`
	TrustedHosts   string `mapstructure:"trusted_hosts"`

	// 会话配置
	EnableSessions    bool   `mapstructure:"enable_sessions"`
	SecretKey         string `mapstructure:"secret_key"`
	SessionCookieName string `mapstructure:"session_cookie_name"`

	// 静态资源目录
	StaticDir string `mapstructure:"static_dir"`

	// 数据库配置
	DBType            string `mapstructure:"db_type"`
	DBHost            string `mapstructure:"db_host"`
	DBPort            int    `mapstructure:"db_port"`
	DBUsername        string `mapstructure:"db_username"`
	DBPassword        string `mapstructure:"db_password"`
	DBName            string `mapstructure:"db_name"`
	DBFilePath        string `mapstructure:"db_file_path"`
	DBMaxOpenConns    int    `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int    `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime int    `mapstructure:"db_conn_max_lifetime"`

	// 缓存提供者配置
	CacheType          string `mapstructure:"cache_type"`
	CacheRedisAddr     string `mapstructure:"cache_redis_addr"`
	CacheRedisPassword string `mapstructure:"cache_redis_password"`
	CacheRedisDB       int    `mapstructure:"cache_redis_db"`
	CacheShareTTL      int    `mapstructure:"cache_share_ttl"`

	// 分享链接配置
	ShareSlugLength int `mapstructure:"share_slug_length"`

	// 限流配置
	RateLimitApiRPS      float64       `mapstructure:"rate_limit_api_rps"`
	RateLimitApiBurst    int           `mapstructure:"rate_limit_api_burst"`
	RateLimitPublicRPS   float64       `mapstructure:"rate_limit_public_rps"`
	RateLimitPublicBurst int           `mapstructure:"rate_limit_public_burst"`
	RateLimitExpireTime  time.Duration `mapstructure:"rate_limit_expire_time"`
}

// InitConfig Initialize configuration
func InitConfig() {
	once.Do(func() {
		loadConfig()
	})
}

func Get() *Config {
	return &globalConfig
}

// loadConfig Core configuration loading
func loadConfig() {
	setDefaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Info: .env file not found, using defaults and environment variables")
	} else {
		fmt.Fprintln(os.Stderr, "Info: Loaded configuration from .env file")
	}

	viper.AutomaticEnv()
	for _, key := range viper.AllKeys() {
		viper.BindEnv(key)
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: Unable to unmarshal config, %v\n", err)
		os.Exit(1)
	}

	globalConfig.applyEnvProfile()
}

// applyEnvProfile 按环境标签补齐未显式配置的默认值
func (c *Config) applyEnvProfile() {
	switch strings.ToLower(c.Env) {
	case "server", "prod", "production":
		c.Env = EnvServer
	default:
		c.Env = EnvLocal
	}

	if c.AllowedOrigins == "" {
		if c.Env == EnvServer {
			c.AllowedOrigins = "https://dichfoto.com,https://upload.dichfoto.com"
		} else {
			c.AllowedOrigins = "*"
		}
	}
	if c.TrustedHosts == "" {
		if c.Env == EnvServer {
			c.TrustedHosts = "dichfoto.com,upload.dichfoto.com,localhost"
		} else {
			c.TrustedHosts = "*"
		}
	}
}

// setDefaults 设置默认值
func setDefaults() {
	viper.SetDefault("env", EnvLocal)

	// 服务器配置默认值
	viper.SetDefault("server_host", "127.0.0.1")
	viper.SetDefault("server_port", 8080)
	viper.SetDefault("server_domain", "")
	viper.SetDefault("server_read_timeout", "15s")
	viper.SetDefault("server_write_timeout", "30s")
	viper.SetDefault("server_idle_timeout", "120s")

	viper.SetDefault("allowed_origins", "")
	viper.SetDefault("trusted_hosts", "")

	// 会话配置默认值
	viper.SetDefault("enable_sessions", true)
	viper.SetDefault("secret_key", "change-me")
	viper.SetDefault("session_cookie_name", "sessionid")

	viper.SetDefault("static_dir", "./web/static")

	// 数据库配置默认值
	viper.SetDefault("db_type", "sqlite")
	viper.SetDefault("db_host", "localhost")
	viper.SetDefault("db_port", 5432)
	viper.SetDefault("db_username", "postgres")
	viper.SetDefault("db_password", "")
	viper.SetDefault("db_name", "dichfoto")
	viper.SetDefault("db_file_path", "")
	viper.SetDefault("db_max_open_conns", 100)
	viper.SetDefault("db_max_idle_conns", 25)
	viper.SetDefault("db_conn_max_lifetime", 3600)

	// 缓存提供者配置默认值
	viper.SetDefault("cache_type", "memory")
	viper.SetDefault("cache_redis_addr", "localhost:6379")
	viper.SetDefault("cache_redis_password", "")
	viper.SetDefault("cache_redis_db", 0)
	viper.SetDefault("cache_share_ttl", 300)

	// 分享链接配置默认值
	viper.SetDefault("share_slug_length", 16)

	// 限流配置默认值
	viper.SetDefault("rate_limit_api_rps", 30.0)
	viper.SetDefault("rate_limit_api_burst", 60)
	viper.SetDefault("rate_limit_public_rps", 100.0)
	viper.SetDefault("rate_limit_public_burst", 200)
	viper.SetDefault("rate_limit_expire_time", "10m")
}

// Addr 返回监听地址，格式为 "host:port"
func (c *Config) Addr() string {
	host := c.ServerHost
	if host == "" {
		host = "0.0.0.0"
	}
	port := c.ServerPort
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// BaseURL 返回基础 URL，用于生成分享链接
func (c *Config) BaseURL() string {
	if c.ServerDomain != "" {
		return c.ServerDomain
	}
	host := c.ServerHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.ServerPort)
}

// Origins 返回跨域来源列表
func (c *Config) Origins() []string {
	return splitList(c.AllowedOrigins)
}

// Hosts 返回可信主机列表
func (c *Config) Hosts() []string {
	return splitList(c.TrustedHosts)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

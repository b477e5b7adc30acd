package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config 全局配置结构
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	MySQL   MySQLConfig   `mapstructure:"mysql"`
	Redis   RedisConfig   `mapstructure:"redis"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Content ContentConfig `mapstructure:"content"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type MySQLConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig 签名密钥和两类令牌的有效期
type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
	RefreshTTLDays   int    `mapstructure:"refresh_ttl_days"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ContentConfig 第三方内容接口配置
type ContentConfig struct {
	QuranBaseURL    string `mapstructure:"quran_base_url"`
	PrayerBaseURL   string `mapstructure:"prayer_base_url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes"`
}

var GlobalConfig *Config

// LoadConfig 加载配置文件，环境变量（ISLAMICAPP_ 前缀）优先于文件内容
func LoadConfig(configPath string) *Config {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("ISLAMICAPP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// 配置文件可以缺省，全部走默认值和环境变量
		log.Printf("未读取到配置文件 %s，使用默认配置: %v", configPath, err)
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	GlobalConfig = config
	return config
}

func setDefaults() {
	viper.SetDefault("server.port", 5000)

	viper.SetDefault("mysql.host", "127.0.0.1")
	viper.SetDefault("mysql.port", 3306)
	viper.SetDefault("mysql.user", "islamic_user")
	viper.SetDefault("mysql.password", "islamic_pass123")
	viper.SetDefault("mysql.database", "islamic_app")
	viper.SetDefault("mysql.max_open_conns", 50)
	viper.SetDefault("mysql.max_idle_conns", 10)

	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("jwt.secret", "jwt-secret-key")
	viper.SetDefault("jwt.access_ttl_minutes", 60)
	viper.SetDefault("jwt.refresh_ttl_days", 30)

	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	viper.SetDefault("content.quran_base_url", "https://api.alquran.cloud/v1")
	viper.SetDefault("content.prayer_base_url", "https://api.aladhan.com/v1")
	viper.SetDefault("content.timeout_seconds", 5)
	viper.SetDefault("content.cache_ttl_minutes", 360)
}

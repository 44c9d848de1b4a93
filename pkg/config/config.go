package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	DB          DBConfig          `mapstructure:"db"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	Explorer    ExplorerConfig    `mapstructure:"explorer"`
	Rebroadcast RebroadcastConfig `mapstructure:"rebroadcast"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"` // 为空表示不使用 Redis (仅内存缓存, 不加锁)
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	MQType   string `mapstructure:"mq_type"` // "redis", "kafka" or "none"
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// ExplorerConfig 控制访问 mempool.space (Esplora API) 的行为
type ExplorerConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// BaseURLs 可按网络覆盖默认的 mempool.space 地址, e.g. signet: http://localhost:3002/
	BaseURLs map[string]string `mapstructure:"base_urls"`
}

type RebroadcastConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Spec     string        `mapstructure:"spec"` // cron 表达式, e.g. "@every 5m"
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
	PageSize int           `mapstructure:"page_size"`
}

var Global Config

// Init 读取配置文件 + 环境变量，失败直接退出
func Init() {
	cfg, err := Load("")
	if err != nil {
		log.Fatalf("Fatal error config file: %s \n", err)
	}
	Global = *cfg
	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

// Load 读取配置; path 为空时在 "." 和 "./config" 中查找 config.yaml
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// 环境变量设置: db.host -> DB_HOST
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Printf("Warning: Config file not found, using defaults and environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http_port", "3000")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "mempush")
	v.SetDefault("db.password", "mempush")
	v.SetDefault("db.name", "mempush")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.mq_type", "none")

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "mempush_transaction_events")

	v.SetDefault("explorer.timeout", 15*time.Second)
	v.SetDefault("explorer.cache_ttl", 24*time.Hour)

	v.SetDefault("rebroadcast.enabled", true)
	v.SetDefault("rebroadcast.spec", "@every 5m")
	v.SetDefault("rebroadcast.lock_ttl", 4*time.Minute)
	v.SetDefault("rebroadcast.page_size", 100)
}

// PostgresDSN 构造 gorm 使用的 DSN
func (c DBConfig) PostgresDSN() string {
	return "host=" + c.Host + " user=" + c.User + " password=" + c.Password +
		" dbname=" + c.Name + " port=" + c.Port + " sslmode=disable TimeZone=UTC"
}

// MigrateURL 构造 golang-migrate 使用的连接串
func (c DBConfig) MigrateURL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.Name + "?sslmode=disable"
}

package config

import (
	"fmt"
	"os"
	"strconv"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MQTTConfig MQTT配置
type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      byte
}

// Config 遥测接入服务配置
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	MQTT     MQTTConfig

	// 告警通知配置
	Notify struct {
		Channel string // "email" 或 "webhook"
		Subject string // 通知邮件主题

		SMTP struct {
			Host     string
			Port     int
			Username string
			Password string
			From     string
		}

		Webhook struct {
			URL            string
			TimeoutSeconds int
		}
	}

	// Redis 缓存配置
	Cache struct {
		RealtimeKeyPrefix string // 实时数据缓存键前缀，如 "airzy:account:"
		RealtimeSuffix    string // 实时数据缓存键后缀，如 ":realtime"
		RealtimeTTL       int    // 实时数据 TTL（秒）
		PolicyKeyPrefix   string // 告警策略缓存键前缀，如 "airzy:account:"
		PolicySuffix      string // 告警策略缓存键后缀，如 ":policy"
		PolicyTTL         int    // 告警策略 TTL（秒）
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	// 从环境变量加载（默认值）
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "airzy")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 10)
	cfg.Database.MaxIdle = getEnvInt("DB_MAX_IDLE", 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://broker.hivemq.com:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "airzy-ingest")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "slide/D~HT")
	cfg.MQTT.QoS = byte(getEnvInt("MQTT_QOS", 1))

	cfg.Notify.Channel = getEnv("NOTIFY_CHANNEL", "email")
	cfg.Notify.Subject = getEnv("NOTIFY_SUBJECT", "[AIRZY] Air quality alert")
	cfg.Notify.SMTP.Host = getEnv("SMTP_HOST", "smtp.gmail.com")
	cfg.Notify.SMTP.Port = getEnvInt("SMTP_PORT", 587)
	cfg.Notify.SMTP.Username = getEnv("SMTP_USER", "")
	cfg.Notify.SMTP.Password = getEnv("SMTP_PASS", "")
	cfg.Notify.SMTP.From = getEnv("SMTP_FROM", "")
	cfg.Notify.Webhook.URL = getEnv("NOTIFY_WEBHOOK_URL", "")
	cfg.Notify.Webhook.TimeoutSeconds = getEnvInt("NOTIFY_WEBHOOK_TIMEOUT", 10)

	cfg.Cache.RealtimeKeyPrefix = getEnv("CACHE_REALTIME_PREFIX", "airzy:account:")
	cfg.Cache.RealtimeSuffix = ":realtime"
	cfg.Cache.RealtimeTTL = getEnvInt("CACHE_REALTIME_TTL", 300)
	cfg.Cache.PolicyKeyPrefix = getEnv("CACHE_POLICY_PREFIX", "airzy:account:")
	cfg.Cache.PolicySuffix = ":policy"
	cfg.Cache.PolicyTTL = getEnvInt("CACHE_POLICY_TTL", 30)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

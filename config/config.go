package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"vendorhub"`

	// PostgreSQL 配置
	PostgreSQLHost     string   `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string   `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string   `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string   `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string   `env:"POSTGRESQL_DATABASE" envDefault:"vendorhub"`
	PostgreSQLSchema   string   `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string   `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int      `env:"POSTGRESQL_MAX_IDLE" envDefault:"30"`
	PostgreSQLMaxOpen  int      `env:"POSTGRESQL_MAX_OPEN" envDefault:"200"`
	PostgreSQLReplicas []string `env:"POSTGRESQL_REPLICA_HOSTS" envSeparator:","` // 只读副本，逗号分隔

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"vhub"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// JWT 配置
	JWTSecret        string `env:"JWT_SECRET"` // 服务端必填
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"30"`
	JWTRefreshDays   int    `env:"JWT_REFRESH_DAYS" envDefault:"7"`

	// 短信服务配置
	// AccessKey 通过阿里云 SDK 的环境变量获取
	AliCloudAccessKeyID     string `env:"ALIBABA_CLOUD_ACCESS_KEY_ID"`
	AliCloudAccessKeySecret string `env:"ALIBABA_CLOUD_ACCESS_KEY_SECRET"`
	SMSProvider             string `env:"SMS_PROVIDER" envDefault:"mock"` // aliyun, mock
	SMSSignName             string `env:"SMS_SIGN_NAME"`
	SMSTemplateCode         string `env:"SMS_TEMPLATE_CODE"` // 审核状态通知模板

	// 加密配置
	EncryptionKey string `env:"ENCRYPTION_KEY"` // 加密证件号等敏感数据，32字节 AES-256
	EmailHashSalt string `env:"EMAIL_HASH_SALT"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置
	TracingEnabled     bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint       string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	TracingSampleRatio float64 `env:"TRACING_SAMPLE_RATIO" envDefault:"0.1"`

	// 速率限制配置
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"100"`

	// 审核配置
	VerificationAutoApprove bool `env:"VERIFICATION_AUTO_APPROVE" envDefault:"true"`

	// 客户端配置 (vendorctl)
	APIBaseURL           string `env:"VENDORHUB_API_URL" envDefault:"http://localhost:8888/v1"`
	APITimeoutSeconds    int    `env:"VENDORHUB_API_TIMEOUT_SECONDS" envDefault:"10"`
	LocalStorePath       string `env:"VENDORHUB_STORE_PATH" envDefault:"vendorhub.db"`
	StepTransitionMillis int    `env:"VENDORHUB_STEP_TRANSITION_MS" envDefault:"100"`
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}
}

// Validate 校验服务端必填配置，由 server / worker 启动时调用
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.EncryptionKey) != 32 {
		return fmt.Errorf("ENCRYPTION_KEY must be exactly 32 bytes for AES-256")
	}

	if strings.EqualFold(c.SMSProvider, "aliyun") {
		if c.SMSSignName == "" {
			log.Printf("WARN: SMS_SIGN_NAME is not set, SMS service may not work properly")
		}
		if c.SMSTemplateCode == "" {
			log.Printf("WARN: SMS_TEMPLATE_CODE is not set, SMS service may not work properly")
		}
	}

	return nil
}

func (c *Config) GetDSN() string {
	return c.dsnFor(c.PostgreSQLHost)
}

// GetReplicaDSNs 返回只读副本的 DSN 列表
func (c *Config) GetReplicaDSNs() []string {
	dsns := make([]string, 0, len(c.PostgreSQLReplicas))
	for _, host := range c.PostgreSQLReplicas {
		host = strings.TrimSpace(host)
		if host == "" {
			continue
		}
		dsns = append(dsns, c.dsnFor(host))
	}
	return dsns
}

func (c *Config) dsnFor(host string) string {
	return "host=" + host +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

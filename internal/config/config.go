// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	GRPCHealthAddress       string `yaml:"grpc_health_address" env-default:":50051"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Session                 `yaml:"session"`
	PasswordReset           `yaml:"password_reset"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
	Scheduler               `yaml:"scheduler"`
	RateLimit               `yaml:"rate_limit"`
	Admin                   `yaml:"admin"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis    string        `yaml:"addressredis"`
	PasswordRedis   string        `yaml:"password" env:"REDIS_PASSWORD"`
	UserRedis       string        `yaml:"user"`
	DB              int           `yaml:"db"`
	MaxRetries      int           `yaml:"max_retries"`
	DialTimeout     time.Duration `yaml:"dial_timeout"`
	TimeoutRedis    time.Duration `yaml:"timeoutredis"`
	PackageCacheTTL time.Duration `yaml:"package_cache_ttl" env-default:"10m"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"1h"`
}

// Session ограничения на серверные сессии
type Session struct {
	MaxActiveSessions int           `yaml:"max_active_sessions" env-default:"2"`
	SessionTTL        time.Duration `yaml:"session_ttl" env-default:"720h"`
}

// PasswordReset настройки сброса пароля
type PasswordReset struct {
	ResetTokenTTL time.Duration `yaml:"reset_token_ttl" env-default:"1h"`
	ResetURL      string        `yaml:"reset_url" env-default:"http://localhost:3000/reset-password"`
}

// RabbitMQ настройки подключения к брокеру сообщений
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// SMTP настройки почтового сервера
type SMTP struct {
	SMTPHost string `yaml:"host"`
	SMTPPort string `yaml:"port" env-default:"587"`
	SMTPUser string `yaml:"user"`
	SMTPPass string `yaml:"pass" env:"SMTP_PASS"`
}

// Scheduler периодичность фоновых задач
type Scheduler struct {
	SessionPurgeInterval time.Duration `yaml:"session_purge_interval" env-default:"1h"`
	ExpiryNoticeInterval time.Duration `yaml:"expiry_notice_interval" env-default:"12h"`
}

// RateLimit ограничение частоты запросов к открытым эндпоинтам
type RateLimit struct {
	RPS        float64 `yaml:"rps" env-default:"1"`
	Burst      int     `yaml:"burst" env-default:"3"`
	// TrustProxy берет адрес клиента из X-Forwarded-For и X-Real-IP.
	TrustProxy bool    `yaml:"trust_proxy" env-default:"false"`
}

// Admin учётная запись администратора, создаваемая при первом запуске.
// Пустой контакт отключает создание.
type Admin struct {
	AdminContact  string `yaml:"contact" env:"ADMIN_CONTACT"`
	AdminPassword string `yaml:"password" env:"ADMIN_PASSWORD"`
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH.
// Значения из переменных окружения перекрывают значения из файла.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// String выводит конфиг без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"Session:\n"+
			"  MaxActive: %d\n"+
			"  TTL: %s\n",
		c.Env,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.TokenTTL,
		c.MaxActiveSessions,
		c.SessionTTL,
	)
}

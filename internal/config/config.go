// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string   `yaml:"env" env-default:"local"`
	StorageType             string   `yaml:"storage_type" env-default:"memory"`
	StorageConnectionString string   `yaml:"storage_connection_string"`
	MigrationsPath          string   `yaml:"migrations_path" env-default:"./migrations"`
	StaticDir               string   `yaml:"static_dir"`
	AdminEmails             []string `yaml:"admin_emails"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Payment                 `yaml:"payment"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес означает, что кеш отключён.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном.
// TokenTTL — обычная сессия, RememberTTL — постоянная ("запомнить меня" и регистрация).
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
	RememberTTL  time.Duration `yaml:"remember_ttl" env-default:"720h"`
}

// Payment структура с реквизитами платёжного провайдера и ценой подписки.
type Payment struct {
	KeyID     string `yaml:"key_id" env:"PAYMENT_KEY_ID" env-default:"demo_key"`
	KeySecret string `yaml:"key_secret" env:"PAYMENT_KEY_SECRET"`
	Amount    int    `yaml:"amount" env-default:"19900"`
	Currency  string `yaml:"currency" env-default:"INR"`
}

// MustLoad функция для загрузки конфига, путь берётся из переменной окружения CONFIG_PATH
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

// IsAdmin сообщает, входит ли email в настроенный список привилегированных учётных записей.
func (c *Config) IsAdmin(email string) bool {
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}

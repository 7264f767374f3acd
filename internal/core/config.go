package core

//config.go

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config определяет настройки сервиса контактной формы (OWASP A05: Security Misconfiguration, A02: Cryptographic Failures)
type Config struct {
	AppName           string        // Имя приложения
	Addr              string        // Адрес HTTP-сервера (например, ":8080")
	Env               string        // Среда выполнения (dev, prod)
	LogDir            string        // Каталог для лог-файлов
	CSRFKey           string        // Ключ для CSRF-защиты
	CSRFEnabled       bool          // Включает CSRF для всех не-GET запросов
	Secure            bool          // Включает HTTPS и связанные настройки безопасности
	CertFile          string        // Путь к TLS-сертификату
	KeyFile           string        // Путь к TLS-ключу
	ShutdownTimeout   time.Duration // Таймаут для graceful shutdown
	ReadHeaderTimeout time.Duration // Таймаут чтения заголовков HTTP-запроса
	ReadTimeout       time.Duration // Таймаут чтения HTTP-запроса
	WriteTimeout      time.Duration // Таймаут записи HTTP-ответа
	IdleTimeout       time.Duration // Таймаут простоя соединения
	RequestTimeout    time.Duration // Таймаут обработки запроса в middleware
	AssetsDir         string        // Статика (wasm_exec.js, app.wasm)

	DB        DBConfig
	JWT       JWTConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
}

// DBConfig — хранилище заявок
type DBConfig struct {
	Driver          string // postgres | mysql | bolt
	DSN             string // строка подключения или путь к файлу bolt
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// JWTConfig — токены для админского API
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// AdminConfig — учётная запись администратора (пароль хранится только в виде bcrypt-хэша)
type AdminConfig struct {
	User         string
	PasswordHash string
}

// RateLimitConfig — ограничение POST /api/contact по IP
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load загружает конфигурацию из переменных окружения с значениями по умолчанию (OWASP A05)
func Load() Config {
	cfg := Config{
		AppName:           getEnv("APP_NAME", "contactApp"),
		Addr:              getEnv("HTTP_ADDR", ":8080"),
		Env:               getEnv("APP_ENV", "dev"),
		LogDir:            getEnv("LOG_DIR", "logs"),
		CSRFKey:           getEnv("CSRF_KEY", generateRandomKey()),
		CSRFEnabled:       getEnvBool("CSRF_ENABLED", false),
		Secure:            getEnvBool("SECURE", false),
		CertFile:          getEnv("TLS_CERT_FILE", ""),
		KeyFile:           getEnv("TLS_KEY_FILE", ""),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		ReadHeaderTimeout: getEnvDuration("READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       getEnvDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:      getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:       getEnvDuration("IDLE_TIMEOUT", 60*time.Second),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		AssetsDir:         getEnv("ASSETS_DIR", "web/assets"),
		DB: DBConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			DSN:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", generateRandomKey()),
			Expiration: getEnvDuration("JWT_EXPIRATION", time.Hour),
		},
		Admin: AdminConfig{
			User:         getEnv("ADMIN_USER", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("CONTACT_RATE_RPS", 1),
			Burst: getEnvInt("CONTACT_RATE_BURST", 5),
		},
	}

	if cfg.DB.Driver == "bolt" && cfg.DB.DSN == "" {
		cfg.DB.DSN = "contact.db"
	}

	// Проверяет конфигурацию для продакшен-среды
	if cfg.Env == "prod" {
		if err := cfg.validateProd(); err != nil {
			LogError("Некорректная конфигурация для продакшена", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	}

	return cfg
}

// validateProd — обязательные параметры для APP_ENV=prod
func (c Config) validateProd() error {
	if len(c.CSRFKey) < 32 {
		return BadRequest("CSRF_KEY короче 32 символов", nil)
	}
	if c.Secure && (c.CertFile == "" || c.KeyFile == "") {
		return BadRequest("отсутствует TLS_CERT_FILE или TLS_KEY_FILE", nil)
	}
	if c.Addr == "" {
		return BadRequest("отсутствует HTTP_ADDR", nil)
	}
	if c.DB.DSN == "" {
		return BadRequest("отсутствует DATABASE_URL", nil)
	}
	if len(c.JWT.Secret) < 32 {
		return BadRequest("JWT_SECRET короче 32 символов", nil)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, def string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		LogError("Неверный формат bool", map[string]interface{}{"key": key, "value": val, "error": err.Error()})
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		LogError("Неверный формат числа", map[string]interface{}{"key": key, "value": val, "error": err.Error()})
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		LogError("Неверный формат числа", map[string]interface{}{"key": key, "value": val, "error": err.Error()})
		return def
	}
	return f
}

// getEnvDuration возвращает значение длительности из переменной окружения или значение по умолчанию
func getEnvDuration(key string, def time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		LogError("Неверный формат длительности", map[string]interface{}{"key": key, "value": val, "error": err.Error()})
		return def
	}
	return d
}

// generateRandomKey создаёт случайный 32-байтовый ключ в формате base64
func generateRandomKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		LogError("Ошибка генерации ключа", map[string]interface{}{"error": err.Error()})
		return "fallback-key-please-change"
	}
	return base64.StdEncoding.EncodeToString(b)
}

package storage

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"contactApp/internal/core"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Open открывает хранилище по DB_DRIVER: postgres, mysql или bolt.
// Для SQL-драйверов выполняются миграции.
func Open(ctx context.Context, cfg core.DBConfig) (Store, error) {
	switch cfg.Driver {
	case "postgres", "mysql":
		db, err := NewDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := NewMigrations(db).RunMigrations(ctx); err != nil {
			_ = Close(db)
			return nil, err
		}
		return NewSQLStore(db), nil
	case "bolt":
		return OpenBolt(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// NewDB создаёт пул подключений с продакшн-настройками
// и проверяет подключение
func NewDB(ctx context.Context, cfg core.DBConfig) (*sqlx.DB, error) {
	dsn := cfg.DSN
	if cfg.Driver == "mysql" {
		dsn = withMySQLParams(dsn)
	}

	db, err := sqlx.ConnectContext(ctx, cfg.Driver, dsn)
	if err != nil {
		core.LogError("ошибка подключения к БД", map[string]interface{}{
			"driver": cfg.Driver,
			"error":  err.Error(),
			"dsn":    sanitizeDSN(dsn),
		})
		return nil, err
	}

	// Настройка connection pool для продакшена
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	core.LogInfo("Подключение к БД успешно", map[string]interface{}{
		"driver":   cfg.Driver,
		"dsn":      sanitizeDSN(dsn),
		"max_open": cfg.MaxOpenConns,
		"max_idle": cfg.MaxIdleConns,
	})

	return db, nil
}

// Close корректно закрывает пул подключений
// Вызывается при graceful shutdown приложения
func Close(db *sqlx.DB) error {
	if db == nil {
		return nil
	}

	if err := db.Close(); err != nil {
		core.LogError("ошибка закрытия пула БД", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	core.LogInfo("Пул БД закрыт", nil)
	return nil
}

// withMySQLParams добавляет обязательные параметры MySQL DSN, если их нет
func withMySQLParams(dsn string) string {
	params := []string{
		"parseTime=true",         // Парсинг времени
		"charset=utf8mb4",        // Unicode + эмодзи
		"timeout=5s",             // Таймаут подключения
		"readTimeout=5s",         // Таймаут чтения
		"writeTimeout=10s",       // Таймаут записи
		"interpolateParams=true", // Prepared statements
		"multiStatements=false",  // Безопасность SQL
	}
	for _, p := range params {
		key, _, _ := strings.Cut(p, "=")
		if strings.Contains(dsn, "?"+key+"=") || strings.Contains(dsn, "&"+key+"=") {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + p
	}
	return dsn
}

var (
	urlPassword   = regexp.MustCompile(`(://[^:/@]+:)[^@]*@`)
	mysqlPassword = regexp.MustCompile(`^([^:/@]+:)[^@]*@`)
	kvPassword    = regexp.MustCompile(`(password=)\S+`)
)

// sanitizeDSN удаляет пароль из DSN для логирования
func sanitizeDSN(dsn string) string {
	if urlPassword.MatchString(dsn) {
		return urlPassword.ReplaceAllString(dsn, "${1}***@")
	}
	if kvPassword.MatchString(dsn) {
		return kvPassword.ReplaceAllString(dsn, "${1}***")
	}
	return mysqlPassword.ReplaceAllString(dsn, "${1}***@")
}

package storage

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"contactApp/internal/core"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationFiles embed.FS

// Migrations управляет версиями БД
type Migrations struct {
	db    *sqlx.DB
	files fs.FS
}

// NewMigrations создаёт мигратор для встроенных SQL-файлов текущего драйвера
func NewMigrations(db *sqlx.DB) *Migrations {
	return &Migrations{db: db, files: migrationFiles}
}

// RunMigrations выполняет все ещё не применённые миграции
func (m *Migrations) RunMigrations(ctx context.Context) error {
	// Создаёт таблицу миграций, если не существует
	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("ошибка создания таблицы migrations: %w", err)
	}

	dir := path.Join("migrations", m.db.DriverName())
	files, err := fs.Glob(m.files, dir+"/*.sql")
	if err != nil {
		return fmt.Errorf("ошибка поиска миграций: %w", err)
	}

	// Сортирует по номеру (001, 002...)
	sort.Strings(files)

	applied := 0
	for _, file := range files {
		ok, err := m.runMigration(ctx, file)
		if err != nil {
			return fmt.Errorf("ошибка миграции %s: %w", file, err)
		}
		if ok {
			applied++
		}
	}

	core.LogInfo("Миграции завершены успешно", map[string]interface{}{
		"files":   len(files),
		"applied": applied,
	})
	return nil
}

// createMigrationsTable создаёт таблицу для отслеживания миграций
func (m *Migrations) createMigrationsTable(ctx context.Context) error {
	q := `
		CREATE TABLE IF NOT EXISTS migrations (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`
	if m.db.DriverName() == "postgres" {
		q = `
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`
	}

	_, err := m.db.ExecContext(ctx, q)
	return err
}

// runMigration выполняет одну миграцию; false — уже была применена
func (m *Migrations) runMigration(ctx context.Context, file string) (bool, error) {
	name := path.Base(file)

	// Проверяет, применена ли уже миграция
	var count int
	err := m.db.GetContext(ctx, &count, m.db.Rebind("SELECT COUNT(*) FROM migrations WHERE name = ?"), name)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки миграции: %w", err)
	}

	if count > 0 {
		core.LogInfo("Миграция уже применена", map[string]interface{}{"file": name})
		return false, nil
	}

	sqlBytes, err := fs.ReadFile(m.files, file)
	if err != nil {
		return false, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	// multiStatements выключен: выполняем по одному запросу
	for _, stmt := range splitStatements(string(sqlBytes)) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, fmt.Errorf("ошибка выполнения SQL: %w", err)
		}
	}

	// Записывает в таблицу миграций
	if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO migrations (name) VALUES (?)"), name); err != nil {
		return false, fmt.Errorf("ошибка записи миграции: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("ошибка коммита: %w", err)
	}

	core.LogInfo("Миграция применена", map[string]interface{}{"file": name})
	return true, nil
}

// splitStatements делит файл на запросы по ';' в конце строки
func splitStatements(src string) []string {
	var (
		out []string
		cur strings.Builder
	)
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			out = append(out, strings.TrimSuffix(strings.TrimSpace(cur.String()), ";"))
			cur.Reset()
		}
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}

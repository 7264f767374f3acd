package core

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger — пара zerolog-логгеров: основной журнал и журнал ошибок
type Logger struct {
	mainLogger  zerolog.Logger
	errorLogger zerolog.Logger
	closers     []io.Closer
	mu          sync.Mutex
}

var (
	globalMu     sync.Mutex
	globalLogger *Logger
	cleanupOnce  sync.Once
)

// InitDailyLog открывает logs/DD-MM-YYYY.log и logs/errors-DD-MM-YYYY.log.
// Повторный вызов (ротация) закрывает предыдущие файлы.
func InitDailyLog(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("ошибка создания директории %s: %w", dir, err)
	}

	// Формируем имена файлов на основе текущей даты
	dateStr := time.Now().Format("02-01-2006")
	mainPath := filepath.Join(dir, dateStr+".log")
	errorPath := filepath.Join(dir, "errors-"+dateStr+".log")

	mainFile, err := os.OpenFile(mainPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("ошибка открытия основного лог-файла: %w", err)
	}

	errorFile, err := os.OpenFile(errorPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		_ = mainFile.Close()
		return fmt.Errorf("ошибка открытия файла ошибок: %w", err)
	}

	// Ошибки дублируются в основной журнал, чтобы он оставался полной лентой событий
	setLogger(
		io.MultiWriter(mainFile, os.Stdout),
		io.MultiWriter(errorFile, mainFile, os.Stderr),
		mainFile, errorFile,
	)

	// Запускаем очистку старых логов один раз
	cleanupOnce.Do(func() { go cleanupOldLogs(dir, 7) })
	return nil
}

// SetOutput направляет логи в произвольные writer'ы (тесты, консоль без файлов)
func SetOutput(main, errs io.Writer) {
	setLogger(main, errs)
}

func setLogger(main, errs io.Writer, closers ...io.Closer) {
	l := &Logger{
		mainLogger:  zerolog.New(main).With().Timestamp().Logger(),
		errorLogger: zerolog.New(errs).With().Timestamp().Logger(),
		closers:     closers,
	}

	globalMu.Lock()
	prev := globalLogger
	globalLogger = l
	globalMu.Unlock()

	if prev != nil {
		prev.close()
	}
}

func current() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalLogger
}

func LogInfo(msg string, fields map[string]interface{}) {
	l := current()
	if l == nil {
		return // Игнорируем, если логгер закрыт
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	event := l.mainLogger.Info()
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func LogError(msg string, fields map[string]interface{}) {
	l := current()
	if l == nil {
		return // Игнорируем, если логгер закрыт
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	event := l.errorLogger.Error()
	for k, v := range fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

// Zerolog возвращает основной логгер для компонентов, которые принимают zerolog.Logger
func Zerolog() zerolog.Logger {
	l := current()
	if l == nil {
		return zerolog.Nop()
	}
	return l.mainLogger
}

func cleanupOldLogs(dir string, days int) {
	files, err := os.ReadDir(dir)
	if err != nil {
		LogError("Не удалось прочитать каталог логов", map[string]interface{}{"dir": dir, "error": err})
		return
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(dir, file.Name())
			if err := os.Remove(path); err != nil {
				LogError("Не удалось удалить старый лог", map[string]interface{}{"path": path, "error": err})
			}
		}
	}
}

func (l *Logger) close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Логируем ошибки закрытия в stderr
	consoleLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			consoleLogger.Error().Msgf("Закрытие лог-файла: %v", err)
		}
	}
	l.closers = nil
}

// Close закрывает файлы журнала; последующие записи игнорируются
func Close() {
	globalMu.Lock()
	l := globalLogger
	globalLogger = nil
	globalMu.Unlock()

	if l != nil {
		l.close()
	}
}

// StdLogger — *log.Logger для http.Server.ErrorLog; строки уходят в журнал ошибок
func StdLogger() *log.Logger {
	return log.New(stdWriter{}, "", 0)
}

type stdWriter struct{}

func (stdWriter) Write(p []byte) (int, error) {
	LogError(strings.TrimSpace(string(p)), map[string]interface{}{"source": "http.Server"})
	return len(p), nil
}

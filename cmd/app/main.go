// app — HTTP-сервис контактной формы: страница, POST /api/contact,
// админский API и служебные маршруты.
package main

//main.go
import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contactApp/internal/core"
	httpx "contactApp/internal/http"
	"contactApp/internal/platform"
	"contactApp/internal/storage"
)

func main() {
	// 1) Конфиг и логи
	config := core.Load()
	if err := core.InitDailyLog(config.LogDir); err != nil {
		core.SetOutput(os.Stdout, os.Stderr)
		core.LogError("Логи в файлы недоступны, пишем в stdout", map[string]interface{}{"error": err})
	}
	core.LogInfo("Конфигурация загружена", map[string]interface{}{
		"env":       config.Env,
		"secure":    config.Secure,
		"db_driver": config.DB.Driver,
		"csrf":      config.CSRFEnabled,
	})

	// 2) Контекст для фоновых задач (ротация логов, rate limiter)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3) Хранилище + миграции
	store, err := storage.Open(ctx, config.DB)
	if err != nil {
		core.LogError("Ошибка инициализации хранилища", map[string]interface{}{"driver": config.DB.Driver, "error": err})
		core.Close()
		os.Exit(1)
	}

	// 4) Ежедневная ротация логов
	startLogRotation(ctx, config.LogDir)

	// 5) Роутер
	handler, err := httpx.NewRouter(ctx, config, store)
	if err != nil {
		core.LogError("Ошибка инициализации приложения", map[string]interface{}{"error": err})
		_ = store.Close()
		core.Close()
		os.Exit(1)
	}

	// 6) HTTP-сервер с таймаутами (OWASP A05)
	srv := platform.Server(config, handler)

	// 7) Перехват сигналов
	sigs, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 8) Запуск сервера
	errc := runServer(srv, config)

	// 9) Ожидаем сигнал завершения или падение сервера
	failed := waitShutdown(sigs, errc, srv, config)

	// 10) Закрытие ресурсов
	cancel()
	if cerr := store.Close(); cerr != nil {
		core.LogError("Ошибка закрытия хранилища", map[string]interface{}{"error": cerr})
	}
	core.Close()
	if failed {
		os.Exit(1)
	}
}

// startLogRotation — ротация раз в сутки
func startLogRotation(ctx context.Context, dir string) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := core.InitDailyLog(dir); err != nil {
					core.LogError("Ошибка ротации логов", map[string]interface{}{"error": err})
				}
			}
		}
	}()
}

// runServer — запуск в горутине; ошибка старта приходит в канал
func runServer(srv *http.Server, cfg core.Config) <-chan error {
	errc := make(chan error, 1)
	go func() {
		core.LogInfo("http: сервер запущен", map[string]interface{}{
			"addr": cfg.Addr,
			"env":  cfg.Env,
			"app":  cfg.AppName,
			"tls":  cfg.Secure,
		})
		errc <- platform.Serve(srv, cfg)
	}()
	return errc
}

// waitShutdown — ожидание сигналов и shutdown; true, если сервер упал сам
func waitShutdown(sigs context.Context, errc <-chan error, srv *http.Server, cfg core.Config) bool {
	select {
	case <-sigs.Done():
	case err := <-errc:
		if err != nil {
			core.LogError("Ошибка работы сервера", map[string]interface{}{"error": err})
			return true
		}
		return false
	}

	core.LogInfo("http: начат процесс завершения", nil)
	if err := platform.Shutdown(srv, cfg); err != nil {
		core.LogError("Ошибка завершения сервера", map[string]interface{}{"error": err})
		return false
	}
	core.LogInfo("http: завершение выполнено", nil)
	return false
}

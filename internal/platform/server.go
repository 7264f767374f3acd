package platform

// Создаёт http.Server с безопасными таймаутами/лимитами — защита от Slowloris/DoS на уровне соединений.

import (
	"context"
	"errors"
	"net/http"

	"contactApp/internal/core"
)

func Server(cfg core.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    1 << 20, // 1MB
		ErrorLog:          core.StdLogger(),
	}
}

// Serve блокируется до остановки сервера; при Secure — TLS из CertFile/KeyFile.
// http.ErrServerClosed после Shutdown ошибкой не считается.
func Serve(srv *http.Server, cfg core.Config) error {
	var err error
	if cfg.Secure {
		err = srv.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
	} else {
		err = srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown — graceful shutdown с таймаутом из конфига
func Shutdown(srv *http.Server, cfg core.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

package httpx

// router.go
import (
	"context"
	"net/http"
	"path/filepath"

	"contactApp/internal/core"
	"contactApp/internal/http/handler"
	"contactApp/internal/http/middleware"
	"contactApp/internal/storage"
	"contactApp/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter собирает все маршруты. ctx ограничивает фоновые задачи роутера
// (очистка rate limiter).
func NewRouter(ctx context.Context, cfg core.Config, store storage.Store) (http.Handler, error) {
	tpl, err := view.New(cfg.AppName)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := handler.NewMetrics(reg)
	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimit, func(*http.Request) {
		metrics.Observe(handler.OutcomeRateLimited)
	})
	contact := handler.NewContact(store, metrics)

	r := chi.NewRouter()
	middleware.UseCommon(r, cfg)

	// health/ready/metrics
	r.Get("/healthz", handler.Health)
	r.Get("/readyz", handler.Ready(store))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	// статика: wasm_exec.js и app.wasm
	assets := http.FileServer(http.Dir(filepath.Clean(cfg.AssetsDir)))
	r.Handle("/assets/*", http.StripPrefix("/assets/", cacheStatic(assets)))

	// страница и публичный API под CSRF (если включён)
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF(cfg))
		r.Get("/", handler.Home(tpl))
		r.Route("/api/contact", func(r chi.Router) {
			r.Use(middleware.APICORS())
			r.With(limiter.Middleware).Post("/", contact.Submit)
		})
	})

	// админский API: JWT вместо CSRF
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.APICORS())
		r.With(limiter.Middleware).Post("/login", core.LoginHandler(cfg))
		r.With(core.JWTMiddleware(cfg.JWT)).Get("/submissions", handler.Submissions(store))
	})

	r.NotFound(handler.NotFound(tpl))
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r, nil
}

func cacheStatic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// dev — короткий кэш, prod — длинный + хэши в именах файлов
		w.Header().Set("Cache-Control", "public, max-age=300")
		next.ServeHTTP(w, r)
	})
}

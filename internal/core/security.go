package core

// security.go
import (
	"net/http"
	"strings"

	"github.com/unrolled/secure"
)

// contentSecurityPolicy — $NONCE подставляет unrolled/secure для каждого запроса.
// 'wasm-unsafe-eval' нужен для WebAssembly.instantiateStreaming на странице формы.
var contentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"img-src 'self' data:",
	"style-src 'self' https://cdn.jsdelivr.net 'nonce-$NONCE'",
	"script-src 'self' 'wasm-unsafe-eval' 'nonce-$NONCE'",
	"font-src 'self' https://cdn.jsdelivr.net data:",
	"connect-src 'self'",
	"form-action 'self'",
	"frame-ancestors 'none'",
	"base-uri 'self'",
}, "; ")

// SecureHeaders добавляет заголовки безопасности, включая CSP с nonce (Security Misconfiguration)
func SecureHeaders(cfg Config) func(http.Handler) http.Handler {
	opts := secure.Options{
		FrameDeny:               true,
		ContentTypeNosniff:      true,
		ContentSecurityPolicy:   contentSecurityPolicy,
		ReferrerPolicy:          "strict-origin-when-cross-origin",
		PermissionsPolicy:       "camera=(), microphone=(), geolocation=(), payment=()",
		CrossOriginOpenerPolicy: "same-origin",
		IsDevelopment:           cfg.Env != "prod",
	}
	// HSTS только за HTTPS (Cryptographic Failures)
	if cfg.Secure {
		opts.STSSeconds = 31536000
		opts.STSIncludeSubdomains = true
		opts.STSPreload = true
	}
	return secure.New(opts).Handler
}

// Nonce возвращает CSP-nonce текущего запроса для шаблонов
func Nonce(r *http.Request) string {
	return secure.CSPNonce(r.Context())
}

package core

// auth.go - Authorization (Bearer) для админского API
import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest — JSON-тело логин-запроса.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// JWTMiddleware — Проверяет JWT в заголовке Authorization (Bearer).
// Применяется для защиты маршрутов /api/admin/*.
func JWTMiddleware(cfg JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				Fail(w, r, Unauthorized("Authorization header missing"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				Fail(w, r, Unauthorized("Invalid Authorization header format"))
				return
			}

			claims, err := ParseToken(cfg, parts[1])
			if err != nil {
				Fail(w, r, Unauthorized("Invalid or expired JWT"))
				return
			}

			ctx := context.WithValue(r.Context(), CtxUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IssueToken подписывает HS256-токен для пользователя
func IssueToken(cfg JWTConfig, subject string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(cfg.Expiration).Unix(),
		"iat": now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

// ParseToken проверяет подпись и срок действия токена
func ParseToken(cfg JWTConfig, raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		// Keyfunc: принимаем только HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			LogError("Unexpected signing method in JWT", map[string]interface{}{
				"algorithm": token.Header["alg"],
				"source":    "JWTMiddleware",
			})
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	return claims, nil
}

// LoginHandler — выдаёт JWT администратору (bcrypt-хэш пароля в ADMIN_PASSWORD_HASH).
func LoginHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Admin.PasswordHash == "" {
			Fail(w, r, Forbidden("Admin login disabled"))
			return
		}

		var req LoginRequest
		r.Body = http.MaxBytesReader(w, r.Body, 4<<10)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			Fail(w, r, BadRequest("Invalid request body", err))
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.Admin.User)) == 1
		passErr := bcrypt.CompareHashAndPassword([]byte(cfg.Admin.PasswordHash), []byte(req.Password))
		if !userOK || passErr != nil {
			Fail(w, r, Unauthorized("Invalid credentials"))
			return
		}

		tokenString, err := IssueToken(cfg.JWT, req.Username, time.Now())
		if err != nil {
			Fail(w, r, Internal("Failed to generate JWT", err))
			return
		}

		JSON(w, http.StatusOK, map[string]string{"token": tokenString})
	}
}

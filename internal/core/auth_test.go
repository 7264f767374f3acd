package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWT = JWTConfig{Secret: "test-secret-test-secret-test-sec", Expiration: time.Hour}

func TestIssueAndParseToken(t *testing.T) {
	raw, err := IssueToken(testJWT, "admin", time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(testJWT, raw)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["sub"])

	_, err = ParseToken(JWTConfig{Secret: "other"}, raw)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	raw, err := IssueToken(testJWT, "admin", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = ParseToken(testJWT, raw)
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	var sub any
	h := JWTMiddleware(testJWT)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := r.Context().Value(CtxUser).(jwt.MapClaims)
		sub = claims["sub"]
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}

	raw, err := IssueToken(testJWT, "admin", time.Now())
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "admin", sub)
}

func TestLoginHandler(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := Config{JWT: testJWT, Admin: AdminConfig{User: "admin", PasswordHash: string(hash)}}

	tests := []struct {
		name string
		cfg  Config
		body string
		want int
	}{
		{name: "ok", cfg: cfg, body: `{"username":"admin","password":"s3cret"}`, want: http.StatusOK},
		{name: "wrong password", cfg: cfg, body: `{"username":"admin","password":"nope"}`, want: http.StatusUnauthorized},
		{name: "wrong user", cfg: cfg, body: `{"username":"root","password":"s3cret"}`, want: http.StatusUnauthorized},
		{name: "bad json", cfg: cfg, body: `{`, want: http.StatusBadRequest},
		{name: "disabled", cfg: Config{JWT: testJWT}, body: `{}`, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			LoginHandler(tt.cfg)(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"token":"`)
			}
		})
	}
}

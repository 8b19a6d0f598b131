package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scrapiz/config"
	memoryRepo "scrapiz/database/repository/memory"
	"scrapiz/models"
	"scrapiz/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
}

func protectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString(utils.CtxUserID)})
	})
	r.GET("/protected", handlers...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	denylist := utils.NewMemoryTokenDenylist()
	r := protectedRouter(JWTAuthMiddleware(denylist))

	valid, err := utils.GenerateToken("u1", "u1@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, _ := utils.GenerateToken("u1", "u1@example.com", -time.Hour)
	noSubject, _ := utils.GenerateToken("", "anon@example.com", time.Hour)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"expired", expired, http.StatusUnauthorized},
		{"no subject", noSubject, http.StatusUnauthorized},
		{"valid", valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := get(r, tt.token); w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}

	t.Run("revoked", func(t *testing.T) {
		if err := denylist.Revoke(context.Background(), utils.HashToken(valid), time.Now().Add(time.Hour)); err != nil {
			t.Fatal(err)
		}
		if w := get(r, valid); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()
	store := memoryRepo.NewStore()
	store.Profiles().Upsert(ctx, &models.Profile{ID: "boss", Role: models.RoleAdmin})
	store.Profiles().Upsert(ctx, &models.Profile{ID: "customer"})

	r := protectedRouter(JWTAuthMiddleware(utils.NewMemoryTokenDenylist()), RequireAdmin(store.Profiles()))

	tests := []struct {
		user string
		want int
	}{
		{"boss", http.StatusOK},
		{"customer", http.StatusForbidden},
		{"stranger", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			token, _ := utils.GenerateToken(tt.user, "", time.Hour)
			if w := get(r, token); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := protectedRouter(RateLimitMiddleware(2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Real-IP", "198.51.100.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("other client limited: %d", w.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"no proxies trusted ignores forwarded header", nil, "192.0.2.10:4000", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "192.0.2.10"},
		{"trusted proxy forwards client", []string{"10.0.0.0/8"}, "10.0.0.1:4000", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"untrusted peer cannot spoof", []string{"10.0.0.0/8"}, "192.0.2.10:4000", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "192.0.2.10"},
		{"real ip header from trusted proxy", []string{"10.0.0.0/8"}, "10.0.0.1:4000", map[string]string{"X-Real-IP": "198.51.100.1"}, "198.51.100.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			if err := r.SetTrustedProxies(tt.trusted); err != nil {
				t.Fatal(err)
			}
			var got string
			r.GET("/ip", func(c *gin.Context) {
				got = getClientIP(c)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/ip", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)
			if got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

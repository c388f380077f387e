package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/riadhbennourdine/pharmia/config"
	"github.com/riadhbennourdine/pharmia/internal/policy"
	"github.com/riadhbennourdine/pharmia/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-at-least-16-chars",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 168 * time.Hour,
	})
}

func protectedRouter(jwtMgr *jwt.Manager, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(jwtMgr, nil)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := protectedRouter(testJWTManager())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	r := protectedRouter(testJWTManager())

	for _, header := range []string{"Basic abc", "Bearer", "token-without-scheme"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtMgr := testJWTManager()
	r := protectedRouter(jwtMgr)

	token, err := jwtMgr.GenerateAccessToken("user-1", "marie", "Pharmacien")
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestJWTAuth_RejectsRefreshToken(t *testing.T) {
	jwtMgr := testJWTManager()
	r := protectedRouter(jwtMgr)

	token, err := jwtMgr.GenerateRefreshToken("user-1", "marie", "Pharmacien")
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("a refresh token must not grant access, got %d", w.Code)
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	other := jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-16-chars-min",
		AccessTokenTTL: time.Hour,
	})
	token, err := other.GenerateAccessToken("user-1", "marie", "Pharmacien")
	if err != nil {
		t.Fatal(err)
	}

	r := protectedRouter(testJWTManager())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequirePermission_PerRole(t *testing.T) {
	jwtMgr := testJWTManager()
	r := protectedRouter(jwtMgr, RequirePermission(policy.ActionMemoFicheDelete))

	cases := []struct {
		role string
		want int
	}{
		{"Admin", http.StatusOK},
		{"Formateur", http.StatusForbidden},
		{"Pharmacien", http.StatusForbidden},
		{"Preparateur", http.StatusForbidden},
	}
	for _, tc := range cases {
		token, err := jwtMgr.GenerateAccessToken("user-1", "marie", tc.role)
		if err != nil {
			t.Fatal(err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Errorf("role %s: expected %d, got %d", tc.role, tc.want, w.Code)
		}
	}
}

func TestRequirePermission_UnknownRole(t *testing.T) {
	jwtMgr := testJWTManager()
	r := protectedRouter(jwtMgr, RequirePermission(policy.ActionCatalogView))

	// A token forged with an unknown role label gets 403, never 500.
	token, err := jwtMgr.GenerateAccessToken("user-1", "marie", "superviseur")
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

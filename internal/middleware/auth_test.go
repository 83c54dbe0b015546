package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/requestdata"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestRequireAuthValidBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	studentID := uuid.New()

	var captured *requestdata.RequestData
	router := gin.New()
	am := NewAuthMiddleware(logger.NewNop(), testSecret)
	router.GET("/protected", am.RequireAuth(), func(c *gin.Context) {
		captured = requestdata.GetRequestData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	token := signToken(t, jwt.MapClaims{
		"sub":  studentID.String(),
		"role": "student",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if captured == nil {
		t.Fatal("request data missing from context")
	}
	if captured.StudentID != studentID || captured.Role != "student" {
		t.Fatalf("request data = %+v", captured)
	}
}

func TestRequireAuthQueryToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	am := NewAuthMiddleware(logger.NewNop(), testSecret)
	router.GET("/protected", am.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signToken(t, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequireAuthRejections(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	am := NewAuthMiddleware(logger.NewNop(), testSecret)
	router.GET("/protected", am.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	expired := signToken(t, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}, testSecret)
	wrongKey := signToken(t, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}, "other-secret")
	noSubject := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"no subject", "Bearer " + noSubject, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

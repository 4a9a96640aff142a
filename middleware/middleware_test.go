package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PilotScript/freelancer-platform/globals"
	"github.com/PilotScript/freelancer-platform/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func freshClaims(userID string, role models.Role) *Claims {
	return &Claims{
		Email:  userID + "@example.com",
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestAuthenticateSetsUserContext(t *testing.T) {
	signed := signToken(t, freshClaims("u_test1", models.RoleClient))

	var gotUser string
	var gotRole models.Role
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(models.Role)
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotUser != "u_test1" || gotRole != models.RoleClient {
		t.Errorf("context = (%s, %s)", gotUser, gotRole)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler reached")
	})

	for _, header := range []string{"", "Bearer garbage", "garbage"} {
		r := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler(w, r, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	claims := freshClaims("u_test1", models.RoleClient)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	signed := signToken(t, claims)

	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler reached")
	})
	r := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	handler := Chain(Authenticate, RequireRoles(models.RoleAdmin))(
		func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusOK)
		})

	r := httptest.NewRequest("GET", "/api/v1/users", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, freshClaims("u_adm", models.RoleAdmin)))
	w := httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusOK {
		t.Errorf("admin: status = %d", w.Code)
	}

	r = httptest.NewRequest("GET", "/api/v1/users", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, freshClaims("u_fl", models.RoleFreelancer)))
	w = httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("freelancer: status = %d, want 403", w.Code)
	}
}

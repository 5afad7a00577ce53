package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "secreto-de-test"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJWTAuthValidToken(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":     userID.Hex(),
		"isAdmin": true,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	var gotUser primitive.ObjectID
	var gotAdmin bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotAdmin = IsAdminFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	JWTAuth(testSecret)(next).ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID, gotUser)
	require.True(t, gotAdmin)
}

func TestJWTAuthRejects(t *testing.T) {
	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": primitive.NewObjectID().Hex(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "otro-secreto", jwt.MapClaims{
		"sub": primitive.NewObjectID().Hex(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	badSub := signToken(t, testSecret, jwt.MapClaims{
		"sub": "no-es-un-objectid",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"sin header", ""},
		{"sin esquema Bearer", "Token abc"},
		{"token expirado", "Bearer " + expired},
		{"firma inválida", "Bearer " + wrongKey},
		{"sub malformado", "Bearer " + badSub},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("el handler no debería ejecutarse")
	})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			JWTAuth(testSecret)(next).ServeHTTP(rec, r)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":     primitive.NewObjectID().Hex(),
		"isAdmin": false,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	chain := JWTAuth(testSecret)(AdminOnly()(next))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	chain.ServeHTTP(rec, r)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, called)
}

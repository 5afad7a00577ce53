package service

import (
	"context"
	"testing"

	"reelcritic/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "secreto-de-test"

func registerUser(t *testing.T, svc *AuthService, username, email string) *models.User {
	t.Helper()
	u, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return u
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserStore(), testSecret)

	u := registerUser(t, svc, "cinefilo", "cine@mail.com")
	require.False(t, u.ID.IsZero())
	// el hash nunca es la contraseña en claro
	require.NotEqual(t, "password123", u.PasswordHash)

	token, logged, err := svc.Login(ctx, "cine@mail.com", "password123")
	require.NoError(t, err)
	require.Equal(t, u.ID, logged.ID)

	// el token lleva sub e isAdmin y está firmado con el secreto
	parsed, err := jwt.Parse(token, func(tk *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, u.ID.Hex(), claims["sub"])
	require.Equal(t, false, claims["isAdmin"])
}

func TestLoginBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserStore(), testSecret)
	registerUser(t, svc, "cinefilo", "cine@mail.com")

	_, _, err := svc.Login(ctx, "cine@mail.com", "incorrecta")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nadie@mail.com", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserStore(), testSecret)
	registerUser(t, svc, "cinefilo", "cine@mail.com")

	_, err := svc.Register(ctx, &models.RegisterRequest{
		Username: "otro", Email: "cine@mail.com", Password: "password123",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, &models.RegisterRequest{
		Username: "cinefilo", Email: "otro@mail.com", Password: "password123",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterRejectsBadUsername(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), testSecret)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "con espacios", Email: "x@mail.com", Password: "password123",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "username")
}

func TestGetMe(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserStore(), testSecret)
	u := registerUser(t, svc, "cinefilo", "cine@mail.com")

	got, err := svc.GetMe(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "cinefilo", got.Username)

	_, err = svc.GetMe(ctx, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrUserNotFound)
}

package auth_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kirana-pos/internal/application/auth"
	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/sqlite"
	"github.com/jhoicas/kirana-pos/pkg/jwt"
)

const secret = "test-secret"

func newUseCase(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return auth.NewAuthUseCase(sqlite.NewUserRepository(db), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "kirana-pos"})
}

func register(t *testing.T, uc *auth.AuthUseCase) *dto.UserResponse {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: " Tienda@Example.com ", Password: "password123", ShopName: "Kirana Lakshmi",
	})
	require.NoError(t, err)
	return u
}

func TestRegister_NormalizaEmail(t *testing.T) {
	uc := newUseCase(t)
	u := register(t, uc)
	assert.Equal(t, "tienda@example.com", u.Email)
	assert.Equal(t, "Kirana Lakshmi", u.ShopName)
	assert.Equal(t, "active", u.Status)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newUseCase(t)
	register(t, uc)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "tienda@example.com", Password: "otra-clave1", ShopName: "Otra",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenConUsuario(t *testing.T) {
	uc := newUseCase(t)
	u := register(t, uc)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "TIENDA@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.User.ID)

	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUseCase(t)
	register(t, uc)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "tienda@example.com", Password: "mal"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe(t *testing.T) {
	uc := newUseCase(t)
	u := register(t, uc)

	got, err := uc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = uc.Me(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

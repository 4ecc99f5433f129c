package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-analytics-api/internal/application/auth"
	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/retail-analytics-api/pkg/jwt"
)

var testJWT = auth.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	ExpMinutes: 60,
	Issuer:     "retail-analytics-test",
}

func newAuthUC() (*auth.UseCase, *memory.DB) {
	db := memory.New()
	return auth.NewUseCase(db, testJWT), db
}

func TestRegister_EmiteTokenConClaims(t *testing.T) {
	uc, _ := newAuthUC()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@acme.co", Password: "secreta1", Role: "SALE_MANAGER",
	})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testJWT.Secret, out.AccessToken)
	require.NoError(t, err, "el token emitido debe validar con el mismo secreto")
	assert.Equal(t, out.User.ID, claims.Subject)
	assert.Equal(t, "ana@acme.co", claims.Email)
	assert.Equal(t, "SALE_MANAGER", claims.Role)
}

// Sin rol explícito el registro asigna USER, el rol de menor privilegio.
func TestRegister_RolPorDefecto(t *testing.T) {
	uc, _ := newAuthUC()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@acme.co", Password: "secreta1",
	})
	require.NoError(t, err)
	assert.Equal(t, "USER", out.User.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC()
	ctx := context.Background()
	in := dto.RegisterRequest{Name: "Ana", Email: "ana@acme.co", Password: "secreta1"}

	_, err := uc.Register(ctx, in)
	require.NoError(t, err)
	_, err = uc.Register(ctx, in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// La comparación del email es exacta: Ana@acme.co y ana@acme.co son
// identidades distintas.
func TestRegister_EmailSensibleAMayusculas(t *testing.T) {
	uc, _ := newAuthUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@acme.co", Password: "secreta1"})
	require.NoError(t, err)
	_, err = uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "Ana@acme.co", Password: "secreta1"})
	assert.NoError(t, err)
}

func TestRegister_RolDesconocido(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@acme.co", Password: "secreta1", Role: "ROOT",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc, _ := newAuthUC()
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@acme.co", Password: "secreta1"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@acme.co", Password: "secreta1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
}

// Email desconocido y password incorrecto devuelven el mismo error: el
// caller no puede distinguir si la cuenta existe.
func TestLogin_FallosIndistinguibles(t *testing.T) {
	uc, _ := newAuthUC()
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@acme.co", Password: "secreta1"})
	require.NoError(t, err)

	_, errBadPass := uc.Login(ctx, dto.LoginRequest{Email: "ana@acme.co", Password: "incorrecta"})
	_, errUnknown := uc.Login(ctx, dto.LoginRequest{Email: "nadie@acme.co", Password: "loquesea"})

	assert.ErrorIs(t, errBadPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.Equal(t, errBadPass, errUnknown)
}

func TestAuthResponse_NuncaExponeElHash(t *testing.T) {
	uc, db := newAuthUC()
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@acme.co", Password: "secreta1"})
	require.NoError(t, err)

	stored, err := db.FindByEmail(ctx, "ana@acme.co")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash, "el hash sí se persiste")
	assert.NotContains(t, out.AccessToken, stored.PasswordHash)
}

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicayacucho/inventario-stock/internal/application/auth"
	"github.com/clinicayacucho/inventario-stock/internal/domain"
	"github.com/clinicayacucho/inventario-stock/pkg/jwt"
)

func newUseCase(t *testing.T, password string) *auth.UseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewUseCase(auth.Config{
		PasswordHash: string(hash),
		JWTSecret:    "secreto-de-test",
		ExpMinutes:   60,
		Issuer:       "inventario-test",
	})
}

func TestLogin_ContrasenaCorrectaEmiteToken(t *testing.T) {
	uc := newUseCase(t, "clinica2026")

	token, err := uc.Login("clinica2026")

	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NoError(t, jwt.Parse("secreto-de-test", token), "el token emitido debe validar con el mismo secreto")
}

func TestLogin_ContrasenaIncorrecta(t *testing.T) {
	uc := newUseCase(t, "clinica2026")

	token, err := uc.Login("incorrecta")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, token)
}

// Sin hash configurado el portal queda cerrado: ninguna contraseña entra.
func TestLogin_SinHashConfigurado(t *testing.T) {
	uc := auth.NewUseCase(auth.Config{JWTSecret: "s", ExpMinutes: 60})

	_, err := uc.Login("cualquiera")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_ContrasenaVaciaNoEntra(t *testing.T) {
	uc := newUseCase(t, "clinica2026")

	_, err := uc.Login("")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

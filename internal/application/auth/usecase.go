package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicayacucho/inventario-stock/internal/domain"
	"github.com/clinicayacucho/inventario-stock/pkg/jwt"
)

// Config credenciales del portal: hash bcrypt de la contraseña del sitio y
// parámetros de emisión del JWT de sesión.
type Config struct {
	PasswordHash string // bcrypt de la contraseña compartida
	JWTSecret    string
	ExpMinutes   int
	Issuer       string
}

// UseCase valida la contraseña única del sitio y emite el token de sesión.
// Replica la pantalla de acceso de "solo personal autorizado": una credencial
// compartida, sin usuarios individuales.
type UseCase struct {
	cfg Config
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(cfg Config) *UseCase {
	return &UseCase{cfg: cfg}
}

// Login compara la contraseña contra el hash bcrypt configurado y genera el
// JWT. Sin hash configurado no hay acceso posible.
func (uc *UseCase) Login(password string) (string, error) {
	if uc.cfg.PasswordHash == "" {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	return jwt.Generate(uc.cfg.JWTSecret, uc.cfg.Issuer, uc.cfg.ExpMinutes)
}

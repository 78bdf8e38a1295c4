package dto

// LoginRequest contraseña de acceso al portal.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse token de sesión emitido.
type LoginResponse struct {
	Token string `json:"token"`
}

package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// La identidad la emite un proveedor externo; este paquete solo VALIDA los
// tokens firmados con el secreto compartido (HS256) y extrae las claims que
// la aplicación necesita: el id del usuario actuante y su rol.

// TokenService define el contrato de validación de JWTs.
type TokenService interface {
	ValidateToken(tokenString string) (*CustomClaims, error)
}

// CustomClaims define la información que el proveedor de identidad incluye
// en el JWT. Es obligatorio incorporar jwt.RegisteredClaims.
type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service implementa la interfaz TokenService.
type Service struct {
	secretKey []byte
}

// NewService crea una nueva instancia del servicio de tokens.
func NewService(secretKey string) *Service {
	return &Service{
		secretKey: []byte(secretKey),
	}
}

// ValidateToken valida el token y retorna las claims si es válido.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verifica que el método de firma sea el esperado (HS256).
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		// Cubre los errores comunes de JWT: expirado, malformado, firma inválida.
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("el token no es válido")
	}

	return claims, nil
}

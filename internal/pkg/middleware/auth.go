package middleware

import (
	"context"
	"net/http"

	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
	apperror "github.com/Denjimex/mi-proyecto-inventario/internal/errors"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/token"
)

// ContextKey es el tipo de las claves que anexamos al contexto de la
// petición. Usamos un tipo propio (no string) para garantizar que la clave
// sea única y no colisione con claves de otros paquetes.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
)

// UserClaims representa los datos del usuario extraídos del token JWT que
// se anexan al contexto. UserID alimenta después el registro de
// movimientos (usuario actuante).
type UserClaims struct {
	UserID string
	Role   domain.UserRole
}

// TokenService define el contrato de validación que necesita el middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware crea una función de middleware que valida el JWT emitido
// por el proveedor de identidad y anexa las claims (UserID y Role) al
// contexto de la petición.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extraer el token del header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
				http.Error(w, apperror.NewUnauthorizedError("Token de autorización ausente o malformado.").Error(), http.StatusUnauthorized)
				return
			}

			tokenString := authHeader[7:]

			// 2. Validar el token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, apperror.NewUnauthorizedError("Token inválido o expirado.").Error(), http.StatusUnauthorized)
				return
			}

			// 3. Anexar las claims al contexto
			userClaims := UserClaims{
				UserID: claims.UserID,
				Role:   domain.UserRole(claims.Role),
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext es la función utilitaria para extraer las claims
// dentro de un handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// PermissionMiddleware restringe el acceso a los roles indicados.
// Debe encadenarse DESPUÉS de NewAuthMiddleware.
func PermissionMiddleware(requiredRoles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extraer las claims del contexto
			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				http.Error(w, apperror.NewUnauthorizedError("Autorización requerida. Token no procesado.").Error(), http.StatusUnauthorized)
				return
			}

			// 2. Verificar el permiso (AuthZ)
			isAuthorized := false
			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					isAuthorized = true
					break
				}
			}

			if !isAuthorized {
				http.Error(w, apperror.NewUnauthorizedError("Acceso denegado. No tienes el permiso necesario.").Error(), http.StatusForbidden) // 403
				return
			}

			// 3. Permiso concedido
			next.ServeHTTP(w, r)
		}
	}
}

package domain

// UserRole es el papel del usuario dentro del sistema. La identidad la
// gestiona un proveedor externo; aquí solo interpretamos la claim de rol
// del token para el control de acceso por ruta.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
	RoleLector UserRole = "lector"
)

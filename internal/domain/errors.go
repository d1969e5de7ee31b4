package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce a
// códigos estables; ninguno lleva texto de la base de datos.
var (
	ErrInvalidCredentials     = errors.New("credenciales inválidas")
	ErrEmailTaken             = errors.New("el email ya está registrado")
	ErrCompanyNotFound        = errors.New("empresa no encontrada")
	ErrForbidden              = errors.New("acceso denegado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrTokenInvalid           = errors.New("token inválido")
	ErrTokenExpired           = errors.New("token expirado")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrValidation             = errors.New("entrada inválida")
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrSlugTaken              = errors.New("el slug ya está en uso")
	ErrRateLimited            = errors.New("demasiados intentos")
)

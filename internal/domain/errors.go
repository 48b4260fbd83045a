package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Invitaciones
	ErrInvitationNotFound = errors.New("invitación no encontrada")
	ErrInvitationInvalid  = errors.New("invitación usada o expirada")
	ErrEmailMismatch      = errors.New("el email no coincide con el de la invitación")

	// Suscripciones
	ErrSubscriptionActive = errors.New("la escuela ya tiene una suscripción activa o en mora para ese plan")
	ErrPlanInUse          = errors.New("el plan tiene suscripciones activas")
)

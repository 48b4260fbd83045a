package entity

import "time"

// School unidad organizacional raíz (tenant): dueña de aulas, activos y suscripciones.
type School struct {
	ID          string
	Name        string
	Address     string
	Description string
	LogoURL     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Classroom aula de una escuela. El código es único por escuela y se genera
// a partir del nombre al crearla.
type Classroom struct {
	ID          string
	SchoolID    string
	Code        string
	Name        string
	Capacity    *int
	Responsible string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

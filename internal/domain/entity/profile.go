package entity

import "time"

// ProfileKind tipo de dueño de un slug de perfil público.
type ProfileKind string

const (
	ProfilePersonal ProfileKind = "PERSONAL"
	ProfileEmployee ProfileKind = "EMPLOYEE"
)

// PersonalProfile perfil 1:1 de una cuenta PERSONAL.
type PersonalProfile struct {
	ID        string
	AccountID string
	FullName  string
	Phone     string
	Headline  string
	Bio       string
	Website   string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileSlug reserva de un slug en el espacio compartido de perfiles.
type ProfileSlug struct {
	Slug      string
	Kind      ProfileKind
	ProfileID string
	CreatedAt time.Time
}

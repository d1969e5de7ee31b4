package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/ophuaconnect-api/internal/domain"
)

// EmployeeStatus estado de aprobación de un empleado.
type EmployeeStatus string

// PENDING -> APPROVED | REJECTED. Ambos destinos son terminales.
const (
	EmployeePending  EmployeeStatus = "PENDING"
	EmployeeApproved EmployeeStatus = "APPROVED"
	EmployeeRejected EmployeeStatus = "REJECTED"
)

// Valid informa si s es un estado conocido.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeePending, EmployeeApproved, EmployeeRejected:
		return true
	}
	return false
}

// EmployeeProfile pertenece a una Company y a una Account EMPLOYEE.
type EmployeeProfile struct {
	ID         string
	AccountID  string
	CompanyID  string
	FullName   string
	Position   string
	Phone      string
	Bio        string
	Slug       string
	Status     EmployeeStatus
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Approve mueve PENDING -> APPROVED.
func (e *EmployeeProfile) Approve(reviewerID string, now time.Time) error {
	return e.transition(EmployeeApproved, reviewerID, now)
}

// Reject mueve PENDING -> REJECTED. El perfil queda oculto de forma permanente.
func (e *EmployeeProfile) Reject(reviewerID string, now time.Time) error {
	return e.transition(EmployeeRejected, reviewerID, now)
}

func (e *EmployeeProfile) transition(to EmployeeStatus, reviewerID string, now time.Time) error {
	if e.Status != EmployeePending {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStateTransition, e.Status, to)
	}
	e.Status = to
	e.ReviewedBy = &reviewerID
	e.ReviewedAt = &now
	e.UpdatedAt = now
	return nil
}

// IsApproved habilita el autoservicio del empleado.
func (e *EmployeeProfile) IsApproved() bool {
	return e != nil && e.Status == EmployeeApproved
}

// IsVisible falso para REJECTED: no aparece en ninguna lectura.
func (e *EmployeeProfile) IsVisible() bool {
	return e != nil && e.Status != EmployeeRejected
}

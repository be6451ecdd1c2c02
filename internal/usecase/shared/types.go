package shared

import (
	"github.com/google/uuid"
)

// Actor identifies who triggers a command, resolved from the request token.
type Actor struct {
	UserID uuid.UUID
	UnitID uuid.UUID
	Name   string
	Role   Role
}

type Role string

const (
	RoleTenant Role = "tenant"
	RoleOwner  Role = "owner"
	RoleBoard  Role = "board"
	RoleAdmin  Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleTenant, RoleOwner, RoleBoard, RoleAdmin:
		return true
	default:
		return false
	}
}

// Privileged actors book at the owner rate and may manage any reservation.
func (a Actor) Privileged() bool {
	switch a.Role {
	case RoleOwner, RoleBoard, RoleAdmin:
		return true
	default:
		return false
	}
}

func (a Actor) CanManage(reservationUserID uuid.UUID) bool {
	return a.Privileged() || a.UserID == reservationUserID
}

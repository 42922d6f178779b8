package models

import "strconv"

// Role роль пользователя. Значения фиксированы и сравниваются только на равенство.
type Role int

const (
	RoleUnauthenticated Role = 0
	RoleAdmin           Role = 1
	RoleSubscriber      Role = 2
	RoleCustomer        Role = 4
	RolePartner         Role = 6
)

// Valid сообщает, может ли роль быть назначена пользователю.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSubscriber, RoleCustomer, RolePartner:
		return true
	}
	return false
}

// Privileged сообщает, относится ли роль к управляющим (admin, partner).
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RolePartner
}

func (r Role) String() string {
	switch r {
	case RoleUnauthenticated:
		return "unauthenticated"
	case RoleAdmin:
		return "admin"
	case RoleSubscriber:
		return "subscriber"
	case RoleCustomer:
		return "customer"
	case RolePartner:
		return "partner"
	}
	return "role(" + strconv.Itoa(int(r)) + ")"
}

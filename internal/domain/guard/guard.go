// Package guard decides whether a caller may act on a resource.
//
// A caller may act when it is the resource owner, the secondary party
// (for a service request: the assigned technician), or when it holds the
// role the resource explicitly requires. Rejections are final.
package guard

import (
	"errors"

	"servisku/internal/domain/entities"
)

var ErrForbidden = errors.New("caller is not allowed to act on this resource")

type Resource interface {
	OwnerID() string
	SecondaryPartyID() string
	RequiredRole() entities.Role
}

func CanAct(caller entities.Caller, res Resource) bool {
	if caller.ID == "" {
		return false
	}
	if owner := res.OwnerID(); owner != "" && caller.ID == owner {
		return true
	}
	if secondary := res.SecondaryPartyID(); secondary != "" && caller.ID == secondary {
		return true
	}
	required := res.RequiredRole()
	return required != "" && caller.Role == required
}

func Authorize(caller entities.Caller, res Resource) error {
	if !CanAct(caller, res) {
		return ErrForbidden
	}
	return nil
}

// Static is a Resource built from plain values.
type Static struct {
	Owner     string
	Secondary string
	Role      entities.Role
}

func (s Static) OwnerID() string { return s.Owner }
func (s Static) SecondaryPartyID() string { return s.Secondary }
func (s Static) RequiredRole() entities.Role { return s.Role }

// Participants restricts a service request to its customer and technician.
func Participants(r entities.ServiceRequest) Resource {
	return Static{Owner: r.CustomerID, Secondary: r.TechnicianID}
}

// CustomerOf restricts a service request to its customer.
func CustomerOf(r entities.ServiceRequest) Resource {
	return Static{Owner: r.CustomerID}
}

// TechnicianOf restricts a service request to its assigned technician.
func TechnicianOf(r entities.ServiceRequest) Resource {
	return Static{Owner: r.TechnicianID}
}

// AdminOnly is satisfied by the admin role alone.
func AdminOnly() Resource {
	return Static{Role: entities.RoleAdmin}
}

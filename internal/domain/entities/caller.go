package entities

type Role string

const (
	RoleUser       Role = "user"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
)

// Caller is the authenticated identity an operation runs on behalf of.
type Caller struct {
	ID   string
	Role Role
}

package entities

// TechnicianService maps a technician to a service category they can take.
// The marketplace consumes this registry; it does not maintain it.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (category_slug-index): category_slug
type TechnicianService struct {
	ID           string `json:"id"`
	TechnicianID string `json:"technician_id"`
	CategorySlug string `json:"category_slug"`
	Active       bool   `json:"active"`
}

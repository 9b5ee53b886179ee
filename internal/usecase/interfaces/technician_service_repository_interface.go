package interfaces

import (
	"context"

	"servisku/internal/domain/entities"
)

//go:generate mockgen -source=technician_service_repository_interface.go -destination=mocks/mock_technician_service_repository_interface.go -package=mock_interfaces

// ITechnicianServiceRepository reads the technician-category registry.

type ITechnicianServiceRepository interface {
	ListActiveByCategory(ctx context.Context, categorySlug string) ([]entities.TechnicianService, error)
}

package interfaces

import (
	"context"

	"servisku/internal/domain/entities"
)

//go:generate mockgen -source=balance_entry_repository_interface.go -destination=mocks/mock_balance_entry_repository_interface.go -package=mock_interfaces

// IBalanceEntryRepository abstracts the append-only ledger table.
//
// CreateIfAbsent writes the entry only when no entry with the same ID exists
// and reports whether this call created it.

type IBalanceEntryRepository interface {
	Append(ctx context.Context, e entities.BalanceEntry) (entities.BalanceEntry, error)
	CreateIfAbsent(ctx context.Context, e entities.BalanceEntry) (bool, error)
	ListByOwner(ctx context.Context, role entities.OwnerRole, ownerID string) ([]entities.BalanceEntry, error)
}

package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"servisku/internal/domain/entities"
	"servisku/internal/domain/guard"
	"servisku/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrInsufficientBalance = errors.New("amount exceeds withdrawable balance")

// RecordEntryInput describes one ledger movement.
type RecordEntryInput struct {
	OwnerRole entities.OwnerRole
	OwnerID   string
	Amount    decimal.Decimal
	Type      entities.BalanceEntryType
	Note      string
	Currency  string
}

//go:generate mockgen -source=ledger_usecase.go -destination=../adapter/http/handlers/mocks/mock_ledger_usecase.go -package=mocks

// ILedgerUseCase exposes the wallet operations.
//
//   - RecordEntry is the internal append used by other flows (no caller check).
//   - RecordAdjustment is the same append on behalf of an admin.
//   - GetLedgerView aggregates an owner's entries, bootstrapping the wallet on first access.
//   - Withdraw debits the caller's own withdrawable balance.

type ILedgerUseCase interface {
	RecordEntry(ctx context.Context, in RecordEntryInput) (entities.BalanceEntry, error)
	RecordAdjustment(ctx context.Context, caller entities.Caller, in RecordEntryInput) (entities.BalanceEntry, error)
	GetLedgerView(ctx context.Context, caller entities.Caller, role entities.OwnerRole, ownerID string) (entities.LedgerView, error)
	Withdraw(ctx context.Context, caller entities.Caller, amount decimal.Decimal, note string) (entities.BalanceEntry, error)
}

type LedgerUseCase struct {
	repo     interfaces.IBalanceEntryRepository
	currency string
	now      func() time.Time
}

var _ ILedgerUseCase = (*LedgerUseCase)(nil)

func NewLedgerUseCase(repo interfaces.IBalanceEntryRepository, currency string) *LedgerUseCase {
	if strings.TrimSpace(currency) == "" {
		currency = entities.DefaultCurrency
	}
	return &LedgerUseCase{repo: repo, currency: currency, now: func() time.Time { return time.Now().UTC() }}
}

// OwnerRoleFor maps a caller to the ledger it owns. Admins own no wallet.
func OwnerRoleFor(caller entities.Caller) (entities.OwnerRole, bool) {
	switch caller.Role {
	case entities.RoleUser:
		return entities.OwnerRoleUser, true
	case entities.RoleTechnician:
		return entities.OwnerRoleTechnician, true
	default:
		return "", false
	}
}

func (u *LedgerUseCase) RecordEntry(ctx context.Context, in RecordEntryInput) (entities.BalanceEntry, error) {
	ownerID, err := requireField("owner_id", in.OwnerID)
	if err != nil {
		return entities.BalanceEntry{}, err
	}
	if in.OwnerRole != entities.OwnerRoleUser && in.OwnerRole != entities.OwnerRoleTechnician {
		return entities.BalanceEntry{}, newValidationError("owner_role", "must be user or technician")
	}
	entryType, err := requireField("type", string(in.Type))
	if err != nil {
		return entities.BalanceEntry{}, err
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = u.currency
	}

	e := entities.BalanceEntry{
		ID:        uuid.NewString(),
		OwnerRole: in.OwnerRole,
		OwnerID:   ownerID,
		Amount:    in.Amount,
		Type:      entities.BalanceEntryType(entryType),
		Note:      strings.TrimSpace(in.Note),
		Currency:  currency,
		CreatedAt: u.now(),
	}
	created, err := u.repo.Append(ctx, e)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("owner_key", entities.OwnerKey(e.OwnerRole, e.OwnerID)).Msg("[ledger][usecase] append failed")
		return entities.BalanceEntry{}, err
	}
	log.Ctx(ctx).Info().
		Str("owner_key", entities.OwnerKey(created.OwnerRole, created.OwnerID)).
		Str("entry_id", created.ID).
		Str("type", string(created.Type)).
		Str("amount", created.Amount.String()).
		Msg("[ledger][usecase] entry recorded")
	return created, nil
}

func (u *LedgerUseCase) RecordAdjustment(ctx context.Context, caller entities.Caller, in RecordEntryInput) (entities.BalanceEntry, error) {
	if err := guard.Authorize(caller, guard.AdminOnly()); err != nil {
		log.Ctx(ctx).Warn().Str("caller_id", caller.ID).Msg("[ledger][usecase] adjustment rejected")
		return entities.BalanceEntry{}, err
	}
	if strings.TrimSpace(string(in.Type)) == "" {
		in.Type = entities.BalanceEntryAdjustment
	}
	return u.RecordEntry(ctx, in)
}

func (u *LedgerUseCase) GetLedgerView(ctx context.Context, caller entities.Caller, role entities.OwnerRole, ownerID string) (entities.LedgerView, error) {
	ownerID, err := requireField("owner_id", ownerID)
	if err != nil {
		return entities.LedgerView{}, err
	}
	if role != entities.OwnerRoleUser && role != entities.OwnerRoleTechnician {
		return entities.LedgerView{}, newValidationError("owner_role", "must be user or technician")
	}
	if err := guard.Authorize(caller, walletOf(caller, role, ownerID)); err != nil {
		log.Ctx(ctx).Warn().Str("caller_id", caller.ID).Str("owner_key", entities.OwnerKey(role, ownerID)).Msg("[ledger][usecase] view rejected")
		return entities.LedgerView{}, err
	}
	return u.view(ctx, role, ownerID)
}

func (u *LedgerUseCase) Withdraw(ctx context.Context, caller entities.Caller, amount decimal.Decimal, note string) (entities.BalanceEntry, error) {
	role, ok := OwnerRoleFor(caller)
	if !ok || caller.ID == "" {
		return entities.BalanceEntry{}, guard.ErrForbidden
	}
	if !amount.IsPositive() {
		return entities.BalanceEntry{}, newValidationError("amount", "must be greater than zero")
	}

	view, err := u.view(ctx, role, caller.ID)
	if err != nil {
		return entities.BalanceEntry{}, err
	}
	// Two concurrent withdrawals can both pass this check; payouts are reviewed
	// before money leaves the platform.
	if amount.GreaterThan(view.WithdrawableAmount) {
		log.Ctx(ctx).Info().
			Str("owner_key", entities.OwnerKey(role, caller.ID)).
			Str("amount", amount.String()).
			Str("withdrawable", view.WithdrawableAmount.String()).
			Msg("[ledger][usecase] withdrawal exceeds balance")
		return entities.BalanceEntry{}, ErrInsufficientBalance
	}

	if strings.TrimSpace(note) == "" {
		note = "withdrawal request"
	}
	return u.RecordEntry(ctx, RecordEntryInput{
		OwnerRole: role,
		OwnerID:   caller.ID,
		Amount:    amount.Neg(),
		Type:      entities.BalanceEntryWithdrawal,
		Note:      note,
	})
}

func (u *LedgerUseCase) view(ctx context.Context, role entities.OwnerRole, ownerID string) (entities.LedgerView, error) {
	entries, err := u.repo.ListByOwner(ctx, role, ownerID)
	if err != nil {
		return entities.LedgerView{}, err
	}

	if len(entries) == 0 {
		initial := entities.BalanceEntry{
			ID:        entities.InitialBalanceEntryID(role, ownerID),
			OwnerRole: role,
			OwnerID:   ownerID,
			Amount:    decimal.Zero,
			Type:      entities.BalanceEntryInitialBalance,
			Note:      "wallet opened",
			Currency:  u.currency,
			CreatedAt: u.now(),
		}
		created, err := u.repo.CreateIfAbsent(ctx, initial)
		if err != nil {
			return entities.LedgerView{}, err
		}
		log.Ctx(ctx).Info().Str("owner_key", entities.OwnerKey(role, ownerID)).Bool("created", created).Msg("[ledger][usecase] wallet bootstrap")

		entries, err = u.repo.ListByOwner(ctx, role, ownerID)
		if err != nil {
			return entities.LedgerView{}, err
		}
		// The owner index is eventually consistent and may not list the entry yet.
		if len(entries) == 0 {
			entries = []entities.BalanceEntry{initial}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	current, held, withdrawable := entities.Summarize(entries)
	return entities.LedgerView{
		OwnerRole:          role,
		OwnerID:            ownerID,
		Entries:            entries,
		CurrentBalance:     current,
		HeldAmount:         held,
		WithdrawableAmount: withdrawable,
	}, nil
}

// walletOf lets the owner read its own wallet and admins read any wallet.
// Ids are only unique per role, so the caller's role must match the wallet's.
func walletOf(caller entities.Caller, role entities.OwnerRole, ownerID string) guard.Resource {
	res := guard.Static{Role: entities.RoleAdmin}
	if callerRole, ok := OwnerRoleFor(caller); ok && callerRole == role {
		res.Owner = ownerID
	}
	return res
}

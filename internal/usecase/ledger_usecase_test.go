package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"servisku/internal/domain/entities"
	"servisku/internal/domain/guard"
	mock_interfaces "servisku/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T) (*LedgerUseCase, *mock_interfaces.MockIBalanceEntryRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIBalanceEntryRepository(ctrl)
	uc := NewLedgerUseCase(repo, "")
	uc.now = func() time.Time { return fixedNow }
	return uc, repo
}

func entry(id string, role entities.OwnerRole, owner string, amount int64, typ entities.BalanceEntryType, at time.Time) entities.BalanceEntry {
	return entities.BalanceEntry{
		ID:        id,
		OwnerRole: role,
		OwnerID:   owner,
		Amount:    decimal.NewFromInt(amount),
		Type:      typ,
		Currency:  entities.DefaultCurrency,
		CreatedAt: at,
	}
}

func TestLedgerUseCase_GetLedgerView_Bootstrap(t *testing.T) {
	t.Run("first access creates zero initial entry", func(t *testing.T) {
		uc, repo := newTestLedger(t)
		caller := entities.Caller{ID: "u1", Role: entities.RoleUser}
		initial := entry("initial_balance#user#u1", entities.OwnerRoleUser, "u1", 0, entities.BalanceEntryInitialBalance, fixedNow)

		gomock.InOrder(
			repo.EXPECT().ListByOwner(gomock.Any(), entities.OwnerRoleUser, "u1").Return(nil, nil),
			repo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, e entities.BalanceEntry) (bool, error) {
					if e.ID != "initial_balance#user#u1" || !e.Amount.IsZero() || e.Type != entities.BalanceEntryInitialBalance {
						t.Fatalf("unexpected bootstrap entry: %+v", e)
					}
					if e.Currency != entities.DefaultCurrency {
						t.Fatalf("expected default currency, got %s", e.Currency)
					}
					return true, nil
				},
			),
			repo.EXPECT().ListByOwner(gomock.Any(), entities.OwnerRoleUser, "u1").Return([]entities.BalanceEntry{initial}, nil),
		)

		view, err := uc.GetLedgerView(context.Background(), caller, entities.OwnerRoleUser, "u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(view.Entries) != 1 || !view.CurrentBalance.IsZero() || !view.HeldAmount.IsZero() || !view.WithdrawableAmount.IsZero() {
			t.Fatalf("unexpected view: %+v", view)
		}
	})

	t.Run("concurrent bootstrap loser still sees one entry", func(t *testing.T) {
		uc, repo := newTestLedger(t)
		caller := entities.Caller{ID: "u1", Role: entities.RoleUser}
		initial := entry("initial_balance#user#u1", entities.OwnerRoleUser, "u1", 0, entities.BalanceEntryInitialBalance, fixedNow)

		repo.EXPECT().ListByOwner(gomock.Any(), entities.OwnerRoleUser, "u1").Return(nil, nil)
		repo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().ListByOwner(gomock.Any(), entities.OwnerRoleUser, "u1").Return([]entities.BalanceEntry{initial}, nil)

		view, err := uc.GetLedgerView(context.Background(), caller, entities.OwnerRoleUser, "u1")
		if err != nil || len(view.Entries) != 1 {
			t.Fatalf("unexpected result err=%v view=%+v", err, view)
		}
	})

	t.Run("index lag falls back to the bootstrap entry", func(t *testing.T) {
		uc, repo := newTestLedger(t)
		caller := entities.Caller{ID: "t1", Role: entities.RoleTechnician}

		repo.EXPECT().ListByOwner(gomock.Any(), entities.OwnerRoleTechnician, "t1").Return(nil, nil).Times(2)
		repo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(true, nil)

		view, err := uc.GetLedgerView(context.Background(), caller, entities.OwnerRoleTechnician, "t1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(view.Entries) != 1 || view.Entries[0].ID != "initial_balance#technician#t1" {
			t.Fatalf("unexpected entries: %+v", view.Entries)
		}
	})

	t.Run("existing ledger is not bootstrapped again", func(t *testing.T) {
		uc, repo := newTestLedger(t)
		caller := entities.Caller{ID: "u1", Role: entities.RoleUser}
		repo.EXPECT().ListByOwner(gomock.Any(), entities.OwnerRoleUser, "u1").Return([]entities.BalanceEntry{
			entry("e1", entities.OwnerRoleUser, "u1", 500, entities.BalanceEntryAdjustment, fixedNow),
		}, nil)

		view, err := uc.GetLedgerView(context.Background(), caller, entities.OwnerRoleUser, "u1")
		if err != nil || !view.CurrentBalance.Equal(decimal.NewFromInt(500)) {
			t.Fatalf("unexpected result err=%v view=%+v", err, view)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		uc, repo := newTestLedger(t)
		caller := entities.Caller{ID: "u1", Role: entities.RoleUser}
		repo.EXPECT().ListByOwner(gomock.Any(), entities.OwnerRoleUser, "u1").Return(nil, errors.New("db"))

		_, err := uc.GetLedgerView(context.Background(), caller, entities.OwnerRoleUser, "u1")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestLedgerUseCase_GetLedgerView_Aggregates(t *testing.T) {
	uc, repo := newTestLedger(t)
	caller := entities.Caller{ID: "t1", Role: entities.RoleTechnician}
	repo.EXPECT().ListByOwner(gomock.Any(), entities.OwnerRoleTechnician, "t1").Return([]entities.BalanceEntry{
		entry("a", entities.OwnerRoleTechnician, "t1", 0, entities.BalanceEntryInitialBalance, fixedNow.Add(-3*time.Hour)),
		entry("b", entities.OwnerRoleTechnician, "t1", 100000, entities.BalanceEntrySettlement, fixedNow.Add(-2*time.Hour)),
		entry("c", entities.OwnerRoleTechnician, "t1", -20000, entities.BalanceEntryEscrowRelease, fixedNow.Add(-time.Hour)),
	}, nil)

	view, err := uc.GetLedgerView(context.Background(), caller, entities.OwnerRoleTechnician, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.CurrentBalance.Equal(decimal.NewFromInt(80000)) {
		t.Fatalf("current: got %s", view.CurrentBalance)
	}
	if !view.HeldAmount.Equal(decimal.NewFromInt(-20000)) {
		t.Fatalf("held: got %s", view.HeldAmount)
	}
	if !view.WithdrawableAmount.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("withdrawable: got %s", view.WithdrawableAmount)
	}
	if view.Entries[0].ID != "c" || view.Entries[2].ID != "a" {
		t.Fatalf("entries must be newest first: %+v", view.Entries)
	}
}

func TestLedgerUseCase_GetLedgerView_Authorization(t *testing.T) {
	cases := []struct {
		name    string
		caller  entities.Caller
		role    entities.OwnerRole
		ownerID string
		allowed bool
	}{
		{name: "owner", caller: entities.Caller{ID: "u1", Role: entities.RoleUser}, role: entities.OwnerRoleUser, ownerID: "u1", allowed: true},
		{name: "other user", caller: entities.Caller{ID: "u2", Role: entities.RoleUser}, role: entities.OwnerRoleUser, ownerID: "u1"},
		{name: "same id other role", caller: entities.Caller{ID: "u1", Role: entities.RoleTechnician}, role: entities.OwnerRoleUser, ownerID: "u1"},
		{name: "admin", caller: entities.Caller{ID: "a1", Role: entities.RoleAdmin}, role: entities.OwnerRoleTechnician, ownerID: "t1", allowed: true},
		{name: "anonymous", caller: entities.Caller{}, role: entities.OwnerRoleUser, ownerID: "u1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo := newTestLedger(t)
			if tc.allowed {
				repo.EXPECT().ListByOwner(gomock.Any(), tc.role, tc.ownerID).Return([]entities.BalanceEntry{
					entry("x", tc.role, tc.ownerID, 0, entities.BalanceEntryInitialBalance, fixedNow),
				}, nil)
			}
			_, err := uc.GetLedgerView(context.Background(), tc.caller, tc.role, tc.ownerID)
			if tc.allowed && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.allowed && !errors.Is(err, guard.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestLedgerUseCase_GetLedgerView_RejectsUnknownWallet(t *testing.T) {
	admin := entities.Caller{ID: "a1", Role: entities.RoleAdmin}
	cases := []struct {
		name    string
		role    entities.OwnerRole
		ownerID string
		field   string
	}{
		{name: "unknown role", role: "bogus", ownerID: "x", field: "owner_role"},
		{name: "admin role", role: entities.OwnerRole("admin"), ownerID: "a1", field: "owner_role"},
		{name: "blank owner", role: entities.OwnerRoleUser, ownerID: "  ", field: "owner_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// no expectations: any ListByOwner or CreateIfAbsent call fails the test
			uc, _ := newTestLedger(t)
			_, err := uc.GetLedgerView(context.Background(), admin, tc.role, tc.ownerID)
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("expected validation error on %s, got %v", tc.field, err)
			}
		})
	}
}

func TestLedgerUseCase_RecordEntry(t *testing.T) {
	t.Run("validations", func(t *testing.T) {
		uc, _ := newTestLedger(t)
		cases := []RecordEntryInput{
			{OwnerRole: entities.OwnerRoleUser, OwnerID: " ", Type: entities.BalanceEntryAdjustment},
			{OwnerRole: "merchant", OwnerID: "u1", Type: entities.BalanceEntryAdjustment},
			{OwnerRole: entities.OwnerRoleUser, OwnerID: "u1"},
		}
		for _, in := range cases {
			if _, err := uc.RecordEntry(context.Background(), in); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation for %+v, got %v", in, err)
			}
		}
	})

	t.Run("append fills defaults", func(t *testing.T) {
		uc, repo := newTestLedger(t)
		repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.BalanceEntry) (entities.BalanceEntry, error) {
				if e.ID == "" || e.Currency != entities.DefaultCurrency || !e.CreatedAt.Equal(fixedNow) || e.Note != "bonus" {
					t.Fatalf("unexpected entry: %+v", e)
				}
				return e, nil
			},
		)
		res, err := uc.RecordEntry(context.Background(), RecordEntryInput{
			OwnerRole: entities.OwnerRoleUser,
			OwnerID:   " u1 ",
			Amount:    decimal.NewFromInt(10),
			Type:      entities.BalanceEntryAdjustment,
			Note:      " bonus ",
		})
		if err != nil || res.OwnerID != "u1" {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("append error", func(t *testing.T) {
		uc, repo := newTestLedger(t)
		repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(entities.BalanceEntry{}, errors.New("db"))
		_, err := uc.RecordEntry(context.Background(), RecordEntryInput{OwnerRole: entities.OwnerRoleUser, OwnerID: "u1", Type: entities.BalanceEntryAdjustment})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestLedgerUseCase_RecordAdjustment(t *testing.T) {
	t.Run("non admin rejected", func(t *testing.T) {
		uc, _ := newTestLedger(t)
		_, err := uc.RecordAdjustment(context.Background(), entities.Caller{ID: "u1", Role: entities.RoleUser}, RecordEntryInput{OwnerRole: entities.OwnerRoleUser, OwnerID: "u1"})
		if !errors.Is(err, guard.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("admin defaults the type", func(t *testing.T) {
		uc, repo := newTestLedger(t)
		repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.BalanceEntry) (entities.BalanceEntry, error) {
				if e.Type != entities.BalanceEntryAdjustment {
					t.Fatalf("expected adjustment type, got %s", e.Type)
				}
				return e, nil
			},
		)
		_, err := uc.RecordAdjustment(context.Background(), entities.Caller{ID: "a1", Role: entities.RoleAdmin}, RecordEntryInput{
			OwnerRole: entities.OwnerRoleTechnician,
			OwnerID:   "t1",
			Amount:    decimal.NewFromInt(-5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestLedgerUseCase_Withdraw(t *testing.T) {
	tech := entities.Caller{ID: "t1", Role: entities.RoleTechnician}
	balance := []entities.BalanceEntry{
		entry("a", entities.OwnerRoleTechnician, "t1", 100000, entities.BalanceEntrySettlement, fixedNow.Add(-2*time.Hour)),
		entry("b", entities.OwnerRoleTechnician, "t1", 30000, entities.BalanceEntryEscrowRelease, fixedNow.Add(-time.Hour)),
	}

	t.Run("admin has no wallet", func(t *testing.T) {
		uc, _ := newTestLedger(t)
		_, err := uc.Withdraw(context.Background(), entities.Caller{ID: "a1", Role: entities.RoleAdmin}, decimal.NewFromInt(1), "")
		if !errors.Is(err, guard.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("non positive amount", func(t *testing.T) {
		uc, _ := newTestLedger(t)
		_, err := uc.Withdraw(context.Background(), tech, decimal.Zero, "")
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("held funds cannot be withdrawn", func(t *testing.T) {
		uc, repo := newTestLedger(t)
		repo.EXPECT().ListByOwner(gomock.Any(), entities.OwnerRoleTechnician, "t1").Return(balance, nil)
		_, err := uc.Withdraw(context.Background(), tech, decimal.NewFromInt(100001), "")
		if !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
	})

	t.Run("withdraw appends negative entry", func(t *testing.T) {
		uc, repo := newTestLedger(t)
		repo.EXPECT().ListByOwner(gomock.Any(), entities.OwnerRoleTechnician, "t1").Return(balance, nil)
		repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.BalanceEntry) (entities.BalanceEntry, error) {
				if e.Type != entities.BalanceEntryWithdrawal || !e.Amount.Equal(decimal.NewFromInt(-100000)) || e.Note != "withdrawal request" {
					t.Fatalf("unexpected entry: %+v", e)
				}
				return e, nil
			},
		)
		_, err := uc.Withdraw(context.Background(), tech, decimal.NewFromInt(100000), " ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

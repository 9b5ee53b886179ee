package guard

import (
	"errors"
	"testing"

	"servisku/internal/domain/entities"
)

func TestCanAct(t *testing.T) {
	req := entities.ServiceRequest{ID: "sr-1", CustomerID: "c-1", TechnicianID: "t-1"}

	cases := []struct {
		name   string
		caller entities.Caller
		res    Resource
		want   bool
	}{
		{name: "owner", caller: entities.Caller{ID: "c-1", Role: entities.RoleUser}, res: req, want: true},
		{name: "secondary party", caller: entities.Caller{ID: "t-1", Role: entities.RoleTechnician}, res: req, want: true},
		{name: "required role", caller: entities.Caller{ID: "a-1", Role: entities.RoleAdmin}, res: req, want: true},
		{name: "stranger", caller: entities.Caller{ID: "t-2", Role: entities.RoleTechnician}, res: req, want: false},
		{name: "anonymous", caller: entities.Caller{}, res: Static{}, want: false},
		{name: "participants exclude admin", caller: entities.Caller{ID: "a-1", Role: entities.RoleAdmin}, res: Participants(req), want: false},
		{name: "technician only rejects customer", caller: entities.Caller{ID: "c-1", Role: entities.RoleUser}, res: TechnicianOf(req), want: false},
		{name: "customer only rejects technician", caller: entities.Caller{ID: "t-1", Role: entities.RoleTechnician}, res: CustomerOf(req), want: false},
		{name: "admin only", caller: entities.Caller{ID: "a-1", Role: entities.RoleAdmin}, res: AdminOnly(), want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanAct(tc.caller, tc.res); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	err := Authorize(entities.Caller{ID: "x", Role: entities.RoleUser}, AdminOnly())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := Authorize(entities.Caller{ID: "x", Role: entities.RoleUser}, Static{Owner: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

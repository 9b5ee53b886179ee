package request

import (
	"encoding/json"
	"testing"
	"time"

	"servisku/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestCreateServiceRequestRequest_ToInput(t *testing.T) {
	var r CreateServiceRequestRequest
	body := `{"category":"ac","title":"AC bocor","description":"Air menetes","scheduled_for":"2026-03-02T09:00:00+07:00"}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := r.ToInput()
	if in.Category != "ac" || in.Title != "AC bocor" || in.Description != "Air menetes" {
		t.Fatalf("unexpected input: %+v", in)
	}
	want := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)
	if !in.ScheduledFor.Equal(want) {
		t.Fatalf("expected %s, got %s", want, in.ScheduledFor)
	}
}

func TestProposePriceRequest_AcceptsNumberAndString(t *testing.T) {
	for _, body := range []string{`{"price_offer":150000}`, `{"price_offer":"150000"}`} {
		var r ProposePriceRequest
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			t.Fatalf("%s: unexpected error: %v", body, err)
		}
		if r.PriceOffer == nil || !r.PriceOffer.Equal(decimal.NewFromInt(150000)) {
			t.Fatalf("%s: unexpected offer %v", body, r.PriceOffer)
		}
	}

	var missing ProposePriceRequest
	if err := json.Unmarshal([]byte(`{}`), &missing); err != nil || missing.PriceOffer != nil {
		t.Fatalf("expected nil offer, got %v err=%v", missing.PriceOffer, err)
	}
}

func TestLedgerEntryRequest_ToInput(t *testing.T) {
	amount := decimal.RequireFromString("-2500.50")
	r := LedgerEntryRequest{OwnerRole: "technician", OwnerID: "t1", Amount: &amount, Note: "fee correction", Currency: "IDR"}
	in := r.ToInput()
	if in.OwnerRole != entities.OwnerRoleTechnician || in.OwnerID != "t1" || !in.Amount.Equal(amount) {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.Type != "" || in.Note != "fee correction" || in.Currency != "IDR" {
		t.Fatalf("unexpected input: %+v", in)
	}

	if got := (LedgerEntryRequest{}).ToInput(); !got.Amount.IsZero() {
		t.Fatalf("expected zero amount, got %s", got.Amount)
	}
}

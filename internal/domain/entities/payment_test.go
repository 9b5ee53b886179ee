package entities

import (
	"testing"
	"time"
)

func TestNeedsPaymentAction(t *testing.T) {
	now := time.Now().UTC()

	if !NeedsPaymentAction(nil) {
		t.Fatalf("expected payment action when there are no payments")
	}

	payments := []Payment{
		{ID: "p-1", Status: PaymentStatusSettled, CreatedAt: now.Add(-time.Hour)},
		{ID: "p-2", Status: PaymentStatusFailed, CreatedAt: now},
	}
	if latest := LatestPayment(payments); latest == nil || latest.ID != "p-2" {
		t.Fatalf("expected p-2 as latest, got %+v", latest)
	}
	if !NeedsPaymentAction(payments) {
		t.Fatalf("expected payment action when latest payment failed")
	}

	payments = append(payments, Payment{ID: "p-3", Status: PaymentStatusSettled, CreatedAt: now.Add(time.Minute)})
	if NeedsPaymentAction(payments) {
		t.Fatalf("expected no payment action after a settled payment")
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const sandboxPayerEmail = "test_user_br@testuser.com"

// payer is the "payer" object of a Mercado Pago payment body.
type payer map[string]any

// payerOf returns body["payer"], creating an empty one when absent.
// ok is false when the field holds something other than an object.
func payerOf(body map[string]any) (payer, bool) {
	v, found := body["payer"]
	if !found || v == nil {
		p := payer{}
		body["payer"] = map[string]any(p)
		return p, true
	}
	m, ok := v.(map[string]any)
	return payer(m), ok
}

func (p payer) id() string {
	v, ok := p["id"]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func (p payer) email() string { return stringField(p, "email") }

// identified reports whether Mercado Pago can resolve the payer.
func (p payer) identified() bool { return p.id() != "" || p.email() != "" }

// stringField returns the trimmed string at key, or "" for missing and non-string values.
func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// preparePayer fills the payer defaults the provider requires and reports
// whether the resulting payer is identified.
//
// With a TEST- token, a payer.id equal to the configured sandbox user is
// swapped for the sandbox email, and a payer with neither id nor email gets
// the configured (or built-in) sandbox email.
func (u *PaymentUseCase) preparePayer(ctx context.Context, body map[string]any) bool {
	p, ok := payerOf(body)
	if !ok {
		return false
	}

	if u.opts.sandbox() && p.email() == "" {
		userID := strings.TrimSpace(u.opts.TestPayerUserID)
		email := strings.TrimSpace(u.opts.TestPayerEmail)
		if userID != "" && email != "" && p.id() == userID {
			p["email"] = email
			delete(p, "id")
			log.Ctx(ctx).Debug().Msg("[payment][usecase] sandbox payer id swapped for email")
		}
	}

	if _, set := p["type"]; !set {
		p["type"] = "customer"
	}
	if !p.identified() {
		switch email := strings.TrimSpace(u.opts.TestPayerEmail); {
		case email != "":
			p["email"] = email
		case u.opts.sandbox():
			p["email"] = sandboxPayerEmail
		}
	}
	return p.identified()
}

// gatewayFailures maps provider error bodies to domain errors. Order matters:
// the specific cause codes come before the generic HTTP statuses.
var gatewayFailures = []struct {
	err     error
	markers []string
}{
	{ErrPaymentGatewayCustomerNotFound, []string{"customer not found", `"code":2002`}},
	{ErrPaymentGatewayInvalidUsers, []string{"invalid users involved", `"code":2034`}},
	{ErrPaymentGatewayUnauthorized, []string{`"error":"unauthorized"`, `"status":401`}},
	{ErrPaymentGatewayBadRequest, []string{`"error":"bad_request"`, `"status":400`}},
}

func classifyGatewayError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	for _, f := range gatewayFailures {
		for _, marker := range f.markers {
			if strings.Contains(msg, marker) {
				return f.err
			}
		}
	}
	return err
}

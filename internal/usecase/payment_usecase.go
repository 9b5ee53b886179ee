package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"servisku/internal/domain/entities"
	"servisku/internal/domain/guard"
	"servisku/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidPaymentPayload          = errors.New("invalid mercado pago payload")
	ErrServiceRequestNotPayable       = errors.New("service request is not awaiting payment")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentOptions configures the Mercado Pago integration.
//
// MockMode skips the gateway and approves every charge. The sandbox fields
// only apply when AccessToken is a TEST- token.
type PaymentOptions struct {
	MockMode        bool
	AccessToken     string
	TestPayerEmail  string
	TestPayerUserID string
	Currency        string
}

func (o PaymentOptions) sandbox() bool {
	return strings.HasPrefix(strings.TrimSpace(o.AccessToken), "TEST-")
}

//go:generate mockgen -source=payment_usecase.go -destination=../adapter/http/handlers/mocks/mock_payment_usecase.go -package=mocks

// IPaymentUseCase charges the customer of a service request.
//
// Requested behavior:
//   - Pay charges the accepted price through the gateway. A settled charge moves
//     the request to diproses and holds the amount in the technician's wallet.
//   - ListByServiceRequestID returns the payment history to the participants.

type IPaymentUseCase interface {
	Pay(ctx context.Context, caller entities.Caller, serviceRequestID string, mpPayload json.RawMessage) (entities.Payment, error)
	ListByServiceRequestID(ctx context.Context, caller entities.Caller, serviceRequestID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo        interfaces.IPaymentRepository
	requests    interfaces.IServiceRequestRepository
	settlements interfaces.ISettlementRepository
	gateway     interfaces.IPaymentGateway
	opts        PaymentOptions
	now         func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	repo interfaces.IPaymentRepository,
	requests interfaces.IServiceRequestRepository,
	settlements interfaces.ISettlementRepository,
	gateway interfaces.IPaymentGateway,
	opts PaymentOptions,
) *PaymentUseCase {
	if strings.TrimSpace(opts.Currency) == "" {
		opts.Currency = entities.DefaultCurrency
	}
	return &PaymentUseCase{
		repo:        repo,
		requests:    requests,
		settlements: settlements,
		gateway:     gateway,
		opts:        opts,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (u *PaymentUseCase) Pay(ctx context.Context, caller entities.Caller, serviceRequestID string, mpPayload json.RawMessage) (entities.Payment, error) {
	logger := log.Ctx(ctx)
	logger.Debug().Str("raw_service_request_id", serviceRequestID).Int("payload_len", len(mpPayload)).Msg("[payment][usecase] pay start")
	mockMode := u.opts.MockMode

	serviceRequestID, err := requireField("service_request_id", serviceRequestID)
	if err != nil {
		return entities.Payment{}, err
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			logger.Info().Str("service_request_id", serviceRequestID).Msg("[payment][usecase] invalid payload")
			return entities.Payment{}, ErrInvalidPaymentPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil && !mockMode {
		logger.Error().Str("service_request_id", serviceRequestID).Msg("[payment][usecase] gateway not configured")
		return entities.Payment{}, ErrPaymentGatewayNotConfigured
	}

	r, err := loadServiceRequest(ctx, u.requests, serviceRequestID)
	if err != nil {
		return entities.Payment{}, err
	}
	if err := guard.Authorize(caller, guard.CustomerOf(r)); err != nil {
		logger.Warn().Str("service_request_id", serviceRequestID).Str("caller_id", caller.ID).Msg("[payment][usecase] pay rejected")
		return entities.Payment{}, err
	}
	if r.Status != entities.ServiceRequestStatusMenunggu {
		return entities.Payment{}, ErrServiceRequestNotPayable
	}
	if r.AcceptedPrice == nil {
		return entities.Payment{}, ErrPriceNotAgreed
	}
	price := *r.AcceptedPrice

	// Mercado Pago reconciles through external_reference; the amount always
	// comes from the stored request.
	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		if !mockMode {
			return entities.Payment{}, ErrInvalidPaymentPayload
		}
		reqMap = map[string]any{}
	}
	if !mockMode {
		if stringField(reqMap, "payment_method_id") == "" {
			logger.Info().Str("service_request_id", serviceRequestID).Msg("[payment][usecase] missing payment_method_id")
			return entities.Payment{}, ErrInvalidPaymentPayload
		}
		if !u.preparePayer(ctx, reqMap) {
			logger.Info().Str("service_request_id", serviceRequestID).Msg("[payment][usecase] missing or invalid payer")
			return entities.Payment{}, ErrInvalidPaymentPayload
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = serviceRequestID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Service request %s", serviceRequestID)
	}
	reqMap["transaction_amount"] = price.InexactFloat64()
	mpPayload, err = json.Marshal(reqMap)
	if err != nil {
		return entities.Payment{}, err
	}

	var (
		providerPaymentID string
		providerStatus    string
		providerResp      json.RawMessage
	)
	if mockMode {
		logger.Info().Str("service_request_id", serviceRequestID).Msg("[payment][usecase] mock mode enabled; skipping payment gateway")
		providerPaymentID, providerStatus, providerResp, err = mockApproval(reqMap, u.now())
		if err != nil {
			return entities.Payment{}, err
		}
	} else {
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, mpPayload)
		if err != nil {
			logger.Error().Err(err).Str("service_request_id", serviceRequestID).Msg("[payment][usecase] payment gateway failed")
			return entities.Payment{}, classifyGatewayError(err)
		}
	}
	logger.Info().
		Str("service_request_id", serviceRequestID).
		Str("provider_payment_id", providerPaymentID).
		Str("provider_status", providerStatus).
		Msg("[payment][usecase] payment gateway responded")

	now := u.now()
	p := entities.Payment{
		ID:                 uuid.NewString(),
		ServiceRequestID:   serviceRequestID,
		Amount:             price,
		Status:             paymentStatusFromProvider(providerStatus),
		Provider:           entities.PaymentProviderMercadoPago,
		ProviderPaymentID:  providerPaymentID,
		ProviderStatus:     providerStatus,
		ProviderPayloadRaw: providerResp,
		CreatedAt:          now,
	}

	if p.Status != entities.PaymentStatusSettled {
		created, err := u.repo.Create(ctx, p)
		if err != nil {
			logger.Error().Err(err).Str("service_request_id", serviceRequestID).Str("payment_id", p.ID).Msg("[payment][usecase] payment repository create failed")
			return entities.Payment{}, err
		}
		logger.Info().Str("service_request_id", serviceRequestID).Str("payment_id", created.ID).Str("status", string(created.Status)).Msg("[payment][usecase] payment recorded")
		return created, nil
	}

	hold := technicianEntry(holdEntryID(r.ID), r, price, entities.BalanceEntryEscrowRelease, "escrow hold for service request "+r.ID, u.opts.Currency, now)
	if _, err := u.settlements.SettlePayment(ctx, p, r, hold); err != nil {
		// The charge already went through at the provider.
		logger.Error().Err(err).
			Str("service_request_id", serviceRequestID).
			Str("provider_payment_id", providerPaymentID).
			Msg("[payment][usecase] settlement failed after charge; needs reconciliation")
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Payment{}, ErrConcurrentUpdate
		}
		return entities.Payment{}, err
	}
	logger.Info().Str("service_request_id", serviceRequestID).Str("payment_id", p.ID).Str("amount", price.String()).Msg("[payment][usecase] payment settled")
	return p, nil
}

func (u *PaymentUseCase) ListByServiceRequestID(ctx context.Context, caller entities.Caller, serviceRequestID string) ([]entities.Payment, error) {
	serviceRequestID, err := requireField("service_request_id", serviceRequestID)
	if err != nil {
		return nil, err
	}
	r, err := loadServiceRequest(ctx, u.requests, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if !guard.CanAct(caller, r) {
		return nil, ErrServiceRequestNotFound
	}
	return u.repo.ListByServiceRequestID(ctx, serviceRequestID)
}

func paymentStatusFromProvider(providerStatus string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "approved":
		return entities.PaymentStatusSettled
	case "pending", "in_process", "authorized":
		return entities.PaymentStatusPending
	default:
		return entities.PaymentStatusFailed
	}
}

func mockApproval(reqMap map[string]any, now time.Time) (string, string, json.RawMessage, error) {
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp := make(map[string]any, len(reqMap)+5)
	for k, v := range reqMap {
		resp[k] = v
	}
	ts := now.Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = ts
	resp["date_approved"] = ts
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

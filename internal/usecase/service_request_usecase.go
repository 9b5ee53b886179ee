package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"servisku/internal/domain/entities"
	"servisku/internal/domain/guard"
	"servisku/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrServiceRequestNotFound      = errors.New("service request not found")
	ErrNoTechnicianAvailable       = errors.New("no technician available for category")
	ErrNegotiationClosed           = errors.New("negotiation window closed")
	ErrConcurrentUpdate            = errors.New("service request was modified concurrently")
	ErrServiceRequestNotInProgress = errors.New("service request is not in progress")
	ErrPriceNotAgreed              = errors.New("service request has no accepted price")
)

const titleMaxLength = 150

type CreateServiceRequestInput struct {
	Category     string
	Title        string
	Description  string
	ScheduledFor time.Time
}

//go:generate mockgen -source=service_request_usecase.go -destination=../adapter/http/handlers/mocks/mock_service_request_usecase.go -package=mocks

// IServiceRequestUseCase exposes the service request lifecycle.
//
//   - Create: customer submits a request; a technician is matched; status menunggu.
//   - ProposePrice: assigned technician sets the accepted price while menunggu.
//   - GetDetail: participants (or admin) read the request, chat and payment state.
//   - Complete: assigned technician closes a paid request; earnings are settled.

type IServiceRequestUseCase interface {
	Create(ctx context.Context, caller entities.Caller, in CreateServiceRequestInput) (entities.ServiceRequest, error)
	ProposePrice(ctx context.Context, caller entities.Caller, id string, priceOffer decimal.Decimal) (entities.ServiceRequest, error)
	GetDetail(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequestDetail, error)
	Complete(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequest, error)
}

type ServiceRequestUseCase struct {
	repo        interfaces.IServiceRequestRepository
	messages    interfaces.IMessageRepository
	payments    interfaces.IPaymentRepository
	settlements interfaces.ISettlementRepository
	matcher     ITechnicianMatcher
	currency    string
	now         func() time.Time
}

var _ IServiceRequestUseCase = (*ServiceRequestUseCase)(nil)

func NewServiceRequestUseCase(
	repo interfaces.IServiceRequestRepository,
	messages interfaces.IMessageRepository,
	payments interfaces.IPaymentRepository,
	settlements interfaces.ISettlementRepository,
	matcher ITechnicianMatcher,
	currency string,
) *ServiceRequestUseCase {
	if strings.TrimSpace(currency) == "" {
		currency = entities.DefaultCurrency
	}
	return &ServiceRequestUseCase{
		repo:        repo,
		messages:    messages,
		payments:    payments,
		settlements: settlements,
		matcher:     matcher,
		currency:    currency,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (u *ServiceRequestUseCase) Create(ctx context.Context, caller entities.Caller, in CreateServiceRequestInput) (entities.ServiceRequest, error) {
	if caller.ID == "" || caller.Role != entities.RoleUser {
		return entities.ServiceRequest{}, guard.ErrForbidden
	}
	category, err := requireField("category", in.Category)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	category = strings.ToLower(category)
	title, err := requireField("title", in.Title)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if utf8.RuneCountInString(title) > titleMaxLength {
		return entities.ServiceRequest{}, newValidationError("title", "must be at most 150 characters")
	}
	if in.ScheduledFor.IsZero() {
		return entities.ServiceRequest{}, newValidationError("scheduled_for", "is required")
	}
	now := u.now()
	if in.ScheduledFor.Before(now) {
		return entities.ServiceRequest{}, newValidationError("scheduled_for", "must not be in the past")
	}

	technicianID, ok, err := u.matcher.Select(ctx, category)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("category", category).Msg("[service-request][usecase] matching failed")
		return entities.ServiceRequest{}, err
	}
	if !ok {
		return entities.ServiceRequest{}, ErrNoTechnicianAvailable
	}

	r := entities.ServiceRequest{
		ID:           uuid.NewString(),
		CustomerID:   caller.ID,
		TechnicianID: technicianID,
		Category:     category,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		ScheduledFor: in.ScheduledFor.UTC(),
		Status:       entities.ServiceRequestStatusMenunggu,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := u.repo.Create(ctx, r)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("service_request_id", r.ID).Msg("[service-request][usecase] create failed")
		return entities.ServiceRequest{}, err
	}
	log.Ctx(ctx).Info().
		Str("service_request_id", created.ID).
		Str("customer_id", created.CustomerID).
		Str("technician_id", created.TechnicianID).
		Msg("[service-request][usecase] created")
	return created, nil
}

func (u *ServiceRequestUseCase) ProposePrice(ctx context.Context, caller entities.Caller, id string, priceOffer decimal.Decimal) (entities.ServiceRequest, error) {
	id, err := requireField("service_request_id", id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if priceOffer.IsNegative() {
		return entities.ServiceRequest{}, newValidationError("price_offer", "must be greater than or equal to zero")
	}

	r, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if err := guard.Authorize(caller, guard.TechnicianOf(r)); err != nil {
		log.Ctx(ctx).Warn().Str("service_request_id", id).Str("caller_id", caller.ID).Msg("[service-request][usecase] price proposal rejected")
		return entities.ServiceRequest{}, err
	}
	if !r.NegotiationOpen() {
		return entities.ServiceRequest{}, ErrNegotiationClosed
	}

	updated, err := u.repo.UpdatePrice(ctx, id, priceOffer, r.Version)
	if errors.Is(err, interfaces.ErrConditionFailed) {
		current, loadErr := u.load(ctx, id)
		if loadErr != nil {
			return entities.ServiceRequest{}, loadErr
		}
		if !current.NegotiationOpen() {
			return entities.ServiceRequest{}, ErrNegotiationClosed
		}
		return entities.ServiceRequest{}, ErrConcurrentUpdate
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("service_request_id", id).Msg("[service-request][usecase] price update failed")
		return entities.ServiceRequest{}, err
	}
	log.Ctx(ctx).Info().Str("service_request_id", id).Str("price", priceOffer.String()).Msg("[service-request][usecase] price proposed")
	return updated, nil
}

func (u *ServiceRequestUseCase) GetDetail(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequestDetail, error) {
	id, err := requireField("service_request_id", id)
	if err != nil {
		return entities.ServiceRequestDetail{}, err
	}
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequestDetail{}, err
	}
	// Outsiders get the same answer as for a missing request.
	if !guard.CanAct(caller, r) {
		return entities.ServiceRequestDetail{}, ErrServiceRequestNotFound
	}

	messages, err := u.messages.ListByServiceRequestID(ctx, id)
	if err != nil {
		return entities.ServiceRequestDetail{}, err
	}
	sortMessages(messages)

	payments, err := u.payments.ListByServiceRequestID(ctx, id)
	if err != nil {
		return entities.ServiceRequestDetail{}, err
	}

	return entities.ServiceRequestDetail{
		Request:            r,
		Messages:           messages,
		LatestPayment:      entities.LatestPayment(payments),
		NeedsPaymentAction: entities.NeedsPaymentAction(payments),
	}, nil
}

func (u *ServiceRequestUseCase) Complete(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequest, error) {
	id, err := requireField("service_request_id", id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if err := guard.Authorize(caller, guard.TechnicianOf(r)); err != nil {
		return entities.ServiceRequest{}, err
	}
	if r.Status != entities.ServiceRequestStatusDiproses {
		return entities.ServiceRequest{}, ErrServiceRequestNotInProgress
	}
	if r.AcceptedPrice == nil {
		return entities.ServiceRequest{}, ErrPriceNotAgreed
	}

	now := u.now()
	price := *r.AcceptedPrice
	entries := []entities.BalanceEntry{
		technicianEntry(releaseEntryID(r.ID), r, price.Neg(), entities.BalanceEntryEscrowRelease, "hold released for service request "+r.ID, u.currency, now),
		technicianEntry(settleEntryID(r.ID), r, price, entities.BalanceEntrySettlement, "settlement for service request "+r.ID, u.currency, now),
	}
	completed, err := u.settlements.Complete(ctx, r, entries)
	if errors.Is(err, interfaces.ErrConditionFailed) {
		return entities.ServiceRequest{}, ErrConcurrentUpdate
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("service_request_id", id).Msg("[service-request][usecase] complete failed")
		return entities.ServiceRequest{}, err
	}
	log.Ctx(ctx).Info().Str("service_request_id", id).Str("amount", price.String()).Msg("[service-request][usecase] completed and settled")
	return completed, nil
}

func (u *ServiceRequestUseCase) load(ctx context.Context, id string) (entities.ServiceRequest, error) {
	return loadServiceRequest(ctx, u.repo, id)
}

func loadServiceRequest(ctx context.Context, repo interfaces.IServiceRequestRepository, id string) (entities.ServiceRequest, error) {
	r, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if r.ID == "" {
		return entities.ServiceRequest{}, ErrServiceRequestNotFound
	}
	return r, nil
}

func sortMessages(messages []entities.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
}

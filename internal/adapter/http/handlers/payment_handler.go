package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"servisku/internal/adapter/http/dto/response"
	"servisku/internal/adapter/http/middleware"
	"servisku/internal/usecase"
	"servisku/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PaymentHandler handles customer payments for a service request.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePayment godoc
// @Summary      Pay for a service request
// @Description  Charges the accepted price through Mercado Pago. A settled payment moves the request to diproses.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Service request id"
// @Param        body  body      request.PaymentCreateRequest  true  "Mercado Pago payment request"
// @Success      201   {object}  response.PaymentResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      403   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /v1/service-requests/{id}/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	serviceRequestID := c.Param("id")
	logger := log.Ctx(c.Request.Context())
	logger.Info().Str("service_request_id", serviceRequestID).Msg("[payment][handler] create start")

	mpPayload, err := readMPPayload(c)
	if err != nil {
		// The usecase decides whether a missing payload is acceptable (mock mode).
		logger.Info().Err(err).Str("service_request_id", serviceRequestID).Msg("[payment][handler] unreadable payload")
	}

	created, err := h.usecase.Pay(c.Request.Context(), middleware.GetCaller(c), serviceRequestID, mpPayload)
	if err != nil {
		logger.Info().Err(err).Str("service_request_id", serviceRequestID).Msg("[payment][handler] create failed")
		abortWithError(c, mapPaymentError(err))
		return
	}
	logger.Info().
		Str("service_request_id", serviceRequestID).
		Str("payment_id", created.ID).
		Str("status", string(created.Status)).
		Msg("[payment][handler] create success")

	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// ListPayments godoc
// @Summary      Payments of a service request
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "Service request id"
// @Success      200  {array}   response.PaymentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /v1/service-requests/{id}/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.usecase.ListByServiceRequestID(c.Request.Context(), middleware.GetCaller(c), c.Param("id"))
	if err != nil {
		abortWithError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// readMPPayload accepts either the raw Mercado Pago request or one wrapped
// in {"mp_payload": {...}}. An empty body reads as {}.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payments are not available right now", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrServiceRequestNotPayable):
		return pkg.NewDomainErrorSimple("SERVICE_REQUEST_NOT_PAYABLE", "The service request is not awaiting payment", http.StatusConflict)
	case errors.Is(err, usecase.ErrPriceNotAgreed):
		return pkg.NewDomainErrorSimple("PRICE_NOT_AGREED", "The technician has not proposed a price yet", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "The service request was changed by someone else, reload and retry", http.StatusConflict)
	default:
		return mapCommonError(err)
	}
}

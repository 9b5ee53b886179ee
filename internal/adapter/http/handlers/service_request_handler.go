package handlers

import (
	"errors"
	"net/http"

	"servisku/internal/adapter/http/dto/request"
	"servisku/internal/adapter/http/dto/response"
	"servisku/internal/adapter/http/middleware"
	"servisku/internal/usecase"
	"servisku/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ServiceRequestHandler handles the repair request lifecycle routes.
type ServiceRequestHandler struct {
	usecase usecase.IServiceRequestUseCase
}

func NewServiceRequestHandler(uc usecase.IServiceRequestUseCase) *ServiceRequestHandler {
	return &ServiceRequestHandler{usecase: uc}
}

// Create godoc
// @Summary      Create a service request
// @Description  The customer submits a repair job; a technician offering the category is assigned.
// @Tags         service-requests
// @Accept       json
// @Produce      json
// @Param        X-User-ID    header  string  true  "Caller id"
// @Param        X-User-Role  header  string  true  "Caller role"
// @Param        body  body      request.CreateServiceRequestRequest  true  "Service request"
// @Success      201   {object}  response.ServiceRequestResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      403   {object}  pkg.HTTPError
// @Failure      422   {object}  pkg.HTTPError
// @Router       /v1/service-requests [post]
func (h *ServiceRequestHandler) Create(c *gin.Context) {
	var payload request.CreateServiceRequestRequest
	if appErr := bindJSON(c, &payload); appErr != nil {
		abortWithError(c, appErr)
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), middleware.GetCaller(c), payload.ToInput())
	if err != nil {
		log.Ctx(c.Request.Context()).Info().Err(err).Msg("[service-request][handler] create failed")
		abortWithError(c, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromServiceRequest(created))
}

// ProposePrice godoc
// @Summary      Propose the price
// @Description  The assigned technician sets the accepted price while the request is menunggu.
// @Tags         service-requests
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Service request id"
// @Param        body  body      request.ProposePriceRequest  true  "Offer"
// @Success      200   {object}  response.ServiceRequestResponse
// @Failure      403   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /v1/service-requests/{id}/price [patch]
func (h *ServiceRequestHandler) ProposePrice(c *gin.Context) {
	var payload request.ProposePriceRequest
	if appErr := bindJSON(c, &payload); appErr != nil {
		abortWithError(c, appErr)
		return
	}

	updated, err := h.usecase.ProposePrice(c.Request.Context(), middleware.GetCaller(c), c.Param("id"), *payload.PriceOffer)
	if err != nil {
		abortWithError(c, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequest(updated))
}

// GetByID godoc
// @Summary      Service request detail
// @Description  Request, chat history and payment state. Non-participants get 404.
// @Tags         service-requests
// @Produce      json
// @Param        id   path      string  true  "Service request id"
// @Success      200  {object}  response.ServiceRequestDetailResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /v1/service-requests/{id} [get]
func (h *ServiceRequestHandler) GetByID(c *gin.Context) {
	detail, err := h.usecase.GetDetail(c.Request.Context(), middleware.GetCaller(c), c.Param("id"))
	if err != nil {
		abortWithError(c, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequestDetail(detail))
}

// Complete godoc
// @Summary      Complete a service request
// @Description  The assigned technician closes a paid request; the escrow hold becomes earnings.
// @Tags         service-requests
// @Produce      json
// @Param        id   path      string  true  "Service request id"
// @Success      200  {object}  response.ServiceRequestResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /v1/service-requests/{id}/complete [patch]
func (h *ServiceRequestHandler) Complete(c *gin.Context) {
	completed, err := h.usecase.Complete(c.Request.Context(), middleware.GetCaller(c), c.Param("id"))
	if err != nil {
		abortWithError(c, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequest(completed))
}

func mapServiceRequestError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrNoTechnicianAvailable):
		return pkg.NewDomainErrorSimple("NO_TECHNICIAN_AVAILABLE", "No technician is available for this category", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrNegotiationClosed):
		return pkg.NewDomainErrorSimple("NEGOTIATION_CLOSED", "The price can no longer be changed", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "The service request was changed by someone else, reload and retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrServiceRequestNotInProgress):
		return pkg.NewDomainErrorSimple("SERVICE_REQUEST_NOT_IN_PROGRESS", "Only a paid, in-progress request can be completed", http.StatusConflict)
	case errors.Is(err, usecase.ErrPriceNotAgreed):
		return pkg.NewDomainErrorSimple("PRICE_NOT_AGREED", "The service request has no accepted price yet", http.StatusConflict)
	default:
		return mapCommonError(err)
	}
}

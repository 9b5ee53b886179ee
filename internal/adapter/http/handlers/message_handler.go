package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"servisku/internal/adapter/http/dto/request"
	"servisku/internal/adapter/http/dto/response"
	"servisku/internal/adapter/http/middleware"
	"servisku/internal/usecase"
	"servisku/pkg"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

// MessageHandler serves the per-request chat: sending and the live stream.
type MessageHandler struct {
	usecase  usecase.IMessageUseCase
	upgrader websocket.Upgrader
}

func NewMessageHandler(uc usecase.IMessageUseCase) *MessageHandler {
	return &MessageHandler{
		usecase: uc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Identity comes from gateway headers, not cookies.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// SendMessage godoc
// @Summary      Send a chat message
// @Description  Participants post a text message; the other party receives it on the stream.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Service request id"
// @Param        body  body      request.SendMessageRequest  true  "Message"
// @Success      201   {object}  response.MessageResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      403   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /v1/service-requests/{id}/messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var payload request.SendMessageRequest
	if appErr := bindJSON(c, &payload); appErr != nil {
		abortWithError(c, appErr)
		return
	}

	msg, err := h.usecase.Send(c.Request.Context(), middleware.GetCaller(c), c.Param("id"), payload.Body)
	if err != nil {
		abortWithError(c, mapMessageError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromMessage(msg))
}

// Stream godoc
// @Summary      Live chat stream
// @Description  WebSocket upgrade. Each frame is a message.sent event from the other participant.
// @Tags         messages
// @Param        id   path  string  true  "Service request id"
// @Success      101
// @Failure      404  {object}  pkg.HTTPError
// @Router       /v1/service-requests/{id}/stream [get]
func (h *MessageHandler) Stream(c *gin.Context) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	serviceRequestID := c.Param("id")
	logger := log.Ctx(ctx).With().Str("service_request_id", serviceRequestID).Logger()

	// Authorize and subscribe before upgrading so failures are plain HTTP errors.
	events, err := h.usecase.Subscribe(ctx, middleware.GetCaller(c), serviceRequestID)
	if err != nil {
		abortWithError(c, mapMessageError(err))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		logger.Warn().Err(err).Msg("[message][handler] websocket upgrade failed")
		return
	}
	defer conn.Close()
	logger.Info().Msg("[message][handler] stream opened")

	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	// Clients only read; this loop exists to notice the close frame or a dead peer.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("[message][handler] stream closed by client")
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				logger.Debug().Err(err).Msg("[message][handler] ping failed")
				return
			}
		case ev, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "subscription ended"),
					time.Now().Add(streamWriteWait))
				logger.Info().Msg("[message][handler] subscription ended")
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(response.FromMessageEvent(ev)); err != nil {
				logger.Debug().Err(err).Msg("[message][handler] frame write failed")
				return
			}
		}
	}
}

func mapMessageError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInternal):
		return pkg.NewDomainError("MESSAGE_NOT_SAVED", "The message could not be saved, please retry", err, http.StatusInternalServerError)
	default:
		return mapCommonError(err)
	}
}

package routes

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"servisku/internal/adapter/http/handlers"
	"servisku/internal/adapter/http/middleware"
	"servisku/internal/adapter/persistence/repository"
	"servisku/internal/infrastructure/config"
	"servisku/internal/infrastructure/database"
	"servisku/internal/infrastructure/payments"
	"servisku/internal/infrastructure/realtime"
	"servisku/internal/usecase"
	"servisku/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 15 * time.Second

// Handlers groups everything the router serves.
type Handlers struct {
	ServiceRequests *handlers.ServiceRequestHandler
	Messages        *handlers.MessageHandler
	Payments        *handlers.PaymentHandler
	Ledger          *handlers.LedgerHandler
}

// Run wires the application from cfg and serves until ctx is cancelled,
// then drains in-flight requests.
func Run(ctx context.Context, cfg *config.Config) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	h, err := buildHandlers(ctx, cfg)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           NewRouter(log.Logger, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.Server.Env).Msg("[server] starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// NewRouter builds the gin engine: global middleware, docs, health and the
// identity-protected API.
func NewRouter(logger zerolog.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(logger), middleware.Recovery())

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	authed := v1.Group("", middleware.Identity())
	addServiceRequestRoutes(authed, h)
	addWalletRoutes(authed, h.Ledger)
	return router
}

func buildHandlers(ctx context.Context, cfg *config.Config) (Handlers, error) {
	ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS, cfg.DynamoDB)
	if err != nil {
		return Handlers{}, err
	}
	tables := repository.Tables{
		ServiceRequests:    cfg.DynamoDB.ServiceRequestsTable,
		Messages:           cfg.DynamoDB.MessagesTable,
		BalanceEntries:     cfg.DynamoDB.BalanceEntriesTable,
		Payments:           cfg.DynamoDB.PaymentsTable,
		TechnicianServices: cfg.DynamoDB.TechnicianServicesTable,
	}

	requestRepo := repository.NewServiceRequestDynamoRepository(ddb, tables)
	messageRepo := repository.NewMessageDynamoRepository(ddb, tables)
	entryRepo := repository.NewBalanceEntryDynamoRepository(ddb, tables)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb, tables)
	technicianRepo := repository.NewTechnicianServiceDynamoRepository(ddb, tables)
	settlementRepo := repository.NewSettlementDynamoRepository(ddb, tables)

	var rng *rand.Rand
	if seed := cfg.Server.MatchSeed; seed != 0 {
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	matcher := usecase.NewTechnicianMatcher(technicianRepo, rng)

	redisClient, err := realtime.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		// Messages are still stored; live delivery resumes once Redis is reachable.
		log.Warn().Err(err).Msg("[server] redis unavailable at startup")
	}
	broadcaster := realtime.NewRedisBroadcaster(redisClient)

	var gateway interfaces.IPaymentGateway
	if cfg.Payments.Mock {
		log.Warn().Msg("[server] payment gateway mock mode enabled")
	} else {
		mp, err := payments.NewMercadoPagoGateway(cfg.Payments.AccessToken)
		if err != nil {
			return Handlers{}, err
		}
		gateway = mp
	}

	serviceRequestUseCase := usecase.NewServiceRequestUseCase(requestRepo, messageRepo, paymentRepo, settlementRepo, matcher, cfg.Server.Currency)
	messageUseCase := usecase.NewMessageUseCase(requestRepo, messageRepo, broadcaster, broadcaster).
		WithPublishTimeout(time.Duration(cfg.Redis.PublishTimeoutSeconds) * time.Second)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, requestRepo, settlementRepo, gateway, usecase.PaymentOptions{
		MockMode:        cfg.Payments.Mock,
		AccessToken:     cfg.Payments.AccessToken,
		TestPayerEmail:  cfg.Payments.TestPayerEmail,
		TestPayerUserID: cfg.Payments.TestPayerUserID,
		Currency:        cfg.Server.Currency,
	})
	ledgerUseCase := usecase.NewLedgerUseCase(entryRepo, cfg.Server.Currency)

	return Handlers{
		ServiceRequests: handlers.NewServiceRequestHandler(serviceRequestUseCase),
		Messages:        handlers.NewMessageHandler(messageUseCase),
		Payments:        handlers.NewPaymentHandler(paymentUseCase),
		Ledger:          handlers.NewLedgerHandler(ledgerUseCase),
	}, nil
}

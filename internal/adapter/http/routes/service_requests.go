package routes

import (
	"servisku/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathServiceRequests = "/service-requests"
	PathWallet          = "/wallet"
	PathAdmin           = "/admin"
)

func addServiceRequestRoutes(rg *gin.RouterGroup, h Handlers) {
	requests := rg.Group(PathServiceRequests)
	{
		requests.POST("", h.ServiceRequests.Create)
		requests.GET("/:id", h.ServiceRequests.GetByID)
		requests.PATCH("/:id/price", h.ServiceRequests.ProposePrice)
		requests.PATCH("/:id/complete", h.ServiceRequests.Complete)

		requests.POST("/:id/messages", h.Messages.SendMessage)
		requests.GET("/:id/stream", h.Messages.Stream)

		requests.POST("/:id/payments", h.Payments.CreatePayment)
		requests.GET("/:id/payments", h.Payments.ListPayments)
	}
}

func addWalletRoutes(rg *gin.RouterGroup, ledger *handlers.LedgerHandler) {
	wallet := rg.Group(PathWallet)
	{
		wallet.GET("", ledger.GetMyWallet)
		wallet.GET("/:owner_role/:owner_id", ledger.GetWallet)
		wallet.POST("/withdrawals", ledger.Withdraw)
	}

	admin := rg.Group(PathAdmin)
	{
		admin.POST("/ledger/entries", ledger.RecordEntry)
	}
}

package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"zayura-backend/internal/auth"
	"zayura-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(handler *Handler, issuer *auth.Issuer, limiter *mw.IPRateLimiter, cacheTTL time.Duration) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(limiter)
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/login", handler.Login)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	private := api.Group("")
	private.Use(mw.JWTAuth(issuer), caching)
	{
		private.GET("/auth/me", handler.Me)
		private.GET("/snapshot", handler.GetSnapshot)
		private.GET("/dashboard", handler.GetDashboard)

		private.GET("/rooms", handler.GetRooms)
		private.POST("/rooms", handler.CreateRoom)
		private.PUT("/rooms/:id/status", handler.UpdateRoomStatus)
		private.DELETE("/rooms/:id", handler.DeleteRoom)

		private.GET("/residents", handler.GetResidents)
		private.PUT("/residents/:id", handler.UpdateResident)
		private.GET("/residents/:id/invoices", handler.GetResidentInvoices)

		private.GET("/tenancies", handler.GetTenancies)
		private.POST("/tenancies", handler.CheckIn)
		private.POST("/tenancies/:id/extend", handler.Extend)
		private.POST("/tenancies/:id/checkout", handler.Checkout)
		private.DELETE("/tenancies/:id", handler.DeleteTenancy)

		private.POST("/invoices/:id/pay", handler.PayInvoice)
		private.GET("/invoices/:id/transaction", handler.GetInvoiceTransaction)

		private.GET("/transactions", handler.GetLedger)
		private.POST("/transactions", handler.CreateTransaction)
		private.GET("/ledger", handler.GetLedger)
		private.GET("/operational", handler.GetOperationalCosts)
		private.GET("/reports/ledger.xlsx", handler.GetLedgerReport)

		private.GET("/laundry", handler.GetLaundry)
		private.POST("/laundry", handler.CreateLaundry)
		private.GET("/laundry/stats", handler.GetLaundryStats)
		private.PUT("/laundry/:id/status", handler.UpdateLaundryStatus)

		private.GET("/employees", handler.GetEmployees)
		private.POST("/employees", handler.CreateEmployee)
		private.GET("/employees/:id", handler.GetEmployee)
		private.GET("/payrolls", handler.GetPayrolls)
		private.POST("/payrolls/:id/pay", handler.PaySalary)

		private.GET("/subscriptions", handler.GetSubscription)
		private.PUT("/subscriptions", handler.PutSubscription)
		private.DELETE("/subscriptions", handler.DeleteSubscription)
	}

	return r
}

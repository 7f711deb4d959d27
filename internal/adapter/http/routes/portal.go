package routes

import (
	"sigorta_portal/internal/adapter/http/handlers"
	"sigorta_portal/internal/adapter/http/middlewares"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes   = "/quotes"
	PathPolicies = "/policies"
	PathAdmin    = "/admin"
	PathInternal = "/internal"
)

func addPortalRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, policyHandler *handlers.PolicyHandler, userHandler *handlers.UserHandler, exportHandler *handlers.ExportHandler) {
	quotes := rg.Group(PathQuotes, middlewares.RequireAuth())
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		// Registered before /:id so gin does not treat "export" as a quote ID.
		quotes.GET("/export", exportHandler.ExportQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PATCH("/:id/approve", quoteHandler.ApproveQuote)
		quotes.PATCH("/:id/reject", quoteHandler.RejectQuote)
		quotes.PATCH("/:id/premiums", quoteHandler.UpdatePremiums)
		quotes.POST("/:id/document", quoteHandler.UploadDocument)
	}

	policies := rg.Group(PathPolicies, middlewares.RequireAuth())
	{
		policies.POST("", policyHandler.IssuePolicy)
		policies.GET("", policyHandler.ListPolicies)
		policies.GET("/:id", policyHandler.GetPolicy)
	}

	admin := rg.Group(PathAdmin, middlewares.RequireAuth())
	{
		admin.POST("/users", userHandler.CreateUser)
	}
}

func addInternalRoutes(rg *gin.RouterGroup, retentionHandler *handlers.RetentionHandler) {
	internal := rg.Group(PathInternal, middlewares.RequireInternalToken())
	{
		internal.POST("/retention/sweep", retentionHandler.RunSweep)
	}
}

package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/pplp-engine/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	requireAuth := middleware.Auth(auth)

	v1 := router.Group("/api/v1")
	{
		// Actions
		v1.POST("/actions", requireAuth, handler.SubmitAction)
		v1.GET("/actions/:id", handler.GetAction)
		v1.POST("/actions/:id/score", requireAuth, handler.ScoreAction)
		v1.GET("/actions/:id/score", handler.GetScore)

		// Mint requests. Signature submissions are authenticated by the signature itself.
		v1.GET("/mint-requests/:id", handler.GetMintRequest)
		v1.GET("/mint-requests/:id/payload", handler.GetMintRequestPayload)
		v1.POST("/mint-requests/:id/signatures", handler.SubmitSignature)

		// Policies
		v1.GET("/policies/active", handler.GetActivePolicy)
		v1.GET("/policies/changes", handler.GetPolicyChanges)
		v1.GET("/policies/changes/verify", handler.VerifyPolicyChanges)
		v1.GET("/policies", handler.ListPolicies)
		v1.POST("/policies", requireAuth, handler.CreatePolicy)
		v1.POST("/policies/:version/activate", requireAuth, handler.ActivatePolicy)
		v1.POST("/policies/:version/register", requireAuth, handler.RegisterPolicy)

		// Attester registry
		v1.GET("/policies/:version/attesters", handler.ListAttesters)
		v1.POST("/policies/:version/attesters", requireAuth, handler.AddAttester)
		v1.DELETE("/policies/:version/attesters/:signer_id", requireAuth, handler.RemoveAttester)
		v1.PUT("/policies/:version/threshold", requireAuth, handler.SetThreshold)

		v1.GET("/platforms/:platform_id/thresholds", handler.GetPlatformThresholds)
		v1.GET("/epochs/:key", handler.GetEpoch)
		v1.GET("/allocations/:recipient", handler.GetAllocation)
		v1.GET("/changes", handler.GetChanges)
	}
}

package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/api/middleware"
	"github.com/feral-file/pplp-engine/internal/api/shared/dto"
	"github.com/feral-file/pplp-engine/internal/api/shared/executor"
	"github.com/feral-file/pplp-engine/internal/logger"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// SubmitAction stores a pending action
	// POST /api/v1/actions
	SubmitAction(c *gin.Context)

	// GetAction retrieves an action
	// GET /api/v1/actions/:id
	GetAction(c *gin.Context)

	// ScoreAction scores an action and opens its mint request when it passes
	// POST /api/v1/actions/:id/score
	ScoreAction(c *gin.Context)

	// GetScore retrieves the score of an action
	// GET /api/v1/actions/:id/score
	GetScore(c *gin.Context)

	// GetMintRequest retrieves a mint request
	// GET /api/v1/mint-requests/:id
	GetMintRequest(c *gin.Context)

	// GetMintRequestPayload retrieves the payload attesters sign
	// GET /api/v1/mint-requests/:id/payload
	GetMintRequestPayload(c *gin.Context)

	// SubmitSignature submits an attester signature
	// POST /api/v1/mint-requests/:id/signatures
	SubmitSignature(c *gin.Context)

	// GET /api/v1/policies/active
	GetActivePolicy(c *gin.Context)
	// GET /api/v1/policies
	ListPolicies(c *gin.Context)
	// POST /api/v1/policies
	CreatePolicy(c *gin.Context)
	// POST /api/v1/policies/:version/activate
	ActivatePolicy(c *gin.Context)
	// POST /api/v1/policies/:version/register
	RegisterPolicy(c *gin.Context)
	// GET /api/v1/policies/changes?policy_version=<version>&limit=<limit>&offset=<offset>
	GetPolicyChanges(c *gin.Context)
	// GET /api/v1/policies/changes/verify
	VerifyPolicyChanges(c *gin.Context)
	// GET /api/v1/platforms/:platform_id/thresholds
	GetPlatformThresholds(c *gin.Context)

	// GET /api/v1/policies/:version/attesters?active_only=<bool>
	ListAttesters(c *gin.Context)
	// POST /api/v1/policies/:version/attesters
	AddAttester(c *gin.Context)
	// DELETE /api/v1/policies/:version/attesters/:signer_id?reason=<reason>
	RemoveAttester(c *gin.Context)
	// PUT /api/v1/policies/:version/threshold
	SetThreshold(c *gin.Context)

	// GetEpoch retrieves the state of an epoch window
	// GET /api/v1/epochs/:key?user_id=<user>
	GetEpoch(c *gin.Context)

	// GetAllocation retrieves the vesting allocation of a recipient
	// GET /api/v1/allocations/:recipient
	GetAllocation(c *gin.Context)

	// GetChanges retrieves the changes journal in cursor order
	// GET /api/v1/changes?subject_type=<type>&subject_id=<id>&anchor=<cursor>&limit=<limit>
	GetChanges(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

func (h *handler) SubmitAction(c *gin.Context) {
	var req dto.SubmitActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	action, err := h.executor.SubmitAction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, zap.String("platformID", req.PlatformID))
		return
	}
	c.JSON(http.StatusCreated, action)
}

func (h *handler) GetAction(c *gin.Context) {
	action, err := h.executor.GetAction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, action)
}

func (h *handler) ScoreAction(c *gin.Context) {
	actionID := c.Param("id")
	result, err := h.executor.ProcessAction(c.Request.Context(), actionID)
	if err != nil {
		respondError(c, err, logger.ActionID(actionID))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) GetScore(c *gin.Context) {
	score, err := h.executor.GetScore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *handler) GetMintRequest(c *gin.Context) {
	request, err := h.executor.GetMintRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *handler) GetMintRequestPayload(c *gin.Context) {
	payload, err := h.executor.GetMintRequestPayload(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *handler) SubmitSignature(c *gin.Context) {
	var req dto.SubmitSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	requestID := c.Param("id")
	result, err := h.executor.SubmitSignature(c.Request.Context(), requestID, req)
	if err != nil {
		respondError(c, err, logger.MintRequestID(requestID), logger.SignerID(req.SignerID))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) GetActivePolicy(c *gin.Context) {
	record, err := h.executor.GetActivePolicy(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *handler) ListPolicies(c *gin.Context) {
	policies, err := h.executor.ListPolicies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, policies)
}

func (h *handler) CreatePolicy(c *gin.Context) {
	var req dto.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	record, err := h.executor.CreatePolicy(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err, zap.String("version", req.Policy.Version))
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *handler) ActivatePolicy(c *gin.Context) {
	var req dto.ActivatePolicyRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	version := c.Param("version")
	record, err := h.executor.ActivatePolicy(c.Request.Context(), version, req, middleware.Actor(c))
	if err != nil {
		respondError(c, err, zap.String("version", version))
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *handler) RegisterPolicy(c *gin.Context) {
	var req dto.RegisterPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	version := c.Param("version")
	record, err := h.executor.RegisterPolicy(c.Request.Context(), version, req, middleware.Actor(c))
	if err != nil {
		respondError(c, err, zap.String("version", version))
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *handler) GetPolicyChanges(c *gin.Context) {
	params, err := ParseGetPolicyChangesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	changes, err := h.executor.GetPolicyChanges(c.Request.Context(), params.PolicyVersion, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, changes)
}

func (h *handler) VerifyPolicyChanges(c *gin.Context) {
	result, err := h.executor.VerifyPolicyChanges(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) GetPlatformThresholds(c *gin.Context) {
	thresholds, err := h.executor.GetPlatformThresholds(c.Request.Context(), c.Param("platform_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, thresholds)
}

func (h *handler) ListAttesters(c *gin.Context) {
	var params ListAttestersQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	attesters, err := h.executor.ListAttesters(c.Request.Context(), c.Param("version"), params.ActiveOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attesters)
}

func (h *handler) AddAttester(c *gin.Context) {
	var req dto.AddAttesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	version := c.Param("version")
	attester, err := h.executor.AddAttester(c.Request.Context(), version, req, middleware.Actor(c))
	if err != nil {
		respondError(c, err, zap.String("version", version), logger.SignerID(req.SignerID))
		return
	}
	c.JSON(http.StatusCreated, attester)
}

func (h *handler) RemoveAttester(c *gin.Context) {
	version := c.Param("version")
	signerID := c.Param("signer_id")
	if err := h.executor.RemoveAttester(c.Request.Context(), version, signerID, c.Query("reason"), middleware.Actor(c)); err != nil {
		respondError(c, err, zap.String("version", version), logger.SignerID(signerID))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) SetThreshold(c *gin.Context) {
	var req dto.SetThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	version := c.Param("version")
	if err := h.executor.SetThreshold(c.Request.Context(), version, req, middleware.Actor(c)); err != nil {
		respondError(c, err, zap.String("version", version))
		return
	}
	c.JSON(http.StatusOK, gin.H{"policy_version": version, "threshold": req.Threshold})
}

func (h *handler) GetEpoch(c *gin.Context) {
	var params GetEpochQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	status, err := h.executor.GetEpoch(c.Request.Context(), c.Param("key"), params.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *handler) GetAllocation(c *gin.Context) {
	allocation, err := h.executor.GetAllocation(c.Request.Context(), c.Param("recipient"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, allocation)
}

func (h *handler) GetChanges(c *gin.Context) {
	params, err := ParseGetChangesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := params.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	changes, err := h.executor.GetChanges(c.Request.Context(), params.SubjectTypes, params.SubjectIDs, params.Anchor, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, changes)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "pplp-engine-api",
	})
}

// bindOptionalJSON binds a JSON body when one is present
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid body: %w", err)
	}
	return nil
}

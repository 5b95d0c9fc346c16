package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/pplp-engine/internal/api/shared/dto"
	apierrors "github.com/feral-file/pplp-engine/internal/api/shared/errors"
	"github.com/feral-file/pplp-engine/internal/attestation"
	"github.com/feral-file/pplp-engine/internal/audit"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/epoch"
	"github.com/feral-file/pplp-engine/internal/ledger"
	"github.com/feral-file/pplp-engine/internal/pipeline"
	"github.com/feral-file/pplp-engine/internal/policy"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

const (
	DEFAULT_PAGE_SIZE = 20
	MAX_PAGE_SIZE     = 100
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// SubmitAction validates and stores a pending action
	SubmitAction(ctx context.Context, req dto.SubmitActionRequest) (*dto.ActionResponse, error)
	// GetAction retrieves an action with its evidence
	GetAction(ctx context.Context, actionID string) (*dto.ActionResponse, error)
	// ProcessAction scores an action and opens its mint request when it passes
	ProcessAction(ctx context.Context, actionID string) (*dto.ProcessResponse, error)
	// GetScore retrieves the score of an action
	GetScore(ctx context.Context, actionID string) (*dto.ScoreResponse, error)

	// GetMintRequest retrieves a mint request with its signatures
	GetMintRequest(ctx context.Context, requestID string) (*dto.MintRequestResponse, error)
	// GetMintRequestPayload retrieves the canonical payload attesters sign
	GetMintRequestPayload(ctx context.Context, requestID string) (*attestation.SignedPayload, error)
	// SubmitSignature submits an attester signature
	SubmitSignature(ctx context.Context, requestID string, req dto.SubmitSignatureRequest) (*attestation.SubmitResult, error)

	// GetActivePolicy retrieves the active policy
	GetActivePolicy(ctx context.Context) (*policy.Record, error)
	// ListPolicies retrieves every policy version
	ListPolicies(ctx context.Context) (*dto.PolicyListResponse, error)
	// CreatePolicy stores a new policy version
	CreatePolicy(ctx context.Context, req dto.CreatePolicyRequest, actor string) (*policy.Record, error)
	// ActivatePolicy makes a version the active policy
	ActivatePolicy(ctx context.Context, version string, req dto.ActivatePolicyRequest, actor string) (*policy.Record, error)
	// RegisterPolicy records the external registration of a version
	RegisterPolicy(ctx context.Context, version string, req dto.RegisterPolicyRequest, actor string) (*policy.Record, error)
	// GetPolicyChanges retrieves the policy audit trail
	GetPolicyChanges(ctx context.Context, version string, limit int, offset uint64) (*dto.PolicyChangeListResponse, error)
	// VerifyPolicyChanges recomputes the policy audit chain
	VerifyPolicyChanges(ctx context.Context) (*audit.Verification, error)
	// GetPlatformThresholds resolves the active thresholds of a platform
	GetPlatformThresholds(ctx context.Context, platformID string) (*policy.PlatformThresholds, error)

	// ListAttesters retrieves the attesters of a policy version
	ListAttesters(ctx context.Context, version string, activeOnly bool) (*dto.AttesterListResponse, error)
	// AddAttester registers an attester for a policy version
	AddAttester(ctx context.Context, version string, req dto.AddAttesterRequest, actor string) (*dto.AttesterResponse, error)
	// RemoveAttester revokes an attester of a policy version
	RemoveAttester(ctx context.Context, version, signerID, reason, actor string) error
	// SetThreshold changes the signature threshold of a policy version
	SetThreshold(ctx context.Context, version string, req dto.SetThresholdRequest, actor string) error

	// GetEpoch retrieves the state of an epoch, optionally with a user's total
	GetEpoch(ctx context.Context, epochKey, userID string) (*epoch.Status, error)
	// GetAllocation retrieves the vesting allocation of a recipient from the ledger
	GetAllocation(ctx context.Context, recipient string) (*ledger.Allocation, error)
	// GetChanges retrieves the changes journal
	GetChanges(ctx context.Context, subjectTypes []schema.SubjectType, subjectIDs []string, anchor *int64, limit int) (*dto.ChangeListResponse, error)
}

// Dependencies are the services the executor delegates to
type Dependencies struct {
	Store       store.Store
	Pipeline    pipeline.Pipeline
	Policies    policy.Service
	Resolver    policy.Resolver
	Attestation attestation.Coordinator
	Enforcer    epoch.Enforcer
	// Ledger is optional; nil disables allocation lookups
	Ledger ledger.Ledger
}

type executor struct {
	Dependencies
}

func NewExecutor(deps Dependencies) Executor {
	return &executor{Dependencies: deps}
}

func (e *executor) SubmitAction(ctx context.Context, req dto.SubmitActionRequest) (*dto.ActionResponse, error) {
	action, err := e.Pipeline.SubmitAction(ctx, req.ToSubmission())
	if err != nil {
		return nil, err
	}
	return dto.MapActionToDTO(action), nil
}

func (e *executor) GetAction(ctx context.Context, actionID string) (*dto.ActionResponse, error) {
	action, err := e.Store.GetActionByID(ctx, actionID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get action: %v", err))
	}
	if action == nil {
		return nil, apierrors.NewNotFoundError("Action not found")
	}
	return dto.MapActionToDTO(action), nil
}

func (e *executor) ProcessAction(ctx context.Context, actionID string) (*dto.ProcessResponse, error) {
	result, err := e.Pipeline.ProcessAction(ctx, actionID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProcessResponse{FailedGates: result.FailedGates}
	if result.Action != nil {
		resp.Action = dto.MapActionToDTO(result.Action)
	}
	if result.Score != nil {
		resp.Score = dto.MapScoreToDTO(result.Score)
	}
	if result.MintRequest != nil {
		resp.MintRequest = dto.MapMintRequestToDTO(result.MintRequest)
	}
	return resp, nil
}

func (e *executor) GetScore(ctx context.Context, actionID string) (*dto.ScoreResponse, error) {
	score, err := e.Store.GetScore(ctx, actionID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get score: %v", err))
	}
	if score == nil {
		return nil, apierrors.NewNotFoundError("Score not found")
	}
	return dto.MapScoreToDTO(score), nil
}

func (e *executor) GetMintRequest(ctx context.Context, requestID string) (*dto.MintRequestResponse, error) {
	request, err := e.Store.GetMintRequestByID(ctx, requestID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get mint request: %v", err))
	}
	if request == nil {
		return nil, apierrors.NewNotFoundError("Mint request not found")
	}
	return dto.MapMintRequestToDTO(request), nil
}

func (e *executor) GetMintRequestPayload(ctx context.Context, requestID string) (*attestation.SignedPayload, error) {
	return e.Attestation.Payload(ctx, requestID)
}

func (e *executor) SubmitSignature(ctx context.Context, requestID string, req dto.SubmitSignatureRequest) (*attestation.SubmitResult, error) {
	return e.Attestation.SubmitSignature(ctx, requestID, req.SignerID, req.Signature)
}

func (e *executor) GetActivePolicy(ctx context.Context) (*policy.Record, error) {
	return e.Resolver.GetActivePolicy(ctx)
}

func (e *executor) ListPolicies(ctx context.Context) (*dto.PolicyListResponse, error) {
	records, err := e.Policies.History(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list policies: %v", err))
	}
	if records == nil {
		records = []policy.Record{}
	}
	return &dto.PolicyListResponse{Policies: records}, nil
}

func (e *executor) CreatePolicy(ctx context.Context, req dto.CreatePolicyRequest, actor string) (*policy.Record, error) {
	return e.Policies.Create(ctx, policy.CreateRequest{
		Policy: req.Policy,
		Labels: req.AttesterLabels,
		Actor:  actor,
		Reason: req.Reason,
	})
}

func (e *executor) ActivatePolicy(ctx context.Context, version string, req dto.ActivatePolicyRequest, actor string) (*policy.Record, error) {
	return e.Policies.Activate(ctx, version, actor, req.Reason)
}

func (e *executor) RegisterPolicy(ctx context.Context, version string, req dto.RegisterPolicyRequest, actor string) (*policy.Record, error) {
	return e.Policies.Register(ctx, version, req.ExternalRef, actor)
}

func (e *executor) GetPolicyChanges(ctx context.Context, version string, limit int, offset uint64) (*dto.PolicyChangeListResponse, error) {
	limit = pageSize(limit)
	changes, total, err := e.Policies.Changes(ctx, store.PolicyChangesFilter{
		PolicyVersion: version,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get policy changes: %v", err))
	}

	resp := &dto.PolicyChangeListResponse{
		Changes: make([]dto.PolicyChangeResponse, len(changes)),
		Total:   total,
	}
	for i := range changes {
		resp.Changes[i] = dto.MapPolicyChangeToDTO(&changes[i])
	}
	if next := offset + uint64(len(changes)); next < total { //nolint:gosec,G115
		resp.Offset = &next
	}
	return resp, nil
}

func (e *executor) VerifyPolicyChanges(ctx context.Context) (*audit.Verification, error) {
	return e.Policies.VerifyAuditChain(ctx)
}

func (e *executor) GetPlatformThresholds(ctx context.Context, platformID string) (*policy.PlatformThresholds, error) {
	return e.Resolver.GetPlatformThresholds(ctx, platformID)
}

func (e *executor) ListAttesters(ctx context.Context, version string, activeOnly bool) (*dto.AttesterListResponse, error) {
	attesters, err := e.Policies.ListAttesters(ctx, version, activeOnly)
	if err != nil {
		return nil, err
	}
	resp := &dto.AttesterListResponse{
		PolicyVersion: version,
		Attesters:     make([]dto.AttesterResponse, len(attesters)),
	}
	for i := range attesters {
		resp.Attesters[i] = dto.MapAttesterToDTO(&attesters[i])
	}
	return resp, nil
}

func (e *executor) AddAttester(ctx context.Context, version string, req dto.AddAttesterRequest, actor string) (*dto.AttesterResponse, error) {
	attester, err := e.Policies.AddAttester(ctx, policy.AttesterRequest{
		PolicyVersion: version,
		SignerID:      req.SignerID,
		Label:         req.Label,
		Actor:         actor,
		Reason:        req.Reason,
	})
	if err != nil {
		return nil, err
	}
	resp := dto.MapAttesterToDTO(attester)
	return &resp, nil
}

func (e *executor) RemoveAttester(ctx context.Context, version, signerID, reason, actor string) error {
	return e.Policies.RemoveAttester(ctx, version, signerID, actor, reason)
}

func (e *executor) SetThreshold(ctx context.Context, version string, req dto.SetThresholdRequest, actor string) error {
	return e.Policies.SetThreshold(ctx, version, req.Threshold, actor, req.Reason)
}

func (e *executor) GetEpoch(ctx context.Context, epochKey, userID string) (*epoch.Status, error) {
	status, err := e.Enforcer.Status(ctx, epochKey, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apierrors.NewNotFoundError("Epoch not found")
		}
		return nil, err
	}
	return status, nil
}

func (e *executor) GetAllocation(ctx context.Context, recipient string) (*ledger.Allocation, error) {
	if e.Ledger == nil {
		return nil, apierrors.NewServiceError("Ledger is not configured")
	}
	if !common.IsHexAddress(recipient) {
		return nil, apierrors.NewValidationError("recipient must be a hex address")
	}
	return e.Ledger.Allocation(ctx, common.HexToAddress(recipient).Hex())
}

func (e *executor) GetChanges(ctx context.Context, subjectTypes []schema.SubjectType, subjectIDs []string, anchor *int64, limit int) (*dto.ChangeListResponse, error) {
	limit = pageSize(limit)
	changes, total, err := e.Store.GetChanges(ctx, store.ChangesQueryFilter{
		SubjectTypes: subjectTypes,
		SubjectIDs:   subjectIDs,
		Anchor:       anchor,
		Limit:        limit,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get changes: %v", err))
	}

	resp := &dto.ChangeListResponse{
		Changes: make([]dto.ChangeResponse, len(changes)),
		Total:   total,
	}
	for i, c := range changes {
		resp.Changes[i] = dto.MapChangeToDTO(c)
	}
	// More rows exist after this page
	if len(changes) > 0 && uint64(len(changes)) < total { //nolint:gosec,G115
		next := changes[len(changes)-1].Cursor
		resp.NextAnchor = &next
	}
	return resp, nil
}

func pageSize(limit int) int {
	if limit <= 0 {
		return DEFAULT_PAGE_SIZE
	}
	return min(limit, MAX_PAGE_SIZE)
}

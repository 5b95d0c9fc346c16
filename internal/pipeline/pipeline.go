// Package pipeline takes an action from submission through scoring to a collecting mint request
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/attestation"
	"github.com/feral-file/pplp-engine/internal/canonical"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/epoch"
	"github.com/feral-file/pplp-engine/internal/evidence"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/messaging"
	"github.com/feral-file/pplp-engine/internal/metrics"
	"github.com/feral-file/pplp-engine/internal/nonce"
	"github.com/feral-file/pplp-engine/internal/policy"
	"github.com/feral-file/pplp-engine/internal/ratelimit"
	"github.com/feral-file/pplp-engine/internal/scoring"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// ScoreResult is a recorded score and the gates the action failed
type ScoreResult struct {
	Action      *schema.Action `json:"-"`
	Score       *schema.Score  `json:"score"`
	FailedGates []scoring.Gate `json:"failed_gates,omitempty"`
}

// ProcessResult is the outcome of scoring an action and, on pass, opening its mint request
type ProcessResult struct {
	ScoreResult
	MintRequest *schema.MintRequest `json:"mint_request,omitempty"`
}

// Pipeline runs actions through validation, scoring, cap reservation and mint request creation
//
//go:generate mockgen -source=pipeline.go -destination=../mocks/pipeline.go -package=mocks -mock_names=Pipeline=MockPipeline
type Pipeline interface {
	// SubmitAction validates a submission, verifies its evidence and stores a pending action
	SubmitAction(ctx context.Context, sub domain.ActionSubmission) (*schema.Action, error)
	// ScoreAction scores a pending action exactly once under the active policy
	ScoreAction(ctx context.Context, actionID string) (*ScoreResult, error)
	// ProcessAction scores an action and, on pass, reserves its reward and opens a mint request.
	// A scored action that passed but has no mint request resumes at the reservation.
	// When a cap is exceeded the result is returned together with the *domain.CapExceededError.
	ProcessAction(ctx context.Context, actionID string) (*ProcessResult, error)
}

// Dependencies are the collaborators of the pipeline
type Dependencies struct {
	Store     store.Store
	Resolver  policy.Resolver
	Engine    scoring.Engine
	Validator *scoring.MetadataValidator
	Evidence  evidence.Verifier
	Enforcer  epoch.Enforcer
	Nonces    nonce.Guard
	// Limiter is optional; nil disables submission rate limiting
	Limiter   ratelimit.SubmissionLimiter
	Publisher messaging.Publisher
	Metrics   metrics.Recorder
	Clock     adapter.Clock
}

type pipeline struct {
	Dependencies
}

// New creates a pipeline
func New(deps Dependencies) Pipeline {
	return &pipeline{Dependencies: deps}
}

// hashedAction is the canonical form bound into the action hash
type hashedAction struct {
	ID           string            `json:"id"`
	PlatformID   string            `json:"platform_id"`
	ActionType   domain.ActionType `json:"action_type"`
	ActorID      string            `json:"actor_id"`
	TargetID     *string           `json:"target_id"`
	Metadata     json.RawMessage   `json:"metadata"`
	Impact       domain.Impact     `json:"impact"`
	Integrity    domain.Integrity  `json:"integrity"`
	EvidenceHash string            `json:"evidence_hash"`
}

func (p *pipeline) SubmitAction(ctx context.Context, sub domain.ActionSubmission) (*schema.Action, error) {
	if err := validateSubmission(&sub); err != nil {
		return nil, err
	}
	if _, err := p.Validator.Parse(sub.ActionType, sub.Metadata); err != nil {
		return nil, err
	}
	if p.Limiter != nil {
		if err := p.Limiter.Allow(ctx, sub.ActorID); err != nil {
			return nil, err
		}
	}

	now := p.Clock.Now()
	actionID := ulid.MustNewDefault(now).String()

	evidences, err := p.Evidence.Verify(ctx, actionID, sub.Evidence)
	if err != nil {
		return nil, err
	}
	evidenceHash, err := evidence.Hash(evidences)
	if err != nil {
		return nil, err
	}

	metadata, err := canonical.Transform(sub.Metadata)
	if err != nil {
		return nil, domain.NewValidationError("metadata", "must be a JSON object")
	}
	actionHash, err := canonical.HashHex(hashedAction{
		ID:           actionID,
		PlatformID:   sub.PlatformID,
		ActionType:   sub.ActionType,
		ActorID:      sub.ActorID,
		TargetID:     sub.TargetID,
		Metadata:     metadata,
		Impact:       sub.Impact,
		Integrity:    sub.Integrity,
		EvidenceHash: evidenceHash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to hash action: %w", err)
	}

	impact, err := json.Marshal(sub.Impact)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal impact: %w", err)
	}
	integrity, err := json.Marshal(sub.Integrity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal integrity: %w", err)
	}

	action := &schema.Action{
		ID:            actionID,
		PlatformID:    sub.PlatformID,
		ActionType:    sub.ActionType,
		ActorID:       sub.ActorID,
		TargetID:      sub.TargetID,
		WalletAddress: sub.WalletAddress,
		Metadata:      datatypes.JSON(metadata),
		Impact:        datatypes.JSON(impact),
		Integrity:     datatypes.JSON(integrity),
		Status:        domain.ActionStatusPending,
		EvidenceHash:  evidenceHash,
		ActionHash:    actionHash,
		CreatedAt:     now,
		UpdatedAt:     now,
		Evidences:     evidences,
	}
	if err := p.Store.CreateAction(ctx, action); err != nil {
		return nil, err
	}

	p.Metrics.ActionSubmitted(ctx, string(action.ActionType))
	p.publish(ctx, domain.EventTypeActionSubmitted, action.ID, "", string(domain.ActionStatusPending))

	logger.InfoCtx(ctx, "Action submitted",
		logger.ActionID(action.ID),
		zap.String("actionType", string(action.ActionType)),
		zap.String("platformID", action.PlatformID),
		zap.Int("evidences", len(evidences)),
		zap.Int("verifiedEvidences", evidence.CountVerified(evidences)))

	return action, nil
}

// validateSubmission checks the fields the metadata schema does not cover and fills defaults
func validateSubmission(sub *domain.ActionSubmission) error {
	sub.PlatformID = strings.TrimSpace(sub.PlatformID)
	sub.ActorID = strings.TrimSpace(sub.ActorID)

	if sub.PlatformID == "" {
		return domain.NewValidationError("platform_id", "is required")
	}
	if sub.ActorID == "" {
		return domain.NewValidationError("actor_id", "is required")
	}
	if !sub.ActionType.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownActionType, sub.ActionType)
	}
	if len(sub.Metadata) == 0 {
		return domain.NewValidationError("metadata", "is required")
	}

	if sub.WalletAddress != nil {
		if !common.IsHexAddress(*sub.WalletAddress) {
			return domain.NewValidationError("wallet_address", "must be a 20-byte hex address")
		}
		wallet := strings.ToLower(common.HexToAddress(*sub.WalletAddress).Hex())
		sub.WalletAddress = &wallet
	} else if !common.IsHexAddress(sub.ActorID) {
		return domain.NewValidationError("wallet_address", "is required when actor_id is not an address")
	}

	if sub.Impact.Beneficiaries < 0 {
		return domain.NewValidationError("impact.beneficiaries", "must not be negative")
	}
	switch sub.Impact.Outcome {
	case domain.OutcomePositive, domain.OutcomeNeutral, domain.OutcomeNegative:
	default:
		return domain.NewValidationError("impact.outcome", "must be positive, neutral or negative")
	}
	switch sub.Impact.Scope {
	case "":
		sub.Impact.Scope = domain.ScopeIndividual
	case domain.ScopeIndividual, domain.ScopeCommunity, domain.ScopeRegional, domain.ScopeGlobal:
	default:
		return domain.NewValidationError("impact.scope", "must be individual, community, regional or global")
	}

	if sub.Integrity.AntiSybilScore < 0 || sub.Integrity.AntiSybilScore > 1 {
		return domain.NewValidationError("integrity.anti_sybil_score", "must be within [0,1]")
	}
	return nil
}

func (p *pipeline) ScoreAction(ctx context.Context, actionID string) (*ScoreResult, error) {
	action, err := p.getAction(ctx, actionID)
	if err != nil {
		return nil, err
	}
	switch action.Status {
	case domain.ActionStatusPending:
	case domain.ActionStatusScored, domain.ActionStatusMinted:
		return nil, fmt.Errorf("action %s: %w", action.ID, domain.ErrAlreadyScored)
	default:
		return nil, fmt.Errorf("action %s is %s: %w", action.ID, action.Status, domain.ErrInvalidTransition)
	}

	// Fail closed: no active policy means no score
	active, err := p.Resolver.GetActivePolicy(ctx)
	if err != nil {
		return nil, err
	}
	thresholds := active.PlatformThresholds(action.PlatformID)

	input, err := p.scoringInput(action)
	if err != nil {
		if _, ok := domain.KindOf(err); ok {
			p.reject(ctx, action.ID, domain.ErrorKindValidation, err)
		}
		return nil, err
	}

	result, err := p.Engine.Score(&active.Policy, thresholds, *input)
	if err != nil {
		return nil, err
	}

	score := scoreRow(action.ID, result)
	scoredAt := p.Clock.Now()
	score.CreatedAt = scoredAt
	if err := p.Store.RecordScore(ctx, store.RecordScoreInput{Score: *score, ScoredAt: scoredAt}); err != nil {
		return nil, err
	}
	action.Status = domain.ActionStatusScored
	action.PolicyVersion = &score.PolicyVersion
	action.ScoredAt = &scoredAt

	reward, _ := result.Reward.Float64()
	p.Metrics.ActionScored(ctx, string(action.ActionType), string(result.Decision), reward)
	p.publish(ctx, domain.EventTypeActionScored, action.ID, "", string(result.Decision))

	logger.InfoCtx(ctx, "Action scored",
		logger.ActionID(action.ID),
		zap.String("decision", string(result.Decision)),
		zap.Float64("lightScore", result.LightScore),
		zap.String("reward", result.Reward.String()),
		zap.Any("failedGates", result.FailedGates),
		logger.PolicyVersion(result.PolicyVersion))

	return &ScoreResult{Action: action, Score: score, FailedGates: result.FailedGates}, nil
}

// scoringInput decodes the stored action into engine input.
// Metadata claiming evidence without any evidence attached is rejected.
func (p *pipeline) scoringInput(action *schema.Action) (*scoring.Input, error) {
	md, err := p.Validator.Parse(action.ActionType, action.Metadata)
	if err != nil {
		return nil, err
	}
	if md.HasEvidence && len(action.Evidences) == 0 {
		return nil, fmt.Errorf("action %s: %w", action.ID, domain.ErrMissingEvidence)
	}

	var impact domain.Impact
	if err := json.Unmarshal(action.Impact, &impact); err != nil {
		return nil, fmt.Errorf("failed to decode impact: %w", err)
	}
	var integrity domain.Integrity
	if err := json.Unmarshal(action.Integrity, &integrity); err != nil {
		return nil, fmt.Errorf("failed to decode integrity: %w", err)
	}

	return &scoring.Input{
		ActionType:       action.ActionType,
		Metadata:         md,
		Impact:           impact,
		Integrity:        integrity,
		VerifiedEvidence: evidence.CountVerified(action.Evidences),
	}, nil
}

func scoreRow(actionID string, r *scoring.Result) *schema.Score {
	return &schema.Score{
		ActionID:      actionID,
		PillarS:       r.Pillars.S,
		PillarT:       r.Pillars.T,
		PillarH:       r.Pillars.H,
		PillarC:       r.Pillars.C,
		PillarU:       r.Pillars.U,
		Quality:       r.Quality,
		Impact:        r.Impact,
		Integrity:     r.Integrity,
		LightScore:    r.LightScore,
		Decision:      r.Decision,
		Reward:        r.Reward,
		PolicyVersion: r.PolicyVersion,
		Formula:       r.Formula,
	}
}

func (p *pipeline) ProcessAction(ctx context.Context, actionID string) (*ProcessResult, error) {
	scored, err := p.ScoreAction(ctx, actionID)
	if errors.Is(err, domain.ErrAlreadyScored) {
		scored, err = p.existingScore(ctx, actionID)
	}
	if err != nil {
		return nil, err
	}

	result := &ProcessResult{ScoreResult: *scored}
	if scored.Score.Decision != domain.DecisionPass || scored.Action.Status != domain.ActionStatusScored {
		return result, nil
	}

	request, err := p.openMintRequest(ctx, scored.Action, scored.Score)
	if err != nil {
		var capErr *domain.CapExceededError
		if errors.As(err, &capErr) {
			return result, err
		}
		return nil, err
	}
	result.MintRequest = request
	return result, nil
}

// existingScore loads the recorded score of an already scored action
func (p *pipeline) existingScore(ctx context.Context, actionID string) (*ScoreResult, error) {
	action, err := p.getAction(ctx, actionID)
	if err != nil {
		return nil, err
	}
	score, err := p.Store.GetScore(ctx, actionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}
	if score == nil {
		return nil, fmt.Errorf("action %s is %s without a score: %w", actionID, action.Status, domain.ErrNotFound)
	}
	return &ScoreResult{Action: action, Score: score}, nil
}

// openMintRequest reserves the reward against the caps of the scoring policy, issues a nonce and
// stores a collecting mint request. Every step is idempotent per action.
func (p *pipeline) openMintRequest(ctx context.Context, action *schema.Action, score *schema.Score) (*schema.MintRequest, error) {
	existing, err := p.Store.GetMintRequestByActionID(ctx, action.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mint request: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	record, err := p.Resolver.GetPolicy(ctx, score.PolicyVersion)
	if err != nil {
		return nil, err
	}
	caps := record.Caps

	reservation, err := p.Enforcer.Reserve(ctx, epoch.ReserveRequest{
		UserID:   action.ActorID,
		ActionID: action.ID,
		Amount:   score.Reward,
		Caps:     caps,
	})
	if err != nil {
		return nil, err
	}

	n, err := p.Nonces.Next(ctx, action.ActorID)
	if err != nil {
		return nil, err
	}

	recipient := action.ActorID
	if action.WalletAddress != nil {
		recipient = *action.WalletAddress
	}

	now := p.Clock.Now()
	request := &schema.MintRequest{
		ID:            ulid.MustNewDefault(now).String(),
		ActionID:      action.ID,
		UserID:        action.ActorID,
		Recipient:     strings.ToLower(common.HexToAddress(recipient).Hex()),
		Amount:        score.Reward,
		AmountUnits:   caps.ToLedgerUnits(score.Reward),
		Nonce:         n,
		ActionHash:    action.ActionHash,
		EvidenceHash:  action.EvidenceHash,
		PolicyVersion: record.Version,
		Threshold:     record.SignatureThreshold,
		ReservationID: reservation.ID,
		Status:        domain.MintStatusCollecting,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	request.PayloadHash, err = attestation.PayloadOf(request).DigestHex()
	if err != nil {
		return nil, err
	}

	stored, created, err := p.Store.CreateMintRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	if !created {
		// Another worker won the race; its nonce stays with its request
		if err := p.Nonces.Retire(ctx, action.ActorID, n, "mint request already exists"); err != nil {
			logger.WarnCtx(ctx, "Failed to retire unused nonce", zap.Error(err), zap.Int64("nonce", n))
		}
		return stored, nil
	}

	p.publish(ctx, domain.EventTypeMintCreated, action.ID, stored.ID, string(domain.MintStatusCollecting))
	logger.InfoCtx(ctx, "Mint request opened",
		logger.ActionID(action.ID),
		logger.MintRequestID(stored.ID),
		zap.String("amount", stored.Amount.String()),
		zap.Int64("nonce", stored.Nonce),
		zap.Int("threshold", stored.Threshold))

	return stored, nil
}

func (p *pipeline) getAction(ctx context.Context, actionID string) (*schema.Action, error) {
	action, err := p.Store.GetActionByID(ctx, actionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get action: %w", err)
	}
	if action == nil {
		return nil, fmt.Errorf("action %s: %w", actionID, domain.ErrNotFound)
	}
	return action, nil
}

// reject marks an action rejected; a failure is logged and the original error is what the caller sees
func (p *pipeline) reject(ctx context.Context, actionID string, kind domain.ErrorKind, cause error) {
	if err := p.Store.RejectAction(ctx, store.RejectActionInput{
		ActionID:   actionID,
		Kind:       kind,
		Reason:     cause.Error(),
		RejectedAt: p.Clock.Now(),
	}); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to reject action: %w", err), logger.ActionID(actionID))
		return
	}
	logger.WarnCtx(ctx, "Action rejected", logger.ActionID(actionID), zap.Error(cause))
}

// publish announces a transition; a lost event is recovered by the sweepers
func (p *pipeline) publish(ctx context.Context, t domain.EventType, actionID, mintRequestID, status string) {
	if p.Publisher == nil {
		return
	}
	err := p.Publisher.Publish(ctx, &domain.EngineEvent{
		Type:          t,
		ActionID:      actionID,
		MintRequestID: mintRequestID,
		Status:        status,
		OccurredAt:    p.Clock.Now(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish %s event: %w", t, err), logger.ActionID(actionID))
	}
}

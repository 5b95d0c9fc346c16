package attestation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/messaging"
	"github.com/feral-file/pplp-engine/internal/metrics"
	"github.com/feral-file/pplp-engine/internal/policy"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// SubmitResult is the state of a mint request after a signature was accepted
type SubmitResult struct {
	MintRequestID string                 `json:"mint_request_id"`
	Result        domain.SignatureResult `json:"result"`
	Signatures    int                    `json:"signatures"`
	Threshold     int                    `json:"threshold"`
}

// SignedPayload is the payload of a mint request together with the digest attesters sign
type SignedPayload struct {
	MintRequestID string  `json:"mint_request_id"`
	Payload       Payload `json:"payload"`
	Canonical     string  `json:"canonical"`
	Digest        string  `json:"digest"`
}

// Coordinator collects attester signatures for mint requests
//
//go:generate mockgen -source=coordinator.go -destination=../mocks/attestation.go -package=mocks -mock_names=Coordinator=MockAttestationCoordinator
type Coordinator interface {
	// SubmitSignature verifies and stores a signature. The request flips to threshold_met exactly once.
	SubmitSignature(ctx context.Context, requestID, signerID, signature string) (*SubmitResult, error)
	// Payload returns the canonical payload of a mint request and its digest
	Payload(ctx context.Context, requestID string) (*SignedPayload, error)
}

type coordinator struct {
	store     store.Store
	publisher messaging.Publisher
	metrics   metrics.Recorder
	clock     adapter.Clock
}

// NewCoordinator creates an attestation coordinator
func NewCoordinator(store store.Store, publisher messaging.Publisher, metrics metrics.Recorder, clock adapter.Clock) Coordinator {
	return &coordinator{
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
	}
}

func (c *coordinator) SubmitSignature(ctx context.Context, requestID, signerID, signature string) (*SubmitResult, error) {
	signer, err := policy.NormalizeSignerID(signerID)
	if err != nil {
		return nil, err
	}

	request, err := c.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status == domain.MintStatusFailed {
		return nil, fmt.Errorf("mint request %s: %w", request.ID, domain.ErrMintRequestClosed)
	}

	attester, err := c.store.GetAttester(ctx, request.PolicyVersion, signer)
	if err != nil {
		return nil, fmt.Errorf("failed to get attester: %w", err)
	}
	if attester == nil || !attester.Active() {
		c.metrics.Signature(ctx, "unregistered")
		return nil, fmt.Errorf("signer %s for policy %s: %w", signer, request.PolicyVersion, domain.ErrAttesterNotRegistered)
	}

	digest, err := requestDigest(request)
	if err != nil {
		return nil, err
	}
	sig, err := DecodeSignature(signature)
	if err == nil {
		err = VerifySignature(digest, common.HexToAddress(signer), sig)
	}
	if err != nil {
		c.metrics.Signature(ctx, "invalid")
		logger.WarnCtx(ctx, "Rejected attester signature",
			logger.MintRequestID(request.ID),
			zap.String("signer", signer),
			zap.Error(err))
		return nil, err
	}

	added, err := c.store.AddMintSignature(ctx, store.AddMintSignatureInput{
		MintRequestID: request.ID,
		SignerID:      signer,
		Signature:     hexutil.Encode(sig),
		AcceptedAt:    c.clock.Now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateSigner):
			c.metrics.Signature(ctx, "duplicate")
		case errors.Is(err, domain.ErrAttesterNotRegistered):
			c.metrics.Signature(ctx, "unregistered")
		}
		return nil, err
	}
	c.metrics.Signature(ctx, "accepted")

	if added.ThresholdReached {
		logger.InfoCtx(ctx, "Mint request reached signature threshold",
			logger.MintRequestID(request.ID),
			zap.Int("signatures", added.Signatures),
			zap.Int("threshold", request.Threshold))
		c.publishThresholdMet(ctx, added.Request)
	}

	result := domain.SignaturePending
	if added.Request.Status != domain.MintStatusCollecting {
		result = domain.SignatureThresholdMet
	}
	return &SubmitResult{
		MintRequestID: request.ID,
		Result:        result,
		Signatures:    added.Signatures,
		Threshold:     request.Threshold,
	}, nil
}

// publishThresholdMet announces the request to the settlement bridge.
// A lost event is recovered by the stuck request sweeper.
func (c *coordinator) publishThresholdMet(ctx context.Context, request *schema.MintRequest) {
	event := &domain.EngineEvent{
		Type:          domain.EventTypeMintThresholdMet,
		ActionID:      request.ActionID,
		MintRequestID: request.ID,
		Status:        string(domain.MintStatusThresholdMet),
		OccurredAt:    c.clock.Now(),
	}
	if err := c.publisher.Publish(ctx, event); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish threshold met event: %w", err),
			logger.MintRequestID(request.ID))
	}
}

func (c *coordinator) Payload(ctx context.Context, requestID string) (*SignedPayload, error) {
	request, err := c.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	payload := PayloadOf(request)
	raw, err := payload.Canonical()
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize payload: %w", err)
	}
	digest, err := requestDigest(request)
	if err != nil {
		return nil, err
	}

	return &SignedPayload{
		MintRequestID: request.ID,
		Payload:       payload,
		Canonical:     string(raw),
		Digest:        digest.Hex(),
	}, nil
}

func (c *coordinator) getRequest(ctx context.Context, requestID string) (*schema.MintRequest, error) {
	request, err := c.store.GetMintRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mint request: %w", err)
	}
	if request == nil {
		return nil, fmt.Errorf("mint request %s: %w", requestID, domain.ErrNotFound)
	}
	return request, nil
}

// requestDigest recomputes the digest from the request fields and checks it against the stored payload hash
func requestDigest(request *schema.MintRequest) (common.Hash, error) {
	digest, err := PayloadOf(request).Digest()
	if err != nil {
		return common.Hash{}, err
	}
	if request.PayloadHash != "" && !equalHex(request.PayloadHash, digest.Hex()) {
		return common.Hash{}, fmt.Errorf("mint request %s payload hash %s does not match its fields", request.ID, request.PayloadHash)
	}
	return digest, nil
}

func equalHex(a, b string) bool {
	return common.HexToHash(a) == common.HexToHash(b)
}

package policy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/audit"
	"github.com/feral-file/pplp-engine/internal/canonical"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// CreateRequest is a new policy version to store
type CreateRequest struct {
	Policy domain.Policy
	// Labels optionally names the initial attesters, keyed by address
	Labels map[string]string
	Actor  string
	Reason string
}

// AttesterRequest registers an attester for a policy version
type AttesterRequest struct {
	PolicyVersion string
	SignerID      string
	Label         string
	Actor         string
	Reason        string
}

// Service defines the interface for policy administration. Every mutation writes an audit row.
//
//go:generate mockgen -source=service.go -destination=../mocks/policy_service.go -package=mocks -mock_names=Service=MockPolicyService
type Service interface {
	// Create validates and stores a new policy version. It must be greater than every existing version.
	Create(ctx context.Context, req CreateRequest) (*Record, error)
	// Activate makes a stored version the only active policy
	Activate(ctx context.Context, version, actor, reason string) (*Record, error)
	// Register records the external registration of a policy's content hash
	Register(ctx context.Context, version, externalRef, actor string) (*Record, error)
	// History lists every policy version in creation order
	History(ctx context.Context) ([]Record, error)
	// Changes lists audit rows in chain order
	Changes(ctx context.Context, filter store.PolicyChangesFilter) ([]schema.PolicyChange, uint64, error)
	// VerifyAuditChain recomputes the whole audit chain
	VerifyAuditChain(ctx context.Context) (*audit.Verification, error)

	// AddAttester registers an attester for a policy version
	AddAttester(ctx context.Context, req AttesterRequest) (*schema.Attester, error)
	// RemoveAttester revokes an attester of a policy version
	RemoveAttester(ctx context.Context, version, signerID, actor, reason string) error
	// SetThreshold changes a policy version's signature threshold
	SetThreshold(ctx context.Context, version string, threshold int, actor, reason string) error
	// ListAttesters lists the registrations of a policy version
	ListAttesters(ctx context.Context, version string, activeOnly bool) ([]schema.Attester, error)
}

type service struct {
	store    store.Store
	resolver Resolver
	clock    adapter.Clock
}

// NewService creates a new policy administration service
func NewService(store store.Store, clock adapter.Clock) Service {
	return &service{
		store:    store,
		resolver: NewResolver(store),
		clock:    clock,
	}
}

// NormalizeSignerID validates an attester address and returns its lowercase form
func NormalizeSignerID(signerID string) (string, error) {
	if !common.IsHexAddress(signerID) {
		return "", domain.NewValidationError("signer_id", "must be a 20-byte hex address")
	}
	return strings.ToLower(common.HexToAddress(signerID).Hex()), nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Record, error) {
	p := req.Policy
	if err := Validate(&p); err != nil {
		return nil, err
	}

	attesters := make([]store.AttesterInput, 0, len(p.Attesters))
	signerIDs := make([]string, 0, len(p.Attesters))
	for _, a := range p.Attesters {
		signerID, err := NormalizeSignerID(a)
		if err != nil {
			return nil, err
		}
		signerIDs = append(signerIDs, signerID)
		attesters = append(attesters, store.AttesterInput{SignerID: signerID, Label: req.Labels[a]})
	}
	if len(signerIDs) > 0 {
		p.Attesters = signerIDs
	}

	if err := s.checkVersionOrder(ctx, p.Version); err != nil {
		return nil, err
	}

	document, err := canonical.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize policy: %w", err)
	}
	contentHash := canonical.Keccak256Hex(document)

	row, err := s.store.CreatePolicy(ctx, store.CreatePolicyInput{
		Version:            p.Version,
		ContentHash:        contentHash,
		Document:           document,
		SignatureThreshold: p.SignatureThreshold,
		Attesters:          attesters,
		Actor:              req.Actor,
		Reason:             req.Reason,
		CreatedAt:          s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Policy created",
		zap.String("version", p.Version),
		zap.String("contentHash", contentHash),
		zap.String("actor", req.Actor))

	return recordFromSchema(row)
}

// checkVersionOrder rejects a version that is not strictly greater than every stored version
func (s *service) checkVersionOrder(ctx context.Context, version string) error {
	next, err := semver.StrictNewVersion(version)
	if err != nil {
		return &domain.PolicyError{Version: version, Reason: err.Error()}
	}

	existing, err := s.store.ListPolicies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list policies: %w", err)
	}
	for _, row := range existing {
		if row.Version == version {
			return fmt.Errorf("policy %s: %w", version, domain.ErrPolicyExists)
		}
		v, err := semver.NewVersion(row.Version)
		if err != nil {
			continue
		}
		if !next.GreaterThan(v) {
			return &domain.PolicyError{
				Version: version,
				Reason:  fmt.Sprintf("version must be greater than existing version %s", row.Version),
			}
		}
	}
	return nil
}

func (s *service) Activate(ctx context.Context, version, actor, reason string) (*Record, error) {
	record, err := s.resolver.GetPolicy(ctx, version)
	if err != nil {
		return nil, err
	}
	if err := Validate(&record.Policy); err != nil {
		return nil, err
	}

	active, err := s.store.ListAttesters(ctx, version, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list attesters: %w", err)
	}
	if len(active) < record.SignatureThreshold {
		return nil, &domain.PolicyError{
			Version: version,
			Reason: fmt.Sprintf("%d active attesters cannot reach signature threshold %d",
				len(active), record.SignatureThreshold),
		}
	}

	row, err := s.store.ActivatePolicy(ctx, store.ActivatePolicyInput{
		Version:     version,
		Actor:       actor,
		Reason:      reason,
		ActivatedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Policy activated", zap.String("version", version), zap.String("actor", actor))

	return recordFromSchema(row)
}

func (s *service) Register(ctx context.Context, version, externalRef, actor string) (*Record, error) {
	if strings.TrimSpace(externalRef) == "" {
		return nil, domain.NewValidationError("external_ref", "is required")
	}
	row, err := s.store.RegisterPolicy(ctx, store.RegisterPolicyInput{
		Version:      version,
		ExternalRef:  externalRef,
		Actor:        actor,
		RegisteredAt: s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	return recordFromSchema(row)
}

func (s *service) History(ctx context.Context) ([]Record, error) {
	rows, err := s.store.ListPolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	records := make([]Record, 0, len(rows))
	for i := range rows {
		r, err := recordFromSchema(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, nil
}

func (s *service) Changes(ctx context.Context, filter store.PolicyChangesFilter) ([]schema.PolicyChange, uint64, error) {
	return s.store.ListPolicyChanges(ctx, filter)
}

func (s *service) VerifyAuditChain(ctx context.Context) (*audit.Verification, error) {
	changes, _, err := s.store.ListPolicyChanges(ctx, store.PolicyChangesFilter{})
	if err != nil {
		return nil, err
	}
	result := audit.VerifyChain(changes)
	if !result.Valid {
		logger.WarnCtx(ctx, "Policy audit chain verification failed",
			zap.Int64("changeID", result.Violation.ChangeID),
			zap.String("reason", result.Violation.Reason))
	}
	return &result, nil
}

func (s *service) AddAttester(ctx context.Context, req AttesterRequest) (*schema.Attester, error) {
	signerID, err := NormalizeSignerID(req.SignerID)
	if err != nil {
		return nil, err
	}
	attester, err := s.store.AddAttester(ctx, store.AddAttesterInput{
		PolicyVersion: req.PolicyVersion,
		SignerID:      signerID,
		Label:         req.Label,
		Actor:         req.Actor,
		Reason:        req.Reason,
		AddedAt:       s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Attester added",
		zap.String("version", req.PolicyVersion),
		logger.SignerID(signerID),
		zap.String("actor", req.Actor))

	return attester, nil
}

func (s *service) RemoveAttester(ctx context.Context, version, signerID, actor, reason string) error {
	signerID, err := NormalizeSignerID(signerID)
	if err != nil {
		return err
	}
	err = s.store.RevokeAttester(ctx, store.RevokeAttesterInput{
		PolicyVersion: version,
		SignerID:      signerID,
		Actor:         actor,
		Reason:        reason,
		RevokedAt:     s.clock.Now(),
	})
	if err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Attester removed",
		zap.String("version", version),
		logger.SignerID(signerID),
		zap.String("actor", actor))
	return nil
}

func (s *service) SetThreshold(ctx context.Context, version string, threshold int, actor, reason string) error {
	if threshold < 1 {
		return domain.NewValidationError("threshold", "must be at least 1")
	}

	record, err := s.resolver.GetPolicy(ctx, version)
	if err != nil {
		return err
	}
	if record.IsActive {
		active, err := s.store.ListAttesters(ctx, version, true)
		if err != nil {
			return fmt.Errorf("failed to list attesters: %w", err)
		}
		if len(active) < threshold {
			return &domain.PolicyError{
				Version: version,
				Reason:  fmt.Sprintf("%d active attesters cannot reach signature threshold %d", len(active), threshold),
			}
		}
	}

	return s.store.SetSignatureThreshold(ctx, store.SetSignatureThresholdInput{
		PolicyVersion: version,
		Threshold:     threshold,
		Actor:         actor,
		Reason:        reason,
		ChangedAt:     s.clock.Now(),
	})
}

func (s *service) ListAttesters(ctx context.Context, version string, activeOnly bool) ([]schema.Attester, error) {
	if _, err := s.resolver.GetPolicy(ctx, version); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	return s.store.ListAttesters(ctx, version, activeOnly)
}

// Package policy stores, validates and resolves the versioned scoring and issuance policies,
// and administers the per-version attester registry.
package policy

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/store"
)

// PlatformThresholds are the thresholds of the active policy as seen by one platform
type PlatformThresholds struct {
	PolicyVersion string            `json:"policy_version"`
	PlatformID    string            `json:"platform_id"`
	Thresholds    domain.Thresholds `json:"thresholds"`
}

// Defaults are display values for tooling. They are never used to score an action.
type Defaults struct {
	RewardFormula      string      `json:"reward_formula"`
	Caps               domain.Caps `json:"caps"`
	SignatureThreshold int         `json:"signature_threshold"`
}

// Resolver defines the interface for reading policies
//
//go:generate mockgen -source=resolver.go -destination=../mocks/policy_resolver.go -package=mocks -mock_names=Resolver=MockPolicyResolver
type Resolver interface {
	// GetActivePolicy returns the active policy or domain.ErrNoActivePolicy
	GetActivePolicy(ctx context.Context) (*Record, error)
	// GetPolicy returns a policy by version or domain.ErrNotFound
	GetPolicy(ctx context.Context, version string) (*Record, error)
	// GetPlatformThresholds resolves the active policy's thresholds for a platform
	GetPlatformThresholds(ctx context.Context, platformID string) (*PlatformThresholds, error)
	// Defaults returns the display defaults
	Defaults() Defaults
}

type resolver struct {
	store store.Store
}

// NewResolver creates a new policy resolver
func NewResolver(store store.Store) Resolver {
	return &resolver{store: store}
}

func (r *resolver) GetActivePolicy(ctx context.Context) (*Record, error) {
	row, err := r.store.GetActivePolicy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active policy: %w", err)
	}
	if row == nil {
		return nil, domain.ErrNoActivePolicy
	}
	return recordFromSchema(row)
}

func (r *resolver) GetPolicy(ctx context.Context, version string) (*Record, error) {
	row, err := r.store.GetPolicyByVersion(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("policy %s: %w", version, domain.ErrNotFound)
	}
	return recordFromSchema(row)
}

func (r *resolver) GetPlatformThresholds(ctx context.Context, platformID string) (*PlatformThresholds, error) {
	active, err := r.GetActivePolicy(ctx)
	if err != nil {
		return nil, err
	}
	return &PlatformThresholds{
		PolicyVersion: active.Version,
		PlatformID:    platformID,
		Thresholds:    active.PlatformThresholds(platformID),
	}, nil
}

func (r *resolver) Defaults() Defaults {
	return Defaults{
		RewardFormula: domain.RewardFormulaPPLPv1,
		Caps: domain.Caps{
			EpochKey:             "global",
			EpochDurationSeconds: 86400,
			EpochCap:             decimal.NewFromInt(1_000_000),
			UserEpochCap:         decimal.NewFromInt(10_000),
			MinMint:              decimal.NewFromInt(1),
			MaxMint:              decimal.NewFromInt(1_000),
			IssuanceDecimals:     2,
			LedgerDecimals:       18,
		},
		SignatureThreshold: 2,
	}
}

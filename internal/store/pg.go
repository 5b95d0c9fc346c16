package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/pplp-engine/internal/audit"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// policyChainLockKey is the advisory lock key serializing appends to the policy audit chain
const policyChainLockKey int64 = 0x50504c50

type pgStore struct {
	db *gorm.DB
}

var _ audit.ChangeLog = (*pgStore)(nil)

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Open connects to PostgreSQL. When readDSN is not empty, reads are routed to that replica
// through dbresolver and writes stay on the primary.
func Open(dsn, readDSN string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if readDSN == "" {
		return db, nil
	}

	err = db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{postgres.Open(readDSN)},
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to register read replica: %w", err)
	}
	return db, nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// =============================================================================
// Internal helpers
// =============================================================================

// writeJournal appends a status transition to the changes journal within tx
func writeJournal(tx *gorm.DB, subjectType schema.SubjectType, subjectID string, at time.Time, meta schema.StatusChangeMeta) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal change journal meta: %w", err)
	}
	entry := schema.ChangesJournal{
		SubjectType: subjectType,
		SubjectID:   subjectID,
		ChangedAt:   at,
		Meta:        metaJSON,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to create change journal: %w", err)
	}
	return nil
}

// appendPolicyChanges seals and inserts audit rows at the head of the chain.
// The advisory lock is held until tx ends, so concurrent appends cannot fork the chain.
func appendPolicyChanges(tx *gorm.DB, changes ...*schema.PolicyChange) error {
	if len(changes) == 0 {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", policyChainLockKey).Error; err != nil {
		return fmt.Errorf("failed to lock policy audit chain: %w", err)
	}

	var heads []string
	if err := tx.Model(&schema.PolicyChange{}).
		Order("id DESC").
		Limit(1).
		Pluck("entry_hash", &heads).Error; err != nil {
		return fmt.Errorf("failed to get policy audit chain head: %w", err)
	}
	prev := ""
	if len(heads) > 0 {
		prev = heads[0]
	}

	for _, c := range changes {
		if err := audit.Seal(prev, c); err != nil {
			return fmt.Errorf("failed to seal policy change: %w", err)
		}
		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("failed to create policy change: %w", err)
		}
		prev = c.EntryHash
	}
	return nil
}

// lockPolicy loads a policy row FOR UPDATE
func lockPolicy(tx *gorm.DB, version string) (*schema.Policy, error) {
	var policy schema.Policy
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("version = ?", version).
		First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("policy %s: %w", version, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock policy: %w", err)
	}
	return &policy, nil
}

// lockAction loads an action row FOR UPDATE
func lockAction(tx *gorm.DB, id string) (*schema.Action, error) {
	var action schema.Action
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&action).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("action %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock action: %w", err)
	}
	return &action, nil
}

// lockMintRequest loads a mint request row FOR UPDATE
func lockMintRequest(tx *gorm.DB, id string) (*schema.MintRequest, error) {
	var request schema.MintRequest
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("mint request %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock mint request: %w", err)
	}
	return &request, nil
}

// transitionAction moves a locked action to next, rejecting non-forward transitions
func transitionAction(tx *gorm.DB, action *schema.Action, next domain.ActionStatus, updates map[string]any, at time.Time, reason string) error {
	if !action.Status.CanTransitionTo(next) {
		return fmt.Errorf("action %s %s -> %s: %w", action.ID, action.Status, next, domain.ErrInvalidTransition)
	}
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = next
	updates["updated_at"] = at
	if err := tx.Model(&schema.Action{}).Where("id = ?", action.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update action status: %w", err)
	}
	from := action.Status
	action.Status = next
	return writeJournal(tx, schema.SubjectTypeAction, action.ID, at, schema.StatusChangeMeta{
		From:   string(from),
		To:     string(next),
		Reason: reason,
	})
}

// alignEpochStart returns the start of the duration-grid window containing t
func alignEpochStart(t time.Time, durationSeconds int64) time.Time {
	sec := t.Unix()
	return time.Unix(sec-(sec%durationSeconds), 0).UTC()
}

// =============================================================================
// Policies
// =============================================================================

// CreatePolicy inserts a new policy version with its initial attesters and audit rows in a single transaction
func (s *pgStore) CreatePolicy(ctx context.Context, input CreatePolicyInput) (*schema.Policy, error) {
	var policy schema.Policy
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		policy = schema.Policy{
			Version:            input.Version,
			ContentHash:        input.ContentHash,
			Document:           input.Document,
			SignatureThreshold: input.SignatureThreshold,
			CreatedBy:          input.Actor,
			CreatedAt:          input.CreatedAt,
		}

		// If policy.ID is 0 after the insert, the version already existed
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "version"}},
			DoNothing: true,
		}).Create(&policy).Error; err != nil {
			return fmt.Errorf("failed to create policy: %w", err)
		}
		if policy.ID == 0 {
			return fmt.Errorf("policy %s: %w", input.Version, domain.ErrPolicyExists)
		}

		changes := []*schema.PolicyChange{{
			PolicyVersion: input.Version,
			ChangeType:    domain.PolicyChangeCreate,
			Field:         "content_hash",
			NewValue:      input.ContentHash,
			Actor:         input.Actor,
			Reason:        input.Reason,
			ChangedAt:     input.CreatedAt,
		}}

		for _, a := range input.Attesters {
			attester := schema.Attester{
				PolicyVersion: input.Version,
				SignerID:      a.SignerID,
				Label:         a.Label,
				AddedBy:       input.Actor,
				AddedAt:       input.CreatedAt,
			}
			if err := tx.Create(&attester).Error; err != nil {
				return fmt.Errorf("failed to create attester: %w", err)
			}
			changes = append(changes, &schema.PolicyChange{
				PolicyVersion: input.Version,
				ChangeType:    domain.PolicyChangeAttesterAdd,
				Field:         "signer_id",
				NewValue:      a.SignerID,
				Actor:         input.Actor,
				Reason:        input.Reason,
				ChangedAt:     input.CreatedAt,
			})
		}

		return appendPolicyChanges(tx, changes...)
	})
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

// ActivatePolicy deactivates the current policy and activates the given version in a single transaction
func (s *pgStore) ActivatePolicy(ctx context.Context, input ActivatePolicyInput) (*schema.Policy, error) {
	var target *schema.Policy
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		target, err = lockPolicy(tx, input.Version)
		if err != nil {
			return err
		}
		if target.IsActive {
			return nil
		}

		var current []schema.Policy
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("is_active").
			Find(&current).Error; err != nil {
			return fmt.Errorf("failed to lock active policy: %w", err)
		}

		var changes []*schema.PolicyChange
		previous := ""
		for _, p := range current {
			if err := tx.Model(&schema.Policy{}).
				Where("id = ?", p.ID).
				Update("is_active", false).Error; err != nil {
				return fmt.Errorf("failed to deactivate policy %s: %w", p.Version, err)
			}
			previous = p.Version
			changes = append(changes, &schema.PolicyChange{
				PolicyVersion: p.Version,
				ChangeType:    domain.PolicyChangeDeactivate,
				Field:         "is_active",
				OldValue:      "true",
				NewValue:      "false",
				Actor:         input.Actor,
				Reason:        input.Reason,
				ChangedAt:     input.ActivatedAt,
			})
		}

		if err := tx.Model(&schema.Policy{}).
			Where("id = ?", target.ID).
			Updates(map[string]any{
				"is_active":    true,
				"activated_at": input.ActivatedAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to activate policy: %w", err)
		}
		target.IsActive = true
		target.ActivatedAt = &input.ActivatedAt

		changes = append(changes, &schema.PolicyChange{
			PolicyVersion: input.Version,
			ChangeType:    domain.PolicyChangeActivate,
			Field:         "is_active",
			OldValue:      "false",
			NewValue:      "true",
			Actor:         input.Actor,
			Reason:        input.Reason,
			ChangedAt:     input.ActivatedAt,
		})
		if err := appendPolicyChanges(tx, changes...); err != nil {
			return err
		}

		return writeJournal(tx, schema.SubjectTypePolicy, input.Version, input.ActivatedAt, schema.StatusChangeMeta{
			From:   previous,
			To:     "active",
			Reason: input.Reason,
		})
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

// RegisterPolicy records the external registration of a policy's content hash
func (s *pgStore) RegisterPolicy(ctx context.Context, input RegisterPolicyInput) (*schema.Policy, error) {
	var policy *schema.Policy
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		policy, err = lockPolicy(tx, input.Version)
		if err != nil {
			return err
		}

		old := ""
		if policy.ExternalRef != nil {
			old = *policy.ExternalRef
		}
		if old == input.ExternalRef {
			return nil
		}

		if err := tx.Model(&schema.Policy{}).
			Where("id = ?", policy.ID).
			Updates(map[string]any{
				"external_ref":  input.ExternalRef,
				"registered_at": input.RegisteredAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to register policy: %w", err)
		}
		policy.ExternalRef = &input.ExternalRef
		policy.RegisteredAt = &input.RegisteredAt

		if err := appendPolicyChanges(tx, &schema.PolicyChange{
			PolicyVersion: input.Version,
			ChangeType:    domain.PolicyChangeRegister,
			Field:         "external_ref",
			OldValue:      old,
			NewValue:      input.ExternalRef,
			Actor:         input.Actor,
			ChangedAt:     input.RegisteredAt,
		}); err != nil {
			return err
		}

		return writeJournal(tx, schema.SubjectTypePolicy, input.Version, input.RegisteredAt, schema.StatusChangeMeta{
			To: "registered",
		})
	})
	if err != nil {
		return nil, err
	}
	return policy, nil
}

// GetActivePolicy retrieves the active policy
func (s *pgStore) GetActivePolicy(ctx context.Context) (*schema.Policy, error) {
	var policy schema.Policy
	err := s.db.WithContext(ctx).Where("is_active").First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active policy: %w", err)
	}
	return &policy, nil
}

// GetPolicyByVersion retrieves a policy by version
func (s *pgStore) GetPolicyByVersion(ctx context.Context, version string) (*schema.Policy, error) {
	var policy schema.Policy
	err := s.db.WithContext(ctx).Where("version = ?", version).First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	return &policy, nil
}

// ListPolicies retrieves all policies in creation order
func (s *pgStore) ListPolicies(ctx context.Context) ([]schema.Policy, error) {
	var policies []schema.Policy
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&policies).Error; err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	return policies, nil
}

// ListPolicyChanges retrieves audit rows in chain order
func (s *pgStore) ListPolicyChanges(ctx context.Context, filter PolicyChangesFilter) ([]schema.PolicyChange, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.PolicyChange{})

	if filter.PolicyVersion != "" {
		query = query.Where("policy_version = ?", filter.PolicyVersion)
	}
	if len(filter.ChangeTypes) > 0 {
		query = query.Where("change_type IN ?", filter.ChangeTypes)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count policy changes: %w", err)
	}

	query = query.Order("id ASC")
	if filter.Offset > 0 {
		query = query.Offset(int(filter.Offset)) //nolint:gosec,G115
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var changes []schema.PolicyChange
	if err := query.Find(&changes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query policy changes: %w", err)
	}
	return changes, uint64(total), nil //nolint:gosec,G115
}

// GetUnstreamedPolicyChanges retrieves audit rows not yet delivered to the audit stream
func (s *pgStore) GetUnstreamedPolicyChanges(ctx context.Context, limit int) ([]schema.PolicyChange, error) {
	var changes []schema.PolicyChange
	if err := s.db.WithContext(ctx).
		Where("streamed_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, fmt.Errorf("failed to get unstreamed policy changes: %w", err)
	}
	return changes, nil
}

// MarkPolicyChangeStreamed records a successful audit stream delivery
func (s *pgStore) MarkPolicyChangeStreamed(ctx context.Context, id int64, streamedAt time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&schema.PolicyChange{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"streamed_at":     streamedAt,
			"stream_error":    nil,
			"stream_attempts": gorm.Expr("stream_attempts + 1"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark policy change streamed: %w", err)
	}
	return nil
}

// MarkPolicyChangeStreamFailed records a failed audit stream delivery attempt
func (s *pgStore) MarkPolicyChangeStreamFailed(ctx context.Context, id int64, reason string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.PolicyChange{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stream_error":    reason,
			"stream_attempts": gorm.Expr("stream_attempts + 1"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark policy change stream failure: %w", err)
	}
	return nil
}

// =============================================================================
// Attesters
// =============================================================================

// AddAttester registers (or re-activates) an attester for a policy version
func (s *pgStore) AddAttester(ctx context.Context, input AddAttesterInput) (*schema.Attester, error) {
	var attester schema.Attester
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The policy row lock serializes registry changes of one version
		if _, err := lockPolicy(tx, input.PolicyVersion); err != nil {
			return err
		}

		err := tx.Where("policy_version = ? AND signer_id = ?", input.PolicyVersion, input.SignerID).
			First(&attester).Error
		switch {
		case err == nil && attester.Active():
			return fmt.Errorf("attester %s: %w", input.SignerID, domain.ErrAttesterExists)
		case err == nil:
			if err := tx.Model(&schema.Attester{}).
				Where("policy_version = ? AND signer_id = ?", input.PolicyVersion, input.SignerID).
				Updates(map[string]any{
					"revoked_at": nil,
					"revoked_by": nil,
					"label":      input.Label,
					"added_by":   input.Actor,
					"added_at":   input.AddedAt,
				}).Error; err != nil {
				return fmt.Errorf("failed to reactivate attester: %w", err)
			}
			attester.RevokedAt = nil
			attester.RevokedBy = nil
			attester.Label = input.Label
			attester.AddedBy = input.Actor
			attester.AddedAt = input.AddedAt
		case errors.Is(err, gorm.ErrRecordNotFound):
			attester = schema.Attester{
				PolicyVersion: input.PolicyVersion,
				SignerID:      input.SignerID,
				Label:         input.Label,
				AddedBy:       input.Actor,
				AddedAt:       input.AddedAt,
			}
			if err := tx.Create(&attester).Error; err != nil {
				return fmt.Errorf("failed to create attester: %w", err)
			}
		default:
			return fmt.Errorf("failed to get attester: %w", err)
		}

		return appendPolicyChanges(tx, &schema.PolicyChange{
			PolicyVersion: input.PolicyVersion,
			ChangeType:    domain.PolicyChangeAttesterAdd,
			Field:         "signer_id",
			NewValue:      input.SignerID,
			Actor:         input.Actor,
			Reason:        input.Reason,
			ChangedAt:     input.AddedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return &attester, nil
}

// RevokeAttester revokes an active attester registration
func (s *pgStore) RevokeAttester(ctx context.Context, input RevokeAttesterInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockPolicy(tx, input.PolicyVersion); err != nil {
			return err
		}

		result := tx.Model(&schema.Attester{}).
			Where("policy_version = ? AND signer_id = ? AND revoked_at IS NULL", input.PolicyVersion, input.SignerID).
			Updates(map[string]any{
				"revoked_at": input.RevokedAt,
				"revoked_by": input.Actor,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to revoke attester: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("active attester %s: %w", input.SignerID, domain.ErrNotFound)
		}

		return appendPolicyChanges(tx, &schema.PolicyChange{
			PolicyVersion: input.PolicyVersion,
			ChangeType:    domain.PolicyChangeAttesterRemove,
			Field:         "signer_id",
			OldValue:      input.SignerID,
			Actor:         input.Actor,
			Reason:        input.Reason,
			ChangedAt:     input.RevokedAt,
		})
	})
}

// SetSignatureThreshold changes the signature threshold of a policy version.
// Mint requests keep the threshold snapshotted at their creation.
func (s *pgStore) SetSignatureThreshold(ctx context.Context, input SetSignatureThresholdInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		policy, err := lockPolicy(tx, input.PolicyVersion)
		if err != nil {
			return err
		}
		if policy.SignatureThreshold == input.Threshold {
			return nil
		}

		if err := tx.Model(&schema.Policy{}).
			Where("id = ?", policy.ID).
			Update("signature_threshold", input.Threshold).Error; err != nil {
			return fmt.Errorf("failed to update signature threshold: %w", err)
		}

		return appendPolicyChanges(tx, &schema.PolicyChange{
			PolicyVersion: input.PolicyVersion,
			ChangeType:    domain.PolicyChangeThresholdChange,
			Field:         "signature_threshold",
			OldValue:      strconv.Itoa(policy.SignatureThreshold),
			NewValue:      strconv.Itoa(input.Threshold),
			Actor:         input.Actor,
			Reason:        input.Reason,
			ChangedAt:     input.ChangedAt,
		})
	})
}

// GetAttester retrieves a registration
func (s *pgStore) GetAttester(ctx context.Context, policyVersion, signerID string) (*schema.Attester, error) {
	var attester schema.Attester
	err := s.db.WithContext(ctx).
		Where("policy_version = ? AND signer_id = ?", policyVersion, signerID).
		First(&attester).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attester: %w", err)
	}
	return &attester, nil
}

// ListAttesters retrieves the registrations of a policy version
func (s *pgStore) ListAttesters(ctx context.Context, policyVersion string, activeOnly bool) ([]schema.Attester, error) {
	query := s.db.WithContext(ctx).Where("policy_version = ?", policyVersion)
	if activeOnly {
		query = query.Where("revoked_at IS NULL")
	}

	var attesters []schema.Attester
	if err := query.Order("added_at ASC, signer_id ASC").Find(&attesters).Error; err != nil {
		return nil, fmt.Errorf("failed to list attesters: %w", err)
	}
	return attesters, nil
}

// =============================================================================
// Actions
// =============================================================================

// CreateAction inserts a pending action with its evidences and a journal row in a single transaction
func (s *pgStore) CreateAction(ctx context.Context, action *schema.Action) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		action.Status = domain.ActionStatusPending
		if err := tx.Create(action).Error; err != nil {
			return fmt.Errorf("failed to create action: %w", err)
		}
		return writeJournal(tx, schema.SubjectTypeAction, action.ID, action.CreatedAt, schema.StatusChangeMeta{
			To: string(domain.ActionStatusPending),
		})
	})
}

// GetActionByID retrieves an action with its evidences
func (s *pgStore) GetActionByID(ctx context.Context, id string) (*schema.Action, error) {
	var action schema.Action
	query := func(db *gorm.DB) error {
		return db.WithContext(ctx).
			Preload("Evidences", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
			Where("id = ?", id).
			First(&action).Error
	}

	err := query(s.db)
	if err == nil {
		return &action, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get action: %w", err)
	}
	if !hasDBResolver(s.db) {
		return nil, nil
	}

	// Replica can lag behind primary; retry on primary before returning nil.
	err = query(s.db.Clauses(dbresolver.Write))
	if err == nil {
		return &action, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to get action: %w", err)
}

// ListPendingActions retrieves pending actions created before the given time
func (s *pgStore) ListPendingActions(ctx context.Context, createdBefore time.Time, limit int) ([]schema.Action, error) {
	var actions []schema.Action
	if err := s.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.ActionStatusPending, createdBefore).
		Order("created_at ASC").
		Limit(limit).
		Find(&actions).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending actions: %w", err)
	}
	return actions, nil
}

// RecordScore writes the single score of an action and moves it to scored
func (s *pgStore) RecordScore(ctx context.Context, input RecordScoreInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		action, err := lockAction(tx, input.Score.ActionID)
		if err != nil {
			return err
		}

		score := input.Score
		score.CreatedAt = input.ScoredAt
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "action_id"}},
			DoNothing: true,
		}).Create(&score)
		if result.Error != nil {
			return fmt.Errorf("failed to create score: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("action %s: %w", action.ID, domain.ErrAlreadyScored)
		}

		return transitionAction(tx, action, domain.ActionStatusScored, map[string]any{
			"policy_version": score.PolicyVersion,
			"scored_at":      input.ScoredAt,
		}, input.ScoredAt, string(score.Decision))
	})
}

// GetScore retrieves the score of an action
func (s *pgStore) GetScore(ctx context.Context, actionID string) (*schema.Score, error) {
	var score schema.Score
	err := s.db.WithContext(ctx).Where("action_id = ?", actionID).First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}
	return &score, nil
}

// RejectAction moves an action to rejected
func (s *pgStore) RejectAction(ctx context.Context, input RejectActionInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		action, err := lockAction(tx, input.ActionID)
		if err != nil {
			return err
		}
		return transitionAction(tx, action, domain.ActionStatusRejected, map[string]any{
			"reject_kind":   input.Kind,
			"reject_reason": input.Reason,
		}, input.RejectedAt, input.Reason)
	})
}

// =============================================================================
// Epoch caps
// =============================================================================

// ReserveEpochCap atomically reserves an amount against the epoch and per-user caps
func (s *pgStore) ReserveEpochCap(ctx context.Context, input ReserveEpochCapInput) (*schema.Reservation, error) {
	if input.DurationSeconds <= 0 {
		return nil, fmt.Errorf("invalid epoch duration: %d", input.DurationSeconds)
	}

	var reservation schema.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Make sure the epoch row exists, then lock it. Every reservation of the key serializes here.
		epoch := schema.Epoch{
			EpochKey:        input.EpochKey,
			StartedAt:       alignEpochStart(input.Now, input.DurationSeconds),
			DurationSeconds: input.DurationSeconds,
			UpdatedAt:       input.Now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "epoch_key"}},
			DoNothing: true,
		}).Create(&epoch).Error; err != nil {
			return fmt.Errorf("failed to create epoch: %w", err)
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("epoch_key = ?", input.EpochKey).
			First(&epoch).Error; err != nil {
			return fmt.Errorf("failed to lock epoch: %w", err)
		}

		// 2. An action reserves at most once
		err := tx.Where("action_id = ?", input.ActionID).First(&reservation).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to get reservation: %w", err)
		}

		// 3. Roll over to a new window once the current one ended
		if !input.Now.Before(epoch.EndsAt()) {
			epoch.Seq++
			epoch.StartedAt = alignEpochStart(input.Now, input.DurationSeconds)
			epoch.DurationSeconds = input.DurationSeconds
			epoch.Minted = decimal.Zero
			if err := tx.Model(&schema.Epoch{}).
				Where("epoch_key = ?", input.EpochKey).
				Updates(map[string]any{
					"seq":              epoch.Seq,
					"started_at":       epoch.StartedAt,
					"duration_seconds": epoch.DurationSeconds,
					"minted":           epoch.Minted,
					"updated_at":       input.Now,
				}).Error; err != nil {
				return fmt.Errorf("failed to roll over epoch: %w", err)
			}
		}

		// 4. Lock the user's total for the current window
		userTotal := schema.EpochUserTotal{
			EpochKey: input.EpochKey,
			Seq:      epoch.Seq,
			UserID:   input.UserID,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "epoch_key"}, {Name: "seq"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&userTotal).Error; err != nil {
			return fmt.Errorf("failed to create epoch user total: %w", err)
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("epoch_key = ? AND seq = ? AND user_id = ?", input.EpochKey, epoch.Seq, input.UserID).
			First(&userTotal).Error; err != nil {
			return fmt.Errorf("failed to lock epoch user total: %w", err)
		}

		// 5. Check both caps
		if epoch.Minted.Add(input.Amount).GreaterThan(input.EpochCap) {
			return &domain.CapExceededError{
				Cap:       domain.CapKindEpoch,
				Limit:     input.EpochCap,
				Current:   epoch.Minted,
				Requested: input.Amount,
			}
		}
		if userTotal.Minted.Add(input.Amount).GreaterThan(input.UserEpochCap) {
			return &domain.CapExceededError{
				Cap:       domain.CapKindUser,
				Limit:     input.UserEpochCap,
				Current:   userTotal.Minted,
				Requested: input.Amount,
			}
		}

		// 6. Increment both totals and record the reservation
		if err := tx.Model(&schema.Epoch{}).
			Where("epoch_key = ?", input.EpochKey).
			Updates(map[string]any{
				"minted":     gorm.Expr("minted + ?", input.Amount),
				"updated_at": input.Now,
			}).Error; err != nil {
			return fmt.Errorf("failed to increment epoch total: %w", err)
		}
		if err := tx.Model(&schema.EpochUserTotal{}).
			Where("epoch_key = ? AND seq = ? AND user_id = ?", input.EpochKey, epoch.Seq, input.UserID).
			Update("minted", gorm.Expr("minted + ?", input.Amount)).Error; err != nil {
			return fmt.Errorf("failed to increment epoch user total: %w", err)
		}

		reservation = schema.Reservation{
			ActionID:  input.ActionID,
			EpochKey:  input.EpochKey,
			Seq:       epoch.Seq,
			UserID:    input.UserID,
			Amount:    input.Amount,
			CreatedAt: input.Now,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ReleaseReservation returns a reservation's amount to both caps once
func (s *pgStore) ReleaseReservation(ctx context.Context, reservationID int64, releasedAt time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return releaseReservation(ctx, tx, reservationID, releasedAt)
	})
}

// releaseReservation locks in the same order as ReserveEpochCap: epoch row first, then the reservation
func releaseReservation(ctx context.Context, tx *gorm.DB, reservationID int64, releasedAt time.Time) error {
	var reservation schema.Reservation
	if err := tx.Where("id = ?", reservationID).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("reservation %d: %w", reservationID, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to get reservation: %w", err)
	}

	var epoch schema.Epoch
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("epoch_key = ?", reservation.EpochKey).
		First(&epoch).Error; err != nil {
		return fmt.Errorf("failed to lock epoch: %w", err)
	}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", reservationID).
		First(&reservation).Error; err != nil {
		return fmt.Errorf("failed to lock reservation: %w", err)
	}
	if reservation.ReleasedAt != nil {
		return nil
	}

	if epoch.Seq == reservation.Seq {
		if err := tx.Model(&schema.Epoch{}).
			Where("epoch_key = ?", reservation.EpochKey).
			Updates(map[string]any{
				"minted":     gorm.Expr("GREATEST(minted - ?, 0)", reservation.Amount),
				"updated_at": releasedAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to decrement epoch total: %w", err)
		}
	} else {
		logger.WarnCtx(ctx, "Releasing reservation from a closed epoch window",
			zap.Int64("reservationID", reservationID),
			zap.String("epochKey", reservation.EpochKey),
			zap.Int64("reservationSeq", reservation.Seq),
			zap.Int64("currentSeq", epoch.Seq))
	}

	if err := tx.Model(&schema.EpochUserTotal{}).
		Where("epoch_key = ? AND seq = ? AND user_id = ?", reservation.EpochKey, reservation.Seq, reservation.UserID).
		Update("minted", gorm.Expr("GREATEST(minted - ?, 0)", reservation.Amount)).Error; err != nil {
		return fmt.Errorf("failed to decrement epoch user total: %w", err)
	}

	if err := tx.Model(&schema.Reservation{}).
		Where("id = ?", reservationID).
		Update("released_at", releasedAt).Error; err != nil {
		return fmt.Errorf("failed to mark reservation released: %w", err)
	}
	return nil
}

// GetEpoch retrieves an epoch row
func (s *pgStore) GetEpoch(ctx context.Context, epochKey string) (*schema.Epoch, error) {
	var epoch schema.Epoch
	err := s.db.WithContext(ctx).Where("epoch_key = ?", epochKey).First(&epoch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get epoch: %w", err)
	}
	return &epoch, nil
}

// GetEpochUserTotal retrieves a user's total within an epoch window
func (s *pgStore) GetEpochUserTotal(ctx context.Context, epochKey string, seq int64, userID string) (*schema.EpochUserTotal, error) {
	var total schema.EpochUserTotal
	err := s.db.WithContext(ctx).
		Where("epoch_key = ? AND seq = ? AND user_id = ?", epochKey, seq, userID).
		First(&total).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get epoch user total: %w", err)
	}
	return &total, nil
}

// GetReservationByActionID retrieves the reservation of an action
func (s *pgStore) GetReservationByActionID(ctx context.Context, actionID string) (*schema.Reservation, error) {
	var reservation schema.Reservation
	err := s.db.WithContext(ctx).Where("action_id = ?", actionID).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return &reservation, nil
}

// =============================================================================
// Nonces
// =============================================================================

// NextNonce issues the next nonce for a user
func (s *pgStore) NextNonce(ctx context.Context, userID string) (int64, error) {
	var issued int64
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO nonces (user_id, last_issued) VALUES (?, 1)
		ON CONFLICT (user_id) DO UPDATE SET last_issued = nonces.last_issued + 1
		RETURNING last_issued`, userID).
		Scan(&issued).Error
	if err != nil {
		return 0, fmt.Errorf("failed to issue nonce: %w", err)
	}
	return issued, nil
}

// ConsumeNonce marks a nonce consumed by consumer
func (s *pgStore) ConsumeNonce(ctx context.Context, input ConsumeNonceInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter schema.Nonce
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", input.UserID).
			First(&counter).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("nonce %d for %s never issued: %w", input.Nonce, input.UserID, domain.ErrNonceStale)
			}
			return fmt.Errorf("failed to lock nonce counter: %w", err)
		}
		if input.Nonce <= 0 || input.Nonce > counter.LastIssued {
			return fmt.Errorf("nonce %d for %s never issued: %w", input.Nonce, input.UserID, domain.ErrNonceStale)
		}

		use := schema.NonceUse{
			UserID:   input.UserID,
			Nonce:    input.Nonce,
			State:    domain.NonceStateConsumed,
			Consumer: input.Consumer,
			UsedAt:   input.ConsumedAt,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "nonce"}},
			DoNothing: true,
		}).Create(&use)
		if result.Error != nil {
			return fmt.Errorf("failed to consume nonce: %w", result.Error)
		}
		if result.RowsAffected == 1 {
			return nil
		}

		var existing schema.NonceUse
		if err := tx.Where("user_id = ? AND nonce = ?", input.UserID, input.Nonce).
			First(&existing).Error; err != nil {
			return fmt.Errorf("failed to get nonce use: %w", err)
		}
		if existing.State == domain.NonceStateRetired {
			return fmt.Errorf("nonce %d for %s retired: %w", input.Nonce, input.UserID, domain.ErrNonceStale)
		}
		if input.Consumer != "" && existing.Consumer == input.Consumer {
			return nil
		}
		return fmt.Errorf("nonce %d for %s: %w", input.Nonce, input.UserID, domain.ErrNonceAlreadyUsed)
	})
}

// RetireNonce marks a nonce permanently unusable
func (s *pgStore) RetireNonce(ctx context.Context, input RetireNonceInput) error {
	return retireNonce(s.db.WithContext(ctx), input)
}

func retireNonce(tx *gorm.DB, input RetireNonceInput) error {
	use := schema.NonceUse{
		UserID: input.UserID,
		Nonce:  input.Nonce,
		State:  domain.NonceStateRetired,
		Reason: input.Reason,
		UsedAt: input.RetiredAt,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "nonce"}},
		DoNothing: true,
	}).Create(&use).Error; err != nil {
		return fmt.Errorf("failed to retire nonce: %w", err)
	}
	return nil
}

// =============================================================================
// Mint requests
// =============================================================================

// CreateMintRequest inserts a collecting mint request, idempotent per action
func (s *pgStore) CreateMintRequest(ctx context.Context, request *schema.MintRequest) (*schema.MintRequest, bool, error) {
	created := false
	var stored schema.MintRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request.Status = domain.MintStatusCollecting
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "action_id"}},
			DoNothing: true,
		}).Create(request)
		if result.Error != nil {
			return fmt.Errorf("failed to create mint request: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			if err := tx.Where("action_id = ?", request.ActionID).First(&stored).Error; err != nil {
				return fmt.Errorf("failed to get existing mint request: %w", err)
			}
			return nil
		}

		created = true
		stored = *request
		return writeJournal(tx, schema.SubjectTypeMintRequest, request.ID, request.CreatedAt, schema.StatusChangeMeta{
			To: string(domain.MintStatusCollecting),
		})
	})
	if err != nil {
		return nil, false, err
	}
	return &stored, created, nil
}

// GetMintRequestByID retrieves a mint request with its signatures
func (s *pgStore) GetMintRequestByID(ctx context.Context, id string) (*schema.MintRequest, error) {
	var request schema.MintRequest
	query := func(db *gorm.DB) error {
		return db.WithContext(ctx).
			Preload("Signatures", func(db *gorm.DB) *gorm.DB { return db.Order("accepted_at ASC, signer_id ASC") }).
			Where("id = ?", id).
			First(&request).Error
	}

	err := query(s.db)
	if err == nil {
		return &request, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get mint request: %w", err)
	}
	if !hasDBResolver(s.db) {
		return nil, nil
	}

	// Replica can lag behind primary; retry on primary before returning nil.
	err = query(s.db.Clauses(dbresolver.Write))
	if err == nil {
		return &request, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to get mint request: %w", err)
}

// GetMintRequestByActionID retrieves the mint request of an action
func (s *pgStore) GetMintRequestByActionID(ctx context.Context, actionID string) (*schema.MintRequest, error) {
	var request schema.MintRequest
	err := s.db.WithContext(ctx).Where("action_id = ?", actionID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mint request: %w", err)
	}
	return &request, nil
}

// ListStaleMintRequests retrieves requests in status not updated since updatedBefore
func (s *pgStore) ListStaleMintRequests(ctx context.Context, status domain.MintStatus, updatedBefore time.Time, limit int) ([]schema.MintRequest, error) {
	var requests []schema.MintRequest
	if err := s.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", status, updatedBefore).
		Order("updated_at ASC").
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list stale mint requests: %w", err)
	}
	return requests, nil
}

// AddMintSignature stores an attester signature under the request's row lock and flips the request
// to threshold_met the first time the count of active attesters' signatures reaches the threshold
func (s *pgStore) AddMintSignature(ctx context.Context, input AddMintSignatureInput) (*AddMintSignatureResult, error) {
	var result AddMintSignatureResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := lockMintRequest(tx, input.MintRequestID)
		if err != nil {
			return err
		}
		if request.Status == domain.MintStatusFailed {
			return fmt.Errorf("mint request %s: %w", request.ID, domain.ErrMintRequestClosed)
		}

		var registered int64
		if err := tx.Model(&schema.Attester{}).
			Where("policy_version = ? AND signer_id = ? AND revoked_at IS NULL", request.PolicyVersion, input.SignerID).
			Count(&registered).Error; err != nil {
			return fmt.Errorf("failed to check attester: %w", err)
		}
		if registered == 0 {
			return fmt.Errorf("signer %s for policy %s: %w", input.SignerID, request.PolicyVersion, domain.ErrAttesterNotRegistered)
		}

		signature := schema.MintSignature{
			MintRequestID: input.MintRequestID,
			SignerID:      input.SignerID,
			Signature:     input.Signature,
			AcceptedAt:    input.AcceptedAt,
		}
		inserted := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "mint_request_id"}, {Name: "signer_id"}},
			DoNothing: true,
		}).Create(&signature)
		if inserted.Error != nil {
			return fmt.Errorf("failed to create mint signature: %w", inserted.Error)
		}
		if inserted.RowsAffected == 0 {
			return fmt.Errorf("signer %s: %w", input.SignerID, domain.ErrDuplicateSigner)
		}

		// Only signatures from attesters that are still active count toward the threshold
		var count int64
		if err := tx.Table("mint_signatures AS s").
			Joins("JOIN attesters a ON a.signer_id = s.signer_id AND a.policy_version = ? AND a.revoked_at IS NULL", request.PolicyVersion).
			Where("s.mint_request_id = ?", request.ID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count mint signatures: %w", err)
		}
		result.Signatures = int(count)

		if request.Status == domain.MintStatusCollecting && result.Signatures >= request.Threshold {
			if err := tx.Model(&schema.MintRequest{}).
				Where("id = ?", request.ID).
				Updates(map[string]any{
					"status":           domain.MintStatusThresholdMet,
					"threshold_met_at": input.AcceptedAt,
					"updated_at":       input.AcceptedAt,
				}).Error; err != nil {
				return fmt.Errorf("failed to update mint request status: %w", err)
			}
			request.Status = domain.MintStatusThresholdMet
			request.ThresholdMetAt = &input.AcceptedAt
			request.UpdatedAt = input.AcceptedAt
			result.ThresholdReached = true

			if err := writeJournal(tx, schema.SubjectTypeMintRequest, request.ID, input.AcceptedAt, schema.StatusChangeMeta{
				From: string(domain.MintStatusCollecting),
				To:   string(domain.MintStatusThresholdMet),
			}); err != nil {
				return err
			}
		}

		result.Request = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// TransitionMintRequest moves a request from one status to the next (compare-and-set).
// Repeating a transition that already happened returns the request unchanged.
func (s *pgStore) TransitionMintRequest(ctx context.Context, input TransitionMintRequestInput) (*schema.MintRequest, error) {
	if !input.From.CanTransitionTo(input.To) {
		return nil, fmt.Errorf("mint request %s %s -> %s: %w", input.ID, input.From, input.To, domain.ErrInvalidTransition)
	}

	var request *schema.MintRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		request, err = lockMintRequest(tx, input.ID)
		if err != nil {
			return err
		}
		if request.Status == input.To {
			return nil
		}
		if request.Status != input.From {
			return fmt.Errorf("mint request %s is %s, not %s: %w", input.ID, request.Status, input.From, domain.ErrInvalidTransition)
		}

		updates := map[string]any{
			"status":     input.To,
			"updated_at": input.At,
		}
		switch input.To {
		case domain.MintStatusThresholdMet:
			updates["threshold_met_at"] = input.At
			request.ThresholdMetAt = &input.At
		case domain.MintStatusSubmitted:
			updates["submitted_at"] = input.At
			request.SubmittedAt = &input.At
		}
		if input.TxHash != nil {
			updates["tx_hash"] = *input.TxHash
			request.TxHash = input.TxHash
		}
		if err := tx.Model(&schema.MintRequest{}).Where("id = ?", input.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update mint request status: %w", err)
		}
		request.Status = input.To
		request.UpdatedAt = input.At

		return writeJournal(tx, schema.SubjectTypeMintRequest, input.ID, input.At, schema.StatusChangeMeta{
			From: string(input.From),
			To:   string(input.To),
		})
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// ConfirmMintRequest marks a request confirmed and its action minted in a single transaction
func (s *pgStore) ConfirmMintRequest(ctx context.Context, input ConfirmMintRequestInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := lockMintRequest(tx, input.ID)
		if err != nil {
			return err
		}
		if request.Status == domain.MintStatusConfirmed {
			return nil
		}
		if !request.Status.CanTransitionTo(domain.MintStatusConfirmed) {
			return fmt.Errorf("mint request %s %s -> %s: %w", input.ID, request.Status, domain.MintStatusConfirmed, domain.ErrInvalidTransition)
		}

		if err := tx.Model(&schema.MintRequest{}).
			Where("id = ?", input.ID).
			Updates(map[string]any{
				"status":     domain.MintStatusConfirmed,
				"tx_hash":    input.TxHash,
				"settled_at": input.ConfirmedAt,
				"updated_at": input.ConfirmedAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to confirm mint request: %w", err)
		}
		if err := writeJournal(tx, schema.SubjectTypeMintRequest, input.ID, input.ConfirmedAt, schema.StatusChangeMeta{
			From: string(request.Status),
			To:   string(domain.MintStatusConfirmed),
		}); err != nil {
			return err
		}

		action, err := lockAction(tx, request.ActionID)
		if err != nil {
			return err
		}
		return transitionAction(tx, action, domain.ActionStatusMinted, map[string]any{
			"minted_at": input.ConfirmedAt,
		}, input.ConfirmedAt, input.TxHash)
	})
}

// FailMintRequest marks a request failed and applies the requested compensations in a single transaction
func (s *pgStore) FailMintRequest(ctx context.Context, input FailMintRequestInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := lockMintRequest(tx, input.ID)
		if err != nil {
			return err
		}
		if request.Status == domain.MintStatusFailed {
			return nil
		}
		if !request.Status.CanTransitionTo(domain.MintStatusFailed) {
			return fmt.Errorf("mint request %s %s -> %s: %w", input.ID, request.Status, domain.MintStatusFailed, domain.ErrInvalidTransition)
		}

		if err := tx.Model(&schema.MintRequest{}).
			Where("id = ?", input.ID).
			Updates(map[string]any{
				"status":         domain.MintStatusFailed,
				"failure_kind":   input.Kind,
				"failure_reason": input.Reason,
				"settled_at":     input.FailedAt,
				"updated_at":     input.FailedAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to fail mint request: %w", err)
		}
		if err := writeJournal(tx, schema.SubjectTypeMintRequest, input.ID, input.FailedAt, schema.StatusChangeMeta{
			From:   string(request.Status),
			To:     string(domain.MintStatusFailed),
			Reason: input.Reason,
		}); err != nil {
			return err
		}

		if input.ReleaseReservation {
			if err := releaseReservation(ctx, tx, request.ReservationID, input.FailedAt); err != nil {
				return err
			}
		}
		if input.RetireNonce {
			if err := retireNonce(tx, RetireNonceInput{
				UserID:    request.UserID,
				Nonce:     request.Nonce,
				Reason:    input.Reason,
				RetiredAt: input.FailedAt,
			}); err != nil {
				return err
			}
		}
		if input.RejectAction {
			action, err := lockAction(tx, request.ActionID)
			if err != nil {
				return err
			}
			if action.Status.CanTransitionTo(domain.ActionStatusRejected) {
				return transitionAction(tx, action, domain.ActionStatusRejected, map[string]any{
					"reject_kind":   input.Kind,
					"reject_reason": input.Reason,
				}, input.FailedAt, input.Reason)
			}
		}
		return nil
	})
}

// GetLedgerSubmission retrieves the ledger submission of a request
func (s *pgStore) GetLedgerSubmission(ctx context.Context, mintRequestID string) (*schema.LedgerSubmission, error) {
	var submission schema.LedgerSubmission
	err := s.db.WithContext(ctx).Where("mint_request_id = ?", mintRequestID).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ledger submission: %w", err)
	}
	return &submission, nil
}

// SaveLedgerSubmission stores a ledger submission if absent and returns the stored row
func (s *pgStore) SaveLedgerSubmission(ctx context.Context, submission *schema.LedgerSubmission) (*schema.LedgerSubmission, error) {
	var stored schema.LedgerSubmission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "mint_request_id"}},
			DoNothing: true,
		}).Create(submission).Error; err != nil {
			return fmt.Errorf("failed to create ledger submission: %w", err)
		}
		if err := tx.Where("mint_request_id = ?", submission.MintRequestID).First(&stored).Error; err != nil {
			return fmt.Errorf("failed to get ledger submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// =============================================================================
// Changes journal
// =============================================================================

// GetChanges retrieves changes with optional filters and pagination
func (s *pgStore) GetChanges(ctx context.Context, filter ChangesQueryFilter) ([]*schema.ChangesJournal, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.ChangesJournal{})

	// Anchor is a cursor - show records after it (ascending order)
	if filter.Anchor != nil {
		query = query.Where(`"cursor" > ?`, *filter.Anchor)
	}
	if len(filter.SubjectTypes) > 0 {
		query = query.Where("subject_type IN ?", filter.SubjectTypes)
	}
	if len(filter.SubjectIDs) > 0 {
		query = query.Where("subject_id IN ?", filter.SubjectIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count changes: %w", err)
	}

	query = query.Order(`"cursor" ASC`)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var changes []schema.ChangesJournal
	if err := query.Find(&changes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query changes: %w", err)
	}

	results := make([]*schema.ChangesJournal, 0, len(changes))
	for i := range changes {
		results = append(results, &changes[i])
	}

	return results, uint64(total), nil //nolint:gosec,G115
}

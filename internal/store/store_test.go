package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/pplp-engine/internal/audit"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// StoreTestSuite provides the interface for running store tests against different implementations
type StoreTestSuite struct {
	Store Store
	// InitDB should be called before each test to initialize the database
	InitDB func(t *testing.T) Store
	// CleanupDB should be called after each test to clean up the database
	CleanupDB func(t *testing.T)
}

// =============================================================================
// Test Data Builders
// =============================================================================

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

const (
	testAttesterA = "0x1111111111111111111111111111111111111111"
	testAttesterB = "0x2222222222222222222222222222222222222222"
	testAttesterC = "0x3333333333333333333333333333333333333333"
)

// createTestPolicy creates a policy version with two attesters and a threshold of 2
func createTestPolicy(t *testing.T, store Store, version string) *schema.Policy {
	t.Helper()
	policy, err := store.CreatePolicy(context.Background(), CreatePolicyInput{
		Version:            version,
		ContentHash:        fmt.Sprintf("0x%064x", len(version)),
		Document:           []byte(fmt.Sprintf(`{"version":%q}`, version)),
		SignatureThreshold: 2,
		Attesters: []AttesterInput{
			{SignerID: testAttesterA, Label: "a"},
			{SignerID: testAttesterB, Label: "b"},
		},
		Actor:     "admin",
		Reason:    "test",
		CreatedAt: testNow,
	})
	require.NoError(t, err)
	return policy
}

// createTestAction creates a pending action with one verified evidence
func createTestAction(t *testing.T, store Store, id, actor string) *schema.Action {
	t.Helper()
	uri := "s3://evidence/" + id
	action := &schema.Action{
		ID:           id,
		PlatformID:   "angel-ai",
		ActionType:   domain.ActionTypeDonation,
		ActorID:      actor,
		Metadata:     []byte(`{"content_length":300,"has_evidence":true,"has_media":false,"amount":500}`),
		Impact:       []byte(`{"beneficiaries":3,"outcome":"positive","scope":"community"}`),
		Integrity:    []byte(`{"source_verified":true,"anti_sybil_score":0.9}`),
		EvidenceHash: "0x" + fmt.Sprintf("%064d", 1),
		ActionHash:   "0x" + fmt.Sprintf("%064d", 2),
		CreatedAt:    testNow,
		Evidences: []schema.Evidence{{
			EvidenceType: "receipt",
			ContentHash:  fmt.Sprintf("%064d", 3),
			URI:          &uri,
			Verified:     true,
		}},
	}
	require.NoError(t, store.CreateAction(context.Background(), action))
	return action
}

// buildTestScore builds a passing score for an action
func buildTestScore(actionID, version string) schema.Score {
	return schema.Score{
		ActionID:      actionID,
		PillarS:       60,
		PillarT:       56,
		PillarH:       40,
		PillarC:       70,
		PillarU:       45,
		Quality:       decimal.RequireFromString("1.74"),
		Impact:        decimal.RequireFromString("2.25"),
		Integrity:     decimal.RequireFromString("0.9"),
		LightScore:    54.2,
		Decision:      domain.DecisionPass,
		Reward:        decimal.RequireFromString("352.35"),
		PolicyVersion: version,
		Formula:       domain.RewardFormulaPPLPv1,
	}
}

// createTestMintRequest scores an action, reserves its amount and opens a mint request for it
func createTestMintRequest(t *testing.T, store Store, actionID, actor, version string) *schema.MintRequest {
	t.Helper()
	ctx := context.Background()

	createTestAction(t, store, actionID, actor)
	require.NoError(t, store.RecordScore(ctx, RecordScoreInput{Score: buildTestScore(actionID, version), ScoredAt: testNow}))

	reservation, err := store.ReserveEpochCap(ctx, ReserveEpochCapInput{
		EpochKey:        "test-" + version,
		DurationSeconds: 86400,
		UserID:          actor,
		ActionID:        actionID,
		Amount:          decimal.RequireFromString("352.35"),
		EpochCap:        decimal.NewFromInt(1_000_000),
		UserEpochCap:    decimal.NewFromInt(10_000),
		Now:             testNow,
	})
	require.NoError(t, err)

	nonce, err := store.NextNonce(ctx, actor)
	require.NoError(t, err)

	request, created, err := store.CreateMintRequest(ctx, &schema.MintRequest{
		ID:            "mr-" + actionID,
		ActionID:      actionID,
		UserID:        actor,
		Recipient:     "0x4444444444444444444444444444444444444444",
		Amount:        decimal.RequireFromString("352.35"),
		AmountUnits:   decimal.RequireFromString("352350000000000000000"),
		Nonce:         nonce,
		ActionHash:    "0x" + fmt.Sprintf("%064d", 2),
		EvidenceHash:  "0x" + fmt.Sprintf("%064d", 1),
		PayloadHash:   "0x" + fmt.Sprintf("%064d", 4),
		PolicyVersion: version,
		Threshold:     2,
		ReservationID: reservation.ID,
		CreatedAt:     testNow,
	})
	require.NoError(t, err)
	require.True(t, created)
	return request
}

// =============================================================================
// Policies
// =============================================================================

func testPolicies(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create policy stores attesters and audit rows", func(t *testing.T) {
		policy := createTestPolicy(t, store, "1.0.0")
		assert.NotZero(t, policy.ID)
		assert.False(t, policy.IsActive)

		attesters, err := store.ListAttesters(ctx, "1.0.0", true)
		require.NoError(t, err)
		assert.Len(t, attesters, 2)

		changes, total, err := store.ListPolicyChanges(ctx, PolicyChangesFilter{PolicyVersion: "1.0.0"})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		assert.Equal(t, domain.PolicyChangeCreate, changes[0].ChangeType)
		assert.Equal(t, domain.PolicyChangeAttesterAdd, changes[1].ChangeType)
	})

	t.Run("duplicate version is rejected", func(t *testing.T) {
		createTestPolicy(t, store, "1.1.0")
		_, err := store.CreatePolicy(ctx, CreatePolicyInput{
			Version:            "1.1.0",
			ContentHash:        "0xabc",
			Document:           []byte(`{}`),
			SignatureThreshold: 1,
			Actor:              "admin",
			CreatedAt:          testNow,
		})
		assert.ErrorIs(t, err, domain.ErrPolicyExists)
	})

	t.Run("activation keeps exactly one active policy", func(t *testing.T) {
		createTestPolicy(t, store, "2.0.0")
		createTestPolicy(t, store, "2.1.0")

		active, err := store.GetActivePolicy(ctx)
		require.NoError(t, err)
		assert.Nil(t, active)

		_, err = store.ActivatePolicy(ctx, ActivatePolicyInput{Version: "2.0.0", Actor: "admin", ActivatedAt: testNow})
		require.NoError(t, err)
		activated, err := store.ActivatePolicy(ctx, ActivatePolicyInput{Version: "2.1.0", Actor: "admin", Reason: "rollout", ActivatedAt: testNow.Add(time.Hour)})
		require.NoError(t, err)
		assert.True(t, activated.IsActive)

		active, err = store.GetActivePolicy(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, "2.1.0", active.Version)

		old, err := store.GetPolicyByVersion(ctx, "2.0.0")
		require.NoError(t, err)
		assert.False(t, old.IsActive)

		changes, _, err := store.ListPolicyChanges(ctx, PolicyChangesFilter{
			ChangeTypes: []domain.PolicyChangeType{domain.PolicyChangeDeactivate},
		})
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, "2.0.0", changes[0].PolicyVersion)
	})

	t.Run("activating an unknown version fails", func(t *testing.T) {
		_, err := store.ActivatePolicy(ctx, ActivatePolicyInput{Version: "9.9.9", Actor: "admin", ActivatedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("register records the external reference once", func(t *testing.T) {
		createTestPolicy(t, store, "3.0.0")
		policy, err := store.RegisterPolicy(ctx, RegisterPolicyInput{Version: "3.0.0", ExternalRef: "0xtx", Actor: "admin", RegisteredAt: testNow})
		require.NoError(t, err)
		require.NotNil(t, policy.ExternalRef)
		assert.Equal(t, "0xtx", *policy.ExternalRef)

		_, err = store.RegisterPolicy(ctx, RegisterPolicyInput{Version: "3.0.0", ExternalRef: "0xtx", Actor: "admin", RegisteredAt: testNow})
		require.NoError(t, err)

		_, total, err := store.ListPolicyChanges(ctx, PolicyChangesFilter{
			PolicyVersion: "3.0.0",
			ChangeTypes:   []domain.PolicyChangeType{domain.PolicyChangeRegister},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
	})

	t.Run("audit rows form a valid hash chain", func(t *testing.T) {
		changes, _, err := store.ListPolicyChanges(ctx, PolicyChangesFilter{})
		require.NoError(t, err)
		require.NotEmpty(t, changes)

		result := audit.VerifyChain(changes)
		assert.True(t, result.Valid)
		assert.Equal(t, len(changes), result.Checked)
	})

	t.Run("unstreamed changes are marked", func(t *testing.T) {
		pending, err := store.GetUnstreamedPolicyChanges(ctx, 100)
		require.NoError(t, err)
		require.NotEmpty(t, pending)

		require.NoError(t, store.MarkPolicyChangeStreamFailed(ctx, pending[0].ID, "broker down"))
		require.NoError(t, store.MarkPolicyChangeStreamed(ctx, pending[0].ID, testNow))

		after, err := store.GetUnstreamedPolicyChanges(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, after, len(pending)-1)
	})
}

// =============================================================================
// Attesters
// =============================================================================

func testAttesters(t *testing.T, store Store) {
	ctx := context.Background()
	createTestPolicy(t, store, "1.0.0")

	t.Run("add, revoke and re-add an attester", func(t *testing.T) {
		attester, err := store.AddAttester(ctx, AddAttesterInput{
			PolicyVersion: "1.0.0", SignerID: testAttesterC, Label: "c", Actor: "admin", AddedAt: testNow,
		})
		require.NoError(t, err)
		assert.True(t, attester.Active())

		_, err = store.AddAttester(ctx, AddAttesterInput{
			PolicyVersion: "1.0.0", SignerID: testAttesterC, Actor: "admin", AddedAt: testNow,
		})
		assert.ErrorIs(t, err, domain.ErrAttesterExists)

		require.NoError(t, store.RevokeAttester(ctx, RevokeAttesterInput{
			PolicyVersion: "1.0.0", SignerID: testAttesterC, Actor: "admin", RevokedAt: testNow,
		}))
		err = store.RevokeAttester(ctx, RevokeAttesterInput{
			PolicyVersion: "1.0.0", SignerID: testAttesterC, Actor: "admin", RevokedAt: testNow,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		active, err := store.ListAttesters(ctx, "1.0.0", true)
		require.NoError(t, err)
		assert.Len(t, active, 2)
		all, err := store.ListAttesters(ctx, "1.0.0", false)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		attester, err = store.AddAttester(ctx, AddAttesterInput{
			PolicyVersion: "1.0.0", SignerID: testAttesterC, Label: "c2", Actor: "admin", AddedAt: testNow,
		})
		require.NoError(t, err)
		assert.True(t, attester.Active())
		assert.Equal(t, "c2", attester.Label)
	})

	t.Run("add attester to unknown policy fails", func(t *testing.T) {
		_, err := store.AddAttester(ctx, AddAttesterInput{
			PolicyVersion: "7.0.0", SignerID: testAttesterA, Actor: "admin", AddedAt: testNow,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("threshold change is audited", func(t *testing.T) {
		require.NoError(t, store.SetSignatureThreshold(ctx, SetSignatureThresholdInput{
			PolicyVersion: "1.0.0", Threshold: 3, Actor: "admin", ChangedAt: testNow,
		}))
		policy, err := store.GetPolicyByVersion(ctx, "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, 3, policy.SignatureThreshold)

		changes, _, err := store.ListPolicyChanges(ctx, PolicyChangesFilter{
			PolicyVersion: "1.0.0",
			ChangeTypes:   []domain.PolicyChangeType{domain.PolicyChangeThresholdChange},
		})
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, "2", changes[0].OldValue)
		assert.Equal(t, "3", changes[0].NewValue)
	})
}

// =============================================================================
// Actions
// =============================================================================

func testActions(t *testing.T, store Store) {
	ctx := context.Background()
	createTestPolicy(t, store, "1.0.0")

	t.Run("create action stores evidences and journal", func(t *testing.T) {
		createTestAction(t, store, "act-1", "user-1")

		action, err := store.GetActionByID(ctx, "act-1")
		require.NoError(t, err)
		require.NotNil(t, action)
		assert.Equal(t, domain.ActionStatusPending, action.Status)
		require.Len(t, action.Evidences, 1)
		assert.True(t, action.Evidences[0].Verified)
		assert.Equal(t, "user-1", action.Recipient())

		changes, total, err := store.GetChanges(ctx, ChangesQueryFilter{
			SubjectTypes: []schema.SubjectType{schema.SubjectTypeAction},
			SubjectIDs:   []string{"act-1"},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		assert.Equal(t, "act-1", changes[0].SubjectID)
	})

	t.Run("get unknown action returns nil", func(t *testing.T) {
		action, err := store.GetActionByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, action)
	})

	t.Run("score is written exactly once", func(t *testing.T) {
		createTestAction(t, store, "act-2", "user-1")
		require.NoError(t, store.RecordScore(ctx, RecordScoreInput{Score: buildTestScore("act-2", "1.0.0"), ScoredAt: testNow}))

		err := store.RecordScore(ctx, RecordScoreInput{Score: buildTestScore("act-2", "1.0.0"), ScoredAt: testNow})
		assert.ErrorIs(t, err, domain.ErrAlreadyScored)

		score, err := store.GetScore(ctx, "act-2")
		require.NoError(t, err)
		require.NotNil(t, score)
		assert.True(t, decimal.RequireFromString("352.35").Equal(score.Reward))
		assert.True(t, decimal.RequireFromString("1.74").Equal(score.Quality))

		action, err := store.GetActionByID(ctx, "act-2")
		require.NoError(t, err)
		assert.Equal(t, domain.ActionStatusScored, action.Status)
		require.NotNil(t, action.PolicyVersion)
		assert.Equal(t, "1.0.0", *action.PolicyVersion)
	})

	t.Run("failing score still moves the action to scored", func(t *testing.T) {
		createTestAction(t, store, "act-3", "user-1")
		score := buildTestScore("act-3", "1.0.0")
		score.Decision = domain.DecisionFail
		score.Reward = decimal.Zero
		require.NoError(t, store.RecordScore(ctx, RecordScoreInput{Score: score, ScoredAt: testNow}))

		action, err := store.GetActionByID(ctx, "act-3")
		require.NoError(t, err)
		assert.Equal(t, domain.ActionStatusScored, action.Status)
	})

	t.Run("rejected actions cannot be scored or rejected again", func(t *testing.T) {
		createTestAction(t, store, "act-4", "user-1")
		require.NoError(t, store.RejectAction(ctx, RejectActionInput{
			ActionID: "act-4", Kind: domain.ErrorKindValidation, Reason: "evidence required but missing", RejectedAt: testNow,
		}))

		err := store.RecordScore(ctx, RecordScoreInput{Score: buildTestScore("act-4", "1.0.0"), ScoredAt: testNow})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		score, err := store.GetScore(ctx, "act-4")
		require.NoError(t, err)
		assert.Nil(t, score)

		err = store.RejectAction(ctx, RejectActionInput{ActionID: "act-4", Kind: domain.ErrorKindValidation, RejectedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		action, err := store.GetActionByID(ctx, "act-4")
		require.NoError(t, err)
		require.NotNil(t, action.RejectKind)
		assert.Equal(t, domain.ErrorKindValidation, *action.RejectKind)
	})

	t.Run("scoring an unknown action fails", func(t *testing.T) {
		err := store.RecordScore(ctx, RecordScoreInput{Score: buildTestScore("missing", "1.0.0"), ScoredAt: testNow})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list pending actions", func(t *testing.T) {
		pending, err := store.ListPendingActions(ctx, testNow.Add(time.Minute), 10)
		require.NoError(t, err)
		ids := make([]string, 0, len(pending))
		for _, a := range pending {
			ids = append(ids, a.ID)
		}
		assert.Contains(t, ids, "act-1")
		assert.NotContains(t, ids, "act-2")
	})
}

// =============================================================================
// Epoch caps
// =============================================================================

func testEpochCaps(t *testing.T, store Store) {
	ctx := context.Background()

	reserve := func(key, user, actionID string, amount int64, now time.Time) (*schema.Reservation, error) {
		return store.ReserveEpochCap(ctx, ReserveEpochCapInput{
			EpochKey:        key,
			DurationSeconds: 3600,
			UserID:          user,
			ActionID:        actionID,
			Amount:          decimal.NewFromInt(amount),
			EpochCap:        decimal.NewFromInt(1000),
			UserEpochCap:    decimal.NewFromInt(300),
			Now:             now,
		})
	}

	t.Run("reservations accumulate up to the caps", func(t *testing.T) {
		_, err := reserve("caps", "u1", "a1", 200, testNow)
		require.NoError(t, err)
		_, err = reserve("caps", "u1", "a2", 100, testNow)
		require.NoError(t, err)

		_, err = reserve("caps", "u1", "a3", 1, testNow)
		var capErr *domain.CapExceededError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, domain.CapKindUser, capErr.Cap)
		assert.ErrorIs(t, err, domain.ErrCapExceeded)

		epoch, err := store.GetEpoch(ctx, "caps")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(300).Equal(epoch.Minted))
		assert.Equal(t, testNow.Truncate(time.Hour), epoch.StartedAt.UTC())
	})

	t.Run("epoch cap applies across users", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			_, err := reserve("global", fmt.Sprintf("user-%d", i), fmt.Sprintf("g%d", i), 250, testNow)
			require.NoError(t, err)
		}
		_, err := reserve("global", "user-9", "g9", 1, testNow)
		var capErr *domain.CapExceededError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, domain.CapKindEpoch, capErr.Cap)
		assert.True(t, decimal.NewFromInt(1000).Equal(capErr.Current))
	})

	t.Run("reservation is idempotent per action", func(t *testing.T) {
		first, err := reserve("idem", "u1", "same", 50, testNow)
		require.NoError(t, err)
		second, err := reserve("idem", "u1", "same", 50, testNow)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		epoch, err := store.GetEpoch(ctx, "idem")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(50).Equal(epoch.Minted))
	})

	t.Run("epoch rolls over after its duration", func(t *testing.T) {
		_, err := reserve("roll", "u1", "r1", 300, testNow)
		require.NoError(t, err)

		next, err := reserve("roll", "u1", "r2", 300, testNow.Add(90*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(1), next.Seq)

		epoch, err := store.GetEpoch(ctx, "roll")
		require.NoError(t, err)
		assert.Equal(t, int64(1), epoch.Seq)
		assert.Equal(t, testNow.Add(time.Hour), epoch.StartedAt.UTC())
		assert.True(t, decimal.NewFromInt(300).Equal(epoch.Minted))
	})

	t.Run("release returns the amount once", func(t *testing.T) {
		reservation, err := reserve("release", "u1", "x1", 300, testNow)
		require.NoError(t, err)

		require.NoError(t, store.ReleaseReservation(ctx, reservation.ID, testNow))
		require.NoError(t, store.ReleaseReservation(ctx, reservation.ID, testNow))

		epoch, err := store.GetEpoch(ctx, "release")
		require.NoError(t, err)
		assert.True(t, epoch.Minted.IsZero())
		total, err := store.GetEpochUserTotal(ctx, "release", 0, "u1")
		require.NoError(t, err)
		assert.True(t, total.Minted.IsZero())

		_, err = reserve("release", "u1", "x2", 300, testNow)
		require.NoError(t, err)
	})

	t.Run("unknown epoch returns nil", func(t *testing.T) {
		epoch, err := store.GetEpoch(ctx, "never")
		require.NoError(t, err)
		assert.Nil(t, epoch)
	})
}

// =============================================================================
// Nonces
// =============================================================================

func testNonces(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("nonces are issued strictly increasing from 1", func(t *testing.T) {
		for want := int64(1); want <= 3; want++ {
			got, err := store.NextNonce(ctx, "nonce-user")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
		other, err := store.NextNonce(ctx, "other-user")
		require.NoError(t, err)
		assert.Equal(t, int64(1), other)
	})

	t.Run("consume validates issuance and replay", func(t *testing.T) {
		user := "consume-user"
		issued, err := store.NextNonce(ctx, user)
		require.NoError(t, err)

		err = store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: user, Nonce: issued + 1, Consumer: "mr-1", ConsumedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrNonceStale)
		err = store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: user, Nonce: 0, Consumer: "mr-1", ConsumedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrNonceStale)
		err = store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: "nobody", Nonce: 1, Consumer: "mr-1", ConsumedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrNonceStale)

		require.NoError(t, store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: user, Nonce: issued, Consumer: "mr-1", ConsumedAt: testNow}))
		// The same consumer retrying is not a replay
		require.NoError(t, store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: user, Nonce: issued, Consumer: "mr-1", ConsumedAt: testNow}))

		err = store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: user, Nonce: issued, Consumer: "mr-2", ConsumedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrNonceAlreadyUsed)
		err = store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: user, Nonce: issued, ConsumedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrNonceAlreadyUsed)
	})

	t.Run("retired nonces are stale", func(t *testing.T) {
		user := "retire-user"
		issued, err := store.NextNonce(ctx, user)
		require.NoError(t, err)

		require.NoError(t, store.RetireNonce(ctx, RetireNonceInput{UserID: user, Nonce: issued, Reason: "request failed", RetiredAt: testNow}))
		err = store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: user, Nonce: issued, Consumer: "mr-1", ConsumedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrNonceStale)

		next, err := store.NextNonce(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, issued+1, next)
	})

	t.Run("retiring a consumed nonce keeps it consumed", func(t *testing.T) {
		user := "consumed-retire-user"
		issued, err := store.NextNonce(ctx, user)
		require.NoError(t, err)

		require.NoError(t, store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: user, Nonce: issued, Consumer: "mr-1", ConsumedAt: testNow}))
		require.NoError(t, store.RetireNonce(ctx, RetireNonceInput{UserID: user, Nonce: issued, Reason: "ledger rejected", RetiredAt: testNow}))

		err = store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: user, Nonce: issued, ConsumedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrNonceAlreadyUsed)
		err = store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: user, Nonce: issued, Consumer: "mr-2", ConsumedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrNonceAlreadyUsed)
	})
}

// =============================================================================
// Mint requests
// =============================================================================

func testMintRequests(t *testing.T, store Store) {
	ctx := context.Background()
	createTestPolicy(t, store, "1.0.0")

	t.Run("create is idempotent per action", func(t *testing.T) {
		request := createTestMintRequest(t, store, "m-act-1", "m-user", "1.0.0")
		assert.Equal(t, domain.MintStatusCollecting, request.Status)

		again, created, err := store.CreateMintRequest(ctx, &schema.MintRequest{
			ID:            "other-id",
			ActionID:      "m-act-1",
			UserID:        "m-user",
			Recipient:     request.Recipient,
			Amount:        request.Amount,
			AmountUnits:   request.AmountUnits,
			Nonce:         99,
			ActionHash:    request.ActionHash,
			EvidenceHash:  request.EvidenceHash,
			PayloadHash:   request.PayloadHash,
			PolicyVersion: "1.0.0",
			Threshold:     2,
			ReservationID: request.ReservationID,
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, request.ID, again.ID)
	})

	t.Run("threshold is reached exactly once", func(t *testing.T) {
		request := createTestMintRequest(t, store, "m-act-2", "m-user", "1.0.0")

		res, err := store.AddMintSignature(ctx, AddMintSignatureInput{MintRequestID: request.ID, SignerID: testAttesterA, Signature: "0xsig-a", AcceptedAt: testNow})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Signatures)
		assert.False(t, res.ThresholdReached)
		assert.Equal(t, domain.MintStatusCollecting, res.Request.Status)

		_, err = store.AddMintSignature(ctx, AddMintSignatureInput{MintRequestID: request.ID, SignerID: testAttesterA, Signature: "0xsig-a", AcceptedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrDuplicateSigner)

		_, err = store.AddMintSignature(ctx, AddMintSignatureInput{MintRequestID: request.ID, SignerID: testAttesterC, Signature: "0xsig-c", AcceptedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrAttesterNotRegistered)

		res, err = store.AddMintSignature(ctx, AddMintSignatureInput{MintRequestID: request.ID, SignerID: testAttesterB, Signature: "0xsig-b", AcceptedAt: testNow})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Signatures)
		assert.True(t, res.ThresholdReached)
		assert.Equal(t, domain.MintStatusThresholdMet, res.Request.Status)

		// A late signature is stored without re-triggering
		_, err = store.AddAttester(ctx, AddAttesterInput{PolicyVersion: "1.0.0", SignerID: testAttesterC, Actor: "admin", AddedAt: testNow})
		require.NoError(t, err)
		res, err = store.AddMintSignature(ctx, AddMintSignatureInput{MintRequestID: request.ID, SignerID: testAttesterC, Signature: "0xsig-c", AcceptedAt: testNow})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Signatures)
		assert.False(t, res.ThresholdReached)

		stored, err := store.GetMintRequestByID(ctx, request.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Signatures, 3)
		assert.Equal(t, domain.MintStatusThresholdMet, stored.Status)
	})

	t.Run("revoked attesters do not count", func(t *testing.T) {
		createTestPolicy(t, store, "1.5.0")
		request := createTestMintRequest(t, store, "m-act-3", "m-user", "1.5.0")

		_, err := store.AddMintSignature(ctx, AddMintSignatureInput{MintRequestID: request.ID, SignerID: testAttesterA, Signature: "0xsig-a", AcceptedAt: testNow})
		require.NoError(t, err)
		require.NoError(t, store.RevokeAttester(ctx, RevokeAttesterInput{PolicyVersion: "1.5.0", SignerID: testAttesterA, Actor: "admin", RevokedAt: testNow}))

		res, err := store.AddMintSignature(ctx, AddMintSignatureInput{MintRequestID: request.ID, SignerID: testAttesterB, Signature: "0xsig-b", AcceptedAt: testNow})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Signatures)
		assert.False(t, res.ThresholdReached)
	})

	t.Run("settlement confirms request and mints action", func(t *testing.T) {
		request := createTestMintRequest(t, store, "m-act-4", "m-user", "1.0.0")
		_, err := store.TransitionMintRequest(ctx, TransitionMintRequestInput{
			ID: request.ID, From: domain.MintStatusCollecting, To: domain.MintStatusThresholdMet, At: testNow,
		})
		require.NoError(t, err)

		txHash := "0xfeed"
		submitted, err := store.TransitionMintRequest(ctx, TransitionMintRequestInput{
			ID: request.ID, From: domain.MintStatusThresholdMet, To: domain.MintStatusSubmitted, TxHash: &txHash, At: testNow,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.MintStatusSubmitted, submitted.Status)

		// Repeating the transition is a no-op
		_, err = store.TransitionMintRequest(ctx, TransitionMintRequestInput{
			ID: request.ID, From: domain.MintStatusThresholdMet, To: domain.MintStatusSubmitted, TxHash: &txHash, At: testNow,
		})
		require.NoError(t, err)

		_, err = store.TransitionMintRequest(ctx, TransitionMintRequestInput{
			ID: request.ID, From: domain.MintStatusSubmitted, To: domain.MintStatusCollecting, At: testNow,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		require.NoError(t, store.ConfirmMintRequest(ctx, ConfirmMintRequestInput{ID: request.ID, TxHash: txHash, ConfirmedAt: testNow}))
		require.NoError(t, store.ConfirmMintRequest(ctx, ConfirmMintRequestInput{ID: request.ID, TxHash: txHash, ConfirmedAt: testNow}))

		action, err := store.GetActionByID(ctx, "m-act-4")
		require.NoError(t, err)
		assert.Equal(t, domain.ActionStatusMinted, action.Status)

		err = store.FailMintRequest(ctx, FailMintRequestInput{ID: request.ID, Kind: domain.ErrorKindLedger, FailedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("semantic failure compensates", func(t *testing.T) {
		request := createTestMintRequest(t, store, "m-act-5", "comp-user", "1.0.0")
		require.NoError(t, store.FailMintRequest(ctx, FailMintRequestInput{
			ID:                 request.ID,
			Kind:               domain.ErrorKindLedger,
			Reason:             "allocation exceeded",
			ReleaseReservation: true,
			RetireNonce:        true,
			RejectAction:       true,
			FailedAt:           testNow,
		}))

		stored, err := store.GetMintRequestByID(ctx, request.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MintStatusFailed, stored.Status)
		require.NotNil(t, stored.FailureKind)
		assert.Equal(t, domain.ErrorKindLedger, *stored.FailureKind)

		action, err := store.GetActionByID(ctx, "m-act-5")
		require.NoError(t, err)
		assert.Equal(t, domain.ActionStatusRejected, action.Status)

		reservation, err := store.GetReservationByActionID(ctx, "m-act-5")
		require.NoError(t, err)
		assert.NotNil(t, reservation.ReleasedAt)

		err = store.ConsumeNonce(ctx, ConsumeNonceInput{UserID: "comp-user", Nonce: request.Nonce, Consumer: request.ID, ConsumedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrNonceStale)

		_, err = store.AddMintSignature(ctx, AddMintSignatureInput{MintRequestID: request.ID, SignerID: testAttesterA, Signature: "0xsig", AcceptedAt: testNow})
		assert.ErrorIs(t, err, domain.ErrMintRequestClosed)
	})

	t.Run("ledger submissions are stored once", func(t *testing.T) {
		request := createTestMintRequest(t, store, "m-act-6", "m-user", "1.0.0")
		first, err := store.SaveLedgerSubmission(ctx, &schema.LedgerSubmission{
			MintRequestID: request.ID, TxHash: "0x01", RawTx: "0xraw1", SenderNonce: 7, SubmittedAt: testNow,
		})
		require.NoError(t, err)
		second, err := store.SaveLedgerSubmission(ctx, &schema.LedgerSubmission{
			MintRequestID: request.ID, TxHash: "0x02", RawTx: "0xraw2", SenderNonce: 8, SubmittedAt: testNow,
		})
		require.NoError(t, err)
		assert.Equal(t, first.TxHash, second.TxHash)

		stored, err := store.GetLedgerSubmission(ctx, request.ID)
		require.NoError(t, err)
		assert.Equal(t, "0x01", stored.TxHash)
	})

	t.Run("stale requests are listed by status", func(t *testing.T) {
		stale, err := store.ListStaleMintRequests(ctx, domain.MintStatusCollecting, testNow.Add(time.Hour), 100)
		require.NoError(t, err)
		for _, r := range stale {
			assert.Equal(t, domain.MintStatusCollecting, r.Status)
		}
	})
}

// =============================================================================
// Changes journal
// =============================================================================

func testGetChanges(t *testing.T, store Store) {
	ctx := context.Background()
	createTestPolicy(t, store, "1.0.0")
	createTestMintRequest(t, store, "j-act-1", "j-user", "1.0.0")

	t.Run("journal records every transition in order", func(t *testing.T) {
		changes, total, err := store.GetChanges(ctx, ChangesQueryFilter{SubjectIDs: []string{"j-act-1", "mr-j-act-1"}})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		assert.Equal(t, schema.SubjectTypeAction, changes[0].SubjectType)
		assert.Equal(t, schema.SubjectTypeAction, changes[1].SubjectType)
		assert.Equal(t, schema.SubjectTypeMintRequest, changes[2].SubjectType)
	})

	t.Run("anchor pages forward", func(t *testing.T) {
		all, _, err := store.GetChanges(ctx, ChangesQueryFilter{})
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(all), 2)

		anchor := all[0].Cursor
		page, _, err := store.GetChanges(ctx, ChangesQueryFilter{Anchor: &anchor, Limit: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, all[1].Cursor, page[0].Cursor)
	})
}

// RunStoreTests runs all store tests against the given implementation
func RunStoreTests(t *testing.T, newStore func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Policies", testPolicies},
		{"Attesters", testAttesters},
		{"Actions", testActions},
		{"EpochCaps", testEpochCaps},
		{"Nonces", testNonces},
		{"MintRequests", testMintRequests},
		{"GetChanges", testGetChanges},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

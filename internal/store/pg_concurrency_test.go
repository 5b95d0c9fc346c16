package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// TestReserveEpochCapConcurrent runs outside the per-test transaction so that the row locks
// are contended by real concurrent connections
func TestReserveEpochCapConcurrent(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	const (
		epochKey = "concurrent-reserve"
		workers  = 50
	)
	store := NewPGStore(testDB)
	ctx := context.Background()

	t.Cleanup(func() {
		testDB.Where("epoch_key = ?", epochKey).Delete(&schema.Reservation{})
		testDB.Where("epoch_key = ?", epochKey).Delete(&schema.EpochUserTotal{})
		testDB.Where("epoch_key = ?", epochKey).Delete(&schema.Epoch{})
	})

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
		failures []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.ReserveEpochCap(ctx, ReserveEpochCapInput{
				EpochKey:        epochKey,
				DurationSeconds: 86400,
				UserID:          fmt.Sprintf("user-%d", i),
				ActionID:        fmt.Sprintf("%s-%d", epochKey, i),
				Amount:          decimal.NewFromInt(100),
				EpochCap:        decimal.NewFromInt(4000),
				UserEpochCap:    decimal.NewFromInt(1000),
				Now:             testNow,
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, domain.ErrCapExceeded):
				rejected++
			default:
				failures = append(failures, err)
			}
		}(i)
	}
	wg.Wait()

	require.Empty(t, failures)
	assert.Equal(t, 40, accepted)
	assert.Equal(t, 10, rejected)

	epoch, err := store.GetEpoch(ctx, epochKey)
	require.NoError(t, err)
	require.NotNil(t, epoch)
	assert.True(t, decimal.NewFromInt(4000).Equal(epoch.Minted), "minted %s", epoch.Minted)
}

// runConcurrently starts n callers together and collects their errors by index
func runConcurrently(n int, fn func(i int) error) []error {
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
	return errs
}

// seedMintRequest commits a policy and a collecting mint request outside any test transaction
// and removes every row it produced when the test ends
func seedMintRequest(t *testing.T, version, actionID, user string) *schema.MintRequest {
	t.Helper()
	requestID := "mr-" + actionID
	t.Cleanup(func() {
		for _, stmt := range []struct {
			query string
			args  []any
		}{
			{"DELETE FROM mint_requests WHERE action_id = ?", []any{actionID}},
			{"DELETE FROM reservations WHERE action_id = ?", []any{actionID}},
			{"DELETE FROM epoch_user_totals WHERE epoch_key = ?", []any{"test-" + version}},
			{"DELETE FROM epochs WHERE epoch_key = ?", []any{"test-" + version}},
			{"DELETE FROM actions WHERE id = ?", []any{actionID}},
			{"DELETE FROM changes_journal WHERE subject_id IN ?", []any{[]string{actionID, requestID, version}}},
			{"DELETE FROM nonce_uses WHERE user_id = ?", []any{user}},
			{"DELETE FROM nonces WHERE user_id = ?", []any{user}},
			{"DELETE FROM attesters WHERE policy_version = ?", []any{version}},
			{"DELETE FROM policy_changes WHERE policy_version = ?", []any{version}},
			{"DELETE FROM policies WHERE version = ?", []any{version}},
		} {
			if err := testDB.Exec(stmt.query, stmt.args...).Error; err != nil {
				t.Logf("cleanup %q: %v", stmt.query, err)
			}
		}
	})

	store := NewPGStore(testDB)
	createTestPolicy(t, store, version)
	return createTestMintRequest(t, store, actionID, user, version)
}

func TestAddMintSignatureConcurrentSameSigner(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	request := seedMintRequest(t, "8.1.0", "concurrent-sign-dup", "concurrent-sign-user")
	store := NewPGStore(testDB)
	ctx := context.Background()

	errs := runConcurrently(2, func(int) error {
		_, err := store.AddMintSignature(ctx, AddMintSignatureInput{
			MintRequestID: request.ID,
			SignerID:      testAttesterA,
			Signature:     "0xsig-a",
			AcceptedAt:    testNow,
		})
		return err
	})

	var accepted, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, domain.ErrDuplicateSigner):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, duplicates)

	stored, err := store.GetMintRequestByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Signatures, 1)
	assert.Equal(t, domain.MintStatusCollecting, stored.Status)
}

func TestAddMintSignatureThresholdReachedOnce(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	store := NewPGStore(testDB)
	ctx := context.Background()

	t.Run("reverse signer order", func(t *testing.T) {
		request := seedMintRequest(t, "8.2.0", "reverse-sign", "reverse-sign-user")

		first, err := store.AddMintSignature(ctx, AddMintSignatureInput{MintRequestID: request.ID, SignerID: testAttesterB, Signature: "0xsig-b", AcceptedAt: testNow})
		require.NoError(t, err)
		assert.False(t, first.ThresholdReached)

		second, err := store.AddMintSignature(ctx, AddMintSignatureInput{MintRequestID: request.ID, SignerID: testAttesterA, Signature: "0xsig-a", AcceptedAt: testNow.Add(time.Second)})
		require.NoError(t, err)
		assert.True(t, second.ThresholdReached)
		assert.Equal(t, domain.MintStatusThresholdMet, second.Request.Status)
	})

	t.Run("concurrent signers", func(t *testing.T) {
		request := seedMintRequest(t, "8.3.0", "concurrent-sign-threshold", "concurrent-threshold-user")
		_, err := store.AddAttester(ctx, AddAttesterInput{PolicyVersion: "8.3.0", SignerID: testAttesterC, Actor: "admin", AddedAt: testNow})
		require.NoError(t, err)

		signers := []string{testAttesterC, testAttesterB, testAttesterA}
		var (
			mu      sync.Mutex
			reached int
		)
		errs := runConcurrently(len(signers), func(i int) error {
			res, err := store.AddMintSignature(ctx, AddMintSignatureInput{
				MintRequestID: request.ID,
				SignerID:      signers[i],
				Signature:     fmt.Sprintf("0xsig-%d", i),
				AcceptedAt:    testNow,
			})
			if err != nil {
				return err
			}
			if res.ThresholdReached {
				mu.Lock()
				reached++
				mu.Unlock()
			}
			return nil
		})
		for _, err := range errs {
			require.NoError(t, err)
		}
		assert.Equal(t, 1, reached)

		changes, _, err := store.GetChanges(ctx, ChangesQueryFilter{
			SubjectTypes: []schema.SubjectType{schema.SubjectTypeMintRequest},
			SubjectIDs:   []string{request.ID},
			Limit:        10,
		})
		require.NoError(t, err)
		thresholdMet := 0
		for _, c := range changes {
			var meta schema.StatusChangeMeta
			require.NoError(t, json.Unmarshal(c.Meta, &meta))
			if meta.To == string(domain.MintStatusThresholdMet) {
				thresholdMet++
			}
		}
		assert.Equal(t, 1, thresholdMet)
	})
}

func TestReserveEpochCapConcurrentRollover(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	const (
		epochKey = "concurrent-rollover"
		duration = int64(86400)
		workers  = 20
	)
	store := NewPGStore(testDB)
	ctx := context.Background()

	t.Cleanup(func() {
		testDB.Where("epoch_key = ?", epochKey).Delete(&schema.Reservation{})
		testDB.Where("epoch_key = ?", epochKey).Delete(&schema.EpochUserTotal{})
		testDB.Where("epoch_key = ?", epochKey).Delete(&schema.Epoch{})
	})

	reserve := func(actionID, userID string, now time.Time) (*schema.Reservation, error) {
		return store.ReserveEpochCap(ctx, ReserveEpochCapInput{
			EpochKey:        epochKey,
			DurationSeconds: duration,
			UserID:          userID,
			ActionID:        actionID,
			Amount:          decimal.NewFromInt(10),
			EpochCap:        decimal.NewFromInt(1_000_000),
			UserEpochCap:    decimal.NewFromInt(1_000),
			Now:             now,
		})
	}

	// Open the first window, then let it expire by several durations
	_, err := reserve(epochKey+"-seed", "seed-user", testNow)
	require.NoError(t, err)

	later := testNow.Add(2*24*time.Hour + 5*time.Hour + 17*time.Second)
	reservations := make([]*schema.Reservation, workers)
	errs := runConcurrently(workers, func(i int) error {
		r, err := reserve(fmt.Sprintf("%s-%d", epochKey, i), fmt.Sprintf("rollover-user-%d", i), later)
		reservations[i] = r
		return err
	})
	for _, err := range errs {
		require.NoError(t, err)
	}

	epoch, err := store.GetEpoch(ctx, epochKey)
	require.NoError(t, err)
	require.NotNil(t, epoch)
	assert.Equal(t, int64(1), epoch.Seq)
	assert.True(t, epoch.StartedAt.Equal(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)), "started at %s", epoch.StartedAt)
	assert.Zero(t, epoch.StartedAt.Unix()%duration)
	assert.False(t, later.Before(epoch.StartedAt))
	assert.True(t, later.Before(epoch.EndsAt()))
	assert.True(t, decimal.NewFromInt(10*workers).Equal(epoch.Minted), "minted %s", epoch.Minted)

	for _, r := range reservations {
		assert.Equal(t, int64(1), r.Seq)
	}
}

package attestation_test

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/pplp-engine/internal/attestation"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/mocks"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	_ = logger.Initialize(logger.Config{Debug: true})
	m.Run()
}

func mustKey(t *testing.T, hex string) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.HexToECDSA(hex)
	require.NoError(t, err)
	return key
}

func signerOf(key *ecdsa.PrivateKey) string {
	return strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())
}

func testRequest(t *testing.T) *schema.MintRequest {
	t.Helper()
	request := &schema.MintRequest{
		ID:            "01HXMINT0000000000000000AA",
		ActionID:      "01HXACTION000000000000000A",
		UserID:        "user-1",
		Recipient:     "0x00000000000000000000000000000000000000Aa",
		Amount:        decimal.RequireFromString("352.35"),
		AmountUnits:   decimal.RequireFromString("352350000000000000000"),
		Nonce:         7,
		ActionHash:    "0x" + strings.Repeat("ab", 32),
		EvidenceHash:  "0x" + strings.Repeat("cd", 32),
		PolicyVersion: "1.0.0",
		Threshold:     2,
		Status:        domain.MintStatusCollecting,
	}
	digest, err := attestation.PayloadOf(request).DigestHex()
	require.NoError(t, err)
	request.PayloadHash = digest
	return request
}

func sign(t *testing.T, key *ecdsa.PrivateKey, request *schema.MintRequest) string {
	t.Helper()
	digest, err := attestation.PayloadOf(request).Digest()
	require.NoError(t, err)
	sig, err := attestation.SignPayload(key, digest)
	require.NoError(t, err)
	return hexutil.Encode(sig)
}

func TestPayload(t *testing.T) {
	request := testRequest(t)
	payload := attestation.PayloadOf(request)

	assert.Equal(t, "352350000000000000000", payload.Amount)
	assert.Equal(t, "7", payload.Nonce)
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", payload.Recipient)

	raw, err := payload.Canonical()
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(
		`{"action_hash":"0x%s","amount":"352350000000000000000","evidence_hash":"0x%s","nonce":"7","policy_version":"1.0.0","recipient":"0x00000000000000000000000000000000000000aa"}`,
		strings.Repeat("ab", 32), strings.Repeat("cd", 32)), string(raw))

	// case of the stored hex does not change the digest
	upper := *request
	upper.ActionHash = "0x" + strings.ToUpper(request.ActionHash[2:])
	a, err := attestation.PayloadOf(request).Digest()
	require.NoError(t, err)
	b, err := attestation.PayloadOf(&upper).Digest()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	upper.Nonce = 8
	c, err := attestation.PayloadOf(&upper).Digest()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestSignAndRecover(t *testing.T) {
	key := mustKey(t, "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	digest, err := attestation.PayloadOf(testRequest(t)).Digest()
	require.NoError(t, err)

	sig, err := attestation.SignPayload(key, digest)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.Contains(t, []byte{27, 28}, sig[64])

	addr := crypto.PubkeyToAddress(key.PublicKey)
	require.NoError(t, attestation.VerifySignature(digest, addr, sig))

	// the same signature with V in {0, 1}
	raw := append([]byte(nil), sig...)
	raw[64] -= 27
	recovered, err := attestation.RecoverSigner(digest, raw)
	require.NoError(t, err)
	assert.Equal(t, addr, recovered)

	bad := append([]byte(nil), sig...)
	bad[64] = 5
	_, err = attestation.RecoverSigner(digest, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	_, err = attestation.RecoverSigner(digest, sig[:64])
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	other := mustKey(t, "8f2a55949038a9610f50fb23b5883af3b4ecb3c3bb792cbcefbd1542c692be63")
	err = attestation.VerifySignature(digest, crypto.PubkeyToAddress(other.PublicKey), sig)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	_, err = attestation.DecodeSignature("0xzz")
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	_, err = attestation.DecodeSignature("0x1234")
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

type coordinatorFixture struct {
	store     *mocks.MockStore
	publisher *mocks.MockPublisher
	metrics   *mocks.MockMetricsRecorder
	clock     *mocks.MockClock
	svc       attestation.Coordinator
}

func setupCoordinator(t *testing.T) *coordinatorFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &coordinatorFixture{
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		metrics:   mocks.NewMockMetricsRecorder(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	f.clock.EXPECT().Now().Return(now).AnyTimes()
	f.svc = attestation.NewCoordinator(f.store, f.publisher, f.metrics, f.clock)
	return f
}

func activeAttester(signer string) *schema.Attester {
	return &schema.Attester{PolicyVersion: "1.0.0", SignerID: signer, AddedAt: now}
}

func TestCoordinator_SubmitSignature(t *testing.T) {
	ctx := context.Background()
	keyA := mustKey(t, "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	keyB := mustKey(t, "8f2a55949038a9610f50fb23b5883af3b4ecb3c3bb792cbcefbd1542c692be63")
	signerA, signerB := signerOf(keyA), signerOf(keyB)

	t.Run("first signature stays pending", func(t *testing.T) {
		f := setupCoordinator(t)
		request := testRequest(t)

		f.store.EXPECT().GetMintRequestByID(ctx, request.ID).Return(request, nil)
		f.store.EXPECT().GetAttester(ctx, "1.0.0", signerA).Return(activeAttester(signerA), nil)
		f.store.EXPECT().AddMintSignature(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, in store.AddMintSignatureInput) (*store.AddMintSignatureResult, error) {
				assert.Equal(t, signerA, in.SignerID)
				assert.Equal(t, now, in.AcceptedAt)
				return &store.AddMintSignatureResult{Request: request, Signatures: 1}, nil
			})
		f.metrics.EXPECT().Signature(ctx, "accepted")

		// mixed case signer ids are normalized
		result, err := f.svc.SubmitSignature(ctx, request.ID, crypto.PubkeyToAddress(keyA.PublicKey).Hex(), sign(t, keyA, request))
		require.NoError(t, err)
		assert.Equal(t, domain.SignaturePending, result.Result)
		assert.Equal(t, 1, result.Signatures)
		assert.Equal(t, 2, result.Threshold)
	})

	t.Run("reaching the threshold publishes once", func(t *testing.T) {
		f := setupCoordinator(t)
		request := testRequest(t)
		met := *request
		met.Status = domain.MintStatusThresholdMet

		f.store.EXPECT().GetMintRequestByID(ctx, request.ID).Return(request, nil)
		f.store.EXPECT().GetAttester(ctx, "1.0.0", signerB).Return(activeAttester(signerB), nil)
		f.store.EXPECT().AddMintSignature(ctx, gomock.Any()).
			Return(&store.AddMintSignatureResult{Request: &met, Signatures: 2, ThresholdReached: true}, nil)
		f.metrics.EXPECT().Signature(ctx, "accepted")
		f.publisher.EXPECT().Publish(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, event *domain.EngineEvent) error {
				assert.Equal(t, domain.EventTypeMintThresholdMet, event.Type)
				assert.Equal(t, request.ID, event.MintRequestID)
				assert.Equal(t, request.ActionID, event.ActionID)
				return nil
			}).Times(1)

		result, err := f.svc.SubmitSignature(ctx, request.ID, signerB, sign(t, keyB, request))
		require.NoError(t, err)
		assert.Equal(t, domain.SignatureThresholdMet, result.Result)
	})

	t.Run("late signature does not publish", func(t *testing.T) {
		f := setupCoordinator(t)
		request := testRequest(t)
		request.Status = domain.MintStatusSubmitted

		f.store.EXPECT().GetMintRequestByID(ctx, request.ID).Return(request, nil)
		f.store.EXPECT().GetAttester(ctx, "1.0.0", signerA).Return(activeAttester(signerA), nil)
		f.store.EXPECT().AddMintSignature(ctx, gomock.Any()).
			Return(&store.AddMintSignatureResult{Request: request, Signatures: 3}, nil)
		f.metrics.EXPECT().Signature(ctx, "accepted")

		result, err := f.svc.SubmitSignature(ctx, request.ID, signerA, sign(t, keyA, request))
		require.NoError(t, err)
		assert.Equal(t, domain.SignatureThresholdMet, result.Result)
	})

	t.Run("publish failure does not fail the submission", func(t *testing.T) {
		f := setupCoordinator(t)
		request := testRequest(t)
		met := *request
		met.Status = domain.MintStatusThresholdMet

		f.store.EXPECT().GetMintRequestByID(ctx, request.ID).Return(request, nil)
		f.store.EXPECT().GetAttester(ctx, "1.0.0", signerA).Return(activeAttester(signerA), nil)
		f.store.EXPECT().AddMintSignature(ctx, gomock.Any()).
			Return(&store.AddMintSignatureResult{Request: &met, Signatures: 2, ThresholdReached: true}, nil)
		f.metrics.EXPECT().Signature(ctx, "accepted")
		f.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("nats unavailable"))

		result, err := f.svc.SubmitSignature(ctx, request.ID, signerA, sign(t, keyA, request))
		require.NoError(t, err)
		assert.Equal(t, domain.SignatureThresholdMet, result.Result)
	})

	t.Run("duplicate signer", func(t *testing.T) {
		f := setupCoordinator(t)
		request := testRequest(t)

		f.store.EXPECT().GetMintRequestByID(ctx, request.ID).Return(request, nil)
		f.store.EXPECT().GetAttester(ctx, "1.0.0", signerA).Return(activeAttester(signerA), nil)
		f.store.EXPECT().AddMintSignature(ctx, gomock.Any()).
			Return(nil, fmt.Errorf("signer %s: %w", signerA, domain.ErrDuplicateSigner))
		f.metrics.EXPECT().Signature(ctx, "duplicate")

		_, err := f.svc.SubmitSignature(ctx, request.ID, signerA, sign(t, keyA, request))
		assert.ErrorIs(t, err, domain.ErrDuplicateSigner)
	})

	t.Run("signature from another key", func(t *testing.T) {
		f := setupCoordinator(t)
		request := testRequest(t)

		f.store.EXPECT().GetMintRequestByID(ctx, request.ID).Return(request, nil)
		f.store.EXPECT().GetAttester(ctx, "1.0.0", signerA).Return(activeAttester(signerA), nil)
		f.metrics.EXPECT().Signature(ctx, "invalid")

		_, err := f.svc.SubmitSignature(ctx, request.ID, signerA, sign(t, keyB, request))
		assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	})

	t.Run("signature over a different payload", func(t *testing.T) {
		f := setupCoordinator(t)
		request := testRequest(t)
		other := *request
		other.Nonce = 8

		f.store.EXPECT().GetMintRequestByID(ctx, request.ID).Return(request, nil)
		f.store.EXPECT().GetAttester(ctx, "1.0.0", signerA).Return(activeAttester(signerA), nil)
		f.metrics.EXPECT().Signature(ctx, "invalid")

		_, err := f.svc.SubmitSignature(ctx, request.ID, signerA, sign(t, keyA, &other))
		assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	})

	t.Run("revoked attester", func(t *testing.T) {
		f := setupCoordinator(t)
		request := testRequest(t)
		revoked := activeAttester(signerA)
		revokedAt := now.Add(-time.Hour)
		revoked.RevokedAt = &revokedAt

		f.store.EXPECT().GetMintRequestByID(ctx, request.ID).Return(request, nil)
		f.store.EXPECT().GetAttester(ctx, "1.0.0", signerA).Return(revoked, nil)
		f.metrics.EXPECT().Signature(ctx, "unregistered")

		_, err := f.svc.SubmitSignature(ctx, request.ID, signerA, sign(t, keyA, request))
		assert.ErrorIs(t, err, domain.ErrAttesterNotRegistered)
	})

	t.Run("unknown attester", func(t *testing.T) {
		f := setupCoordinator(t)
		request := testRequest(t)

		f.store.EXPECT().GetMintRequestByID(ctx, request.ID).Return(request, nil)
		f.store.EXPECT().GetAttester(ctx, "1.0.0", signerA).Return(nil, nil)
		f.metrics.EXPECT().Signature(ctx, "unregistered")

		_, err := f.svc.SubmitSignature(ctx, request.ID, signerA, sign(t, keyA, request))
		assert.ErrorIs(t, err, domain.ErrAttesterNotRegistered)
	})

	t.Run("failed request is closed", func(t *testing.T) {
		f := setupCoordinator(t)
		request := testRequest(t)
		request.Status = domain.MintStatusFailed

		f.store.EXPECT().GetMintRequestByID(ctx, request.ID).Return(request, nil)

		_, err := f.svc.SubmitSignature(ctx, request.ID, signerA, sign(t, keyA, request))
		assert.ErrorIs(t, err, domain.ErrMintRequestClosed)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := setupCoordinator(t)
		f.store.EXPECT().GetMintRequestByID(ctx, "missing").Return(nil, nil)

		_, err := f.svc.SubmitSignature(ctx, "missing", signerA, "0x00")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed signer id", func(t *testing.T) {
		f := setupCoordinator(t)
		_, err := f.svc.SubmitSignature(ctx, "01HX", "not-an-address", "0x00")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestCoordinator_Payload(t *testing.T) {
	ctx := context.Background()
	f := setupCoordinator(t)
	request := testRequest(t)

	f.store.EXPECT().GetMintRequestByID(ctx, request.ID).Return(request, nil)
	signed, err := f.svc.Payload(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, request.PayloadHash, signed.Digest)
	assert.Equal(t, crypto.Keccak256Hash([]byte(signed.Canonical)).Hex(), signed.Digest)

	tampered := testRequest(t)
	tampered.Amount = decimal.NewFromInt(1)
	tampered.AmountUnits = decimal.NewFromInt(1)
	f.store.EXPECT().GetMintRequestByID(ctx, tampered.ID).Return(tampered, nil)
	_, err = f.svc.Payload(ctx, tampered.ID)
	assert.ErrorContains(t, err, "does not match")
}

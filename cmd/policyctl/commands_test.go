package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/pplp-engine/internal/audit"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/mocks"
	"github.com/feral-file/pplp-engine/internal/policy"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

const fixture = "../../internal/policy/testdata/policy.yaml"

func newTestCLI(t *testing.T) (*cli, *mocks.MockPolicyService, *bytes.Buffer) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPolicyService(ctrl)
	out := &bytes.Buffer{}
	return newCLI(svc, "ops@example.com", out), svc, out
}

func TestRun_Usage(t *testing.T) {
	c, _, out := newTestCLI(t)

	err := c.Run(context.Background(), nil)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out.String(), "attester-add")

	err = c.Run(context.Background(), []string{"deploy"})
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, err.Error(), "deploy")
}

func TestRun_Create(t *testing.T) {
	c, svc, out := newTestCLI(t)

	svc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req policy.CreateRequest) (*policy.Record, error) {
			assert.Equal(t, "1.0.0", req.Policy.Version)
			assert.Equal(t, "ops@example.com", req.Actor)
			assert.Equal(t, "launch", req.Reason)
			assert.Equal(t, "guardian-1", req.Labels["0x1111111111111111111111111111111111111111"])
			return &policy.Record{Policy: req.Policy, ContentHash: "0xabc", CreatedBy: req.Actor}, nil
		})

	require.NoError(t, c.Run(context.Background(), []string{"create", "-file", fixture, "-reason", "launch"}))
	assert.Contains(t, out.String(), `"content_hash": "0xabc"`)
}

func TestRun_CreateRequiresFile(t *testing.T) {
	c, _, _ := newTestCLI(t)

	err := c.Run(context.Background(), []string{"create"})
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, err.Error(), "-file")
}

func TestRun_CreateMissingFile(t *testing.T) {
	c, _, _ := newTestCLI(t)

	err := c.Run(context.Background(), []string{"create", "-file", "does-not-exist.yaml"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errUsage)
}

func TestRun_Activate(t *testing.T) {
	c, svc, _ := newTestCLI(t)

	svc.EXPECT().
		Activate(gomock.Any(), "1.1.0", "ops@example.com", "rollout").
		Return(&policy.Record{IsActive: true}, nil)

	require.NoError(t, c.Run(context.Background(), []string{"activate", "-version", "1.1.0", "-reason", "rollout"}))
}

func TestRun_ActivatePropagatesError(t *testing.T) {
	c, svc, _ := newTestCLI(t)

	svc.EXPECT().
		Activate(gomock.Any(), "9.9.9", "ops@example.com", "").
		Return(nil, domain.ErrNotFound)

	err := c.Run(context.Background(), []string{"activate", "-version", "9.9.9"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRun_Register(t *testing.T) {
	c, svc, _ := newTestCLI(t)

	err := c.Run(context.Background(), []string{"register", "-version", "1.0.0"})
	assert.ErrorIs(t, err, errUsage)

	svc.EXPECT().
		Register(gomock.Any(), "1.0.0", "0xfeed", "ops@example.com").
		Return(&policy.Record{}, nil)
	require.NoError(t, c.Run(context.Background(), []string{"register", "-version", "1.0.0", "-ref", "0xfeed"}))
}

func TestRun_Changes(t *testing.T) {
	c, svc, out := newTestCLI(t)

	svc.EXPECT().
		Changes(gomock.Any(), store.PolicyChangesFilter{PolicyVersion: "1.0.0", Limit: 10, Offset: 20}).
		Return([]schema.PolicyChange{{ID: 7, PolicyVersion: "1.0.0", ChangeType: domain.PolicyChangeActivate}}, uint64(21), nil)

	require.NoError(t, c.Run(context.Background(), []string{"changes", "-version", "1.0.0", "-limit", "10", "-offset", "20"}))
	assert.Contains(t, out.String(), `"total": 21`)
}

func TestRun_Verify(t *testing.T) {
	t.Run("valid chain", func(t *testing.T) {
		c, svc, out := newTestCLI(t)
		svc.EXPECT().VerifyAuditChain(gomock.Any()).Return(&audit.Verification{Valid: true, Checked: 3}, nil)

		require.NoError(t, c.Run(context.Background(), []string{"verify"}))
		assert.Contains(t, out.String(), `"checked": 3`)
	})

	t.Run("broken chain", func(t *testing.T) {
		c, svc, _ := newTestCLI(t)
		svc.EXPECT().VerifyAuditChain(gomock.Any()).Return(&audit.Verification{Valid: false, Checked: 2}, nil)

		err := c.Run(context.Background(), []string{"verify"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})
}

func TestRun_Attesters(t *testing.T) {
	c, svc, _ := newTestCLI(t)

	svc.EXPECT().ListAttesters(gomock.Any(), "1.0.0", true).Return([]schema.Attester{}, nil)
	require.NoError(t, c.Run(context.Background(), []string{"attesters", "-version", "1.0.0"}))

	svc.EXPECT().ListAttesters(gomock.Any(), "1.0.0", false).Return([]schema.Attester{}, nil)
	require.NoError(t, c.Run(context.Background(), []string{"attesters", "-version", "1.0.0", "-all"}))
}

func TestRun_AttesterAdmin(t *testing.T) {
	c, svc, out := newTestCLI(t)
	signer := "0x3333333333333333333333333333333333333333"

	svc.EXPECT().
		AddAttester(gomock.Any(), policy.AttesterRequest{
			PolicyVersion: "1.0.0",
			SignerID:      signer,
			Label:         "guardian-3",
			Actor:         "ops@example.com",
			Reason:        "rotation",
		}).
		Return(&schema.Attester{PolicyVersion: "1.0.0", SignerID: signer}, nil)
	require.NoError(t, c.Run(context.Background(),
		[]string{"attester-add", "-version", "1.0.0", "-signer", signer, "-label", "guardian-3", "-reason", "rotation"}))

	svc.EXPECT().
		RemoveAttester(gomock.Any(), "1.0.0", signer, "ops@example.com", "compromised").
		Return(nil)
	require.NoError(t, c.Run(context.Background(),
		[]string{"attester-remove", "-version", "1.0.0", "-signer", signer, "-reason", "compromised"}))
	assert.Contains(t, out.String(), "revoked "+signer)
}

func TestRun_Threshold(t *testing.T) {
	c, svc, out := newTestCLI(t)

	err := c.Run(context.Background(), []string{"threshold", "-version", "1.0.0", "-value", "0"})
	assert.ErrorIs(t, err, errUsage)

	svc.EXPECT().
		SetThreshold(gomock.Any(), "1.0.0", 3, "ops@example.com", "").
		Return(errors.New("threshold exceeds active attesters"))
	err = c.Run(context.Background(), []string{"threshold", "-version", "1.0.0", "-value", "3"})
	require.Error(t, err)
	assert.NotContains(t, out.String(), "set to")
}

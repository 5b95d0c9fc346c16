package nonce_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/mocks"
	"github.com/feral-file/pplp-engine/internal/nonce"
	"github.com/feral-file/pplp-engine/internal/store"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*mocks.MockStore, nonce.Guard) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()
	return st, nonce.NewGuard(st, clock)
}

func TestGuard_Next(t *testing.T) {
	st, g := setup(t)
	ctx := context.Background()

	gomock.InOrder(
		st.EXPECT().NextNonce(ctx, "user-1").Return(int64(1), nil),
		st.EXPECT().NextNonce(ctx, "user-1").Return(int64(2), nil),
	)

	n1, err := g.Next(ctx, "user-1")
	require.NoError(t, err)
	n2, err := g.Next(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n1)
	assert.Greater(t, n2, n1)

	_, err = g.Next(ctx, "")
	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestGuard_Consume(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		consumer string
		storeErr error
		wantErr  error
	}{
		{name: "first use", consumer: "mint-1"},
		{name: "retry by the same consumer", consumer: "mint-1"},
		{
			name:     "used by another consumer",
			consumer: "mint-2",
			storeErr: fmt.Errorf("nonce 1 for user-1: %w", domain.ErrNonceAlreadyUsed),
			wantErr:  domain.ErrNonceAlreadyUsed,
		},
		{
			name:     "never issued",
			consumer: "mint-3",
			storeErr: fmt.Errorf("nonce 9 for user-1 never issued: %w", domain.ErrNonceStale),
			wantErr:  domain.ErrNonceStale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, g := setup(t)
			st.EXPECT().ConsumeNonce(ctx, store.ConsumeNonceInput{
				UserID:     "user-1",
				Nonce:      1,
				Consumer:   tt.consumer,
				ConsumedAt: now,
			}).Return(tt.storeErr)

			err := g.Consume(ctx, "user-1", 1, tt.consumer)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			kind, ok := domain.KindOf(err)
			assert.True(t, ok)
			assert.Equal(t, domain.ErrorKindReplay, kind)
		})
	}
}

func TestGuard_ValidateIsAnonymousConsume(t *testing.T) {
	st, g := setup(t)
	ctx := context.Background()
	st.EXPECT().ConsumeNonce(ctx, store.ConsumeNonceInput{UserID: "user-1", Nonce: 4, ConsumedAt: now}).Return(nil)
	assert.NoError(t, g.Validate(ctx, "user-1", 4))
}

func TestGuard_Retire(t *testing.T) {
	st, g := setup(t)
	ctx := context.Background()
	st.EXPECT().RetireNonce(ctx, store.RetireNonceInput{
		UserID: "user-1", Nonce: 2, Reason: "ledger revert", RetiredAt: now,
	}).Return(nil)
	assert.NoError(t, g.Retire(ctx, "user-1", 2, "ledger revert"))
}

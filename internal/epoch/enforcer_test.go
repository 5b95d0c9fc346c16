package epoch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/epoch"
	"github.com/feral-file/pplp-engine/internal/metrics"
	"github.com/feral-file/pplp-engine/internal/mocks"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

var now = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

func caps() domain.Caps {
	return domain.Caps{
		EpochKey:             "daily",
		EpochDurationSeconds: 86400,
		EpochCap:             decimal.NewFromInt(1000),
		UserEpochCap:         decimal.NewFromInt(100),
		IssuanceDecimals:     2,
		LedgerDecimals:       18,
	}
}

func setup(t *testing.T) (*mocks.MockStore, *mocks.MockMetricsRecorder, epoch.Enforcer) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	rec := mocks.NewMockMetricsRecorder(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()
	return st, rec, epoch.NewEnforcer(st, clock, rec)
}

func TestEnforcer_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted", func(t *testing.T) {
		st, rec, e := setup(t)
		st.EXPECT().ReserveEpochCap(ctx, store.ReserveEpochCapInput{
			EpochKey:        "daily",
			DurationSeconds: 86400,
			UserID:          "user-1",
			ActionID:        "action-1",
			Amount:          decimal.RequireFromString("12.5"),
			EpochCap:        decimal.NewFromInt(1000),
			UserEpochCap:    decimal.NewFromInt(100),
			Now:             now,
		}).Return(&schema.Reservation{ID: 3, ActionID: "action-1", Amount: decimal.RequireFromString("12.5")}, nil)
		rec.EXPECT().Reservation(ctx, "accepted")

		r, err := e.Reserve(ctx, epoch.ReserveRequest{
			UserID:   "user-1",
			ActionID: "action-1",
			Amount:   decimal.RequireFromString("12.5"),
			Caps:     caps(),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), r.ID)
	})

	t.Run("cap exceeded", func(t *testing.T) {
		st, rec, e := setup(t)
		st.EXPECT().ReserveEpochCap(ctx, gomock.Any()).Return(nil, &domain.CapExceededError{
			Cap:       domain.CapKindUser,
			Limit:     decimal.NewFromInt(100),
			Current:   decimal.NewFromInt(95),
			Requested: decimal.NewFromInt(10),
		})
		rec.EXPECT().Reservation(ctx, "cap_exceeded")

		_, err := e.Reserve(ctx, epoch.ReserveRequest{
			UserID: "user-1", ActionID: "action-2", Amount: decimal.NewFromInt(10), Caps: caps(),
		})
		assert.ErrorIs(t, err, domain.ErrCapExceeded)
		var capErr *domain.CapExceededError
		require.True(t, errors.As(err, &capErr))
		assert.Equal(t, domain.CapKindUser, capErr.Cap)
	})

	t.Run("non positive amount", func(t *testing.T) {
		_, _, e := setup(t)
		_, err := e.Reserve(ctx, epoch.ReserveRequest{Amount: decimal.Zero, Caps: caps()})
		var ve *domain.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("store failure", func(t *testing.T) {
		st, _, e := setup(t)
		st.EXPECT().ReserveEpochCap(ctx, gomock.Any()).Return(nil, errors.New("connection reset"))
		_, err := e.Reserve(ctx, epoch.ReserveRequest{Amount: decimal.NewFromInt(1), Caps: caps()})
		assert.ErrorContains(t, err, "connection reset")
		assert.NotErrorIs(t, err, domain.ErrCapExceeded)
	})
}

func TestEnforcer_Release(t *testing.T) {
	st, _, e := setup(t)
	st.EXPECT().ReleaseReservation(gomock.Any(), int64(9), now).Return(nil)
	assert.NoError(t, e.Release(context.Background(), 9))
}

func TestEnforcer_Status(t *testing.T) {
	ctx := context.Background()
	windowStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("current window with user total", func(t *testing.T) {
		st, _, e := setup(t)
		st.EXPECT().GetEpoch(ctx, "daily").Return(&schema.Epoch{
			EpochKey: "daily", Seq: 4, StartedAt: windowStart, DurationSeconds: 86400, Minted: decimal.NewFromInt(250),
		}, nil)
		st.EXPECT().GetEpochUserTotal(ctx, "daily", int64(4), "user-1").
			Return(&schema.EpochUserTotal{Minted: decimal.NewFromInt(40)}, nil)

		s, err := e.Status(ctx, "daily", "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(4), s.Seq)
		assert.Equal(t, "250", s.Minted.String())
		assert.Equal(t, "40", s.UserMinted.String())
		assert.Equal(t, windowStart.Add(24*time.Hour), s.EndsAt)
	})

	t.Run("ended window reports the next one empty", func(t *testing.T) {
		st, _, e := setup(t)
		st.EXPECT().GetEpoch(ctx, "daily").Return(&schema.Epoch{
			EpochKey: "daily", Seq: 4, StartedAt: windowStart.Add(-48 * time.Hour), DurationSeconds: 86400,
			Minted: decimal.NewFromInt(900),
		}, nil)

		s, err := e.Status(ctx, "daily", "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(5), s.Seq)
		assert.Equal(t, windowStart, s.StartedAt)
		assert.True(t, s.Minted.IsZero())
		assert.True(t, s.UserMinted.IsZero())
	})

	t.Run("unknown key", func(t *testing.T) {
		st, _, e := setup(t)
		st.EXPECT().GetEpoch(ctx, "weekly").Return(nil, nil)
		_, err := e.Status(ctx, "weekly", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

var _ metrics.Recorder = (*mocks.MockMetricsRecorder)(nil)

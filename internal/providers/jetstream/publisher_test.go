package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/mocks"
	pjs "github.com/feral-file/pplp-engine/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	_ = logger.Initialize(logger.Config{Debug: true})
	m.Run()
}

func testConfig() pjs.Config {
	return pjs.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "PPLP_EVENTS",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "pplp-test",
	}
}

func TestStreamConfig(t *testing.T) {
	cfg := pjs.StreamConfig(testConfig())
	assert.Equal(t, "PPLP_EVENTS", cfg.Name)
	assert.Equal(t, []string{"pplp.>"}, cfg.Subjects)
	assert.Equal(t, 2*time.Minute, cfg.Duplicates)

	withWindow := testConfig()
	withWindow.DuplicateWindow = 10 * time.Minute
	assert.Equal(t, 10*time.Minute, pjs.StreamConfig(withWindow).Duplicates)
}

func TestPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	ctx := context.Background()

	natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(nc, js, nil)
	js.EXPECT().CreateOrUpdateStream(ctx, gomock.Any()).Return(nil)

	pub, err := pjs.NewPublisher(ctx, testConfig(), natsJS)
	require.NoError(t, err)

	event := &domain.EngineEvent{
		Type:          domain.EventTypeMintThresholdMet,
		MintRequestID: "01HXMINT",
		Status:        string(domain.MintStatusThresholdMet),
		OccurredAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	js.EXPECT().
		Publish(ctx, "pplp.mint.threshold_met", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
			var got domain.EngineEvent
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, event.MintRequestID, got.MintRequestID)
			assert.Len(t, opts, 1)
			return &jetstream.PubAck{Stream: "PPLP_EVENTS", Sequence: 1}, nil
		})
	require.NoError(t, pub.Publish(ctx, event))

	js.EXPECT().Publish(ctx, "pplp.mint.settled", gomock.Any(), gomock.Any()).Return(nil, errors.New("no responders"))
	err = pub.Publish(ctx, &domain.EngineEvent{Type: domain.EventTypeMintSettled, MintRequestID: "01HXMINT"})
	assert.ErrorContains(t, err, "failed to publish event")

	nc.EXPECT().Drain().Return(nil)
	pub.Close()
}

func TestNewPublisher_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	ctx := context.Background()

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("connection refused"))
	_, err := pjs.NewPublisher(ctx, testConfig(), natsJS)
	assert.ErrorContains(t, err, "failed to connect")

	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)
	js.EXPECT().CreateOrUpdateStream(ctx, gomock.Any()).Return(errors.New("insufficient resources"))
	nc.EXPECT().Close()
	_, err = pjs.NewPublisher(ctx, testConfig(), natsJS)
	assert.ErrorContains(t, err, "failed to create stream PPLP_EVENTS")
}

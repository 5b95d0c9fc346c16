package audit

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/canonical"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// Envelope is the streamed and archived form of a change row
type Envelope struct {
	ID        int64  `json:"id"`
	Entry     Entry  `json:"entry"`
	PrevHash  string `json:"prev_hash"`
	EntryHash string `json:"entry_hash"`
}

// EnvelopeOf builds the envelope of a change row
func EnvelopeOf(c schema.PolicyChange) Envelope {
	return Envelope{
		ID:        c.ID,
		Entry:     EntryOf(c),
		PrevHash:  c.PrevHash,
		EntryHash: c.EntryHash,
	}
}

// StreamerConfig configures the audit streamer
type StreamerConfig struct {
	// BatchSize is how many unstreamed rows one pass claims
	BatchSize int
	// ArchiveBucket and ArchivePrefix locate the S3 archive. An empty bucket disables archiving.
	ArchiveBucket string
	ArchivePrefix string
	// ProduceMaxElapsed bounds the Kafka produce retries of one row
	ProduceMaxElapsed time.Duration
}

// Streamer delivers policy change rows to Kafka and the S3 archive. The database stays the
// source of truth: a row is marked streamed only after both deliveries succeeded.
//
//go:generate mockgen -source=streamer.go -destination=../mocks/audit_streamer.go -package=mocks -mock_names=Streamer=MockAuditStreamer
type Streamer interface {
	// StreamOnce delivers up to one batch of rows in chain order and returns how many were delivered.
	// It stops at the first failing row so that rows of a policy are never delivered out of order.
	StreamOnce(ctx context.Context) (int, error)
}

// ChangeLog is the slice of the store the streamer reads and marks rows through
type ChangeLog interface {
	GetUnstreamedPolicyChanges(ctx context.Context, limit int) ([]schema.PolicyChange, error)
	MarkPolicyChangeStreamed(ctx context.Context, id int64, streamedAt time.Time) error
	MarkPolicyChangeStreamFailed(ctx context.Context, id int64, reason string) error
}

type streamer struct {
	store   ChangeLog
	writer  adapter.KafkaWriter
	storage adapter.ObjectStorage
	clock   adapter.Clock
	cfg     StreamerConfig
}

// NewStreamer creates an audit streamer. storage may be nil when archiving is disabled.
func NewStreamer(cfg StreamerConfig, st ChangeLog, writer adapter.KafkaWriter, storage adapter.ObjectStorage, clock adapter.Clock) Streamer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.ProduceMaxElapsed <= 0 {
		cfg.ProduceMaxElapsed = 30 * time.Second
	}
	return &streamer{
		store:   st,
		writer:  writer,
		storage: storage,
		clock:   clock,
		cfg:     cfg,
	}
}

func (s *streamer) StreamOnce(ctx context.Context) (int, error) {
	changes, err := s.store.GetUnstreamedPolicyChanges(ctx, s.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to get unstreamed policy changes: %w", err)
	}

	for i, c := range changes {
		if err := s.deliver(ctx, c); err != nil {
			if markErr := s.store.MarkPolicyChangeStreamFailed(ctx, c.ID, err.Error()); markErr != nil {
				logger.ErrorCtx(ctx, fmt.Errorf("failed to record audit stream failure: %w", markErr), zap.Int64("changeID", c.ID))
			}
			return i, fmt.Errorf("failed to stream policy change %d: %w", c.ID, err)
		}
		if err := s.store.MarkPolicyChangeStreamed(ctx, c.ID, s.clock.Now()); err != nil {
			return i, fmt.Errorf("failed to mark policy change %d streamed: %w", c.ID, err)
		}
		logger.DebugCtx(ctx, "Policy change streamed",
			zap.Int64("changeID", c.ID),
			logger.PolicyVersion(c.PolicyVersion),
			zap.String("entryHash", c.EntryHash))
	}

	return len(changes), nil
}

func (s *streamer) deliver(ctx context.Context, c schema.PolicyChange) error {
	body, err := canonical.Marshal(EnvelopeOf(c))
	if err != nil {
		return fmt.Errorf("failed to canonicalize envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(c.PolicyVersion),
		Value: body,
		Time:  c.ChangedAt,
		Headers: []kafka.Header{
			{Key: "entry_hash", Value: []byte(c.EntryHash)},
			{Key: "change_type", Value: []byte(string(c.ChangeType))},
		},
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = s.cfg.ProduceMaxElapsed
	if err := backoff.RetryNotify(func() error {
		return s.writer.WriteMessages(ctx, msg)
	}, backoff.WithContext(b, ctx), func(err error, d time.Duration) {
		logger.WarnCtx(ctx, "Kafka produce failed, retrying",
			zap.Int64("changeID", c.ID),
			zap.Duration("retryIn", d),
			zap.Error(err))
	}); err != nil {
		return fmt.Errorf("kafka produce: %w", err)
	}

	if s.storage == nil || s.cfg.ArchiveBucket == "" {
		return nil
	}
	if _, err := s.storage.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.cfg.ArchiveBucket),
		Key:                  aws.String(ArchiveKey(s.cfg.ArchivePrefix, c)),
		Body:                 bytes.NewReader(body),
		ContentType:          aws.String("application/json"),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	}); err != nil {
		return fmt.Errorf("s3 archive: %w", err)
	}
	return nil
}

// ArchiveKey is the object key of an archived change: <prefix>/<policy version>/<yyyy>/<mm>/<dd>/<id>.json
func ArchiveKey(prefix string, c schema.PolicyChange) string {
	ts := c.ChangedAt.UTC()
	return path.Join(prefix, c.PolicyVersion,
		fmt.Sprintf("%04d", ts.Year()),
		fmt.Sprintf("%02d", int(ts.Month())),
		fmt.Sprintf("%02d", ts.Day()),
		fmt.Sprintf("%d.json", c.ID))
}

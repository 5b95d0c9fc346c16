// Package evidence verifies evidence attached to submitted actions and stores inline payloads
package evidence

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/canonical"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// Config holds the evidence payload store configuration
type Config struct {
	Bucket          string
	Prefix          string
	MaxPayloadBytes int64
}

// Verifier checks evidence entries and turns them into evidence rows
//
//go:generate mockgen -source=verifier.go -destination=../mocks/evidence.go -package=mocks -mock_names=Verifier=MockEvidenceVerifier
type Verifier interface {
	// Verify validates every entry. Inline payloads and s3:// objects are hashed and marked verified;
	// other URIs are recorded unverified.
	Verify(ctx context.Context, actionID string, inputs []domain.EvidenceInput) ([]schema.Evidence, error)
}

type verifier struct {
	cfg     Config
	storage adapter.ObjectStorage
}

// NewVerifier creates an evidence verifier. A nil storage keeps inline payloads out of object storage.
func NewVerifier(cfg Config, storage adapter.ObjectStorage) Verifier {
	if cfg.MaxPayloadBytes <= 0 {
		cfg.MaxPayloadBytes = 10 << 20
	}
	return &verifier{cfg: cfg, storage: storage}
}

func (v *verifier) Verify(ctx context.Context, actionID string, inputs []domain.EvidenceInput) ([]schema.Evidence, error) {
	evidences := make([]schema.Evidence, 0, len(inputs))
	for i, in := range inputs {
		e, err := v.verifyOne(ctx, actionID, i, in)
		if err != nil {
			return nil, err
		}
		evidences = append(evidences, *e)
	}
	return evidences, nil
}

func (v *verifier) verifyOne(ctx context.Context, actionID string, i int, in domain.EvidenceInput) (*schema.Evidence, error) {
	field := fmt.Sprintf("evidence[%d]", i)

	if strings.TrimSpace(in.Type) == "" {
		return nil, domain.NewValidationError(field+".type", "is required")
	}
	contentHash, err := NormalizeContentHash(in.ContentHash)
	if err != nil {
		return nil, domain.NewValidationError(field+".content_hash", err.Error())
	}

	e := &schema.Evidence{
		ActionID:     actionID,
		EvidenceType: in.Type,
		ContentHash:  contentHash,
	}
	if len(in.Metadata) > 0 {
		raw, err := json.Marshal(in.Metadata)
		if err != nil {
			return nil, domain.NewValidationError(field+".metadata", "must be a JSON object")
		}
		e.Metadata = datatypes.JSON(raw)
	}

	switch {
	case len(in.Payload) > 0:
		if int64(len(in.Payload)) > v.cfg.MaxPayloadBytes {
			return nil, domain.NewValidationError(field+".payload", fmt.Sprintf("exceeds %d bytes", v.cfg.MaxPayloadBytes))
		}
		if err := matchHash(in.Payload, contentHash); err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		mime := mimetype.Detect(in.Payload).String()
		size := int64(len(in.Payload))
		e.MimeType, e.SizeBytes, e.Verified = &mime, &size, true

		if v.storage != nil {
			uri, err := v.put(ctx, contentHash, mime, in.Payload)
			if err != nil {
				return nil, err
			}
			e.URI = &uri
		}

	case in.URI != nil && strings.HasPrefix(*in.URI, "s3://"):
		if v.storage == nil {
			return nil, domain.NewValidationError(field+".uri", "s3 evidence is not supported")
		}
		payload, err := v.fetch(ctx, field, *in.URI)
		if err != nil {
			return nil, err
		}
		if err := matchHash(payload, contentHash); err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		mime := mimetype.Detect(payload).String()
		size := int64(len(payload))
		uri := *in.URI
		e.URI, e.MimeType, e.SizeBytes, e.Verified = &uri, &mime, &size, true

	case in.URI != nil && *in.URI != "":
		if _, err := url.ParseRequestURI(*in.URI); err != nil {
			return nil, domain.NewValidationError(field+".uri", "must be an absolute URI")
		}
		uri := *in.URI
		e.URI = &uri
	}

	return e, nil
}

// put stores a verified payload under its content hash
func (v *verifier) put(ctx context.Context, contentHash, mime string, payload []byte) (string, error) {
	key := path.Join(v.cfg.Prefix, contentHash)
	_, err := v.storage.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(v.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(mime),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store evidence payload: %w", err)
	}

	logger.DebugCtx(ctx, "Stored evidence payload",
		zap.String("key", key),
		zap.String("mimeType", mime),
		zap.Int("bytes", len(payload)))

	return fmt.Sprintf("s3://%s/%s", v.cfg.Bucket, key), nil
}

// fetch downloads an s3:// object, reading at most MaxPayloadBytes
func (v *verifier) fetch(ctx context.Context, field, rawURI string) ([]byte, error) {
	bucket, key, err := ParseS3URI(rawURI)
	if err != nil {
		return nil, domain.NewValidationError(field+".uri", err.Error())
	}

	out, err := v.storage.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, domain.NewValidationError(field+".uri", "object does not exist")
		}
		return nil, fmt.Errorf("failed to fetch evidence %s: %w", rawURI, err)
	}
	defer func() {
		if err := out.Body.Close(); err != nil {
			logger.WarnCtx(ctx, "Failed to close evidence body", zap.Error(err))
		}
	}()

	payload, err := io.ReadAll(io.LimitReader(out.Body, v.cfg.MaxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read evidence %s: %w", rawURI, err)
	}
	if int64(len(payload)) > v.cfg.MaxPayloadBytes {
		return nil, domain.NewValidationError(field+".uri", fmt.Sprintf("object exceeds %d bytes", v.cfg.MaxPayloadBytes))
	}
	return payload, nil
}

// ParseS3URI splits s3://bucket/key
func ParseS3URI(rawURI string) (string, string, error) {
	u, err := url.Parse(rawURI)
	if err != nil || u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("must be s3://bucket/key")
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("must be s3://bucket/key")
	}
	return u.Host, key, nil
}

// NormalizeContentHash accepts a 64-character hex SHA-256, with or without 0x, and returns it lowercase without prefix
func NormalizeContentHash(h string) (string, error) {
	h = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(h), "0x"))
	if len(h) != sha256.Size*2 {
		return "", fmt.Errorf("must be a hex SHA-256")
	}
	if _, err := hex.DecodeString(h); err != nil {
		return "", fmt.Errorf("must be a hex SHA-256")
	}
	return h, nil
}

func matchHash(payload []byte, want string) error {
	sum := sha256.Sum256(payload)
	if got := hex.EncodeToString(sum[:]); got != want {
		return fmt.Errorf("payload hashes to %s, declared %s: %w", got, want, domain.ErrEvidenceHashMismatch)
	}
	return nil
}

// Hash binds a set of evidence into one value: keccak256 of the JCS list of sorted content hashes.
// No evidence hashes to the zero hash.
func Hash(evidences []schema.Evidence) (string, error) {
	if len(evidences) == 0 {
		return canonical.ZeroHash.Hex(), nil
	}
	hashes := make([]string, 0, len(evidences))
	for _, e := range evidences {
		hashes = append(hashes, e.ContentHash)
	}
	slices.Sort(hashes)
	return canonical.HashHex(hashes)
}

// CountVerified returns the number of evidence rows the engine verified itself
func CountVerified(evidences []schema.Evidence) int {
	n := 0
	for _, e := range evidences {
		if e.Verified {
			n++
		}
	}
	return n
}

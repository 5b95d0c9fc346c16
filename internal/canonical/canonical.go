// Package canonical produces the RFC 8785 (JCS) byte forms and keccak256 digests that are bound
// into policy hashes, action hashes, issuance payloads and the audit chain.
package canonical

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gowebpki/jcs"
)

// ZeroHash is the hash used when there is nothing to hash (e.g., an action without evidence)
var ZeroHash = common.Hash{}

// Marshal encodes v as JSON and canonicalizes it
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}
	return Transform(raw)
}

// Transform canonicalizes a JSON document
func Transform(raw []byte) ([]byte, error) {
	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize: %w", err)
	}
	return out, nil
}

// Hash returns keccak256 over the canonical form of v
func Hash(v any) (common.Hash, error) {
	data, err := Marshal(v)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(data), nil
}

// HashHex is Hash encoded as 0x-prefixed hex
func HashHex(v any) (string, error) {
	h, err := Hash(v)
	if err != nil {
		return "", err
	}
	return h.Hex(), nil
}

// Keccak256Hex returns keccak256 over the concatenation of data as 0x-prefixed hex
func Keccak256Hex(data ...[]byte) string {
	return crypto.Keccak256Hash(data...).Hex()
}

// DecodeHash parses a 0x-prefixed 32-byte hex string. The empty string decodes to ZeroHash.
func DecodeHash(s string) (common.Hash, error) {
	if s == "" {
		return ZeroHash, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid hash %q: want %d bytes, got %d", s, common.HashLength, len(b))
	}
	return common.BytesToHash(b), nil
}

package attestation

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// SignPayload signs a payload digest, returning the 65-byte [R||S||V] signature with V in {27, 28}
func SignPayload(key *ecdsa.PrivateKey, digest common.Hash) ([]byte, error) {
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign payload: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// DecodeSignature parses a 0x-hex 65-byte signature
func DecodeSignature(s string) ([]byte, error) {
	sig, err := hexutil.Decode(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("signature is not 0x-hex: %w", domain.ErrInvalidSignature)
	}
	if len(sig) != crypto.SignatureLength {
		return nil, fmt.Errorf("signature has %d bytes: %w", len(sig), domain.ErrInvalidSignature)
	}
	return sig, nil
}

// RecoverSigner returns the address that produced sig over digest. V may be 0, 1, 27 or 28.
func RecoverSigner(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature has %d bytes: %w", len(sig), domain.ErrInvalidSignature)
	}

	normalized := make([]byte, len(sig))
	copy(normalized, sig)
	switch v := normalized[crypto.RecoveryIDOffset]; v {
	case 0, 1:
	case 27, 28:
		normalized[crypto.RecoveryIDOffset] = v - 27
	default:
		return common.Address{}, fmt.Errorf("recovery id %d: %w", v, domain.ErrInvalidSignature)
	}

	pub, err := crypto.SigToPub(digest.Bytes(), normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", domain.ErrInvalidSignature)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// VerifySignature checks that sig over digest was produced by signer
func VerifySignature(digest common.Hash, signer common.Address, sig []byte) error {
	recovered, err := RecoverSigner(digest, sig)
	if err != nil {
		return err
	}
	if recovered != signer {
		return fmt.Errorf("recovered %s, expected %s: %w", recovered.Hex(), signer.Hex(), domain.ErrInvalidSignature)
	}
	return nil
}

// Package attestation collects attester signatures over the canonical issuance payload
package attestation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/pplp-engine/internal/canonical"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// Payload is the issuance authorization attesters sign. Its JCS form is stable regardless of field order.
type Payload struct {
	ActionHash    string `json:"action_hash"`
	Amount        string `json:"amount"`
	EvidenceHash  string `json:"evidence_hash"`
	Nonce         string `json:"nonce"`
	PolicyVersion string `json:"policy_version"`
	Recipient     string `json:"recipient"`
}

// PayloadOf builds the canonical payload of a mint request. Amount is in ledger base units.
func PayloadOf(request *schema.MintRequest) Payload {
	return NewPayload(request.ActionHash, request.AmountUnits.String(), request.EvidenceHash,
		request.Nonce, request.PolicyVersion, request.Recipient)
}

// NewPayload builds a payload, normalizing hashes and the recipient to lowercase hex
func NewPayload(actionHash, amountUnits, evidenceHash string, nonce int64, policyVersion, recipient string) Payload {
	return Payload{
		ActionHash:    strings.ToLower(actionHash),
		Amount:        amountUnits,
		EvidenceHash:  strings.ToLower(evidenceHash),
		Nonce:         strconv.FormatInt(nonce, 10),
		PolicyVersion: policyVersion,
		Recipient:     strings.ToLower(common.HexToAddress(recipient).Hex()),
	}
}

// Canonical returns the JCS bytes of the payload
func (p Payload) Canonical() ([]byte, error) {
	return canonical.Marshal(p)
}

// Digest returns keccak256 of the JCS bytes of the payload
func (p Payload) Digest() (common.Hash, error) {
	h, err := canonical.Hash(p)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash payload: %w", err)
	}
	return h, nil
}

// DigestHex returns the 0x-hex digest
func (p Payload) DigestHex() (string, error) {
	h, err := p.Digest()
	if err != nil {
		return "", err
	}
	return h.Hex(), nil
}

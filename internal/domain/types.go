package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Chain represents the settlement network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainBaseMainnet     Chain = "eip155:8453"
	ChainLocalDevnet     Chain = "eip155:31337"
)

// EVMChainID extracts the numeric EVM chain id from a CAIP-2 chain identifier
func (c Chain) EVMChainID() (int64, error) {
	parts := strings.SplitN(string(c), ":", 2)
	if len(parts) != 2 || parts[0] != "eip155" {
		return 0, fmt.Errorf("unsupported chain: %s", c)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %s: %w", c, err)
	}
	return id, nil
}

// ActionType identifies the kind of light action submitted
type ActionType string

const (
	ActionTypeDonation   ActionType = "DONATION"
	ActionTypeEducation  ActionType = "EDUCATION"
	ActionTypeVolunteer  ActionType = "VOLUNTEER"
	ActionTypeContent    ActionType = "CONTENT"
	ActionTypeMentorship ActionType = "MENTORSHIP"
	ActionTypeCommunity  ActionType = "COMMUNITY"
)

// ActionTypes lists every action type the engine knows how to score
var ActionTypes = []ActionType{
	ActionTypeDonation,
	ActionTypeEducation,
	ActionTypeVolunteer,
	ActionTypeContent,
	ActionTypeMentorship,
	ActionTypeCommunity,
}

// Valid reports whether the action type is known
func (t ActionType) Valid() bool {
	for _, known := range ActionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ActionStatus is the lifecycle state of an action
type ActionStatus string

const (
	ActionStatusPending  ActionStatus = "pending"
	ActionStatusScored   ActionStatus = "scored"
	ActionStatusMinted   ActionStatus = "minted"
	ActionStatusRejected ActionStatus = "rejected"
)

var actionTransitions = map[ActionStatus][]ActionStatus{
	ActionStatusPending: {ActionStatusScored, ActionStatusRejected},
	ActionStatusScored:  {ActionStatusMinted, ActionStatusRejected},
}

// CanTransitionTo reports whether moving from s to next is a forward transition
func (s ActionStatus) CanTransitionTo(next ActionStatus) bool {
	for _, allowed := range actionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// MintStatus is the lifecycle state of a mint request
type MintStatus string

const (
	MintStatusCollecting   MintStatus = "collecting"
	MintStatusThresholdMet MintStatus = "threshold_met"
	MintStatusSubmitted    MintStatus = "submitted"
	MintStatusConfirmed    MintStatus = "confirmed"
	MintStatusFailed       MintStatus = "failed"
)

var mintTransitions = map[MintStatus][]MintStatus{
	MintStatusCollecting:   {MintStatusThresholdMet, MintStatusFailed},
	MintStatusThresholdMet: {MintStatusSubmitted, MintStatusFailed},
	MintStatusSubmitted:    {MintStatusConfirmed, MintStatusFailed},
}

// CanTransitionTo reports whether moving from s to next is a forward transition
func (s MintStatus) CanTransitionTo(next MintStatus) bool {
	for _, allowed := range mintTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible
func (s MintStatus) Terminal() bool {
	return s == MintStatusConfirmed || s == MintStatusFailed
}

// Decision is the scoring verdict
type Decision string

const (
	DecisionPass Decision = "pass"
	DecisionFail Decision = "fail"
)

// Outcome is the polarity of an action's effect
type Outcome string

const (
	OutcomePositive Outcome = "positive"
	OutcomeNeutral  Outcome = "neutral"
	OutcomeNegative Outcome = "negative"
)

// Scope is the reach of an action's effect
type Scope string

const (
	ScopeIndividual Scope = "individual"
	ScopeCommunity  Scope = "community"
	ScopeRegional   Scope = "regional"
	ScopeGlobal     Scope = "global"
)

// Impact describes who benefited from an action and how
type Impact struct {
	Beneficiaries int     `json:"beneficiaries"`
	Outcome       Outcome `json:"outcome"`
	Scope         Scope   `json:"scope,omitempty"`
}

// Integrity carries caller-reported integrity signals. They are advisory only.
type Integrity struct {
	SourceVerified bool    `json:"source_verified"`
	AntiSybilScore float64 `json:"anti_sybil_score"`
}

// EvidenceInput is a piece of evidence attached to a submission
type EvidenceInput struct {
	Type        string         `json:"type"`
	ContentHash string         `json:"content_hash"`
	URI         *string        `json:"uri,omitempty"`
	Payload     []byte         `json:"payload,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ActionSubmission is the input accepted from the action submission interface
type ActionSubmission struct {
	PlatformID    string          `json:"platform_id"`
	ActionType    ActionType      `json:"action_type"`
	ActorID       string          `json:"actor_id"`
	TargetID      *string         `json:"target_id,omitempty"`
	WalletAddress *string         `json:"wallet_address,omitempty"`
	Metadata      []byte          `json:"metadata"`
	Impact        Impact          `json:"impact"`
	Integrity     Integrity       `json:"integrity"`
	Evidence      []EvidenceInput `json:"evidence,omitempty"`
}

// ReserveResult is the outcome of an epoch cap reservation
type ReserveResult string

const (
	ReserveAccepted    ReserveResult = "accepted"
	ReserveCapExceeded ReserveResult = "cap_exceeded"
)

// SignatureResult is the coordinator's answer to a signature submission
type SignatureResult string

const (
	SignaturePending      SignatureResult = "pending"
	SignatureThresholdMet SignatureResult = "threshold_met"
)

// NonceState is the persisted state of a used nonce
type NonceState string

const (
	NonceStateConsumed NonceState = "consumed"
	NonceStateRetired  NonceState = "retired"
)

// TxStatus is the settlement state of a submitted ledger transaction
type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusReverted  TxStatus = "reverted"
)

// EventType names an engine event published on the message bus
type EventType string

const (
	EventTypeActionSubmitted  EventType = "action.submitted"
	EventTypeActionScored     EventType = "action.scored"
	EventTypeMintCreated      EventType = "mint.created"
	EventTypeMintThresholdMet EventType = "mint.threshold_met"
	EventTypeMintSettled      EventType = "mint.settled"
)

// EngineEvent is the message published for every engine state change worth reacting to
type EngineEvent struct {
	Type          EventType `json:"type"`
	ActionID      string    `json:"action_id,omitempty"`
	MintRequestID string    `json:"mint_request_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/config"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// IssuanceABI is the part of the issuance contract the engine calls
const IssuanceABI = `[
	{"type":"function","name":"issue","stateMutability":"nonpayable","inputs":[
		{"name":"actionHash","type":"bytes32"},
		{"name":"recipient","type":"address"},
		{"name":"amount","type":"uint256"},
		{"name":"evidenceHash","type":"bytes32"},
		{"name":"nonce","type":"uint256"},
		{"name":"signatures","type":"bytes[]"}],"outputs":[]},
	{"type":"function","name":"allocationOf","stateMutability":"view","inputs":[
		{"name":"account","type":"address"}],"outputs":[
		{"name":"locked","type":"uint256"},
		{"name":"activated","type":"uint256"},
		{"name":"claimable","type":"uint256"}]},
	{"type":"function","name":"nonceUsed","stateMutability":"view","inputs":[
		{"name":"account","type":"address"},
		{"name":"nonce","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

// Config holds the EVM ledger configuration
type Config struct {
	ChainID         int64
	ContractAddress string
	// OperatorKey is the hex secp256k1 key of the submitting account
	OperatorKey string
	// GasLimit is used as is when set; otherwise gas is estimated per transaction
	GasLimit uint64
	// Confirmations is the number of blocks on top of the receipt before it is final
	Confirmations   uint64
	RPCInitialDelay time.Duration
	RPCMaxElapsed   time.Duration
}

// ConfigFromSettings converts the loaded ledger section into an adapter configuration
func ConfigFromSettings(c config.LedgerConfig) (Config, error) {
	chainID, err := c.ChainID.EVMChainID()
	if err != nil {
		return Config{}, fmt.Errorf("invalid ledger chain id: %w", err)
	}
	return Config{
		ChainID:         chainID,
		ContractAddress: c.ContractAddress,
		OperatorKey:     c.OperatorKey,
		GasLimit:        c.GasLimit,
		Confirmations:   c.Confirmations,
		RPCInitialDelay: c.RPCInitialDelay,
		RPCMaxElapsed:   c.RPCMaxElapsed,
	}, nil
}

type evmLedger struct {
	cfg      Config
	client   adapter.EthClient
	store    store.Store
	abi      abi.ABI
	contract common.Address
	key      *ecdsa.PrivateKey
	operator common.Address
	chainID  *big.Int
	clock    adapter.Clock
}

// NewEVMLedger creates a ledger adapter for the issuance contract.
// The node must report the configured chain id.
func NewEVMLedger(ctx context.Context, cfg Config, client adapter.EthClient, store store.Store, clock adapter.Clock) (Ledger, error) {
	parsed, err := abi.JSON(strings.NewReader(IssuanceABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse issuance ABI: %w", err)
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address: %s", cfg.ContractAddress)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.OperatorKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid operator key: %w", err)
	}
	if cfg.RPCInitialDelay <= 0 {
		cfg.RPCInitialDelay = 500 * time.Millisecond
	}
	if cfg.RPCMaxElapsed <= 0 {
		cfg.RPCMaxElapsed = time.Minute
	}

	l := &evmLedger{
		cfg:      cfg,
		client:   client,
		store:    store,
		abi:      parsed,
		contract: common.HexToAddress(cfg.ContractAddress),
		key:      key,
		operator: crypto.PubkeyToAddress(key.PublicKey),
		chainID:  big.NewInt(cfg.ChainID),
		clock:    clock,
	}

	var nodeChainID *big.Int
	if err := l.retry(ctx, "chain_id", func() error {
		var err error
		nodeChainID, err = client.ChainID(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	if nodeChainID.Cmp(l.chainID) != 0 {
		return nil, fmt.Errorf("node chain id %s does not match configured chain id %d", nodeChainID, cfg.ChainID)
	}

	return l, nil
}

func (l *evmLedger) Submit(ctx context.Context, req SubmitRequest) (*TxRef, error) {
	existing, err := l.store.GetLedgerSubmission(ctx, req.MintRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger submission: %w", err)
	}
	if existing != nil {
		if err := l.broadcast(ctx, existing); err != nil {
			return nil, err
		}
		return &TxRef{MintRequestID: req.MintRequestID, TxHash: existing.TxHash}, nil
	}

	used, err := l.NonceUsed(ctx, req.Recipient, req.Nonce)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, &domain.LedgerError{
			Kind:   domain.LedgerErrorNonceConsumed,
			Reason: fmt.Sprintf("nonce %d already used for %s", req.Nonce, req.Recipient),
		}
	}

	data, err := l.packIssue(req)
	if err != nil {
		return nil, &domain.LedgerError{Kind: domain.LedgerErrorSemantic, Reason: "invalid issue arguments", Err: err}
	}

	tx, err := l.buildTransaction(ctx, data)
	if err != nil {
		return nil, err
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}

	// The stored row wins when another worker submitted first
	stored, err := l.store.SaveLedgerSubmission(ctx, &schema.LedgerSubmission{
		MintRequestID: req.MintRequestID,
		TxHash:        tx.Hash().Hex(),
		RawTx:         hexutil.Encode(raw),
		SenderNonce:   int64(tx.Nonce()),
		SubmittedAt:   l.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save ledger submission: %w", err)
	}

	if err := l.broadcast(ctx, stored); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Submitted mint request to ledger",
		logger.MintRequestID(req.MintRequestID),
		logger.TxHash(stored.TxHash),
		zap.Int64("senderNonce", stored.SenderNonce))

	return &TxRef{MintRequestID: req.MintRequestID, TxHash: stored.TxHash}, nil
}

func (l *evmLedger) packIssue(req SubmitRequest) ([]byte, error) {
	actionHash, err := decodeBytes32(req.ActionHash)
	if err != nil {
		return nil, fmt.Errorf("action hash: %w", err)
	}
	evidenceHash, err := decodeBytes32(req.EvidenceHash)
	if err != nil {
		return nil, fmt.Errorf("evidence hash: %w", err)
	}
	if !common.IsHexAddress(req.Recipient) {
		return nil, fmt.Errorf("invalid recipient %s", req.Recipient)
	}
	if !req.AmountUnits.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if req.Nonce <= 0 {
		return nil, fmt.Errorf("nonce must be positive")
	}

	return l.abi.Pack("issue",
		actionHash,
		common.HexToAddress(req.Recipient),
		req.AmountUnits.BigInt(),
		evidenceHash,
		big.NewInt(req.Nonce),
		req.Signatures,
	)
}

// buildTransaction creates the signed EIP-1559 issue transaction from the operator account
func (l *evmLedger) buildTransaction(ctx context.Context, data []byte) (*types.Transaction, error) {
	var (
		senderNonce uint64
		tip         *big.Int
		head        *types.Header
		gas         = l.cfg.GasLimit
	)

	if err := l.retry(ctx, "pending_nonce", func() error {
		var err error
		senderNonce, err = l.client.PendingNonceAt(ctx, l.operator)
		return err
	}); err != nil {
		return nil, err
	}
	if err := l.retry(ctx, "gas_tip", func() error {
		var err error
		tip, err = l.client.SuggestGasTipCap(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	if err := l.retry(ctx, "latest_header", func() error {
		var err error
		head, err = l.client.HeaderByNumber(ctx, nil)
		return err
	}); err != nil {
		return nil, err
	}

	if gas == 0 {
		if err := l.retry(ctx, "estimate_gas", func() error {
			var err error
			gas, err = l.client.EstimateGas(ctx, ethereum.CallMsg{From: l.operator, To: &l.contract, Data: data})
			return err
		}); err != nil {
			return nil, err
		}
	}

	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   l.chainID,
		Nonce:     senderNonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &l.contract,
		Value:     big.NewInt(0),
		Data:      data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(l.chainID), l.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}

// broadcast sends a stored transaction. A node that already knows it is not an error.
func (l *evmLedger) broadcast(ctx context.Context, submission *schema.LedgerSubmission) error {
	tx, err := decodeTransaction(submission.RawTx)
	if err != nil {
		return err
	}
	return l.retry(ctx, "send_transaction", func() error {
		err := l.client.SendTransaction(ctx, tx)
		if err != nil && alreadyBroadcast(err) {
			return nil
		}
		return err
	})
}

func (l *evmLedger) Poll(ctx context.Context, ref TxRef) (*PollResult, error) {
	var receipt *types.Receipt
	err := l.retry(ctx, "receipt", func() error {
		var err error
		receipt, err = l.client.TransactionReceipt(ctx, common.HexToHash(ref.TxHash))
		if errors.Is(err, ethereum.NotFound) {
			receipt = nil
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return &PollResult{Status: domain.TxStatusPending}, nil
	}

	if receipt.Status == types.ReceiptStatusFailed {
		return &PollResult{
			Status:      domain.TxStatusReverted,
			BlockNumber: receipt.BlockNumber.Uint64(),
			Failure:     l.revertReason(ctx, ref, receipt),
		}, nil
	}

	if l.cfg.Confirmations > 0 {
		var latest uint64
		if err := l.retry(ctx, "block_number", func() error {
			var err error
			latest, err = l.client.BlockNumber(ctx)
			return err
		}); err != nil {
			return nil, err
		}
		if latest < receipt.BlockNumber.Uint64()+l.cfg.Confirmations {
			return &PollResult{Status: domain.TxStatusPending, BlockNumber: receipt.BlockNumber.Uint64()}, nil
		}
	}

	return &PollResult{Status: domain.TxStatusConfirmed, BlockNumber: receipt.BlockNumber.Uint64()}, nil
}

// revertReason replays a reverted transaction at its block to read the revert reason
func (l *evmLedger) revertReason(ctx context.Context, ref TxRef, receipt *types.Receipt) *domain.LedgerError {
	unknown := &domain.LedgerError{Kind: domain.LedgerErrorSemantic, Reason: "transaction reverted"}

	submission, err := l.store.GetLedgerSubmission(ctx, ref.MintRequestID)
	if err != nil || submission == nil {
		return unknown
	}
	tx, err := decodeTransaction(submission.RawTx)
	if err != nil {
		return unknown
	}

	_, err = l.client.CallContract(ctx, ethereum.CallMsg{
		From: l.operator,
		To:   tx.To(),
		Gas:  tx.Gas(),
		Data: tx.Data(),
	}, receipt.BlockNumber)
	if err == nil {
		return unknown
	}
	if reason, ok := revertMessage(err); ok {
		return classifyRevert(reason, err)
	}
	return unknown
}

func (l *evmLedger) NonceUsed(ctx context.Context, recipient string, nonce int64) (bool, error) {
	if !common.IsHexAddress(recipient) {
		return false, &domain.LedgerError{Kind: domain.LedgerErrorSemantic, Reason: "invalid recipient " + recipient}
	}

	out, err := l.call(ctx, "nonceUsed", common.HexToAddress(recipient), big.NewInt(nonce))
	if err != nil {
		return false, err
	}
	used, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected nonceUsed output %T", out[0])
	}
	return used, nil
}

func (l *evmLedger) Allocation(ctx context.Context, recipient string) (*Allocation, error) {
	if !common.IsHexAddress(recipient) {
		return nil, domain.NewValidationError("recipient", "must be a 20-byte hex address")
	}

	out, err := l.call(ctx, "allocationOf", common.HexToAddress(recipient))
	if err != nil {
		return nil, err
	}
	if len(out) != 3 {
		return nil, fmt.Errorf("unexpected allocationOf output length %d", len(out))
	}

	balances := make([]decimal.Decimal, 3)
	for i, v := range out {
		n, ok := v.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("unexpected allocationOf output %T", v)
		}
		balances[i] = decimal.NewFromBigInt(n, 0)
	}

	return &Allocation{
		Recipient: strings.ToLower(common.HexToAddress(recipient).Hex()),
		Locked:    balances[0],
		Activated: balances[1],
		Claimable: balances[2],
	}, nil
}

// call executes a read-only contract method at the latest block
func (l *evmLedger) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := l.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	var result []byte
	if err := l.retry(ctx, method, func() error {
		var err error
		result, err = l.client.CallContract(ctx, ethereum.CallMsg{To: &l.contract, Data: data}, nil)
		return err
	}); err != nil {
		return nil, err
	}

	out, err := l.abi.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return out, nil
}

// retry runs an RPC operation with exponential backoff. Reverts are permanent and
// come back as semantic or nonce_consumed ledger errors; exhausted retries come back as transient.
func (l *evmLedger) retry(ctx context.Context, op string, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.cfg.RPCInitialDelay
	b.MaxElapsedTime = l.cfg.RPCMaxElapsed
	b.Multiplier = 2.0

	operation := func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if reason, ok := revertMessage(err); ok {
			return backoff.Permanent(classifyRevert(reason, err))
		}
		return err
	}

	var attempts int
	notify := func(err error, next time.Duration) {
		attempts++
		logger.WarnCtx(ctx, "Ledger RPC failed, retrying",
			zap.String("operation", op),
			zap.Error(err),
			zap.Int("attempt", attempts),
			zap.Duration("next_retry_in", next))
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
	if err == nil {
		return nil
	}

	var ledgerErr *domain.LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr
	}
	return &domain.LedgerError{
		Kind:   domain.LedgerErrorTransient,
		Reason: fmt.Sprintf("%s failed after %d retries", op, attempts),
		Err:    err,
	}
}

// revertMessage extracts the revert reason of an execution error
func revertMessage(err error) (string, bool) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decodeErr := hexutil.Decode(data); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return reason, true
				}
			}
		}
	}

	msg := err.Error()
	if idx := strings.Index(msg, "execution reverted"); idx >= 0 {
		reason := strings.TrimSpace(strings.TrimPrefix(msg[idx+len("execution reverted"):], ":"))
		if reason == "" {
			reason = "execution reverted"
		}
		return reason, true
	}
	return "", false
}

// classifyRevert maps a revert reason to a permanent ledger error
func classifyRevert(reason string, err error) *domain.LedgerError {
	kind := domain.LedgerErrorSemantic
	if strings.Contains(strings.ToLower(reason), "nonce") {
		kind = domain.LedgerErrorNonceConsumed
	}
	return &domain.LedgerError{Kind: kind, Reason: reason, Err: err}
}

// alreadyBroadcast reports node answers meaning the transaction is already in the pool or mined
func alreadyBroadcast(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already known") ||
		strings.Contains(msg, "nonce too low") ||
		strings.Contains(msg, "known transaction")
}

func decodeTransaction(rawHex string) (*types.Transaction, error) {
	raw, err := hexutil.Decode(rawHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored transaction: %w", err)
	}
	var tx types.Transaction
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("failed to decode stored transaction: %w", err)
	}
	return &tx, nil
}

func decodeBytes32(s string) ([32]byte, error) {
	var out [32]byte
	raw, err := hexutil.Decode(s)
	if err != nil {
		return out, err
	}
	if len(raw) != 32 {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

package t9n

import (
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/t9n/core"
	"github.com/NethermindEth/t9n/core/crypto"
	"github.com/NethermindEth/t9n/core/felt"
	"github.com/NethermindEth/t9n/metrics"
	"github.com/NethermindEth/t9n/utils"
)

// State is the stage a validation reached.
type State uint8

const (
	StateUnparsed State = iota
	StateTyped
	StateHashed
	StateVerified
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateUnparsed:
		return "UNPARSED"
	case StateTyped:
		return "TYPED"
	case StateHashed:
		return "HASHED"
	case StateVerified:
		return "VERIFIED"
	case StateRejected:
		return "REJECTED"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of a validation. When validation fails the result
// still carries everything computed before the failure, with State set to
// StateRejected.
type Result struct {
	Valid     bool                 `json:"valid"`
	Hash      *felt.Felt           `json:"hash,omitempty"`
	PublicKey *felt.Felt           `json:"public_key,omitempty"`
	Recovered bool                 `json:"recovered"`
	Type      core.TransactionType `json:"type,omitempty"`
	Version   uint8                `json:"version"`
	State     State                `json:"state"`
}

// recoveryHint is the y-parity assumed when no public key is configured
var recoveryHint = felt.NewFromUint64(1)

type Validator struct {
	chainID         *felt.Felt
	publicKey       *felt.Felt
	query           bool
	protocolVersion *semver.Version
	log             utils.SimpleLogger
	metrics         *metrics.Validation
}

func New(chainID *felt.Felt) *Validator {
	return &Validator{
		chainID:         chainID,
		protocolVersion: core.LatestVer,
		log:             utils.NewNopLogger(),
		metrics:         metrics.NewValidation(metrics.VoidFactory()),
	}
}

// WithPublicKey sets the key signatures are checked against. Without one the
// key is recovered from the signature, which proves nothing about the signer.
func (v *Validator) WithPublicKey(publicKey *felt.Felt) *Validator {
	v.publicKey = publicKey
	return v
}

// WithQuery selects the query-only hash variant used for simulations
func (v *Validator) WithQuery(query bool) *Validator {
	v.query = query
	return v
}

func (v *Validator) WithProtocolVersion(protocolVersion *semver.Version) *Validator {
	v.protocolVersion = protocolVersion
	return v
}

func (v *Validator) WithLogger(log utils.SimpleLogger) *Validator {
	v.log = log
	return v
}

func (v *Validator) WithMetrics(m *metrics.Validation) *Validator {
	v.metrics = m
	return v
}

// ValidateFile reads a JSON transaction record from path and validates it
func (v *Validator) ValidateFile(path string) (*Result, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		res := &Result{State: StateUnparsed}
		err = fmt.Errorf("read transaction: %w", err)
		v.finish(res, err, start)
		return res, err
	}
	return v.validate(data, start)
}

// Validate decodes, hashes and verifies a JSON transaction record
func (v *Validator) Validate(data []byte) (*Result, error) {
	return v.validate(data, time.Now())
}

func (v *Validator) validate(data []byte, start time.Time) (*Result, error) {
	res := &Result{State: StateUnparsed}

	err := v.advance(res, data, StateVerified)
	v.finish(res, err, start)
	return res, err
}

// ValidateTransaction hashes and verifies an already typed transaction
func (v *Validator) ValidateTransaction(tx core.Transaction) (*Result, error) {
	start := time.Now()
	res := &Result{State: StateUnparsed}

	err := v.fromTyped(res, tx, StateVerified)
	v.finish(res, err, start)
	return res, err
}

// Hash decodes and hashes a JSON transaction record without looking at its signature
func (v *Validator) Hash(data []byte) (*Result, error) {
	res := &Result{State: StateUnparsed}
	if err := v.advance(res, data, StateHashed); err != nil {
		res.State = StateRejected
		return res, err
	}
	return res, nil
}

func (v *Validator) advance(res *Result, data []byte, target State) error {
	tx, err := ParseTransaction(data, v.protocolVersion)
	if err != nil {
		return err
	}
	return v.fromTyped(res, tx, target)
}

func (v *Validator) fromTyped(res *Result, tx core.Transaction, target State) error {
	if tx == nil {
		return core.ErrUnknownTransaction
	}
	res.Type, res.Version, res.State = tx.Type(), tx.Version(), StateTyped
	v.log.Debugw("Transaction typed", "type", res.Type, "version", res.Version)

	hash, err := core.TransactionHash(tx, v.chainID, v.query)
	if err != nil {
		return err
	}
	res.Hash, res.State = hash, StateHashed
	v.log.Debugw("Transaction hashed", "hash", hash, "query", v.query)
	if target == StateHashed {
		return nil
	}

	sig := tx.Signature()
	if len(sig) != 2 {
		return fmt.Errorf("%w: got %d", ErrSignatureLength, len(sig))
	}
	if sig[0] == nil || sig[1] == nil {
		return fmt.Errorf("%w: nil signature element", ErrMalformedTransaction)
	}
	signature := &crypto.Signature{R: *sig[0], S: *sig[1]}

	publicKey := v.publicKey
	if publicKey == nil {
		if publicKey, err = crypto.Recover(hash, signature, recoveryHint); err != nil {
			return fmt.Errorf("recover public key: %w", err)
		}
		res.Recovered = true
	}
	res.PublicKey = publicKey

	valid, err := crypto.Verify(publicKey, hash, &signature.R, &signature.S)
	if err != nil {
		return err
	}
	res.Valid, res.State = valid, StateVerified
	return nil
}

func (v *Validator) finish(res *Result, err error, start time.Time) {
	verdict := metrics.VerdictValid
	switch {
	case err != nil:
		res.State = StateRejected
		verdict = metrics.VerdictRejected
		v.log.Debugw("Transaction rejected", "err", err)
	case !res.Valid:
		verdict = metrics.VerdictInvalid
		v.log.Debugw("Signature did not verify", "hash", res.Hash, "publicKey", res.PublicKey)
	default:
		v.log.Debugw("Signature verified", "hash", res.Hash, "publicKey", res.PublicKey)
	}
	v.metrics.Observe(res.Type.String(), fmt.Sprintf("0x%x", res.Version), verdict, time.Since(start))
}

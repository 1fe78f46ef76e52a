package core

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/t9n/core/felt"
)

var ErrUnknownTransactionType = errors.New("unknown transaction type")

type TransactionType uint8

const (
	TxnInvoke TransactionType = iota + 1
	TxnDeclare
	TxnDeployAccount
)

func (t TransactionType) String() string {
	switch t {
	case TxnInvoke:
		return "INVOKE"
	case TxnDeclare:
		return "DECLARE"
	case TxnDeployAccount:
		return "DEPLOY_ACCOUNT"
	default:
		return "UNKNOWN"
	}
}

func (t TransactionType) MarshalText() ([]byte, error) {
	switch t {
	case TxnInvoke, TxnDeclare, TxnDeployAccount:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTransactionType, t)
	}
}

// UnmarshalText accepts the legacy INVOKE_FUNCTION name as an alias of INVOKE
func (t *TransactionType) UnmarshalText(data []byte) error {
	switch string(data) {
	case "INVOKE", "INVOKE_FUNCTION":
		*t = TxnInvoke
	case "DECLARE":
		*t = TxnDeclare
	case "DEPLOY_ACCOUNT":
		*t = TxnDeployAccount
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTransactionType, data)
	}
	return nil
}

// Transaction is one of the supported (kind, version) shapes. The set is
// closed: only the types in this file implement it.
type Transaction interface {
	Type() TransactionType
	Version() uint8
	Signature() []*felt.Felt
	transaction()
}

var (
	_ Transaction = (*InvokeTransactionV0)(nil)
	_ Transaction = (*InvokeTransactionV1)(nil)
	_ Transaction = (*InvokeTransactionV3)(nil)
	_ Transaction = (*DeclareTransactionV0)(nil)
	_ Transaction = (*DeclareTransactionV1)(nil)
	_ Transaction = (*DeclareTransactionV2)(nil)
	_ Transaction = (*DeclareTransactionV3)(nil)
	_ Transaction = (*DeployAccountTransactionV1)(nil)
	_ Transaction = (*DeployAccountTransactionV3)(nil)
)

// V3Fields are the fee and data availability settings introduced with v3 transactions.
type V3Fields struct {
	Tip            uint64
	ResourceBounds ResourceBoundsMap
	PaymasterData  []*felt.Felt
	NonceDAMode    DataAvailabilityMode
	FeeDAMode      DataAvailabilityMode
}

type InvokeTransactionV0 struct {
	ContractAddress      *felt.Felt
	EntryPointSelector   *felt.Felt
	CallData             []*felt.Felt
	MaxFee               *felt.Felt
	TransactionSignature []*felt.Felt
}

type InvokeTransactionV1 struct {
	SenderAddress        *felt.Felt
	CallData             []*felt.Felt
	MaxFee               *felt.Felt
	Nonce                *felt.Felt
	TransactionSignature []*felt.Felt
}

type InvokeTransactionV3 struct {
	V3Fields
	SenderAddress         *felt.Felt
	CallData              []*felt.Felt
	Nonce                 *felt.Felt
	AccountDeploymentData []*felt.Felt
	TransactionSignature  []*felt.Felt
}

type DeclareTransactionV0 struct {
	SenderAddress        *felt.Felt
	ClassHash            *felt.Felt
	MaxFee               *felt.Felt
	TransactionSignature []*felt.Felt
}

type DeclareTransactionV1 struct {
	SenderAddress        *felt.Felt
	ClassHash            *felt.Felt
	MaxFee               *felt.Felt
	Nonce                *felt.Felt
	TransactionSignature []*felt.Felt
}

type DeclareTransactionV2 struct {
	SenderAddress *felt.Felt
	// The hash of the Sierra class.
	ClassHash *felt.Felt
	// The hash of the compiled (CASM) class.
	CompiledClassHash    *felt.Felt
	MaxFee               *felt.Felt
	Nonce                *felt.Felt
	TransactionSignature []*felt.Felt
}

type DeclareTransactionV3 struct {
	V3Fields
	SenderAddress         *felt.Felt
	ClassHash             *felt.Felt
	CompiledClassHash     *felt.Felt
	Nonce                 *felt.Felt
	AccountDeploymentData []*felt.Felt
	TransactionSignature  []*felt.Felt
}

type DeployAccountTransactionV1 struct {
	ClassHash            *felt.Felt
	ContractAddressSalt  *felt.Felt
	ConstructorCallData  []*felt.Felt
	MaxFee               *felt.Felt
	Nonce                *felt.Felt
	TransactionSignature []*felt.Felt
}

type DeployAccountTransactionV3 struct {
	V3Fields
	ClassHash            *felt.Felt
	ContractAddressSalt  *felt.Felt
	ConstructorCallData  []*felt.Felt
	Nonce                *felt.Felt
	TransactionSignature []*felt.Felt
}

func (*InvokeTransactionV0) Type() TransactionType        { return TxnInvoke }
func (*InvokeTransactionV1) Type() TransactionType        { return TxnInvoke }
func (*InvokeTransactionV3) Type() TransactionType        { return TxnInvoke }
func (*DeclareTransactionV0) Type() TransactionType       { return TxnDeclare }
func (*DeclareTransactionV1) Type() TransactionType       { return TxnDeclare }
func (*DeclareTransactionV2) Type() TransactionType       { return TxnDeclare }
func (*DeclareTransactionV3) Type() TransactionType       { return TxnDeclare }
func (*DeployAccountTransactionV1) Type() TransactionType { return TxnDeployAccount }
func (*DeployAccountTransactionV3) Type() TransactionType { return TxnDeployAccount }

func (*InvokeTransactionV0) Version() uint8        { return 0 }
func (*InvokeTransactionV1) Version() uint8        { return 1 }
func (*InvokeTransactionV3) Version() uint8        { return 3 }
func (*DeclareTransactionV0) Version() uint8       { return 0 }
func (*DeclareTransactionV1) Version() uint8       { return 1 }
func (*DeclareTransactionV2) Version() uint8       { return 2 }
func (*DeclareTransactionV3) Version() uint8       { return 3 }
func (*DeployAccountTransactionV1) Version() uint8 { return 1 }
func (*DeployAccountTransactionV3) Version() uint8 { return 3 }

func (tx *InvokeTransactionV0) Signature() []*felt.Felt        { return tx.TransactionSignature }
func (tx *InvokeTransactionV1) Signature() []*felt.Felt        { return tx.TransactionSignature }
func (tx *InvokeTransactionV3) Signature() []*felt.Felt        { return tx.TransactionSignature }
func (tx *DeclareTransactionV0) Signature() []*felt.Felt       { return tx.TransactionSignature }
func (tx *DeclareTransactionV1) Signature() []*felt.Felt       { return tx.TransactionSignature }
func (tx *DeclareTransactionV2) Signature() []*felt.Felt       { return tx.TransactionSignature }
func (tx *DeclareTransactionV3) Signature() []*felt.Felt       { return tx.TransactionSignature }
func (tx *DeployAccountTransactionV1) Signature() []*felt.Felt { return tx.TransactionSignature }
func (tx *DeployAccountTransactionV3) Signature() []*felt.Felt { return tx.TransactionSignature }

func (*InvokeTransactionV0) transaction()        {}
func (*InvokeTransactionV1) transaction()        {}
func (*InvokeTransactionV3) transaction()        {}
func (*DeclareTransactionV0) transaction()       {}
func (*DeclareTransactionV1) transaction()       {}
func (*DeclareTransactionV2) transaction()       {}
func (*DeclareTransactionV3) transaction()       {}
func (*DeployAccountTransactionV1) transaction() {}
func (*DeployAccountTransactionV3) transaction() {}

// Address returns the address the account will be deployed at
func (tx *DeployAccountTransactionV1) Address() *felt.Felt {
	return ContractAddress(&felt.Zero, tx.ClassHash, tx.ContractAddressSalt, tx.ConstructorCallData)
}

// Address returns the address the account will be deployed at
func (tx *DeployAccountTransactionV3) Address() *felt.Felt {
	return ContractAddress(&felt.Zero, tx.ClassHash, tx.ContractAddressSalt, tx.ConstructorCallData)
}

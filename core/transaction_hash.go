package core

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/t9n/core/crypto"
	"github.com/NethermindEth/t9n/core/felt"
)

var ErrUnknownTransaction = errors.New("unknown transaction")

// TransactionHash computes the canonical hash of a transaction on the given
// chain. When query is set the version is offset by 2^128, which yields the
// hash of the query-only variant used for simulation and fee estimation.
func TransactionHash(transaction Transaction, chainID *felt.Felt, query bool) (*felt.Felt, error) {
	if transaction == nil {
		return nil, ErrUnknownTransaction
	}
	version := VersionFelt(transaction.Version(), query)

	switch t := transaction.(type) {
	case *InvokeTransactionV0:
		return invokeV0Hash(t, version, chainID), nil
	case *InvokeTransactionV1:
		return invokeV1Hash(t, version, chainID), nil
	case *InvokeTransactionV3:
		return invokeV3Hash(t, version, chainID)
	case *DeclareTransactionV0:
		return declareV0Hash(t, version, chainID), nil
	case *DeclareTransactionV1:
		return declareV1Hash(t, version, chainID), nil
	case *DeclareTransactionV2:
		return declareV2Hash(t, version, chainID), nil
	case *DeclareTransactionV3:
		return declareV3Hash(t, version, chainID)
	case *DeployAccountTransactionV1:
		return deployAccountV1Hash(t, version, chainID), nil
	case *DeployAccountTransactionV3:
		return deployAccountV3Hash(t, version, chainID)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownTransaction, transaction)
	}
}

func invokeV0Hash(i *InvokeTransactionV0, version, chainID *felt.Felt) *felt.Felt {
	return crypto.PedersenArray(
		InvokePrefix,
		version,
		i.ContractAddress,
		i.EntryPointSelector,
		crypto.PedersenArray(i.CallData...),
		i.MaxFee,
		chainID,
	)
}

func invokeV1Hash(i *InvokeTransactionV1, version, chainID *felt.Felt) *felt.Felt {
	return crypto.PedersenArray(
		InvokePrefix,
		version,
		i.SenderAddress,
		&felt.Zero,
		crypto.PedersenArray(i.CallData...),
		i.MaxFee,
		chainID,
		i.Nonce,
	)
}

func declareV0Hash(d *DeclareTransactionV0, version, chainID *felt.Felt) *felt.Felt {
	return crypto.PedersenArray(
		DeclarePrefix,
		version,
		d.SenderAddress,
		&felt.Zero,
		crypto.PedersenArray(),
		d.MaxFee,
		chainID,
		d.ClassHash,
	)
}

func declareV1Hash(d *DeclareTransactionV1, version, chainID *felt.Felt) *felt.Felt {
	return crypto.PedersenArray(
		DeclarePrefix,
		version,
		d.SenderAddress,
		&felt.Zero,
		crypto.PedersenArray(d.ClassHash),
		d.MaxFee,
		chainID,
		d.Nonce,
	)
}

func declareV2Hash(d *DeclareTransactionV2, version, chainID *felt.Felt) *felt.Felt {
	return crypto.PedersenArray(
		DeclarePrefix,
		version,
		d.SenderAddress,
		&felt.Zero,
		crypto.PedersenArray(d.ClassHash),
		d.MaxFee,
		chainID,
		d.Nonce,
		d.CompiledClassHash,
	)
}

func deployAccountV1Hash(d *DeployAccountTransactionV1, version, chainID *felt.Felt) *felt.Felt {
	callData := []*felt.Felt{d.ClassHash, d.ContractAddressSalt}
	callData = append(callData, d.ConstructorCallData...)

	return crypto.PedersenArray(
		DeployAccountPrefix,
		version,
		d.Address(),
		&felt.Zero,
		crypto.PedersenArray(callData...),
		d.MaxFee,
		chainID,
		d.Nonce,
	)
}

// v3CommonElements returns the elements every v3 transaction hash starts with
func v3CommonElements(prefix, version, address *felt.Felt, fields *V3Fields, chainID, nonce *felt.Felt) ([]*felt.Felt, error) {
	feeHash, err := tipAndResourcesHash(fields.Tip, &fields.ResourceBounds)
	if err != nil {
		return nil, err
	}

	return []*felt.Felt{
		prefix,
		version,
		address,
		feeHash,
		crypto.PoseidonArray(fields.PaymasterData...),
		chainID,
		nonce,
		EncodeDAModes(fields.NonceDAMode, fields.FeeDAMode),
	}, nil
}

func invokeV3Hash(i *InvokeTransactionV3, version, chainID *felt.Felt) (*felt.Felt, error) {
	elems, err := v3CommonElements(InvokePrefix, version, i.SenderAddress, &i.V3Fields, chainID, i.Nonce)
	if err != nil {
		return nil, err
	}
	return crypto.PoseidonArray(append(elems,
		crypto.PoseidonArray(i.AccountDeploymentData...),
		crypto.PoseidonArray(i.CallData...),
	)...), nil
}

func declareV3Hash(d *DeclareTransactionV3, version, chainID *felt.Felt) (*felt.Felt, error) {
	elems, err := v3CommonElements(DeclarePrefix, version, d.SenderAddress, &d.V3Fields, chainID, d.Nonce)
	if err != nil {
		return nil, err
	}
	return crypto.PoseidonArray(append(elems,
		crypto.PoseidonArray(d.AccountDeploymentData...),
		d.ClassHash,
		d.CompiledClassHash,
	)...), nil
}

func deployAccountV3Hash(d *DeployAccountTransactionV3, version, chainID *felt.Felt) (*felt.Felt, error) {
	elems, err := v3CommonElements(DeployAccountPrefix, version, d.Address(), &d.V3Fields, chainID, d.Nonce)
	if err != nil {
		return nil, err
	}
	return crypto.PoseidonArray(append(elems,
		crypto.PoseidonArray(d.ConstructorCallData...),
		d.ClassHash,
		d.ContractAddressSalt,
	)...), nil
}

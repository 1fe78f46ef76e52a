package t9n

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NethermindEth/t9n/core"
	"github.com/NethermindEth/t9n/core/felt"
)

// The wire shapes below follow the field names of the Starknet JSON-RPC
// broadcasted transaction schema.

type header struct {
	Type    string     `json:"type" validate:"required"`
	Version *felt.Felt `json:"version" validate:"required"`
}

type wireTransaction interface {
	toCore(hashL1DataGas bool) (core.Transaction, error)
}

type shapeKey struct {
	txType  core.TransactionType
	version uint8
}

var shapes = map[shapeKey]func() wireTransaction{
	{core.TxnInvoke, 0}:        func() wireTransaction { return new(invokeV0) },
	{core.TxnInvoke, 1}:        func() wireTransaction { return new(invokeV1) },
	{core.TxnInvoke, 3}:        func() wireTransaction { return new(invokeV3) },
	{core.TxnDeclare, 0}:       func() wireTransaction { return new(declareV0) },
	{core.TxnDeclare, 1}:       func() wireTransaction { return new(declareV1) },
	{core.TxnDeclare, 2}:       func() wireTransaction { return new(declareV2) },
	{core.TxnDeclare, 3}:       func() wireTransaction { return new(declareV3) },
	{core.TxnDeployAccount, 1}: func() wireTransaction { return new(deployAccountV1) },
	{core.TxnDeployAccount, 3}: func() wireTransaction { return new(deployAccountV3) },
}

type resourceBounds struct {
	MaxAmount       string `json:"max_amount" validate:"required"`
	MaxPricePerUnit string `json:"max_price_per_unit" validate:"required"`
}

func (b *resourceBounds) toCore(resource core.Resource) (core.ResourceBounds, error) {
	digits, ok := strings.CutPrefix(b.MaxAmount, "0x")
	if !ok {
		return core.ResourceBounds{}, &ResourceBoundsError{
			Resource: resource.String(),
			Field:    "max_amount",
			Err:      fmt.Errorf("missing 0x prefix in %q", b.MaxAmount),
		}
	}
	amount, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return core.ResourceBounds{}, &ResourceBoundsError{Resource: resource.String(), Field: "max_amount", Err: err}
	}

	price, err := core.ParseUint128(b.MaxPricePerUnit)
	if err != nil {
		return core.ResourceBounds{}, &ResourceBoundsError{Resource: resource.String(), Field: "max_price_per_unit", Err: err}
	}
	return core.ResourceBounds{MaxAmount: amount, MaxPricePerUnit: price}, nil
}

type resourceBoundsMap struct {
	L1Gas     *resourceBounds `json:"l1_gas" validate:"required"`
	L2Gas     *resourceBounds `json:"l2_gas" validate:"required"`
	L1DataGas *resourceBounds `json:"l1_data_gas"`
}

func (m *resourceBoundsMap) toCore(hashL1DataGas bool) (core.ResourceBoundsMap, error) {
	var (
		bounds core.ResourceBoundsMap
		err    error
	)
	if bounds.L1Gas, err = m.L1Gas.toCore(core.ResourceL1Gas); err != nil {
		return bounds, err
	}
	if bounds.L2Gas, err = m.L2Gas.toCore(core.ResourceL2Gas); err != nil {
		return bounds, err
	}
	if m.L1DataGas != nil && hashL1DataGas {
		l1DataGas, err := m.L1DataGas.toCore(core.ResourceL1DataGas)
		if err != nil {
			return bounds, err
		}
		bounds.L1DataGas = &l1DataGas
	}
	return bounds, nil
}

type v3Fields struct {
	Tip            *felt.Felt                 `json:"tip" validate:"required,felt_uint64"`
	ResourceBounds *resourceBoundsMap         `json:"resource_bounds" validate:"required"`
	PaymasterData  []*felt.Felt               `json:"paymaster_data" validate:"required,dive,required"`
	NonceDAMode    *core.DataAvailabilityMode `json:"nonce_data_availability_mode" validate:"required"`
	FeeDAMode      *core.DataAvailabilityMode `json:"fee_data_availability_mode" validate:"required"`
}

func (f *v3Fields) toCore(hashL1DataGas bool) (core.V3Fields, error) {
	bounds, err := f.ResourceBounds.toCore(hashL1DataGas)
	if err != nil {
		return core.V3Fields{}, err
	}
	return core.V3Fields{
		Tip:            f.Tip.Uint64(),
		ResourceBounds: bounds,
		PaymasterData:  f.PaymasterData,
		NonceDAMode:    *f.NonceDAMode,
		FeeDAMode:      *f.FeeDAMode,
	}, nil
}

type invokeV0 struct {
	ContractAddress    *felt.Felt   `json:"contract_address" validate:"required"`
	EntryPointSelector *felt.Felt   `json:"entry_point_selector" validate:"required"`
	CallData           []*felt.Felt `json:"calldata" validate:"required,dive,required"`
	MaxFee             *felt.Felt   `json:"max_fee" validate:"required"`
	Signature          []*felt.Felt `json:"signature" validate:"omitempty,dive,required"`
}

func (w *invokeV0) toCore(bool) (core.Transaction, error) {
	return &core.InvokeTransactionV0{
		ContractAddress:      w.ContractAddress,
		EntryPointSelector:   w.EntryPointSelector,
		CallData:             w.CallData,
		MaxFee:               w.MaxFee,
		TransactionSignature: w.Signature,
	}, nil
}

type invokeV1 struct {
	SenderAddress *felt.Felt   `json:"sender_address" validate:"required"`
	CallData      []*felt.Felt `json:"calldata" validate:"required,dive,required"`
	MaxFee        *felt.Felt   `json:"max_fee" validate:"required"`
	Nonce         *felt.Felt   `json:"nonce" validate:"required"`
	Signature     []*felt.Felt `json:"signature" validate:"omitempty,dive,required"`
}

func (w *invokeV1) toCore(bool) (core.Transaction, error) {
	return &core.InvokeTransactionV1{
		SenderAddress:        w.SenderAddress,
		CallData:             w.CallData,
		MaxFee:               w.MaxFee,
		Nonce:                w.Nonce,
		TransactionSignature: w.Signature,
	}, nil
}

type invokeV3 struct {
	v3Fields
	SenderAddress         *felt.Felt   `json:"sender_address" validate:"required"`
	CallData              []*felt.Felt `json:"calldata" validate:"required,dive,required"`
	Nonce                 *felt.Felt   `json:"nonce" validate:"required"`
	AccountDeploymentData []*felt.Felt `json:"account_deployment_data" validate:"required,dive,required"`
	Signature             []*felt.Felt `json:"signature" validate:"omitempty,dive,required"`
}

func (w *invokeV3) toCore(hashL1DataGas bool) (core.Transaction, error) {
	fields, err := w.v3Fields.toCore(hashL1DataGas)
	if err != nil {
		return nil, err
	}
	return &core.InvokeTransactionV3{
		V3Fields:              fields,
		SenderAddress:         w.SenderAddress,
		CallData:              w.CallData,
		Nonce:                 w.Nonce,
		AccountDeploymentData: w.AccountDeploymentData,
		TransactionSignature:  w.Signature,
	}, nil
}

type declareV0 struct {
	SenderAddress *felt.Felt   `json:"sender_address" validate:"required"`
	ClassHash     *felt.Felt   `json:"class_hash" validate:"required"`
	MaxFee        *felt.Felt   `json:"max_fee" validate:"required"`
	Signature     []*felt.Felt `json:"signature" validate:"omitempty,dive,required"`
}

func (w *declareV0) toCore(bool) (core.Transaction, error) {
	return &core.DeclareTransactionV0{
		SenderAddress:        w.SenderAddress,
		ClassHash:            w.ClassHash,
		MaxFee:               w.MaxFee,
		TransactionSignature: w.Signature,
	}, nil
}

type declareV1 struct {
	declareV0
	Nonce *felt.Felt `json:"nonce" validate:"required"`
}

func (w *declareV1) toCore(bool) (core.Transaction, error) {
	return &core.DeclareTransactionV1{
		SenderAddress:        w.SenderAddress,
		ClassHash:            w.ClassHash,
		MaxFee:               w.MaxFee,
		Nonce:                w.Nonce,
		TransactionSignature: w.Signature,
	}, nil
}

type declareV2 struct {
	declareV1
	CompiledClassHash *felt.Felt `json:"compiled_class_hash" validate:"required"`
}

func (w *declareV2) toCore(bool) (core.Transaction, error) {
	return &core.DeclareTransactionV2{
		SenderAddress:        w.SenderAddress,
		ClassHash:            w.ClassHash,
		CompiledClassHash:    w.CompiledClassHash,
		MaxFee:               w.MaxFee,
		Nonce:                w.Nonce,
		TransactionSignature: w.Signature,
	}, nil
}

type declareV3 struct {
	v3Fields
	SenderAddress         *felt.Felt   `json:"sender_address" validate:"required"`
	ClassHash             *felt.Felt   `json:"class_hash" validate:"required"`
	CompiledClassHash     *felt.Felt   `json:"compiled_class_hash" validate:"required"`
	Nonce                 *felt.Felt   `json:"nonce" validate:"required"`
	AccountDeploymentData []*felt.Felt `json:"account_deployment_data" validate:"required,dive,required"`
	Signature             []*felt.Felt `json:"signature" validate:"omitempty,dive,required"`
}

func (w *declareV3) toCore(hashL1DataGas bool) (core.Transaction, error) {
	fields, err := w.v3Fields.toCore(hashL1DataGas)
	if err != nil {
		return nil, err
	}
	return &core.DeclareTransactionV3{
		V3Fields:              fields,
		SenderAddress:         w.SenderAddress,
		ClassHash:             w.ClassHash,
		CompiledClassHash:     w.CompiledClassHash,
		Nonce:                 w.Nonce,
		AccountDeploymentData: w.AccountDeploymentData,
		TransactionSignature:  w.Signature,
	}, nil
}

type deployAccountV1 struct {
	ClassHash           *felt.Felt   `json:"class_hash" validate:"required"`
	ContractAddressSalt *felt.Felt   `json:"contract_address_salt" validate:"required"`
	ConstructorCallData []*felt.Felt `json:"constructor_calldata" validate:"required,dive,required"`
	MaxFee              *felt.Felt   `json:"max_fee" validate:"required"`
	Nonce               *felt.Felt   `json:"nonce" validate:"required"`
	Signature           []*felt.Felt `json:"signature" validate:"omitempty,dive,required"`
}

func (w *deployAccountV1) toCore(bool) (core.Transaction, error) {
	return &core.DeployAccountTransactionV1{
		ClassHash:            w.ClassHash,
		ContractAddressSalt:  w.ContractAddressSalt,
		ConstructorCallData:  w.ConstructorCallData,
		MaxFee:               w.MaxFee,
		Nonce:                w.Nonce,
		TransactionSignature: w.Signature,
	}, nil
}

type deployAccountV3 struct {
	v3Fields
	ClassHash           *felt.Felt   `json:"class_hash" validate:"required"`
	ContractAddressSalt *felt.Felt   `json:"contract_address_salt" validate:"required"`
	ConstructorCallData []*felt.Felt `json:"constructor_calldata" validate:"required,dive,required"`
	Nonce               *felt.Felt   `json:"nonce" validate:"required"`
	Signature           []*felt.Felt `json:"signature" validate:"omitempty,dive,required"`
}

func (w *deployAccountV3) toCore(hashL1DataGas bool) (core.Transaction, error) {
	fields, err := w.v3Fields.toCore(hashL1DataGas)
	if err != nil {
		return nil, err
	}
	return &core.DeployAccountTransactionV3{
		V3Fields:             fields,
		ClassHash:            w.ClassHash,
		ContractAddressSalt:  w.ContractAddressSalt,
		ConstructorCallData:  w.ConstructorCallData,
		Nonce:                w.Nonce,
		TransactionSignature: w.Signature,
	}, nil
}

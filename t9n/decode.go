package t9n

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/t9n/core"
	"github.com/NethermindEth/t9n/core/felt"
	"github.com/NethermindEth/t9n/validator"
)

var maxVersion = felt.NewFromUint64(core.MaxTransactionVersion)

// ParseTransaction decodes a JSON transaction record into its typed form. The
// protocol version decides whether v3 transactions keep their L1 data gas
// bounds; nil means the latest version.
func ParseTransaction(data []byte, protocolVersion *semver.Version) (core.Transaction, error) {
	if protocolVersion == nil {
		protocolVersion = core.LatestVer
	}

	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTransaction, err)
	}
	if err := validator.Validator().Struct(h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTransaction, err)
	}

	newShape, err := lookupShape(&h)
	if err != nil {
		return nil, err
	}

	shape := newShape()
	if err = json.Unmarshal(data, shape); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTransaction, err)
	}
	if err = validator.Validator().Struct(shape); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTransaction, err)
	}
	return shape.toCore(core.HashesL1DataGas(protocolVersion))
}

func lookupShape(h *header) (func() wireTransaction, error) {
	unsupported := &UnsupportedTypeOrVersionError{Type: h.Type, Version: h.Version.String()}

	var txType core.TransactionType
	if err := txType.UnmarshalText([]byte(h.Type)); err != nil {
		return nil, unsupported
	}
	if h.Version.Cmp(maxVersion) > 0 {
		return nil, unsupported
	}

	newShape, ok := shapes[shapeKey{txType: txType, version: uint8(h.Version.Uint64())}]
	if !ok {
		return nil, unsupported
	}
	return newShape, nil
}

package core

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/NethermindEth/t9n/core/crypto"
	"github.com/NethermindEth/t9n/core/felt"
)

var ErrUnknownResource = errors.New("unknown resource")

type Resource uint32

const (
	ResourceL1Gas Resource = iota + 1
	ResourceL2Gas
	ResourceL1DataGas
)

// String returns the name committed to in the transaction hash
func (r Resource) String() string {
	switch r {
	case ResourceL1Gas:
		return "L1_GAS"
	case ResourceL2Gas:
		return "L2_GAS"
	case ResourceL1DataGas:
		return "L1_DATA"
	default:
		return fmt.Sprintf("Resource(%d)", uint32(r))
	}
}

type ResourceBounds struct {
	MaxAmount       uint64
	MaxPricePerUnit Uint128
}

// ResourceBoundsMap holds the bounds of a v3 transaction. L1DataGas is only
// set for transactions that commit to it.
type ResourceBoundsMap struct {
	L1Gas     ResourceBounds
	L2Gas     ResourceBounds
	L1DataGas *ResourceBounds
}

// resourceNameBytes is the width of the name segment: the name is
// right-aligned in the top 64 bits of the encoded element.
const resourceNameBytes = 8

// EncodeResourceBounds packs a resource bound into one element laid out as
// name (8 bytes) | max amount (8 bytes) | max price per unit (16 bytes),
// all big-endian.
func EncodeResourceBounds(r Resource, b ResourceBounds) (*felt.Felt, error) {
	switch r {
	case ResourceL1Gas, ResourceL2Gas, ResourceL1DataGas:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, r)
	}
	name := r.String()

	var buf [felt.Bytes]byte
	copy(buf[resourceNameBytes-len(name):resourceNameBytes], name)
	binary.BigEndian.PutUint64(buf[resourceNameBytes:resourceNameBytes+8], b.MaxAmount)
	copy(buf[resourceNameBytes+8:], b.MaxPricePerUnit.Bytes())
	return new(felt.Felt).SetBytes(buf[:]), nil
}

// tipAndResourcesHash is the Poseidon commitment to the fee settings of a v3 transaction
func tipAndResourcesHash(tip uint64, bounds *ResourceBoundsMap) (*felt.Felt, error) {
	elems := []*felt.Felt{felt.NewFromUint64(tip)}

	type bound struct {
		resource Resource
		value    *ResourceBounds
	}
	for _, rb := range []bound{
		{ResourceL1Gas, &bounds.L1Gas},
		{ResourceL2Gas, &bounds.L2Gas},
		{ResourceL1DataGas, bounds.L1DataGas},
	} {
		if rb.value == nil {
			continue
		}
		encoded, err := EncodeResourceBounds(rb.resource, *rb.value)
		if err != nil {
			return nil, err
		}
		elems = append(elems, encoded)
	}
	return crypto.PoseidonArray(elems...), nil
}

type DataAvailabilityMode uint32

const (
	DAModeL1 DataAvailabilityMode = iota
	DAModeL2
)

var ErrUnknownDAMode = errors.New("unknown data availability mode (known: L1, L2)")

func (m DataAvailabilityMode) String() string {
	switch m {
	case DAModeL1:
		return "L1"
	case DAModeL2:
		return "L2"
	default:
		return fmt.Sprintf("DataAvailabilityMode(%d)", uint32(m))
	}
}

func (m DataAvailabilityMode) MarshalText() ([]byte, error) {
	switch m {
	case DAModeL1, DAModeL2:
		return []byte(m.String()), nil
	default:
		return nil, ErrUnknownDAMode
	}
}

func (m *DataAvailabilityMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "L1":
		*m = DAModeL1
	case "L2":
		*m = DAModeL2
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDAMode, text)
	}
	return nil
}

// daModeBits is the width of the fee mode in the packed DA modes element
const daModeBits = 32

// EncodeDAModes packs the nonce and fee data availability modes as nonce << 32 | fee
func EncodeDAModes(nonceMode, feeMode DataAvailabilityMode) *felt.Felt {
	return felt.NewFromUint64(uint64(nonceMode)<<daModeBits | uint64(feeMode))
}

package felt

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/fxamacker/cbor/v2"
)

type Felt struct {
	val fp.Element
}

func NewFelt(element *fp.Element) *Felt {
	return &Felt{
		val: *element,
	}
}

const (
	Limbs = fp.Limbs // number of 64 bits words needed to represent a Element
	Bits  = fp.Bits  // number of bits needed to represent a Element
	Bytes = fp.Bytes // number of bytes needed to represent a Element
)

// zero felt constant
var Zero = Felt{}

var ErrOutOfRange = errors.New("value is not smaller than the field modulus")

var bigIntPool = sync.Pool{
	New: func() interface{} {
		return new(big.Int)
	},
}

// Impl returns the underlying field element type
func (z *Felt) Impl() *fp.Element {
	return &z.val
}

// UnmarshalJSON accepts numbers and strings as input.
// See Element.SetString for valid prefixes (0x, 0b, ...).
// If there is an error, we try to explicitly unmarshal from hex before
// returning an error. Values that do not fit the field are rejected instead
// of being silently reduced.
func (z *Felt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > fp.Bits*3 {
		return errors.New("value too large (max = Element.Bits * 3)")
	}

	// we accept numbers and strings, remove leading and trailing quotes if any
	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
	}
	if len(s) > 0 && s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}

	// get temporary big int from the pool
	vv := bigIntPool.Get().(*big.Int)
	defer bigIntPool.Put(vv)

	if _, ok := vv.SetString(s, 0); !ok {
		if _, ok := vv.SetString(s, 16); !ok {
			return errors.New("can't parse into a big.Int: " + s)
		}
	}
	if vv.Sign() < 0 || vv.Cmp(fp.Modulus()) >= 0 {
		return fmt.Errorf("%s: %w", s, ErrOutOfRange)
	}

	z.val.SetBigInt(vv)
	return nil
}

// MarshalJSON encodes the felt as a 0x-prefixed hex string
func (z Felt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + z.String() + `"`), nil
}

// MarshalText lets text encoders such as yaml render the hex form
func (z Felt) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

func (z *Felt) UnmarshalText(text []byte) error {
	return z.UnmarshalJSON(text)
}

// MarshalCBOR encodes the felt as its canonical 32 byte big-endian form
func (z Felt) MarshalCBOR() ([]byte, error) {
	b := z.val.Bytes()
	return cbor.Marshal(b[:])
}

func (z *Felt) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	if len(b) > Bytes {
		return fmt.Errorf("cbor felt has %d bytes: %w", len(b), ErrOutOfRange)
	}
	return z.SetBytesCanonical(b)
}

// SetBytes forwards the call to underlying field element implementation
func (z *Felt) SetBytes(e []byte) *Felt {
	z.val.SetBytes(e)
	return z
}

// SetBytesCanonical sets z from a big-endian value and fails if it is not smaller than the modulus
func (z *Felt) SetBytesCanonical(e []byte) error {
	vv := bigIntPool.Get().(*big.Int)
	defer bigIntPool.Put(vv)

	if vv.SetBytes(e).Cmp(fp.Modulus()) >= 0 {
		return ErrOutOfRange
	}
	z.val.SetBigInt(vv)
	return nil
}

// SetString forwards the call to underlying field element implementation
func (z *Felt) SetString(number string) (*Felt, error) {
	_, err := z.val.SetString(number)
	return z, err
}

// SetUint64 forwards the call to underlying field element implementation
func (z *Felt) SetUint64(v uint64) *Felt {
	z.val.SetUint64(v)
	return z
}

// SetBigInt reduces v modulo the field modulus
func (z *Felt) SetBigInt(v *big.Int) *Felt {
	z.val.SetBigInt(v)
	return z
}

// BigInt writes the regular form of z into res and returns it
func (z *Felt) BigInt(res *big.Int) *big.Int {
	return z.val.BigInt(res)
}

// SetRandom forwards the call to underlying field element implementation
func (z *Felt) SetRandom() (*Felt, error) {
	_, err := z.val.SetRandom()
	return z, err
}

// String returns the 0x-prefixed hex representation without leading zeros
func (z *Felt) String() string {
	return "0x" + z.val.Text(16)
}

// Text forwards the call to underlying field element implementation
func (z *Felt) Text(base int) string {
	return z.val.Text(base)
}

// Equal forwards the call to underlying field element implementation
func (z *Felt) Equal(x *Felt) bool {
	return z.val.Equal(&x.val)
}

// Marshal forwards the call to underlying field element implementation
func (z *Felt) Marshal() []byte {
	return z.val.Marshal()
}

// Bytes forwards the call to underlying field element implementation
func (z *Felt) Bytes() [32]byte {
	return z.val.Bytes()
}

// IsOne forwards the call to underlying field element implementation
func (z *Felt) IsOne() bool {
	return z.val.IsOne()
}

// IsZero forwards the call to underlying field element implementation
func (z *Felt) IsZero() bool {
	return z.val.IsZero()
}

// Add forwards the call to underlying field element implementation
func (z *Felt) Add(x, y *Felt) *Felt {
	z.val.Add(&x.val, &y.val)
	return z
}

// Sub forwards the call to underlying field element implementation
func (z *Felt) Sub(x, y *Felt) *Felt {
	z.val.Sub(&x.val, &y.val)
	return z
}

// Mul forwards the call to underlying field element implementation
func (z *Felt) Mul(x, y *Felt) *Felt {
	z.val.Mul(&x.val, &y.val)
	return z
}

// Cmp compares the regular forms of z and x
func (z *Felt) Cmp(x *Felt) int {
	return z.val.Cmp(&x.val)
}

// Uint64 returns the lowest 64 bits of the regular form
func (z *Felt) Uint64() uint64 {
	return z.val.Uint64()
}

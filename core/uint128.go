package core

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUint128Overflow = errors.New("value does not fit in 128 bits")

type Uint128 struct {
	hi uint64
	lo uint64
}

func NewUint128(hi, lo uint64) *Uint128 {
	return &Uint128{
		hi: hi,
		lo: lo,
	}
}

// ParseUint128 parses a 0x-prefixed hex string of at most 32 digits
func ParseUint128(s string) (Uint128, error) {
	var u Uint128
	return u, u.SetString(s)
}

func (u *Uint128) SetString(s string) error {
	v, ok := strings.CutPrefix(s, "0x")
	if !ok {
		v, ok = strings.CutPrefix(s, "0X")
	}
	if !ok || v == "" {
		return fmt.Errorf("invalid hex string %q", s)
	}

	v = strings.TrimLeft(v, "0")
	if len(v) > 32 {
		return fmt.Errorf("%s: %w", s, ErrUint128Overflow)
	}
	// might need a leading zero
	if len(v)%2 != 0 {
		v = "0" + v
	}

	bytes, err := hex.DecodeString(v)
	if err != nil {
		return fmt.Errorf("invalid hex string %q: %w", s, err)
	}

	var buf [16]byte
	copy(buf[16-len(bytes):], bytes)
	u.hi = binary.BigEndian.Uint64(buf[:8])
	u.lo = binary.BigEndian.Uint64(buf[8:])
	return nil
}

// Bytes returns the 16 byte big-endian representation
func (u *Uint128) Bytes() []byte {
	bytes := make([]byte, 16)
	binary.BigEndian.PutUint64(bytes[:8], u.hi)
	binary.BigEndian.PutUint64(bytes[8:], u.lo)
	return bytes
}

func (u *Uint128) UnmarshalJSON(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	v, ok := value.(string)
	if !ok {
		return fmt.Errorf("unsupported type in JSON payload: %T", value)
	}
	return u.SetString(v)
}

func (u Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u Uint128) Equal(o Uint128) bool {
	return u.hi == o.hi && u.lo == o.lo
}

func (u Uint128) IsZero() bool {
	return u.hi == 0 && u.lo == 0
}

func (u Uint128) String() string {
	if u.hi == 0 {
		return fmt.Sprintf("0x%x", u.lo)
	}
	return fmt.Sprintf("0x%x%016x", u.hi, u.lo)
}

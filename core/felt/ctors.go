package felt

import "fmt"

func FromUint64(v uint64) Felt {
	var f Felt
	f.SetUint64(v)
	return f
}

func NewFromUint64(v uint64) *Felt {
	f := FromUint64(v)
	return &f
}

func FromBytes(b []byte) Felt {
	var f Felt
	f.SetBytes(b)
	return f
}

// NewFromBytes interprets b as a big-endian integer reduced modulo the field
func NewFromBytes(b []byte) *Felt {
	f := FromBytes(b)
	return &f
}

// NewFromString parses a 0x-prefixed hex or a decimal string. Values that
// do not fit the field are an error.
func NewFromString(s string) (*Felt, error) {
	var f Felt
	if err := f.UnmarshalJSON([]byte(s)); err != nil {
		return nil, err
	}
	return &f, nil
}

// UnsafeFromString is NewFromString for constants known to be well-formed
func UnsafeFromString(s string) *Felt {
	f, err := NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("felt: bad constant %q: %v", s, err))
	}
	return f
}

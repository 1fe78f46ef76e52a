package felt

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJson(t *testing.T) {
	var with Felt
	assert.NoError(t, with.UnmarshalJSON([]byte("0x4437ab")))

	var without Felt
	assert.NoError(t, without.UnmarshalJSON([]byte("4437ab")))
	assert.Equal(t, true, without.Equal(&with))

	t.Run("quoted decimal", func(t *testing.T) {
		var f Felt
		require.NoError(t, f.UnmarshalJSON([]byte(`"255"`)))
		assert.Equal(t, uint64(255), f.Uint64())
	})

	t.Run("modulus is rejected", func(t *testing.T) {
		var f Felt
		err := f.UnmarshalJSON([]byte(`"0x800000000000011000000000000000000000000000000000000000000000001"`))
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("garbage", func(t *testing.T) {
		var f Felt
		assert.Error(t, f.UnmarshalJSON([]byte(`"0xzz"`)))
	})
}

func TestString(t *testing.T) {
	tests := map[string]struct {
		in   *Felt
		want string
	}{
		"zero":          {in: &Zero, want: "0x0"},
		"small":         {in: NewFromUint64(0x1a), want: "0x1a"},
		"leading zeros": {in: UnsafeFromString("0x00000abc"), want: "0xabc"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, test.in.String())
		})
	}
}

func TestFeltJSONRoundTrip(t *testing.T) {
	type wrapper struct {
		Value *Felt `json:"value"`
	}
	in := wrapper{Value: UnsafeFromString("0x3f6f3bc663aedc5285d6013cc3ffcbc4341d86ab488b8b68d297f8258793c41")}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"0x3f6f3bc663aedc5285d6013cc3ffcbc4341d86ab488b8b68d297f8258793c41"}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.Value, out.Value)
}

func TestFeltCbor(t *testing.T) {
	var val Felt
	_, err := val.SetRandom()
	assert.NoError(t, err)

	bytes, err := cbor.Marshal(val)
	assert.NoError(t, err)

	var unmarshaledFelt Felt
	assert.NoError(t, cbor.Unmarshal(bytes, &unmarshaledFelt))
	assert.Equal(t, val, unmarshaledFelt)
}

func TestSetBytesCanonical(t *testing.T) {
	var f Felt
	require.NoError(t, f.SetBytesCanonical([]byte{0x01, 0x00}))
	assert.Equal(t, uint64(256), f.Uint64())

	modulus := make([]byte, 32)
	modulus[0] = 0x08
	modulus[7] = 0x11
	modulus[31] = 0x01
	assert.ErrorIs(t, f.SetBytesCanonical(modulus), ErrOutOfRange)
}

func TestNewFromString(t *testing.T) {
	_, err := NewFromString("not a number")
	assert.Error(t, err)

	f, err := NewFromString("0x10")
	require.NoError(t, err)
	assert.Equal(t, NewFromUint64(16), f)

	assert.Panics(t, func() { UnsafeFromString("0xg") })
}

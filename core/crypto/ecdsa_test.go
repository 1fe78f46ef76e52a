package crypto_test

import (
	"testing"

	"github.com/NethermindEth/t9n/core/crypto"
	"github.com/NethermindEth/t9n/core/felt"
	"github.com/NethermindEth/t9n/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPrivateKey = "0x03c1e9550e66958296d11b60f8e8e7a7ad990d07fa65d5f7652c4a6c87d4e3cc"
	testPublicKey  = "0x077a3b314db07c45076d11f62b6f9e748a39790441823307743cf00d6597ea43"
	generatorX     = "0x01ef15c18599971b7beced415a40f0c7deacfd9b0d1819e03d723d8bc943cfca"
	// 2^251
	elementUpperBound = "0x800000000000000000000000000000000000000000000000000000000000000"
)

func TestVerify(t *testing.T) {
	tests := map[string]struct {
		key      string
		msg      string
		sigR     string
		sigS     string
		result   bool
		errorMsg string
	}{
		"success": {
			key:    generatorX,
			msg:    "0x0000000000000000000000000000000000000000000000000000000000000002",
			sigR:   "0x0411494b501a98abd8262b0da1351e17899a0c4ef23dd2f96fec5ba847310b20",
			sigS:   "0x0405c3191ab3883ef2b763af35bc5f5d15b3b4e99461d70e84c654a351a7c81b",
			result: true,
		},
		"fail": {
			key:  "0x077a4b314db07c45076d11f62b6f9e748a39790441823307743cf00d6597ea43",
			msg:  "0x0397e76d1667c4454bfb83514e120583af836f8e32a516765497823eabe16a3f",
			sigR: "0x0173fd03d8b008ee7432977ac27d1e9d1a1f6c98b1a2f05fa84a21c84c44e882",
			sigS: "0x01f2c44a7798f55192f153b4c48ea5c1241fbb69e6132cc8a0da9c5b62a4286e",
		},
		"invalid key": {
			key:      "0x03ee9bffffffffff26ffffffff60ffffffffffffffffffffffffffff004accff",
			msg:      "0x0000000000000000000000000000000000000000000000000000000000000002",
			sigR:     "0x0411494b501a98abd8262b0da1351e17899a0c4ef23dd2f96fec5ba847310b20",
			sigS:     "0x0405c3191ab3883ef2b763af35bc5f5d15b3b4e99461d70e84c654a351a7c81b",
			errorMsg: "not a valid public key",
		},
		"message out of range": {
			key:      generatorX,
			msg:      elementUpperBound,
			sigR:     "0x0411494b501a98abd8262b0da1351e17899a0c4ef23dd2f96fec5ba847310b20",
			sigS:     "0x0405c3191ab3883ef2b763af35bc5f5d15b3b4e99461d70e84c654a351a7c81b",
			errorMsg: crypto.ErrInvalidMessageHash.Error(),
		},
		"zero r": {
			key:      generatorX,
			msg:      "0x2",
			sigR:     "0x0",
			sigS:     "0x0405c3191ab3883ef2b763af35bc5f5d15b3b4e99461d70e84c654a351a7c81b",
			errorMsg: crypto.ErrInvalidR.Error(),
		},
		"s out of range": {
			key:      generatorX,
			msg:      "0x2",
			sigR:     "0x0411494b501a98abd8262b0da1351e17899a0c4ef23dd2f96fec5ba847310b20",
			sigS:     elementUpperBound,
			errorMsg: crypto.ErrInvalidS.Error(),
		},
	}
	for desc, test := range tests {
		t.Run(desc, func(t *testing.T) {
			signature := crypto.Signature{
				R: *utils.HexToFelt(t, test.sigR),
				S: *utils.HexToFelt(t, test.sigS),
			}
			msg := utils.HexToFelt(t, test.msg)
			publicKey := crypto.NewPublicKey(utils.HexToFelt(t, test.key))

			res, err := publicKey.Verify(&signature, msg)
			assert.Equal(t, test.result, res)
			if test.errorMsg != "" {
				assert.ErrorContains(t, err, test.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetPublicKey(t *testing.T) {
	tests := map[string]struct {
		privKey string
		want    string
	}{
		"test key": {privKey: testPrivateKey, want: testPublicKey},
		"small key": {
			privKey: "0x12",
			want:    "0x019661066e96a8b9f06a1d136881ee924dfb6a885239caa5fd3f87a54c6b25c4",
		},
		"one": {privKey: "0x1", want: generatorX},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := crypto.GetPublicKey(utils.HexToFelt(t, test.privKey))
			require.NoError(t, err)
			assert.Equal(t, utils.HexToFelt(t, test.want), got)
		})
	}

	_, err := crypto.GetPublicKey(&felt.Zero)
	assert.ErrorIs(t, err, crypto.ErrInvalidPrivateKey)
}

func TestSign(t *testing.T) {
	tests := map[string]struct {
		privKey, msg string
		r, s         string
		v            uint64
	}{
		"private key one": {
			privKey: "0x1",
			msg:     "0x2",
			r:       "0x543b191c671bc1f9b2f4e643a5711535cf34cb8330ab22e2416e8cdda8db054",
			s:       "0x2f139920a75d2209e972b1bf82dc72e4c1edb8355fdbae7b4910ea7c32e70e2",
			v:       1,
		},
		"test key": {
			privKey: testPrivateKey,
			msg:     "0x2",
			r:       "0x3f8852c3010ca93d70ff7590903d4d140f04b17b41d7f7f360ddbe7118ff8ac",
			s:       "0x26c7f26e90d79d8a3464f8667cf04059d08f56e978db60f50c830b48fc1d39a",
			v:       1,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			privKey := utils.HexToFelt(t, test.privKey)
			msg := utils.HexToFelt(t, test.msg)

			sig, err := crypto.Sign(privKey, msg)
			require.NoError(t, err)
			assert.Equal(t, utils.HexToFelt(t, test.r), &sig.R)
			assert.Equal(t, utils.HexToFelt(t, test.s), &sig.S)
			assert.Equal(t, test.v, sig.V.Uint64())

			pub, err := crypto.GetPublicKey(privKey)
			require.NoError(t, err)
			ok, err := crypto.Verify(pub, msg, &sig.R, &sig.S)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}

	t.Run("message out of range", func(t *testing.T) {
		_, err := crypto.Sign(utils.HexToFelt(t, testPrivateKey), utils.HexToFelt(t, elementUpperBound))
		assert.ErrorIs(t, err, crypto.ErrInvalidMessageHash)
	})
}

func TestSignVerifyRoundTrip(t *testing.T) {
	privKey := utils.HexToFelt(t, testPrivateKey)
	pub := utils.HexToFelt(t, testPublicKey)

	for _, msg := range []string{
		"0x0",
		"0x1",
		"0x345e1eaaf358c4bb11258cff6f659037d9a918601b64547325ef3d7db907198",
		"0x7ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
	} {
		t.Run(msg, func(t *testing.T) {
			hash := utils.HexToFelt(t, msg)
			sig, err := crypto.Sign(privKey, hash)
			require.NoError(t, err)

			ok, err := crypto.Verify(pub, hash, &sig.R, &sig.S)
			require.NoError(t, err)
			assert.True(t, ok)

			recovered, err := crypto.Recover(hash, &sig.Signature, &sig.V)
			require.NoError(t, err)
			assert.Equal(t, pub, recovered)

			// flipping the lowest bit of the message must break the signature
			tampered := new(felt.Felt)
			if hash.Uint64()%2 == 0 {
				tampered.Add(hash, felt.NewFromUint64(1))
			} else {
				tampered.Sub(hash, felt.NewFromUint64(1))
			}
			ok, err = crypto.Verify(pub, tampered, &sig.R, &sig.S)
			require.NoError(t, err)
			assert.False(t, ok)

			// so must flipping the lowest bit of r or s
			r, s := flipLowBit(&sig.R), flipLowBit(&sig.S)
			ok, err = crypto.Verify(pub, hash, r, &sig.S)
			if err != nil {
				assert.ErrorIs(t, err, crypto.ErrInvalidR)
			}
			assert.False(t, ok)

			ok, err = crypto.Verify(pub, hash, &sig.R, s)
			if err != nil {
				assert.ErrorIs(t, err, crypto.ErrInvalidS)
			}
			assert.False(t, ok)
		})
	}
}

func flipLowBit(x *felt.Felt) *felt.Felt {
	one := felt.NewFromUint64(1)
	if x.Uint64()%2 == 0 {
		return new(felt.Felt).Add(x, one)
	}
	return new(felt.Felt).Sub(x, one)
}

func TestRecover(t *testing.T) {
	msg := utils.HexToFelt(t, "0x2")
	sig := crypto.Signature{
		R: *utils.HexToFelt(t, "0x0411494b501a98abd8262b0da1351e17899a0c4ef23dd2f96fec5ba847310b20"),
		S: *utils.HexToFelt(t, "0x0405c3191ab3883ef2b763af35bc5f5d15b3b4e99461d70e84c654a351a7c81b"),
	}

	t.Run("matching hint", func(t *testing.T) {
		key, err := crypto.Recover(msg, &sig, &felt.Zero)
		require.NoError(t, err)
		assert.Equal(t, utils.HexToFelt(t, generatorX), key)
	})

	t.Run("other hint still verifies", func(t *testing.T) {
		key, err := crypto.Recover(msg, &sig, felt.NewFromUint64(1))
		require.NoError(t, err)
		assert.Equal(t, utils.HexToFelt(t, "0x45ea81d04cf115ae92878b8fcff1f4f22ca99c5e36d3594b41e903c8461866b"), key)

		ok, err := crypto.Verify(key, msg, &sig.R, &sig.S)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("invalid hint", func(t *testing.T) {
		_, err := crypto.Recover(msg, &sig, felt.NewFromUint64(2))
		assert.ErrorIs(t, err, crypto.ErrInvalidRecoveryHint)
	})

	t.Run("zero s", func(t *testing.T) {
		bad := crypto.Signature{R: sig.R}
		_, err := crypto.Recover(msg, &bad, &felt.Zero)
		assert.ErrorIs(t, err, crypto.ErrInvalidS)
	})
}

func BenchmarkVerify(b *testing.B) {
	signature := crypto.Signature{
		R: *utils.HexToFelt(b, "0x0411494b501a98abd8262b0da1351e17899a0c4ef23dd2f96fec5ba847310b20"),
		S: *utils.HexToFelt(b, "0x0405c3191ab3883ef2b763af35bc5f5d15b3b4e99461d70e84c654a351a7c81b"),
	}
	msg := utils.HexToFelt(b, "0x0000000000000000000000000000000000000000000000000000000000000002")
	publicKey := crypto.NewPublicKey(utils.HexToFelt(b, generatorX))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := publicKey.Verify(&signature, msg)
		require.NoError(b, err)
	}
}

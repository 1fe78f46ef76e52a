package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"

	"github.com/NethermindEth/t9n/core/felt"
)

// hmacDRBG is the HMAC_DRBG of RFC 6979 section 3.2 instantiated with SHA-256
type hmacDRBG struct {
	k, v []byte
}

func newHMACDRBG(entropy, nonce, extra []byte) *hmacDRBG {
	d := &hmacDRBG{
		k: make([]byte, sha256.Size),
		v: make([]byte, sha256.Size),
	}
	for i := range d.v {
		d.v[i] = 0x01
	}
	for _, sep := range []byte{0x00, 0x01} {
		d.k = d.mac(d.k, d.v, []byte{sep}, entropy, nonce, extra)
		d.v = d.mac(d.k, d.v)
	}
	return d
}

func (d *hmacDRBG) mac(key []byte, parts ...[]byte) []byte {
	m := hmac.New(sha256.New, key)
	for _, p := range parts {
		m.Write(p)
	}
	return m.Sum(nil)
}

func (d *hmacDRBG) next() []byte {
	d.v = d.mac(d.k, d.v)
	out := append([]byte(nil), d.v...)
	d.k = d.mac(d.k, d.v, []byte{0x00})
	d.v = d.mac(d.k, d.v)
	return out
}

// generateK derives the deterministic signing nonce from the private key,
// the message hash and an optional seed. The candidate is the DRBG output
// shifted right by four bits, and candidates outside (0, n) are discarded.
func generateK(msgHash, privKey *felt.Felt, seed *big.Int) *big.Int {
	x := privKey.Bytes()
	h := msgHash.Bytes()
	var extra []byte
	if seed != nil {
		extra = seed.Bytes()
	}

	drbg := newHMACDRBG(x[:], h[:], extra)
	k := new(big.Int)
	for {
		k.SetBytes(drbg.next())
		k.Rsh(k, 4)
		if k.Sign() > 0 && k.Cmp(curveOrder) < 0 {
			return k
		}
	}
}

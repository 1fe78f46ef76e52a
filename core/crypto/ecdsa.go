package crypto

import (
	"errors"
	"math/big"

	"github.com/NethermindEth/t9n/core/felt"
	starkcurve "github.com/consensys/gnark-crypto/ecc/stark-curve"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fr"
)

// maxSignAttempts bounds the nonce search in Sign. A single attempt fails
// with negligible probability, so hitting the cap means the curve
// arithmetic is broken.
const maxSignAttempts = 1 << 20

var (
	ErrInvalidMessageHash    = errors.New("message hash out of range")
	ErrInvalidR              = errors.New("signature r out of range")
	ErrInvalidS              = errors.New("signature s out of range")
	ErrInvalidPublicKey      = errors.New("not a valid public key")
	ErrInvalidPrivateKey     = errors.New("private key is zero modulo the curve order")
	ErrInvalidRecoveryHint   = errors.New("recovery hint must be 0 or 1")
	ErrSignAttemptsExhausted = errors.New("no valid signing nonce found")

	errInvalidK = errors.New("invalid k")
)

var (
	// elementUpperBound is 2^251, the exclusive bound for message hashes and signature components
	elementUpperBound = new(big.Int).Lsh(big.NewInt(1), 251)
	curveOrder        = fr.Modulus()
	curveBeta         = felt.UnsafeFromString("0x6f21413efbe40de150e596d72f7a8c5609ad26c15c915c1f4cdfcb99cee9e89")
)

type Signature struct {
	R felt.Felt `json:"r"`
	S felt.Felt `json:"s"`
}

// ExtendedSignature carries the parity of the y coordinate of the nonce
// point, which lets Recover pick the right point.
type ExtendedSignature struct {
	Signature
	V felt.Felt `json:"v"`
}

// PublicKey is a Stark public key given by its x coordinate. Both points
// sharing that coordinate are accepted when verifying.
type PublicKey struct {
	x felt.Felt
}

func NewPublicKey(x *felt.Felt) PublicKey {
	return PublicKey{x: *x}
}

func (k *PublicKey) X() *felt.Felt {
	x := k.x
	return &x
}

func (k *PublicKey) Verify(sig *Signature, msg *felt.Felt) (bool, error) {
	return Verify(&k.x, msg, &sig.R, &sig.S)
}

func toBig(f *felt.Felt) *big.Int {
	return f.BigInt(new(big.Int))
}

func inRange(v *big.Int, allowZero bool, bound *big.Int) bool {
	if v.Sign() == 0 {
		return allowZero
	}
	return v.Sign() > 0 && v.Cmp(bound) < 0
}

func generator() starkcurve.G1Affine {
	_, g := starkcurve.Generators()
	return g
}

// pointFromX returns the point with the given x coordinate and the even or
// odd y of the two candidates, picked by the caller afterwards.
func pointFromX(x *felt.Felt) (starkcurve.G1Affine, bool) {
	var p starkcurve.G1Affine
	var rhs fp.Element
	// y^2 = x^3 + x + beta
	rhs.Square(x.Impl()).Mul(&rhs, x.Impl()).Add(&rhs, x.Impl()).Add(&rhs, curveBeta.Impl())
	if p.Y.Sqrt(&rhs) == nil {
		return p, false
	}
	p.X.Set(x.Impl())
	return p, true
}

func isOdd(e *fp.Element) bool {
	b := e.Bytes()
	return b[fp.Bytes-1]&1 == 1
}

func scalarMul(p *starkcurve.G1Affine, k *big.Int) starkcurve.G1Jac {
	var jac, res starkcurve.G1Jac
	jac.FromAffine(p)
	res.ScalarMultiplication(&jac, k)
	return res
}

func affineX(p *starkcurve.G1Jac) *felt.Felt {
	var aff starkcurve.G1Affine
	aff.FromJacobian(p)
	if aff.IsInfinity() {
		return nil
	}
	return felt.NewFelt(&aff.X)
}

// GetPublicKey returns the x coordinate of privKey * G
func GetPublicKey(privKey *felt.Felt) (*felt.Felt, error) {
	var d fr.Element
	d.SetBigInt(toBig(privKey))
	if d.IsZero() {
		return nil, ErrInvalidPrivateKey
	}

	g := generator()
	q := scalarMul(&g, d.BigInt(new(big.Int)))
	return affineX(&q), nil
}

// Verify checks an ECDSA signature over the Stark curve. Out of range inputs
// are reported as errors, a well-formed signature that does not match
// returns false.
func Verify(publicKey, msgHash, r, s *felt.Felt) (bool, error) {
	z, rBig, sBig := toBig(msgHash), toBig(r), toBig(s)
	if !inRange(z, true, elementUpperBound) {
		return false, ErrInvalidMessageHash
	}
	if !inRange(rBig, false, elementUpperBound) {
		return false, ErrInvalidR
	}
	if !inRange(sBig, false, elementUpperBound) {
		return false, ErrInvalidS
	}

	q, ok := pointFromX(publicKey)
	if !ok {
		return false, ErrInvalidPublicKey
	}

	var w fr.Element
	w.SetBigInt(sBig).Inverse(&w)
	if !inRange(w.BigInt(new(big.Int)), false, elementUpperBound) {
		return false, ErrInvalidS
	}

	var zw, rw fr.Element
	zw.SetBigInt(z).Mul(&zw, &w)
	rw.SetBigInt(rBig).Mul(&rw, &w)

	g := generator()
	a := scalarMul(&g, zw.BigInt(new(big.Int)))
	b := scalarMul(&q, rw.BigInt(new(big.Int)))

	sum := a
	sum.AddAssign(&b)
	if x := affineX(&sum); x != nil && x.Equal(r) {
		return true, nil
	}
	diff := a
	diff.SubAssign(&b)
	if x := affineX(&diff); x != nil && x.Equal(r) {
		return true, nil
	}
	return false, nil
}

// Sign produces a deterministic signature of msgHash. The nonce comes from
// RFC 6979 and is re-derived with an increasing seed whenever it yields an
// unusable r or s.
func Sign(privKey, msgHash *felt.Felt) (*ExtendedSignature, error) {
	if !inRange(toBig(msgHash), true, elementUpperBound) {
		return nil, ErrInvalidMessageHash
	}

	var seed *big.Int
	for range maxSignAttempts {
		k := generateK(msgHash, privKey, seed)
		sig, err := signWithK(privKey, msgHash, k)
		if err == nil {
			return sig, nil
		} else if !errors.Is(err, errInvalidK) {
			return nil, err
		}

		if seed == nil {
			seed = big.NewInt(1)
		} else {
			seed = new(big.Int).Add(seed, big.NewInt(1))
		}
	}
	return nil, ErrSignAttemptsExhausted
}

func signWithK(privKey, msgHash *felt.Felt, k *big.Int) (*ExtendedSignature, error) {
	var d fr.Element
	d.SetBigInt(toBig(privKey))
	if d.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	if k.Sign() == 0 {
		return nil, errInvalidK
	}

	g := generator()
	nonceJac := scalarMul(&g, k)
	var nonce starkcurve.G1Affine
	nonce.FromJacobian(&nonceJac)

	r := felt.NewFelt(&nonce.X)
	rBig := toBig(r)
	if !inRange(rBig, false, elementUpperBound) {
		return nil, errInvalidK
	}

	// s = (z + r * d) / k mod n
	var s, kInv, tmp fr.Element
	kInv.SetBigInt(k).Inverse(&kInv)
	s.SetBigInt(rBig).Mul(&s, &d).Add(&s, tmp.SetBigInt(toBig(msgHash))).Mul(&s, &kInv)

	sBig := s.BigInt(new(big.Int))
	if !inRange(sBig, false, elementUpperBound) {
		return nil, errInvalidK
	}

	sig := &ExtendedSignature{
		Signature: Signature{R: *r},
	}
	sig.S.SetBigInt(sBig)
	if isOdd(&nonce.Y) {
		sig.V.SetUint64(1)
	}
	return sig, nil
}

// Recover returns the public key that produced sig over msgHash. The hint
// selects which of the two points with x = r was the signing nonce. A hint
// that does not match the signature still yields a key for which the
// signature verifies, but not the signer's.
func Recover(msgHash *felt.Felt, sig *Signature, v *felt.Felt) (*felt.Felt, error) {
	z, rBig, sBig := toBig(msgHash), toBig(&sig.R), toBig(&sig.S)
	if !inRange(z, true, elementUpperBound) {
		return nil, ErrInvalidMessageHash
	}
	if !inRange(rBig, false, elementUpperBound) {
		return nil, ErrInvalidR
	}
	if !inRange(sBig, false, curveOrder) {
		return nil, ErrInvalidS
	}
	if !v.IsZero() && !v.IsOne() {
		return nil, ErrInvalidRecoveryHint
	}

	nonce, ok := pointFromX(&sig.R)
	if !ok {
		return nil, ErrInvalidR
	}
	if isOdd(&nonce.Y) != v.IsOne() {
		nonce.Neg(&nonce)
	}

	// q = (s * R - z * G) / r
	var rInv, u1, u2 fr.Element
	rInv.SetBigInt(rBig).Inverse(&rInv)
	u1.SetBigInt(sBig).Mul(&u1, &rInv)
	u2.SetBigInt(z).Mul(&u2, &rInv)

	g := generator()
	q := scalarMul(&nonce, u1.BigInt(new(big.Int)))
	zg := scalarMul(&g, u2.BigInt(new(big.Int)))
	q.SubAssign(&zg)

	key := affineX(&q)
	if key == nil {
		return nil, ErrInvalidPublicKey
	}
	return key, nil
}

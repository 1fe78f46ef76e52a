package crypto

import (
	"crypto/sha256"
	"strconv"

	"github.com/NethermindEth/t9n/core/felt"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

const (
	fullRounds    = 8
	partialRounds = 83
	totalRounds   = fullRounds + partialRounds
	stateWidth    = 3
)

// roundKeys holds the Hades round constants: the i-th constant is
// sha256("Hades" || i) reduced modulo the field.
var roundKeys = generateRoundKeys()

func generateRoundKeys() [totalRounds][stateWidth]fp.Element {
	var keys [totalRounds][stateWidth]fp.Element
	for i := range totalRounds * stateWidth {
		sum := sha256.Sum256([]byte("Hades" + strconv.Itoa(i)))
		keys[i/stateWidth][i%stateWidth].SetBytes(sum[:])
	}
	return keys
}

func cube(x *fp.Element) {
	var sq fp.Element
	sq.Square(x)
	x.Mul(x, &sq)
}

// mixLayer multiplies the state by the MDS matrix [[3,1,1],[1,-1,1],[1,1,-2]]
func mixLayer(state []felt.Felt) {
	s0, s1, s2 := state[0].Impl(), state[1].Impl(), state[2].Impl()

	var t, triple fp.Element
	t.Add(s0, s1).Add(&t, s2)

	s0.Double(s0).Add(s0, &t)
	s1.Double(s1).Sub(&t, s1)
	triple.Double(s2).Add(&triple, s2)
	s2.Sub(&t, &triple)
}

func hadesPermutation(state []felt.Felt) {
	const halfFull = fullRounds / 2
	for round := range totalRounds {
		for i := range stateWidth {
			state[i].Impl().Add(state[i].Impl(), &roundKeys[round][i])
		}
		if round < halfFull || round >= halfFull+partialRounds {
			for i := range stateWidth {
				cube(state[i].Impl())
			}
		} else {
			cube(state[stateWidth-1].Impl())
		}
		mixLayer(state)
	}
}

var two = felt.FromUint64(2)

// Poseidon implements the [Poseidon hash].
//
// [Poseidon hash]: https://docs.starknet.io/documentation/architecture_and_concepts/Cryptography/hash-functions/#poseidon_hash
func Poseidon(x, y *felt.Felt) *felt.Felt {
	state := []felt.Felt{*x, *y, two}
	hadesPermutation(state)
	return &state[0]
}

var one = felt.FromUint64(1)

// PoseidonArray implements [Poseidon array hashing].
//
// [Poseidon array hashing]: https://docs.starknet.io/documentation/architecture_and_concepts/Cryptography/hash-functions/#poseidon_array_hash
func PoseidonArray(elems ...*felt.Felt) *felt.Felt {
	var digest PoseidonDigest
	return digest.Update(elems...).Finish()
}

var _ Digest = (*PoseidonDigest)(nil)

// PoseidonDigest is a sponge with rate 2 and capacity 1
type PoseidonDigest struct {
	state    [stateWidth]felt.Felt
	lastElem *felt.Felt
}

func (d *PoseidonDigest) Update(elems ...*felt.Felt) Digest {
	for idx := range elems {
		if d.lastElem == nil {
			elem := *elems[idx]
			d.lastElem = &elem
			continue
		}
		d.state[0].Add(&d.state[0], d.lastElem)
		d.state[1].Add(&d.state[1], elems[idx])
		hadesPermutation(d.state[:])
		d.lastElem = nil
	}
	return d
}

func (d *PoseidonDigest) Finish() *felt.Felt {
	if d.lastElem == nil {
		d.state[0].Add(&d.state[0], &one)
	} else {
		d.state[0].Add(&d.state[0], d.lastElem)
		d.state[1].Add(&d.state[1], &one)
	}
	hadesPermutation(d.state[:])
	hash := d.state[0]
	*d = PoseidonDigest{}
	return &hash
}

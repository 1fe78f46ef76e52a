package crypto

import "github.com/NethermindEth/t9n/core/felt"

// Digest accumulates field elements and folds them into a single hash.
// Finish resets the digest, so a finished chain cannot be extended.
type Digest interface {
	Update(...*felt.Felt) Digest
	Finish() *felt.Felt
}

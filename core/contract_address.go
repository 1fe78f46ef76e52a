package core

import (
	"math/big"

	"github.com/NethermindEth/t9n/core/crypto"
	"github.com/NethermindEth/t9n/core/felt"
)

// ContractAddress computes the address of a Starknet contract.
func ContractAddress(callerAddress, classHash, salt *felt.Felt, constructorCallData []*felt.Felt) *felt.Felt {
	return ContractAddressFromCallDataHash(callerAddress, classHash, salt, crypto.PedersenArray(constructorCallData...))
}

// ContractAddressFromCallDataHash computes the address of a Starknet contract
// whose constructor calldata has already been hashed.
func ContractAddressFromCallDataHash(callerAddress, classHash, salt, constructorCallDataHash *felt.Felt) *felt.Felt {
	// https://docs.starknet.io/architecture-and-concepts/smart-contracts/contract-address/
	hash := crypto.PedersenArray(
		ContractAddressPrefix,
		callerAddress,
		salt,
		classHash,
		constructorCallDataHash,
	)

	h, bound := hash.BigInt(new(big.Int)), AddressBound.BigInt(new(big.Int))
	return new(felt.Felt).SetBigInt(h.Mod(h, bound))
}

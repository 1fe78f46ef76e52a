package core

import "github.com/NethermindEth/t9n/core/felt"

// Transaction hash prefixes are the ASCII encoding of the transaction kind.
var (
	InvokePrefix          = new(felt.Felt).SetBytes([]byte("invoke"))
	DeclarePrefix         = new(felt.Felt).SetBytes([]byte("declare"))
	DeployAccountPrefix   = new(felt.Felt).SetBytes([]byte("deploy_account"))
	ContractAddressPrefix = new(felt.Felt).SetBytes([]byte("STARKNET_CONTRACT_ADDRESS"))
)

var (
	// AddressBound is 2^251 - 256, contract addresses are reduced modulo it
	AddressBound = felt.UnsafeFromString("0x7ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff00")
	// QueryVersionBase is 2^128, added to the version of transactions only meant for simulation
	QueryVersionBase = felt.UnsafeFromString("0x100000000000000000000000000000000")
)

// MaxTransactionVersion is the highest version any transaction kind supports.
const MaxTransactionVersion = 3

var (
	versionFelts      [MaxTransactionVersion + 1]felt.Felt
	queryVersionFelts [MaxTransactionVersion + 1]felt.Felt
)

func init() {
	for v := range versionFelts {
		versionFelts[v].SetUint64(uint64(v))
		queryVersionFelts[v].Add(QueryVersionBase, &versionFelts[v])
	}
}

// VersionFelt returns the version element committed to in a transaction
// hash, offset by QueryVersionBase for query-only transactions.
func VersionFelt(version uint8, query bool) *felt.Felt {
	var v felt.Felt
	if query {
		v = queryVersionFelts[version]
	} else {
		v = versionFelts[version]
	}
	return &v
}

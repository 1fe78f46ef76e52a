package utils

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/NethermindEth/t9n/core/felt"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/pflag"
)

var (
	ErrUnknownNetwork = errors.New("unknown network (known: mainnet, sepolia, sepolia-integration, goerli, goerli2, integration)")
	ErrChainIDTooLong = errors.New("chain id does not fit in a field element")
)

type Network int

// The following are necessary for Cobra and Viper, respectively, to unmarshal
// CLI/config parameters properly.
var (
	_ pflag.Value              = (*Network)(nil)
	_ encoding.TextUnmarshaler = (*Network)(nil)
)

const (
	Mainnet Network = iota + 1
	Goerli
	Goerli2
	Integration
	Sepolia
	SepoliaIntegration
)

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Goerli:
		return "goerli"
	case Goerli2:
		return "goerli2"
	case Integration:
		return "integration"
	case Sepolia:
		return "sepolia"
	case SepoliaIntegration:
		return "sepolia-integration"
	default:
		// Should not happen.
		panic(ErrUnknownNetwork)
	}
}

func (n Network) MarshalYAML() (interface{}, error) {
	return n.String(), nil
}

func (n *Network) MarshalJSON() ([]byte, error) {
	return json.RawMessage(`"` + n.String() + `"`), nil
}

func (n *Network) Set(s string) error {
	switch s {
	case "MAINNET", "mainnet":
		*n = Mainnet
	case "GOERLI", "goerli":
		*n = Goerli
	case "GOERLI2", "goerli2":
		*n = Goerli2
	case "INTEGRATION", "integration":
		*n = Integration
	case "SEPOLIA", "sepolia":
		*n = Sepolia
	case "SEPOLIA_INTEGRATION", "sepolia-integration":
		*n = SepoliaIntegration
	default:
		return ErrUnknownNetwork
	}
	return nil
}

func (n *Network) Type() string {
	return "Network"
}

func (n *Network) UnmarshalText(text []byte) error {
	return n.Set(string(text))
}

func (n Network) ChainIDString() string {
	switch n {
	case Goerli, Integration:
		return "SN_GOERLI"
	case Mainnet:
		return "SN_MAIN"
	case Goerli2:
		return "SN_GOERLI2"
	case Sepolia:
		return "SN_SEPOLIA"
	case SepoliaIntegration:
		return "SN_INTEGRATION_SEPOLIA"
	default:
		// Should not happen.
		panic(ErrUnknownNetwork)
	}
}

func (n Network) ChainID() *felt.Felt {
	return felt.UnsafeFromString(EncodeChainID(n.ChainIDString()))
}

// EncodeChainID takes a Starknet chain id constant as a string (e.g. "SN_MAIN")
// and returns its hex encoding
func EncodeChainID(chain string) string {
	return hexutil.Encode([]byte(chain))
}

// ResolveChainID turns user input into a chain id. A 0x-prefixed value is
// taken literally, a known network name maps to that network's chain id and
// anything else is encoded as an ASCII short string.
func ResolveChainID(s string) (*felt.Felt, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return felt.NewFromString(s)
	}

	var n Network
	if err := n.Set(s); err == nil {
		return n.ChainID(), nil
	}

	if s == "" {
		return nil, errors.New("empty chain id")
	}
	if len(s) >= felt.Bytes {
		return nil, fmt.Errorf("%q: %w", s, ErrChainIDTooLong)
	}
	return felt.NewFromString(EncodeChainID(s))
}

package utils

import (
	"os"
	"testing"

	"github.com/NethermindEth/t9n/core/felt"
	"github.com/stretchr/testify/require"
)

func HexToFelt(t testing.TB, hex string) *felt.Felt {
	t.Helper()

	f, err := felt.NewFromString(hex)
	require.NoError(t, err)
	return f
}

func HexArrToFelt(t testing.TB, hexArr []string) []*felt.Felt {
	t.Helper()

	res := make([]*felt.Felt, len(hexArr))
	for i, hex := range hexArr {
		res[i] = HexToFelt(t, hex)
	}
	return res
}

// ReadTestFile loads a fixture relative to the calling test's package
func ReadTestFile(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

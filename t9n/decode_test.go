package t9n_test

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/t9n/core"
	"github.com/NethermindEth/t9n/t9n"
	"github.com/NethermindEth/t9n/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// editFixture loads a testdata record, lets edit change it and re-encodes it
func editFixture(t *testing.T, path string, edit func(record map[string]any)) []byte {
	t.Helper()

	var record map[string]any
	require.NoError(t, json.Unmarshal(utils.ReadTestFile(t, path), &record))
	edit(record)

	data, err := json.Marshal(record)
	require.NoError(t, err)
	return data
}

func setBound(resource, field, value string) func(map[string]any) {
	return func(record map[string]any) {
		bounds := record["resource_bounds"].(map[string]any)
		bounds[resource].(map[string]any)[field] = value
	}
}

func TestParseTransaction(t *testing.T) {
	tests := map[string]struct {
		path    string
		txType  core.TransactionType
		version uint8
	}{
		"declare v2":        {path: "testdata/declare_v2.json", txType: core.TxnDeclare, version: 2},
		"invoke v3":         {path: "testdata/invoke_v3.json", txType: core.TxnInvoke, version: 3},
		"deploy account v3": {path: "testdata/deploy_account_v3.json", txType: core.TxnDeployAccount, version: 3},
		"invoke function":   {path: "testdata/mainnet_invoke_v1.json", txType: core.TxnInvoke, version: 1},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			tx, err := t9n.ParseTransaction(utils.ReadTestFile(t, test.path), nil)
			require.NoError(t, err)
			assert.Equal(t, test.txType, tx.Type())
			assert.Equal(t, test.version, tx.Version())
		})
	}

	t.Run("v3 fields", func(t *testing.T) {
		tx, err := t9n.ParseTransaction(utils.ReadTestFile(t, "testdata/deploy_account_v3.json"), nil)
		require.NoError(t, err)

		deploy, ok := tx.(*core.DeployAccountTransactionV3)
		require.True(t, ok)
		assert.Equal(t, core.DAModeL2, deploy.NonceDAMode)
		assert.Equal(t, core.DAModeL2, deploy.FeeDAMode)
		assert.Equal(t, uint64(0x2710), deploy.ResourceBounds.L1Gas.MaxAmount)
		assert.Equal(t, "0x3b9aca00", deploy.ResourceBounds.L2Gas.MaxPricePerUnit.String())
		require.NotNil(t, deploy.ResourceBounds.L1DataGas)
		assert.Equal(t, uint64(0x400), deploy.ResourceBounds.L1DataGas.MaxAmount)
		assert.Equal(t, utils.HexToFelt(t, "0x52ee7fdf5d0810e01327d46985cd500b79f08ca649ce9f5cd97665edd3c519"), deploy.Address())
	})

	t.Run("l1 data gas dropped before 0.13.4", func(t *testing.T) {
		tx, err := t9n.ParseTransaction(utils.ReadTestFile(t, "testdata/invoke_v3.json"), semver.MustParse("0.13.3"))
		require.NoError(t, err)
		assert.Nil(t, tx.(*core.InvokeTransactionV3).ResourceBounds.L1DataGas)
	})
}

func TestParseTransactionUnsupported(t *testing.T) {
	tests := map[string]string{
		"invoke 0x9":         `{"type": "INVOKE", "version": "0x9"}`,
		"invoke 0x2":         `{"type": "INVOKE", "version": "0x2"}`,
		"deploy account 0x0": `{"type": "DEPLOY_ACCOUNT", "version": "0x0"}`,
		"legacy deploy":      `{"type": "DEPLOY", "version": "0x0"}`,
		"query version":      `{"type": "DECLARE", "version": "0x100000000000000000000000000000002"}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := t9n.ParseTransaction([]byte(input), nil)
			assert.ErrorIs(t, err, t9n.ErrUnsupportedTypeOrVersion)
		})
	}

	t.Run("fixture", func(t *testing.T) {
		_, err := t9n.ParseTransaction(utils.ReadTestFile(t, "testdata/unsupported_invoke.json"), nil)
		var unsupported *t9n.UnsupportedTypeOrVersionError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, "INVOKE", unsupported.Type)
		assert.Equal(t, "0x9", unsupported.Version)
	})
}

func TestParseTransactionMalformed(t *testing.T) {
	tests := map[string][]byte{
		"not json":          []byte(`{"type": `),
		"missing version":   []byte(`{"type": "DECLARE"}`),
		"missing type":      []byte(`{"version": "0x1"}`),
		"numeric type":      []byte(`{"type": 1, "version": "0x1"}`),
		"felt out of range": []byte(`{"type": "INVOKE", "version": "0x800000000000011000000000000000000000000000000000000000000000001"}`),
		"missing field":     []byte(`{"type": "DECLARE", "version": "0x2", "sender_address": "0x1"}`),
		"bad da mode": editFixture(t, "testdata/invoke_v3.json", func(record map[string]any) {
			record["fee_data_availability_mode"] = "L3"
		}),
		"missing resource bounds": editFixture(t, "testdata/invoke_v3.json", func(record map[string]any) {
			delete(record, "resource_bounds")
		}),
		"tip overflow": editFixture(t, "testdata/invoke_v3.json", func(record map[string]any) {
			record["tip"] = "0x10000000000000000"
		}),
		"null calldata element": editFixture(t, "testdata/mainnet_invoke_v1.json", func(record map[string]any) {
			record["calldata"] = []any{nil}
		}),
		"null signature element": editFixture(t, "testdata/mainnet_invoke_v1.json", func(record map[string]any) {
			record["signature"] = []any{nil, "0x1"}
		}),
		"null paymaster data element": editFixture(t, "testdata/invoke_v3.json", func(record map[string]any) {
			record["paymaster_data"] = []any{nil}
		}),
		"null constructor calldata element": editFixture(t, "testdata/deploy_account_v3.json", func(record map[string]any) {
			record["constructor_calldata"] = []any{"0x1", nil}
		}),
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := t9n.ParseTransaction(input, nil)
			assert.ErrorIs(t, err, t9n.ErrMalformedTransaction)
		})
	}
}

func TestParseTransactionResourceBounds(t *testing.T) {
	tests := map[string]struct {
		edit     func(map[string]any)
		resource string
		field    string
		cause    error
	}{
		"amount overflow": {
			edit:     setBound("l1_gas", "max_amount", "0x10000000000000000"),
			resource: "L1_GAS",
			field:    "max_amount",
			cause:    strconv.ErrRange,
		},
		"amount not hex": {
			edit:     setBound("l2_gas", "max_amount", "0xg"),
			resource: "L2_GAS",
			field:    "max_amount",
			cause:    strconv.ErrSyntax,
		},
		"price overflow": {
			edit:     setBound("l1_data_gas", "max_price_per_unit", "0x100000000000000000000000000000000"),
			resource: "L1_DATA",
			field:    "max_price_per_unit",
			cause:    core.ErrUint128Overflow,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := t9n.ParseTransaction(editFixture(t, "testdata/invoke_v3.json", test.edit), nil)

			var boundsErr *t9n.ResourceBoundsError
			require.True(t, errors.As(err, &boundsErr))
			assert.Equal(t, test.resource, boundsErr.Resource)
			assert.Equal(t, test.field, boundsErr.Field)
			assert.ErrorIs(t, err, test.cause)
		})
	}

	t.Run("missing prefix", func(t *testing.T) {
		_, err := t9n.ParseTransaction(editFixture(t, "testdata/invoke_v3.json", setBound("l1_gas", "max_amount", "2710")), nil)
		var boundsErr *t9n.ResourceBoundsError
		assert.True(t, errors.As(err, &boundsErr))
	})

	t.Run("ignored l1 data gas is not parsed", func(t *testing.T) {
		data := editFixture(t, "testdata/invoke_v3.json", setBound("l1_data_gas", "max_amount", "0x10000000000000000"))
		_, err := t9n.ParseTransaction(data, semver.MustParse("0.13.1"))
		assert.NoError(t, err)
	})
}

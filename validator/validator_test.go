package validator_test

import (
	"testing"

	"github.com/NethermindEth/t9n/core/felt"
	"github.com/NethermindEth/t9n/utils"
	"github.com/NethermindEth/t9n/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Address *felt.Felt `validate:"required"`
	Tip     *felt.Felt `validate:"required,felt_uint64"`
}

func TestValidator(t *testing.T) {
	assert.Same(t, validator.Validator(), validator.Validator())

	tests := map[string]struct {
		record record
		ok     bool
	}{
		"zero values are present": {
			record: record{Address: &felt.Zero, Tip: &felt.Zero},
			ok:     true,
		},
		"max tip": {
			record: record{Address: utils.HexToFelt(t, "0x1"), Tip: utils.HexToFelt(t, "0xffffffffffffffff")},
			ok:     true,
		},
		"tip overflow": {
			record: record{Address: utils.HexToFelt(t, "0x1"), Tip: utils.HexToFelt(t, "0x10000000000000000")},
		},
		"missing address": {
			record: record{Tip: &felt.Zero},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := validator.Validator().Struct(test.record)
			if test.ok {
				require.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
